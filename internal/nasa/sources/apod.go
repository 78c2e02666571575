package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/palsulearavapsit/SPACESCOPE/internal/nasa"
	"github.com/palsulearavapsit/SPACESCOPE/internal/types"
)

const apodEndpoint = "https://api.nasa.gov/planetary/apod"

// APOD collects the latest astronomy picture of the day. The endpoint
// returns a single object by default and an array when count is set, so
// both shapes are accepted.
type APOD struct{}

func (APOD) Kind() types.Kind { return types.KindPictureOfDay }

func (APOD) Collect(ctx context.Context, f Fetcher) (*Result, error) {
	payload, err := f.Fetch(ctx, nasa.SourceAPOD, apodEndpoint, url.Values{})
	if err != nil {
		return nil, err
	}

	var items []map[string]any
	if err := json.Unmarshal(payload, &items); err != nil {
		var single map[string]any
		if err := json.Unmarshal(payload, &single); err != nil {
			return nil, fmt.Errorf("apod: decode payload: %w", err)
		}
		items = []map[string]any{single}
	}

	res := &Result{}
	for _, item := range items {
		date := asString(item, "date")
		if date == "" {
			res.Malformed++
			continue
		}
		mediaType := asString(item, "media_type")
		if mediaType == "" {
			mediaType = "image"
		}
		res.Records = append(res.Records, &types.PictureOfDay{
			Date:           date,
			Title:          asString(item, "title"),
			Explanation:    asString(item, "explanation"),
			URL:            asString(item, "url"),
			HDURL:          asString(item, "hdurl"),
			MediaType:      mediaType,
			Copyright:      asString(item, "copyright"),
			ServiceVersion: asString(item, "service_version"),
		})
	}
	return res, nil
}
