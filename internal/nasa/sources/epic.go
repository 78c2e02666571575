package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/palsulearavapsit/SPACESCOPE/internal/nasa"
	"github.com/palsulearavapsit/SPACESCOPE/internal/types"
)

const (
	epicEndpoint   = "https://api.nasa.gov/EPIC/api/natural/available"
	epicArchiveURL = "https://api.nasa.gov/EPIC/archive/natural"
)

// EPIC collects the latest full-disc Earth captures.
type EPIC struct{}

func (EPIC) Kind() types.Kind { return types.KindEarthImage }

func (EPIC) Collect(ctx context.Context, f Fetcher) (*Result, error) {
	payload, err := f.Fetch(ctx, nasa.SourceEPIC, epicEndpoint, url.Values{})
	if err != nil {
		return nil, err
	}

	var items []map[string]any
	if err := json.Unmarshal(payload, &items); err != nil {
		var single map[string]any
		if err := json.Unmarshal(payload, &single); err != nil {
			return nil, fmt.Errorf("epic: decode payload: %w", err)
		}
		items = []map[string]any{single}
	}

	res := &Result{}
	for _, item := range items {
		identifier := asString(item, "identifier")
		if identifier == "" {
			res.Malformed++
			continue
		}
		observed := time.Now().UTC()
		if t, ok := parseTime(asString(item, "date")); ok {
			observed = t
		}
		instrument := asString(item, "instrument")
		if instrument == "" {
			instrument = "EPIC"
		}
		res.Records = append(res.Records, &types.EarthImage{
			Identifier:          identifier,
			Caption:             asString(item, "caption"),
			ImageName:           asString(item, "image"),
			CentroidCoordinates: toJSON(item["centroid_coordinates"]),
			DSCOVRPosition:      toJSON(item["dscovr_j2000_position"]),
			LunarPosition:       toJSON(item["lunar_j2000_position"]),
			SunPosition:         toJSON(item["sun_j2000_position"]),
			AttitudeQuaternions: toJSON(item["attitude_quaternions"]),
			Instrument:          instrument,
			ObservationDate:     observed,
			URL:                 epicImageURL(asString(item, "date"), asString(item, "image")),
		})
	}
	return res, nil
}

// epicImageURL builds the PNG archive path from the capture date.
func epicImageURL(date, image string) string {
	day, _, _ := strings.Cut(date, "T")
	day, _, _ = strings.Cut(day, " ")
	return fmt.Sprintf("%s/%s/png/%s.png", epicArchiveURL, strings.ReplaceAll(day, "-", "/"), image)
}
