package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/palsulearavapsit/SPACESCOPE/internal/nasa"
	"github.com/palsulearavapsit/SPACESCOPE/internal/types"
)

// EONET is hosted outside api.nasa.gov and takes no API key.
const eonetEndpoint = "https://eonet.gsfc.nasa.gov/api/v3/events"

// EONET collects open natural events (wildfires, storms, volcanoes). The
// event type is the title of the first category.
type EONET struct {
	Limit int
}

func (EONET) Kind() types.Kind { return types.KindNaturalEvent }

func (e *EONET) Collect(ctx context.Context, f Fetcher) (*Result, error) {
	limit := e.Limit
	if limit <= 0 {
		limit = 100
	}
	payload, err := f.Fetch(ctx, nasa.SourceEONET, eonetEndpoint, url.Values{"limit": {strconv.Itoa(limit)}})
	if err != nil {
		return nil, err
	}

	var body struct {
		Events []map[string]any `json:"events"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, fmt.Errorf("eonet: decode events: %w", err)
	}

	res := &Result{}
	for _, ev := range body.Events {
		eonetID := asString(ev, "id")
		if eonetID == "" {
			res.Malformed++
			continue
		}
		eventType := "Unknown"
		if cats := asSlice(ev, "categories"); len(cats) > 0 {
			if cat, ok := cats[0].(map[string]any); ok {
				if title := asString(cat, "title"); title != "" {
					eventType = title
				}
			}
		}
		lastUpdate := time.Now().UTC()
		if t, ok := parseTime(asString(ev, "updated")); ok {
			lastUpdate = t
		}
		// closed is a timestamp for closed events and null for open ones,
		// but some feed versions carry a bare boolean.
		closed := false
		switch v := ev["closed"].(type) {
		case string:
			closed = v != ""
		case bool:
			closed = v
		}
		res.Records = append(res.Records, &types.NaturalEvent{
			EONETID:     eonetID,
			EventType:   eventType,
			Title:       asString(ev, "title"),
			Description: asString(ev, "description"),
			Closed:      closed,
			Geometry:    toJSON(ev["geometry"]),
			Sources:     toJSON(ev["sources"]),
			Categories:  toJSON(ev["categories"]),
			LastUpdate:  lastUpdate,
		})
	}
	return res, nil
}
