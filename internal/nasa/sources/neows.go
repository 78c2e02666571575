package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/palsulearavapsit/SPACESCOPE/internal/nasa"
	"github.com/palsulearavapsit/SPACESCOPE/internal/types"
)

const neowsFeedEndpoint = "https://api.nasa.gov/neo/rest/v1/feed/today"

// NeoWs collects the near-earth objects approaching today. The feed groups
// objects by approach date; the close-approach columns come from the first
// element of each object's approach list.
type NeoWs struct{}

func (NeoWs) Kind() types.Kind { return types.KindNearEarthObject }

func (NeoWs) Collect(ctx context.Context, f Fetcher) (*Result, error) {
	payload, err := f.Fetch(ctx, nasa.SourceNeoWs, neowsFeedEndpoint, url.Values{})
	if err != nil {
		return nil, err
	}

	var feed struct {
		NearEarthObjects map[string][]map[string]any `json:"near_earth_objects"`
	}
	if err := json.Unmarshal(payload, &feed); err != nil {
		return nil, fmt.Errorf("neows: decode feed: %w", err)
	}

	res := &Result{}
	for _, objects := range feed.NearEarthObjects {
		for _, obj := range objects {
			rec, ok := normalizeNeo(obj)
			if !ok {
				res.Malformed++
				continue
			}
			res.Records = append(res.Records, rec)
		}
	}
	return res, nil
}

func normalizeNeo(obj map[string]any) (*types.NearEarthObject, bool) {
	neoID := asString(obj, "id")
	if neoID == "" {
		return nil, false
	}
	approaches := asSlice(obj, "close_approach_data")
	if len(approaches) == 0 {
		return nil, false
	}
	approach, ok := approaches[0].(map[string]any)
	if !ok {
		return nil, false
	}

	rec := &types.NearEarthObject{
		NeoID:                  neoID,
		Name:                   asString(obj, "name"),
		NASAJPLURL:             asString(obj, "nasa_jpl_url"),
		AbsoluteMagnitude:      asFloat(obj, "absolute_magnitude_h"),
		IsPotentiallyHazardous: asBool(obj, "is_potentially_hazardous_asteroid"),
		CloseApproachDate:      timePtr(asString(approach, "close_approach_date_full")),
		OrbitingBody:           asString(approach, "orbiting_body"),
		RelativeVelocity:       toJSON(approach["relative_velocity"]),
		MissDistance:           toJSON(approach["miss_distance"]),
	}
	if meters := asMap(asMap(obj, "estimated_diameter"), "meters"); meters != nil {
		rec.EstimatedDiameterMinM = asFloat(meters, "estimated_diameter_min")
		rec.EstimatedDiameterMaxM = asFloat(meters, "estimated_diameter_max")
	}
	if vel := asMap(approach, "relative_velocity"); vel != nil {
		rec.CloseApproachVelKmS = asFloat(vel, "kilometers_per_second")
	}
	if miss := asMap(approach, "miss_distance"); miss != nil {
		rec.CloseApproachDistKm = asFloat(miss, "kilometers")
	}
	return rec, true
}
