package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/palsulearavapsit/SPACESCOPE/internal/nasa"
	"github.com/palsulearavapsit/SPACESCOPE/internal/types"
)

const insightEndpoint = "https://api.nasa.gov/insight_weather/"

// InSight collects Mars surface weather. The payload is a dictionary keyed
// by sol number with disclaimer and validity-check entries mixed in, which
// are not sols and are skipped without counting as malformed.
type InSight struct{}

func (InSight) Kind() types.Kind { return types.KindPlanetaryWeather }

func (InSight) Collect(ctx context.Context, f Fetcher) (*Result, error) {
	payload, err := f.Fetch(ctx, nasa.SourceInSight, insightEndpoint, url.Values{"feedtype": {"json"}, "ver": {"1.0"}})
	if err != nil {
		return nil, err
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, fmt.Errorf("insight: decode payload: %w", err)
	}

	res := &Result{}
	for key, raw := range body {
		sol, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		var solData map[string]any
		if err := json.Unmarshal(raw, &solData); err != nil {
			res.Malformed++
			continue
		}
		res.Records = append(res.Records, &types.PlanetaryWeather{
			Sol:                sol,
			Season:             asString(solData, "Season"),
			SolarLongitude:     asFloat(solData, "LS"),
			MinTempC:           floatPtr(solData, "Min Temp C"),
			MaxTempC:           floatPtr(solData, "Max Temp C"),
			AvgPressurePa:      floatPtr(solData, "Pressure"),
			WindDirection:      toJSON(solData["WD"]),
			WindSpeed:          toJSON(solData["HWS"]),
			AtmosphericOpacity: toJSON(solData["AtmOpacity"]),
			Sunrise:            asString(solData, "Sunrise"),
			Sunset:             asString(solData, "Sunset"),
			EarthDate:          timePtr(asString(solData, "terrestrial_date")),
		})
	}
	return res, nil
}
