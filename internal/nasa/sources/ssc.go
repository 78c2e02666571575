package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/palsulearavapsit/SPACESCOPE/internal/nasa"
	"github.com/palsulearavapsit/SPACESCOPE/internal/types"
)

const sscEndpoint = "https://api.nasa.gov/asset/asset/query"

// SSC collects active satellites from the satellite situation center. The
// source republishes position and status continuously, so this kind
// refreshes on a duplicate key instead of skipping.
type SSC struct{}

func (SSC) Kind() types.Kind { return types.KindSatelliteDescriptor }

func (SSC) Collect(ctx context.Context, f Fetcher) (*Result, error) {
	params := url.Values{
		"operational_status": {"operational"},
		"limit":              {"100"},
	}
	payload, err := f.Fetch(ctx, nasa.SourceSSC, sscEndpoint, params)
	if err != nil {
		return nil, err
	}

	var body struct {
		Satellites []map[string]any `json:"satellites"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, fmt.Errorf("ssc: decode payload: %w", err)
	}

	res := &Result{}
	for _, sat := range body.Satellites {
		satID := asString(sat, "satellite_id")
		if satID == "" {
			satID = asString(sat, "id")
		}
		if satID == "" {
			res.Malformed++
			continue
		}
		status := asString(sat, "operational_status")
		if status == "" {
			status = "operational"
		}
		res.Records = append(res.Records, &types.SatelliteDescriptor{
			SatelliteID:       satID,
			SatelliteName:     asString(sat, "name"),
			OperationalStatus: status,
			StartTime:         timePtr(asString(sat, "start_time")),
			EndTime:           timePtr(asString(sat, "end_time")),
			ResolutionSec:     asInt(sat, "resolution"),
			Position:          toJSON(sat["position"]),
		})
	}
	return res, nil
}
