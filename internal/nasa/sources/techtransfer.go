package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/palsulearavapsit/SPACESCOPE/internal/nasa"
	"github.com/palsulearavapsit/SPACESCOPE/internal/types"
)

const techtransferEndpoint = "https://api.nasa.gov/techtransfer/spinoff"

// TechTransfer collects spinoff technology listings.
type TechTransfer struct{}

func (TechTransfer) Kind() types.Kind { return types.KindTechSpinoff }

func (TechTransfer) Collect(ctx context.Context, f Fetcher) (*Result, error) {
	payload, err := f.Fetch(ctx, nasa.SourceTechTransfer, techtransferEndpoint, url.Values{"format": {"json"}})
	if err != nil {
		return nil, err
	}

	var body struct {
		Spinoffs []map[string]any `json:"spinoffs"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, fmt.Errorf("techtransfer: decode payload: %w", err)
	}

	res := &Result{}
	for _, spinoff := range body.Spinoffs {
		spinoffID := asString(spinoff, "id")
		if spinoffID == "" {
			res.Malformed++
			continue
		}
		agency := asString(spinoff, "agency")
		if agency == "" {
			agency = "NASA"
		}
		res.Records = append(res.Records, &types.TechSpinoff{
			SpinoffID:          spinoffID,
			Title:              asString(spinoff, "title"),
			Description:        asString(spinoff, "description"),
			Benefits:           asString(spinoff, "benefits"),
			Category:           asString(spinoff, "category"),
			YearFirstPublished: asInt(spinoff, "year_first_published"),
			Agency:             agency,
			NASACenter:         asString(spinoff, "nasa_center"),
			URL:                asString(spinoff, "url"),
		})
	}
	return res, nil
}
