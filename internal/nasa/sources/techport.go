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

const techportEndpoint = "https://api.nasa.gov/techport/api/projects"

// TechPort collects technology project listings.
type TechPort struct{}

func (TechPort) Kind() types.Kind { return types.KindTechProject }

func (TechPort) Collect(ctx context.Context, f Fetcher) (*Result, error) {
	payload, err := f.Fetch(ctx, nasa.SourceTechPort, techportEndpoint, url.Values{"format": {"json"}})
	if err != nil {
		return nil, err
	}

	var body struct {
		Projects []map[string]any `json:"projects"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, fmt.Errorf("techport: decode payload: %w", err)
	}

	res := &Result{}
	for _, project := range body.Projects {
		projectID := projectIdentifier(project)
		if projectID == "" {
			res.Malformed++
			continue
		}
		status := asString(project, "statusDescription")
		if status == "" {
			status = "Unknown"
		}
		trl := asInt(project, "trl")
		if trl == 0 {
			trl = 1
		}
		res.Records = append(res.Records, &types.TechProject{
			ProjectID:     projectID,
			Title:         asString(project, "title"),
			Description:   asString(project, "description"),
			Status:        status,
			MaturityLevel: trl,
			StartDate:     timePtr(asString(project, "startDate")),
			EndDate:       timePtr(asString(project, "endDate")),
			Organization:  asString(project, "leadOrganization"),
			Program:       asString(asMap(project, "program"), "title"),
			Benefits:      toJSON(project["benefits"]),
			URL:           asString(project, "url"),
		})
	}
	return res, nil
}

// projectIdentifier handles both a bare numeric projectId and a string id.
func projectIdentifier(project map[string]any) string {
	switch v := project["projectId"].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatInt(int64(v), 10)
	}
	return asString(project, "id")
}
