package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/palsulearavapsit/SPACESCOPE/internal/nasa"
	"github.com/palsulearavapsit/SPACESCOPE/internal/types"
)

const osdrEndpoint = "https://api.osis.nasa.gov/data"

// OSDR searches the open science data repository for the configured query
// and collects dataset listings.
type OSDR struct {
	Query string
}

func (OSDR) Kind() types.Kind { return types.KindDatasetDescriptor }

func (o *OSDR) Collect(ctx context.Context, f Fetcher) (*Result, error) {
	query := o.Query
	if query == "" {
		query = "space biology"
	}
	params := url.Values{
		"query": {query},
		"limit": {"50"},
	}
	payload, err := f.Fetch(ctx, nasa.SourceOSDR, osdrEndpoint, params)
	if err != nil {
		return nil, err
	}

	var body struct {
		Results []map[string]any `json:"results"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, fmt.Errorf("osdr: decode payload: %w", err)
	}

	res := &Result{}
	for _, item := range body.Results {
		datasetID := asString(item, "dataset_id")
		if datasetID == "" {
			datasetID = asString(item, "id")
		}
		if datasetID == "" {
			res.Malformed++
			continue
		}
		res.Records = append(res.Records, &types.DatasetDescriptor{
			DatasetID:       datasetID,
			Title:           asString(item, "title"),
			Description:     asString(item, "description"),
			Discipline:      asString(item, "discipline"),
			DOI:             asString(item, "doi"),
			Authors:         toJSON(item["authors"]),
			PublicationDate: timePtr(asString(item, "publication_date")),
			Keywords:        toJSON(item["keywords"]),
			FileCount:       asInt(item, "file_count"),
			FileSizeBytes:   int64(asFloat(item, "file_size")),
			AccessLevel:     asString(item, "access_level"),
			URL:             asString(item, "url"),
		})
	}
	return res, nil
}
