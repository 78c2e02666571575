package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/palsulearavapsit/SPACESCOPE/internal/nasa"
	"github.com/palsulearavapsit/SPACESCOPE/internal/types"
)

const (
	cneosEndpoint = "https://api.nasa.gov/ssd/api/cad.api"

	// The close-approach service prints times as "2026-Aug-30 05:05".
	cneosTimeLayout = "2006-Jan-02 15:04"

	cneosMaxRows = 100
)

// CNEOS collects close approaches within a year either side of now. The
// service returns positional rows whose column order is declared by a
// fields header, so every row is mapped through that header.
type CNEOS struct {
	now func() time.Time
}

func (CNEOS) Kind() types.Kind { return types.KindCloseApproach }

func (c *CNEOS) Collect(ctx context.Context, f Fetcher) (*Result, error) {
	nowFn := c.now
	if nowFn == nil {
		nowFn = time.Now
	}
	now := nowFn().UTC()
	params := url.Values{
		"date-min": {now.AddDate(-1, 0, 0).Format("2006-01-02")},
		"date-max": {now.AddDate(1, 0, 0).Format("2006-01-02")},
		"limit":    {"1000"},
		"sort":     {"date"},
	}
	payload, err := f.Fetch(ctx, nasa.SourceCNEOS, cneosEndpoint, params)
	if err != nil {
		return nil, err
	}

	var body struct {
		Fields []string `json:"fields"`
		Data   [][]any  `json:"data"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, fmt.Errorf("cneos: decode payload: %w", err)
	}
	cols := make(map[string]int, len(body.Fields))
	for i, name := range body.Fields {
		cols[name] = i
	}
	if _, ok := cols["des"]; !ok {
		return nil, fmt.Errorf("cneos: fields header missing designation column")
	}

	res := &Result{}
	for i, row := range body.Data {
		if i >= cneosMaxRows {
			break
		}
		rec, ok := normalizeApproach(cols, row)
		if !ok {
			res.Malformed++
			continue
		}
		res.Records = append(res.Records, rec)
	}
	return res, nil
}

func normalizeApproach(cols map[string]int, row []any) (*types.CloseApproach, bool) {
	cell := func(name string) any {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return nil
		}
		return row[i]
	}
	str := func(name string) string {
		s, _ := cell(name).(string)
		return s
	}

	designation := str("des")
	if designation == "" {
		return nil, false
	}
	rec := &types.CloseApproach{
		Designation:       designation,
		OrbitID:           str("orbit_id"),
		DistanceAU:        coerceFloat(cell("dist")),
		DistanceMinAU:     coerceFloat(cell("dist_min")),
		VelocityKmS:       coerceFloat(cell("v_rel")),
		VelocityInfKmS:    coerceFloat(cell("v_inf")),
		AbsoluteMagnitude: coerceFloat(cell("h")),
		Body:              "Earth",
	}
	if cd := str("cd"); cd != "" {
		if t, err := time.Parse(cneosTimeLayout, cd); err == nil {
			rec.ApproachTime = &t
		}
	}
	if body := str("body"); body != "" {
		rec.Body = body
	}
	return rec, true
}
