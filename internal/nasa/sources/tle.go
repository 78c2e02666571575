package sources

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/palsulearavapsit/SPACESCOPE/internal/config"
	"github.com/palsulearavapsit/SPACESCOPE/internal/nasa"
	"github.com/palsulearavapsit/SPACESCOPE/internal/types"
)

const tleEndpoint = "https://api.nasa.gov/ssd_svn/rss_feeds/tle.php"

// TLE collects the latest two-line element set for each tracked satellite,
// one fetch per catalog number. A satellite whose fetch or element set is
// bad is counted malformed and the rest are still collected. Element sets
// refresh on a duplicate key instead of skipping.
type TLE struct {
	Satellites []config.Satellite
}

func (TLE) Kind() types.Kind { return types.KindOrbitalElementSet }

func (t *TLE) Collect(ctx context.Context, f Fetcher) (*Result, error) {
	// One fetch per satellite, a few in flight at once. A nil slot after
	// the wait is a satellite that could not be collected.
	collected := make([]*types.OrbitalElementSet, len(t.Satellites))
	var g errgroup.Group
	g.SetLimit(4)
	for i, sat := range t.Satellites {
		g.Go(func() error {
			collected[i] = t.collectOne(ctx, f, sat)
			return ctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res := &Result{}
	for _, rec := range collected {
		if rec == nil {
			res.Malformed++
			continue
		}
		res.Records = append(res.Records, rec)
	}
	return res, nil
}

func (t *TLE) collectOne(ctx context.Context, f Fetcher, sat config.Satellite) *types.OrbitalElementSet {
	if sat.CatalogNumber == "" {
		return nil
	}
	params := url.Values{
		"CATNR":  {sat.CatalogNumber},
		"FORMAT": {"json"},
	}
	payload, err := f.Fetch(ctx, nasa.SourceTLE, tleEndpoint, params)
	if err != nil {
		return nil
	}
	var body map[string]any
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil
	}
	line1 := asString(body, "tle_line1")
	if line1 == "" {
		line1 = asString(body, "line1")
	}
	line2 := asString(body, "tle_line2")
	if line2 == "" {
		line2 = asString(body, "line2")
	}
	rec, ok := parseTLE(sat.CatalogNumber, sat.Name, line1, line2)
	if !ok {
		return nil
	}
	return rec
}

// parseTLE extracts the orbital elements from a two-line element set using
// the fixed column layout of the format.
func parseTLE(catalogNumber, name, line1, line2 string) (*types.OrbitalElementSet, bool) {
	if len(line1) < 32 || len(line2) < 63 {
		return nil, false
	}
	epochYear2, err1 := strconv.Atoi(strings.TrimSpace(line1[18:20]))
	epochDay, err2 := strconv.ParseFloat(strings.TrimSpace(line1[20:32]), 64)
	if err1 != nil || err2 != nil {
		return nil, false
	}
	// Two-digit years 57-99 belong to the 1900s per the format convention.
	epochYear := 2000 + epochYear2
	if epochYear2 >= 57 {
		epochYear = 1900 + epochYear2
	}

	rec := &types.OrbitalElementSet{
		SatelliteNumber: catalogNumber,
		SatelliteName:   name,
		Line1:           line1,
		Line2:           line2,
		EpochYear:       epochYear,
		EpochDay:        epochDay,
		Epoch:           epochToTime(epochYear, epochDay),
		InclinationDeg:  tleFloat(line2, 8, 16),
		RAANDeg:         tleFloat(line2, 17, 25),
		Eccentricity:    tleEccentricity(line2),
		ArgPerigeeDeg:   tleFloat(line2, 34, 42),
		MeanAnomalyDeg:  tleFloat(line2, 43, 51),
		MeanMotionRevD:  tleFloat(line2, 52, 63),
	}
	return rec, true
}

func tleFloat(line string, from, to int) float64 {
	if to > len(line) {
		return 0
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(line[from:to]), 64)
	if err != nil {
		return 0
	}
	return f
}

// tleEccentricity reads the eccentricity field, which omits its leading
// decimal point.
func tleEccentricity(line2 string) float64 {
	if len(line2) < 33 {
		return 0
	}
	f, err := strconv.ParseFloat("0."+strings.TrimSpace(line2[26:33]), 64)
	if err != nil {
		return 0
	}
	return f
}

func epochToTime(year int, day float64) time.Time {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return start.Add(time.Duration((day - 1) * 24 * float64(time.Hour)))
}
