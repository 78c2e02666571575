package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/palsulearavapsit/SPACESCOPE/internal/nasa"
	"github.com/palsulearavapsit/SPACESCOPE/internal/types"
)

// The Exoplanet Archive is a Caltech TAP service, no NASA key.
const (
	exoplanetEndpoint = "https://exoplanetarchive.ipac.caltech.edu/TAP/sync"

	// Planets with insolation between 0.2x and 2x Earth's, discovered this
	// century, as a habitable zone proxy.
	habitableQuery = "SELECT pl_name, hostname, pl_orbper, pl_orbsmax, st_teff, disc_year, discoverymethod FROM ps WHERE disc_year > 2000 AND pl_insol > 0.2 AND pl_insol < 2"
)

// ExoplanetArchive collects habitable-zone candidates via an ADQL query.
type ExoplanetArchive struct{}

func (ExoplanetArchive) Kind() types.Kind { return types.KindExoplanet }

func (ExoplanetArchive) Collect(ctx context.Context, f Fetcher) (*Result, error) {
	params := url.Values{
		"query":  {habitableQuery},
		"format": {"json"},
	}
	payload, err := f.Fetch(ctx, nasa.SourceExoplanet, exoplanetEndpoint, params)
	if err != nil {
		return nil, err
	}

	var rows []map[string]any
	if err := json.Unmarshal(payload, &rows); err != nil {
		return nil, fmt.Errorf("exoplanet: decode rows: %w", err)
	}

	res := &Result{}
	for _, row := range rows {
		name := asString(row, "pl_name")
		if name == "" {
			res.Malformed++
			continue
		}
		var discYear *int
		if y := asInt(row, "disc_year"); y != 0 {
			discYear = &y
		}
		res.Records = append(res.Records, &types.Exoplanet{
			Name:            name,
			HostName:        asString(row, "hostname"),
			OrbitalPeriod:   floatPtr(row, "pl_orbper"),
			SemiMajorAxisAU: floatPtr(row, "pl_orbsmax"),
			StarTempK:       floatPtr(row, "st_teff"),
			DiscoveryYear:   discYear,
			DiscoveryMethod: asString(row, "discoverymethod"),
			HabitableZone:   true,
		})
	}
	return res, nil
}
