package sources

import (
	"context"
	"net/url"

	"github.com/palsulearavapsit/SPACESCOPE/internal/config"
	"github.com/palsulearavapsit/SPACESCOPE/internal/nasa"
	"github.com/palsulearavapsit/SPACESCOPE/internal/types"
)

// Fetcher is the one capability an adapter gets from the outside. It is
// satisfied by nasa.Client and stubbed in tests.
type Fetcher interface {
	Fetch(ctx context.Context, src nasa.SourceClass, endpoint string, params url.Values) ([]byte, error)
}

// Result is one completed collection pass. Malformed counts source items
// that could not be normalized; the adapter keeps going past them.
type Result struct {
	Records   []types.Record
	Malformed int
}

// Adapter translates one provider's response shape into normalized records.
// Collect returns an error only when the provider itself was unreachable or
// its payload was unusable as a whole; a bad individual item is counted in
// Result.Malformed instead.
type Adapter interface {
	Kind() types.Kind
	Collect(ctx context.Context, f Fetcher) (*Result, error)
}

// All returns one adapter per entity kind, in stable kind order.
func All(cfg config.Sources) []Adapter {
	return []Adapter{
		&APOD{},
		&NeoWs{},
		&DONKI{WindowDays: cfg.DONKIWindowDays},
		&EONET{Limit: cfg.EONETLimit},
		&EPIC{},
		&ExoplanetArchive{},
		&GIBS{Layers: cfg.GIBSLayers},
		&InSight{},
		&MediaLibrary{Query: cfg.MediaQuery},
		&OSDR{Query: cfg.DatasetQuery},
		&SSC{},
		&CNEOS{},
		&TechPort{},
		&TechTransfer{},
		&TLE{Satellites: cfg.Satellites},
		&Trek{Products: cfg.TrekProducts},
	}
}

// ByKind returns the adapter for one entity kind.
func ByKind(cfg config.Sources, k types.Kind) (Adapter, bool) {
	for _, a := range All(cfg) {
		if a.Kind() == k {
			return a, true
		}
	}
	return nil, false
}
