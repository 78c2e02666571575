package sources

import (
	"context"
	"fmt"
	"net/url"

	"github.com/palsulearavapsit/SPACESCOPE/internal/config"
	"github.com/palsulearavapsit/SPACESCOPE/internal/nasa"
	"github.com/palsulearavapsit/SPACESCOPE/internal/types"
)

const (
	gibsBaseURL       = "https://map1.vis.earthdata.nasa.gov/wmts-webmerc"
	gibsCapabilities  = gibsBaseURL + "/1.0.0/WMTSCapabilities.xml"
	gibsTileMatrixSet = "GoogleMapsCompatible_Level8"
)

// GIBS collects the configured browse-imagery layers, probing the WMTS
// capabilities document per layer. A layer whose probe fails is counted
// malformed and the rest are still collected.
type GIBS struct {
	Layers []config.GIBSLayer
}

func (GIBS) Kind() types.Kind { return types.KindImageryLayer }

func (g *GIBS) Collect(ctx context.Context, f Fetcher) (*Result, error) {
	res := &Result{}
	for _, layer := range g.Layers {
		if layer.Name == "" {
			res.Malformed++
			continue
		}
		params := url.Values{
			"layer":         {layer.Name},
			"tilematrixset": {gibsTileMatrixSet},
			"Service":       {"WMTS"},
			"Request":       {"GetCapabilities"},
		}
		if _, err := f.Fetch(ctx, nasa.SourceGIBS, gibsCapabilities, params); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			res.Malformed++
			continue
		}
		res.Records = append(res.Records, &types.ImageryLayer{
			LayerName:   layer.Name,
			ProductType: layer.ProductType,
			Projection:  "EPSG:3857",
			Resolution:  layer.Resolution,
			TileURL:     gibsTileURL(layer.Name),
			Metadata:    toJSON(map[string]any{"tilematrixset": gibsTileMatrixSet}),
		})
	}
	return res, nil
}

// gibsTileURL is the tile template with the date and z/y/x placeholders
// left for the consumer.
func gibsTileURL(layer string) string {
	return fmt.Sprintf("%s/1.0.0/%s/default/{date}/%s/{z}/{y}/{x}.jpg", gibsBaseURL, layer, gibsTileMatrixSet)
}
