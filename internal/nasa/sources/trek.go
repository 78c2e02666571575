package sources

import (
	"context"
	"fmt"
	"net/url"

	"github.com/palsulearavapsit/SPACESCOPE/internal/config"
	"github.com/palsulearavapsit/SPACESCOPE/internal/nasa"
	"github.com/palsulearavapsit/SPACESCOPE/internal/types"
)

// Trek tiles are served per celestial body outside api.nasa.gov, no key.
const trekBaseURL = "https://trek.gsfc.nasa.gov/tiles"

// Trek collects the configured planetary map products, probing each
// product's metadata document. A product whose probe fails is counted
// malformed and the rest are still collected.
type Trek struct {
	Products []config.TrekProduct
}

func (Trek) Kind() types.Kind { return types.KindMapLayer }

func (t *Trek) Collect(ctx context.Context, f Fetcher) (*Result, error) {
	res := &Result{}
	for _, product := range t.Products {
		if product.Body == "" || product.Product == "" {
			res.Malformed++
			continue
		}
		metadataURL := trekMetadataURL(product.Body, product.Product)
		if _, err := f.Fetch(ctx, nasa.SourceTrek, metadataURL, url.Values{}); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			res.Malformed++
			continue
		}
		res.Records = append(res.Records, &types.MapLayer{
			LayerIdentifier: product.Body + "/" + product.Product,
			Body:            product.Body,
			ProductName:     product.Product,
			TileURL:         fmt.Sprintf("%s/%s/%s/default/{z}/{x}/{y}.png", trekBaseURL, product.Body, product.Product),
			MetadataURL:     metadataURL,
		})
	}
	return res, nil
}

func trekMetadataURL(body, product string) string {
	return fmt.Sprintf("%s/%s/%s/default//%s_%s_srtm.vrt.xml", trekBaseURL, body, product, body, product)
}
