package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/palsulearavapsit/SPACESCOPE/internal/nasa"
	"github.com/palsulearavapsit/SPACESCOPE/internal/types"
)

// The image and video library is hosted outside api.nasa.gov, no key.
const mediaLibraryEndpoint = "https://images-api.nasa.gov/search"

// MediaLibrary searches the image and video library for the configured
// query. Each collection item carries its metadata in the first element of
// a data array.
type MediaLibrary struct {
	Query string
}

func (MediaLibrary) Kind() types.Kind { return types.KindMediaAsset }

func (m *MediaLibrary) Collect(ctx context.Context, f Fetcher) (*Result, error) {
	query := m.Query
	if query == "" {
		query = "space"
	}
	params := url.Values{
		"q":          {query},
		"page_size":  {"20"},
		"media_type": {"image"},
	}
	payload, err := f.Fetch(ctx, nasa.SourceImageLibrary, mediaLibraryEndpoint, params)
	if err != nil {
		return nil, err
	}

	var body struct {
		Collection struct {
			Items []map[string]any `json:"items"`
		} `json:"collection"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, fmt.Errorf("media library: decode payload: %w", err)
	}

	res := &Result{}
	for _, item := range body.Collection.Items {
		rec, ok := normalizeMediaItem(item)
		if !ok {
			res.Malformed++
			continue
		}
		res.Records = append(res.Records, rec)
	}
	return res, nil
}

func normalizeMediaItem(item map[string]any) (*types.MediaAsset, bool) {
	data := asSlice(item, "data")
	if len(data) == 0 {
		return nil, false
	}
	meta, ok := data[0].(map[string]any)
	if !ok {
		return nil, false
	}
	nasaID := asString(meta, "nasa_id")
	if nasaID == "" {
		return nil, false
	}

	mediaType := asString(meta, "media_type")
	if mediaType == "" {
		mediaType = "image"
	}
	previewURL := ""
	for _, l := range asSlice(item, "links") {
		link, ok := l.(map[string]any)
		if !ok {
			continue
		}
		if asString(link, "rel") == "preview" {
			previewURL = asString(link, "href")
			break
		}
	}
	return &types.MediaAsset{
		NASAID:       nasaID,
		Title:        asString(meta, "title"),
		Description:  asString(meta, "description"),
		Keywords:     toJSON(meta["keywords"]),
		MediaType:    mediaType,
		Location:     asString(meta, "location"),
		Photographer: asString(meta, "photographer"),
		Center:       asString(meta, "center"),
		DateCreated:  timePtr(asString(meta, "date_created")),
		Links:        toJSON(item["links"]),
		PreviewURL:   previewURL,
	}, true
}
