package types

import "time"

// MapLayer is one planetary-body Trek map product, keyed by the combined
// body/product identifier.
type MapLayer struct {
	Base
	LayerIdentifier string    `gorm:"column:layer_identifier;uniqueIndex;not null" json:"layer_identifier"`
	Body            string    `gorm:"column:body;index" json:"body"`
	ProductName     string    `gorm:"column:product_name;index" json:"product_name"`
	TileURL         string    `gorm:"column:tile_url" json:"tile_url"`
	MetadataURL     string    `gorm:"column:metadata_url" json:"metadata_url,omitempty"`
	FetchedAt       time.Time `gorm:"column:fetched_at;not null" json:"fetched_at"`
}

func (MapLayer) TableName() string { return "map_layer" }

func (MapLayer) EntityKind() Kind            { return KindMapLayer }
func (l *MapLayer) NaturalKey() string       { return l.LayerIdentifier }
func (MapLayer) NaturalKeyColumn() string    { return "layer_identifier" }
func (l *MapLayer) StampFetched(t time.Time) { l.FetchedAt = t }
