package types

import (
	"time"

	"gorm.io/datatypes"
)

// ImageryLayer is one GIBS browse-imagery layer, keyed by layer name.
type ImageryLayer struct {
	Base
	LayerName   string         `gorm:"column:layer_name;uniqueIndex;not null" json:"layer_name"`
	ProductType string         `gorm:"column:product_type" json:"product_type"`
	Projection  string         `gorm:"column:projection" json:"projection"`
	Resolution  string         `gorm:"column:resolution" json:"resolution"`
	TileURL     string         `gorm:"column:tile_url" json:"tile_url"`
	Metadata    datatypes.JSON `gorm:"column:metadata" json:"metadata,omitempty"`
	FetchedAt   time.Time      `gorm:"column:fetched_at;not null" json:"fetched_at"`
}

func (ImageryLayer) TableName() string { return "imagery_layer" }

func (ImageryLayer) EntityKind() Kind            { return KindImageryLayer }
func (l *ImageryLayer) NaturalKey() string       { return l.LayerName }
func (ImageryLayer) NaturalKeyColumn() string    { return "layer_name" }
func (l *ImageryLayer) StampFetched(t time.Time) { l.FetchedAt = t }
