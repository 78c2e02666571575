package types

import (
	"time"

	"gorm.io/datatypes"
)

// NaturalEvent is one EONET natural event (wildfire, storm, ...), keyed by
// the EONET event id. Geometry is kept as the source GeoJSON.
type NaturalEvent struct {
	Base
	EONETID    string         `gorm:"column:eonet_id;uniqueIndex;not null" json:"eonet_id"`
	EventType  string         `gorm:"column:event_type;index" json:"event_type"`
	Title      string         `gorm:"column:title" json:"title"`
	Description string        `gorm:"column:description;type:text" json:"description,omitempty"`
	Closed     bool           `gorm:"column:closed" json:"closed"`
	Geometry   datatypes.JSON `gorm:"column:geometry" json:"geometry,omitempty"`
	Sources    datatypes.JSON `gorm:"column:sources" json:"sources,omitempty"`
	Categories datatypes.JSON `gorm:"column:categories" json:"categories,omitempty"`
	LastUpdate time.Time      `gorm:"column:last_update" json:"last_update"`
	FetchedAt  time.Time      `gorm:"column:fetched_at;not null" json:"fetched_at"`
}

func (NaturalEvent) TableName() string { return "natural_event" }

func (NaturalEvent) EntityKind() Kind            { return KindNaturalEvent }
func (e *NaturalEvent) NaturalKey() string       { return e.EONETID }
func (NaturalEvent) NaturalKeyColumn() string    { return "eonet_id" }
func (e *NaturalEvent) StampFetched(t time.Time) { e.FetchedAt = t }
