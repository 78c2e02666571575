package types

import (
	"time"

	"gorm.io/datatypes"
)

// SatelliteDescriptor is one tracked satellite, keyed by the source
// satellite id. Position and operational status are refreshed by the source
// on every pass, so a duplicate key overwrites those columns instead of
// being skipped.
type SatelliteDescriptor struct {
	Base
	SatelliteID       string         `gorm:"column:satellite_id;uniqueIndex;not null" json:"satellite_id"`
	SatelliteName     string         `gorm:"column:satellite_name;index" json:"satellite_name"`
	OperationalStatus string         `gorm:"column:operational_status" json:"operational_status"`
	StartTime         *time.Time     `gorm:"column:start_time" json:"start_time,omitempty"`
	EndTime           *time.Time     `gorm:"column:end_time" json:"end_time,omitempty"`
	ResolutionSec     int            `gorm:"column:resolution_sec" json:"resolution_sec"`
	Position          datatypes.JSON `gorm:"column:position" json:"position,omitempty"`
	FetchedAt         time.Time      `gorm:"column:fetched_at;not null" json:"fetched_at"`
}

func (SatelliteDescriptor) TableName() string { return "satellite_descriptor" }

func (SatelliteDescriptor) EntityKind() Kind            { return KindSatelliteDescriptor }
func (s *SatelliteDescriptor) NaturalKey() string       { return s.SatelliteID }
func (SatelliteDescriptor) NaturalKeyColumn() string    { return "satellite_id" }
func (s *SatelliteDescriptor) StampFetched(t time.Time) { s.FetchedAt = t }

func (SatelliteDescriptor) RefreshColumns() []string {
	return []string{"satellite_name", "operational_status", "start_time", "end_time", "resolution_sec", "position", "fetched_at", "updated_at"}
}
