package types

import (
	"time"

	"gorm.io/datatypes"
)

// EarthImage is one EPIC full-disc Earth capture, keyed by the source
// identifier. Positions are J2000 coordinate triples kept as JSON.
type EarthImage struct {
	Base
	Identifier          string         `gorm:"column:identifier;uniqueIndex;not null" json:"identifier"`
	Caption             string         `gorm:"column:caption" json:"caption"`
	ImageName           string         `gorm:"column:image_name;index" json:"image_name"`
	CentroidCoordinates datatypes.JSON `gorm:"column:centroid_coordinates" json:"centroid_coordinates,omitempty"`
	DSCOVRPosition      datatypes.JSON `gorm:"column:dscovr_j2000_position" json:"dscovr_j2000_position,omitempty"`
	LunarPosition       datatypes.JSON `gorm:"column:lunar_j2000_position" json:"lunar_j2000_position,omitempty"`
	SunPosition         datatypes.JSON `gorm:"column:sun_j2000_position" json:"sun_j2000_position,omitempty"`
	AttitudeQuaternions datatypes.JSON `gorm:"column:attitude_quaternions" json:"attitude_quaternions,omitempty"`
	Instrument          string         `gorm:"column:instrument" json:"instrument"`
	ObservationDate     time.Time      `gorm:"column:observation_date;index" json:"observation_date"`
	URL                 string         `gorm:"column:url" json:"url"`
	FetchedAt           time.Time      `gorm:"column:fetched_at;not null" json:"fetched_at"`
}

func (EarthImage) TableName() string { return "earth_image" }

func (EarthImage) EntityKind() Kind            { return KindEarthImage }
func (e *EarthImage) NaturalKey() string       { return e.Identifier }
func (EarthImage) NaturalKeyColumn() string    { return "identifier" }
func (e *EarthImage) StampFetched(t time.Time) { e.FetchedAt = t }
