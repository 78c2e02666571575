package types

import (
	"time"

	"gorm.io/datatypes"
)

// NearEarthObject is one NeoWs asteroid, keyed by the source neo id. The
// close-approach columns come from the first element of the object's
// close-approach list; the full velocity and miss-distance dictionaries are
// kept as JSON.
type NearEarthObject struct {
	Base
	NeoID                  string         `gorm:"column:neo_id;uniqueIndex;not null" json:"neo_id"`
	Name                   string         `gorm:"column:name;index" json:"name"`
	NASAJPLURL             string         `gorm:"column:nasa_jpl_url" json:"nasa_jpl_url"`
	AbsoluteMagnitude      float64        `gorm:"column:absolute_magnitude" json:"absolute_magnitude"`
	EstimatedDiameterMinM  float64        `gorm:"column:estimated_diameter_min_m" json:"estimated_diameter_min_m"`
	EstimatedDiameterMaxM  float64        `gorm:"column:estimated_diameter_max_m" json:"estimated_diameter_max_m"`
	IsPotentiallyHazardous bool           `gorm:"column:is_potentially_hazardous;index" json:"is_potentially_hazardous"`
	CloseApproachDate      *time.Time     `gorm:"column:close_approach_date" json:"close_approach_date,omitempty"`
	CloseApproachVelKmS    float64        `gorm:"column:close_approach_velocity_km_s" json:"close_approach_velocity_km_s"`
	CloseApproachDistKm    float64        `gorm:"column:close_approach_distance_km" json:"close_approach_distance_km"`
	RelativeVelocity       datatypes.JSON `gorm:"column:relative_velocity" json:"relative_velocity,omitempty"`
	MissDistance           datatypes.JSON `gorm:"column:miss_distance" json:"miss_distance,omitempty"`
	OrbitingBody           string         `gorm:"column:orbiting_body" json:"orbiting_body,omitempty"`
	FetchedAt              time.Time      `gorm:"column:fetched_at;not null" json:"fetched_at"`
}

func (NearEarthObject) TableName() string { return "near_earth_object" }

func (NearEarthObject) EntityKind() Kind            { return KindNearEarthObject }
func (n *NearEarthObject) NaturalKey() string       { return n.NeoID }
func (NearEarthObject) NaturalKeyColumn() string    { return "neo_id" }
func (n *NearEarthObject) StampFetched(t time.Time) { n.FetchedAt = t }
