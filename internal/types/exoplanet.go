package types

import "time"

// Exoplanet is one confirmed planet from the Exoplanet Archive, keyed by
// planet name.
type Exoplanet struct {
	Base
	Name            string    `gorm:"column:name;uniqueIndex;not null" json:"name"`
	HostName        string    `gorm:"column:host_name;index" json:"host_name"`
	OrbitalPeriod   *float64  `gorm:"column:orbital_period_days" json:"orbital_period_days,omitempty"`
	SemiMajorAxisAU *float64  `gorm:"column:semi_major_axis_au" json:"semi_major_axis_au,omitempty"`
	StarTempK       *float64  `gorm:"column:star_temp_k" json:"star_temp_k,omitempty"`
	DiscoveryYear   *int      `gorm:"column:discovery_year" json:"discovery_year,omitempty"`
	DiscoveryMethod string    `gorm:"column:discovery_method" json:"discovery_method,omitempty"`
	HabitableZone   bool      `gorm:"column:habitable_zone" json:"habitable_zone"`
	FetchedAt       time.Time `gorm:"column:fetched_at;not null" json:"fetched_at"`
}

func (Exoplanet) TableName() string { return "exoplanet" }

func (Exoplanet) EntityKind() Kind            { return KindExoplanet }
func (e *Exoplanet) NaturalKey() string       { return e.Name }
func (Exoplanet) NaturalKeyColumn() string    { return "name" }
func (e *Exoplanet) StampFetched(t time.Time) { e.FetchedAt = t }
