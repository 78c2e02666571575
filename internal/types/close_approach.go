package types

import "time"

// CloseApproach is one SSD/CNEOS close-approach row, keyed by object
// designation.
type CloseApproach struct {
	Base
	Designation       string     `gorm:"column:designation;uniqueIndex;not null" json:"designation"`
	OrbitID           string     `gorm:"column:orbit_id" json:"orbit_id,omitempty"`
	ApproachTime      *time.Time `gorm:"column:approach_time;index" json:"approach_time,omitempty"`
	DistanceAU        float64    `gorm:"column:distance_au" json:"distance_au"`
	DistanceMinAU     float64    `gorm:"column:distance_min_au" json:"distance_min_au"`
	VelocityKmS       float64    `gorm:"column:velocity_km_s" json:"velocity_km_s"`
	VelocityInfKmS    float64    `gorm:"column:velocity_inf_km_s" json:"velocity_inf_km_s"`
	AbsoluteMagnitude float64    `gorm:"column:absolute_magnitude" json:"absolute_magnitude"`
	Body              string     `gorm:"column:body" json:"body"`
	FetchedAt         time.Time  `gorm:"column:fetched_at;not null" json:"fetched_at"`
}

func (CloseApproach) TableName() string { return "close_approach" }

func (CloseApproach) EntityKind() Kind            { return KindCloseApproach }
func (c *CloseApproach) NaturalKey() string       { return c.Designation }
func (CloseApproach) NaturalKeyColumn() string    { return "designation" }
func (c *CloseApproach) StampFetched(t time.Time) { c.FetchedAt = t }
