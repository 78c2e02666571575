package types

import "time"

// OrbitalElementSet is the latest two-line element set for one tracked
// satellite, keyed by catalog number. The source republishes the element
// set continuously, so a duplicate key overwrites the orbital columns
// instead of being skipped.
type OrbitalElementSet struct {
	Base
	SatelliteNumber string    `gorm:"column:satellite_number;uniqueIndex;not null" json:"satellite_number"`
	SatelliteName   string    `gorm:"column:satellite_name;index" json:"satellite_name"`
	Line1           string    `gorm:"column:line1" json:"line1"`
	Line2           string    `gorm:"column:line2" json:"line2"`
	Epoch           time.Time `gorm:"column:epoch" json:"epoch"`
	EpochYear       int       `gorm:"column:epoch_year" json:"epoch_year"`
	EpochDay        float64   `gorm:"column:epoch_day" json:"epoch_day"`
	InclinationDeg  float64   `gorm:"column:inclination_deg" json:"inclination_deg"`
	RAANDeg         float64   `gorm:"column:raan_deg" json:"raan_deg"`
	Eccentricity    float64   `gorm:"column:eccentricity" json:"eccentricity"`
	ArgPerigeeDeg   float64   `gorm:"column:arg_perigee_deg" json:"arg_perigee_deg"`
	MeanAnomalyDeg  float64   `gorm:"column:mean_anomaly_deg" json:"mean_anomaly_deg"`
	MeanMotionRevD  float64   `gorm:"column:mean_motion_rev_d" json:"mean_motion_rev_d"`
	FetchedAt       time.Time `gorm:"column:fetched_at;not null" json:"fetched_at"`
}

func (OrbitalElementSet) TableName() string { return "orbital_element_set" }

func (OrbitalElementSet) EntityKind() Kind            { return KindOrbitalElementSet }
func (o *OrbitalElementSet) NaturalKey() string       { return o.SatelliteNumber }
func (OrbitalElementSet) NaturalKeyColumn() string    { return "satellite_number" }
func (o *OrbitalElementSet) StampFetched(t time.Time) { o.FetchedAt = t }

func (OrbitalElementSet) RefreshColumns() []string {
	return []string{
		"satellite_name", "line1", "line2", "epoch", "epoch_year", "epoch_day",
		"inclination_deg", "raan_deg", "eccentricity", "arg_perigee_deg",
		"mean_anomaly_deg", "mean_motion_rev_d", "fetched_at", "updated_at",
	}
}
