package types

import (
	"strconv"
	"time"

	"gorm.io/datatypes"
)

// PlanetaryWeather is one sol of Mars surface weather, keyed by sol number.
type PlanetaryWeather struct {
	Base
	Sol                int            `gorm:"column:sol;uniqueIndex;not null" json:"sol"`
	Season             string         `gorm:"column:season" json:"season"`
	SolarLongitude     float64        `gorm:"column:solar_longitude" json:"solar_longitude"`
	MinTempC           *float64       `gorm:"column:min_temp_c" json:"min_temp_c,omitempty"`
	MaxTempC           *float64       `gorm:"column:max_temp_c" json:"max_temp_c,omitempty"`
	AvgPressurePa      *float64       `gorm:"column:avg_pressure_pa" json:"avg_pressure_pa,omitempty"`
	WindDirection      datatypes.JSON `gorm:"column:wind_direction" json:"wind_direction,omitempty"`
	WindSpeed          datatypes.JSON `gorm:"column:wind_speed" json:"wind_speed,omitempty"`
	AtmosphericOpacity datatypes.JSON `gorm:"column:atmospheric_opacity" json:"atmospheric_opacity,omitempty"`
	Sunrise            string         `gorm:"column:sunrise" json:"sunrise,omitempty"`
	Sunset             string         `gorm:"column:sunset" json:"sunset,omitempty"`
	EarthDate          *time.Time     `gorm:"column:earth_date;index" json:"earth_date,omitempty"`
	FetchedAt          time.Time      `gorm:"column:fetched_at;not null" json:"fetched_at"`
}

func (PlanetaryWeather) TableName() string { return "planetary_weather" }

func (PlanetaryWeather) EntityKind() Kind            { return KindPlanetaryWeather }
func (w *PlanetaryWeather) NaturalKey() string       { return strconv.Itoa(w.Sol) }
func (PlanetaryWeather) NaturalKeyColumn() string    { return "sol" }
func (w *PlanetaryWeather) StampFetched(t time.Time) { w.FetchedAt = t }
