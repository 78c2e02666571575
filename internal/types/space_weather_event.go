package types

import (
	"time"

	"gorm.io/datatypes"
)

// SpaceWeatherEvent is one DONKI notification (solar flare, CME, ...),
// keyed by the source event id.
type SpaceWeatherEvent struct {
	Base
	EventID      string         `gorm:"column:event_id;uniqueIndex;not null" json:"event_id"`
	EventType    string         `gorm:"column:event_type;index" json:"event_type"`
	Link         string         `gorm:"column:link" json:"link,omitempty"`
	StartTime    *time.Time     `gorm:"column:start_time" json:"start_time,omitempty"`
	PeakTime     *time.Time     `gorm:"column:peak_time" json:"peak_time,omitempty"`
	EndTime      *time.Time     `gorm:"column:end_time" json:"end_time,omitempty"`
	Description  string         `gorm:"column:description;type:text" json:"description"`
	LinkedEvents datatypes.JSON `gorm:"column:linked_events" json:"linked_events,omitempty"`
	FetchedAt    time.Time      `gorm:"column:fetched_at;not null" json:"fetched_at"`
}

func (SpaceWeatherEvent) TableName() string { return "space_weather_event" }

func (SpaceWeatherEvent) EntityKind() Kind            { return KindSpaceWeatherEvent }
func (e *SpaceWeatherEvent) NaturalKey() string       { return e.EventID }
func (SpaceWeatherEvent) NaturalKeyColumn() string    { return "event_id" }
func (e *SpaceWeatherEvent) StampFetched(t time.Time) { e.FetchedAt = t }
