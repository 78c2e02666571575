package types

import "time"

// PictureOfDay is one astronomy-picture-of-the-day entry. The picture date
// is the natural key.
type PictureOfDay struct {
	Base
	Date           string    `gorm:"column:date;uniqueIndex;not null" json:"date"`
	Title          string    `gorm:"column:title;index" json:"title"`
	Explanation    string    `gorm:"column:explanation;type:text" json:"explanation"`
	URL            string    `gorm:"column:url" json:"url"`
	HDURL          string    `gorm:"column:hdurl" json:"hdurl,omitempty"`
	MediaType      string    `gorm:"column:media_type" json:"media_type"`
	Copyright      string    `gorm:"column:copyright" json:"copyright,omitempty"`
	ServiceVersion string    `gorm:"column:service_version" json:"service_version"`
	FetchedAt      time.Time `gorm:"column:fetched_at;not null" json:"fetched_at"`
}

func (PictureOfDay) TableName() string { return "picture_of_day" }

func (PictureOfDay) EntityKind() Kind           { return KindPictureOfDay }
func (p *PictureOfDay) NaturalKey() string      { return p.Date }
func (PictureOfDay) NaturalKeyColumn() string   { return "date" }
func (p *PictureOfDay) StampFetched(t time.Time) { p.FetchedAt = t }
