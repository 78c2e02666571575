package types

import (
	"time"

	"gorm.io/datatypes"
)

// MediaAsset is one image-and-video-library item, keyed by the library's
// nasa_id.
type MediaAsset struct {
	Base
	NASAID       string         `gorm:"column:nasa_id;uniqueIndex;not null" json:"nasa_id"`
	Title        string         `gorm:"column:title;index" json:"title"`
	Description  string         `gorm:"column:description;type:text" json:"description,omitempty"`
	Keywords     datatypes.JSON `gorm:"column:keywords" json:"keywords,omitempty"`
	MediaType    string         `gorm:"column:media_type" json:"media_type"`
	Location     string         `gorm:"column:location" json:"location,omitempty"`
	Photographer string         `gorm:"column:photographer" json:"photographer,omitempty"`
	Center       string         `gorm:"column:center" json:"center,omitempty"`
	DateCreated  *time.Time     `gorm:"column:date_created" json:"date_created,omitempty"`
	Links        datatypes.JSON `gorm:"column:links" json:"links,omitempty"`
	PreviewURL   string         `gorm:"column:preview_url" json:"preview_url,omitempty"`
	FetchedAt    time.Time      `gorm:"column:fetched_at;not null" json:"fetched_at"`
}

func (MediaAsset) TableName() string { return "media_asset" }

func (MediaAsset) EntityKind() Kind            { return KindMediaAsset }
func (m *MediaAsset) NaturalKey() string       { return m.NASAID }
func (MediaAsset) NaturalKeyColumn() string    { return "nasa_id" }
func (m *MediaAsset) StampFetched(t time.Time) { m.FetchedAt = t }
