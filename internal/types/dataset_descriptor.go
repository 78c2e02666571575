package types

import (
	"time"

	"gorm.io/datatypes"
)

// DatasetDescriptor is one open-science-repository dataset listing, keyed
// by the repository's dataset id.
type DatasetDescriptor struct {
	Base
	DatasetID       string         `gorm:"column:dataset_id;uniqueIndex;not null" json:"dataset_id"`
	Title           string         `gorm:"column:title;index" json:"title"`
	Description     string         `gorm:"column:description;type:text" json:"description,omitempty"`
	Discipline      string         `gorm:"column:discipline" json:"discipline,omitempty"`
	DOI             string         `gorm:"column:doi" json:"doi,omitempty"`
	Authors         datatypes.JSON `gorm:"column:authors" json:"authors,omitempty"`
	PublicationDate *time.Time     `gorm:"column:publication_date" json:"publication_date,omitempty"`
	Keywords        datatypes.JSON `gorm:"column:keywords" json:"keywords,omitempty"`
	FileCount       int            `gorm:"column:file_count" json:"file_count"`
	FileSizeBytes   int64          `gorm:"column:file_size_bytes" json:"file_size_bytes"`
	AccessLevel     string         `gorm:"column:access_level" json:"access_level,omitempty"`
	URL             string         `gorm:"column:url" json:"url,omitempty"`
	FetchedAt       time.Time      `gorm:"column:fetched_at;not null" json:"fetched_at"`
}

func (DatasetDescriptor) TableName() string { return "dataset_descriptor" }

func (DatasetDescriptor) EntityKind() Kind            { return KindDatasetDescriptor }
func (d *DatasetDescriptor) NaturalKey() string       { return d.DatasetID }
func (DatasetDescriptor) NaturalKeyColumn() string    { return "dataset_id" }
func (d *DatasetDescriptor) StampFetched(t time.Time) { d.FetchedAt = t }
