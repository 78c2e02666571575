package types

import "time"

// TechSpinoff is one TechTransfer spinoff technology, keyed by spinoff id.
type TechSpinoff struct {
	Base
	SpinoffID          string    `gorm:"column:spinoff_id;uniqueIndex;not null" json:"spinoff_id"`
	Title              string    `gorm:"column:title;index" json:"title"`
	Description        string    `gorm:"column:description;type:text" json:"description,omitempty"`
	Benefits           string    `gorm:"column:benefits;type:text" json:"benefits,omitempty"`
	Category           string    `gorm:"column:category" json:"category,omitempty"`
	YearFirstPublished int       `gorm:"column:year_first_published" json:"year_first_published"`
	Agency             string    `gorm:"column:agency" json:"agency,omitempty"`
	NASACenter         string    `gorm:"column:nasa_center" json:"nasa_center,omitempty"`
	URL                string    `gorm:"column:url" json:"url,omitempty"`
	FetchedAt          time.Time `gorm:"column:fetched_at;not null" json:"fetched_at"`
}

func (TechSpinoff) TableName() string { return "tech_spinoff" }

func (TechSpinoff) EntityKind() Kind            { return KindTechSpinoff }
func (s *TechSpinoff) NaturalKey() string       { return s.SpinoffID }
func (TechSpinoff) NaturalKeyColumn() string    { return "spinoff_id" }
func (s *TechSpinoff) StampFetched(t time.Time) { s.FetchedAt = t }
