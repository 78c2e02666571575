package types

import (
	"time"

	"gorm.io/datatypes"
)

// TechProject is one TechPort technology project, keyed by project id.
type TechProject struct {
	Base
	ProjectID     string         `gorm:"column:project_id;uniqueIndex;not null" json:"project_id"`
	Title         string         `gorm:"column:title;index" json:"title"`
	Description   string         `gorm:"column:description;type:text" json:"description,omitempty"`
	Status        string         `gorm:"column:status" json:"status"`
	MaturityLevel int            `gorm:"column:maturity_level" json:"maturity_level"`
	StartDate     *time.Time     `gorm:"column:start_date" json:"start_date,omitempty"`
	EndDate       *time.Time     `gorm:"column:end_date" json:"end_date,omitempty"`
	Organization  string         `gorm:"column:organization" json:"organization,omitempty"`
	Program       string         `gorm:"column:program" json:"program,omitempty"`
	Benefits      datatypes.JSON `gorm:"column:benefits" json:"benefits,omitempty"`
	URL           string         `gorm:"column:url" json:"url,omitempty"`
	FetchedAt     time.Time      `gorm:"column:fetched_at;not null" json:"fetched_at"`
}

func (TechProject) TableName() string { return "tech_project" }

func (TechProject) EntityKind() Kind            { return KindTechProject }
func (p *TechProject) NaturalKey() string       { return p.ProjectID }
func (TechProject) NaturalKeyColumn() string    { return "project_id" }
func (p *TechProject) StampFetched(t time.Time) { p.FetchedAt = t }
