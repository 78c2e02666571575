package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Record is the contract every normalized entity model satisfies. The
// natural key is source-provided and stable across re-ingestions; the store
// enforces its uniqueness per table.
type Record interface {
	EntityKind() Kind
	NaturalKey() string
	NaturalKeyColumn() string
	StampFetched(t time.Time)
}

// RefreshableRecord marks the kinds whose payload is monotonically
// refreshed by the source (satellite tracking data). For these a duplicate
// natural key overwrites the listed columns instead of being skipped.
type RefreshableRecord interface {
	Record
	RefreshColumns() []string
}

// Base carries the surrogate key and the gorm bookkeeping columns shared by
// every stored entity.
type Base struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// modelFactories maps each kind to a fresh empty model and a fresh empty
// slice for store reads.
var modelFactories = map[Kind]struct {
	model func() Record
	slice func() interface{}
}{
	KindPictureOfDay:        {func() Record { return &PictureOfDay{} }, func() interface{} { return &[]*PictureOfDay{} }},
	KindNearEarthObject:     {func() Record { return &NearEarthObject{} }, func() interface{} { return &[]*NearEarthObject{} }},
	KindSpaceWeatherEvent:   {func() Record { return &SpaceWeatherEvent{} }, func() interface{} { return &[]*SpaceWeatherEvent{} }},
	KindNaturalEvent:        {func() Record { return &NaturalEvent{} }, func() interface{} { return &[]*NaturalEvent{} }},
	KindEarthImage:          {func() Record { return &EarthImage{} }, func() interface{} { return &[]*EarthImage{} }},
	KindExoplanet:           {func() Record { return &Exoplanet{} }, func() interface{} { return &[]*Exoplanet{} }},
	KindImageryLayer:        {func() Record { return &ImageryLayer{} }, func() interface{} { return &[]*ImageryLayer{} }},
	KindPlanetaryWeather:    {func() Record { return &PlanetaryWeather{} }, func() interface{} { return &[]*PlanetaryWeather{} }},
	KindMediaAsset:          {func() Record { return &MediaAsset{} }, func() interface{} { return &[]*MediaAsset{} }},
	KindDatasetDescriptor:   {func() Record { return &DatasetDescriptor{} }, func() interface{} { return &[]*DatasetDescriptor{} }},
	KindSatelliteDescriptor: {func() Record { return &SatelliteDescriptor{} }, func() interface{} { return &[]*SatelliteDescriptor{} }},
	KindCloseApproach:       {func() Record { return &CloseApproach{} }, func() interface{} { return &[]*CloseApproach{} }},
	KindTechProject:         {func() Record { return &TechProject{} }, func() interface{} { return &[]*TechProject{} }},
	KindTechSpinoff:         {func() Record { return &TechSpinoff{} }, func() interface{} { return &[]*TechSpinoff{} }},
	KindOrbitalElementSet:   {func() Record { return &OrbitalElementSet{} }, func() interface{} { return &[]*OrbitalElementSet{} }},
	KindMapLayer:            {func() Record { return &MapLayer{} }, func() interface{} { return &[]*MapLayer{} }},
}

// ModelFor returns a fresh empty model for the kind.
func ModelFor(k Kind) Record {
	if f, ok := modelFactories[k]; ok {
		return f.model()
	}
	return nil
}

// SliceFor returns a fresh empty slice pointer suitable as a gorm Find
// destination for the kind.
func SliceFor(k Kind) interface{} {
	if f, ok := modelFactories[k]; ok {
		return f.slice()
	}
	return nil
}

// AllModels lists one instance of every stored model, for migrations.
func AllModels() []interface{} {
	out := make([]interface{}, 0, len(modelFactories)+1)
	for _, k := range AllKinds() {
		out = append(out, ModelFor(k))
	}
	out = append(out, &IngestionRun{})
	return out
}
