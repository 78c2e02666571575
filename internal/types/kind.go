package types

import (
	"errors"
	"fmt"
)

// ErrUnknownKind is returned when a kind string has no registered model.
var ErrUnknownKind = errors.New("unknown entity kind")

// Kind names one of the 16 normalized entity kinds the pipeline ingests.
type Kind string

const (
	KindPictureOfDay        Kind = "picture-of-day"
	KindNearEarthObject     Kind = "near-earth-object"
	KindSpaceWeatherEvent   Kind = "space-weather-event"
	KindNaturalEvent        Kind = "natural-event"
	KindEarthImage          Kind = "earth-image"
	KindExoplanet           Kind = "exoplanet"
	KindImageryLayer        Kind = "imagery-layer"
	KindPlanetaryWeather    Kind = "planetary-weather-reading"
	KindMediaAsset          Kind = "media-asset"
	KindDatasetDescriptor   Kind = "dataset-descriptor"
	KindSatelliteDescriptor Kind = "satellite-descriptor"
	KindCloseApproach       Kind = "close-approach"
	KindTechProject         Kind = "tech-project"
	KindTechSpinoff         Kind = "tech-spinoff"
	KindOrbitalElementSet   Kind = "orbital-element-set"
	KindMapLayer            Kind = "map-layer"
)

func (k Kind) String() string { return string(k) }

// AllKinds returns every entity kind in a stable order.
func AllKinds() []Kind {
	return []Kind{
		KindPictureOfDay,
		KindNearEarthObject,
		KindSpaceWeatherEvent,
		KindNaturalEvent,
		KindEarthImage,
		KindExoplanet,
		KindImageryLayer,
		KindPlanetaryWeather,
		KindMediaAsset,
		KindDatasetDescriptor,
		KindSatelliteDescriptor,
		KindCloseApproach,
		KindTechProject,
		KindTechSpinoff,
		KindOrbitalElementSet,
		KindMapLayer,
	}
}

// FastRefreshKinds are the fast-moving categories refreshed on the short
// scheduler cadence.
func FastRefreshKinds() []Kind {
	return []Kind{KindSpaceWeatherEvent, KindNearEarthObject, KindOrbitalElementSet}
}

func ParseKind(s string) (Kind, error) {
	for _, k := range AllKinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownKind, s)
}
