package sources

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/palsulearavapsit/SPACESCOPE/internal/config"
	"github.com/palsulearavapsit/SPACESCOPE/internal/nasa"
	"github.com/palsulearavapsit/SPACESCOPE/internal/types"
)

// stubFetcher routes every fetch through fn and records the endpoints hit.
// Safe for adapters that fetch concurrently.
type stubFetcher struct {
	fn func(endpoint string, params url.Values) ([]byte, error)

	mu    sync.Mutex
	calls []string
}

func (s *stubFetcher) Fetch(_ context.Context, _ nasa.SourceClass, endpoint string, params url.Values) ([]byte, error) {
	s.mu.Lock()
	s.calls = append(s.calls, endpoint)
	s.mu.Unlock()
	return s.fn(endpoint, params)
}

func fixedPayload(payload string) *stubFetcher {
	return &stubFetcher{fn: func(string, url.Values) ([]byte, error) {
		return []byte(payload), nil
	}}
}

func TestAllCoversEveryKind(t *testing.T) {
	adapters := All(config.DefaultSources())
	if len(adapters) != len(types.AllKinds()) {
		t.Fatalf("expected %d adapters, got %d", len(types.AllKinds()), len(adapters))
	}
	seen := map[types.Kind]bool{}
	for _, a := range adapters {
		if seen[a.Kind()] {
			t.Fatalf("duplicate adapter for kind %s", a.Kind())
		}
		seen[a.Kind()] = true
	}
	for _, k := range types.AllKinds() {
		if !seen[k] {
			t.Fatalf("no adapter for kind %s", k)
		}
	}
}

func TestAPODSingleObject(t *testing.T) {
	f := fixedPayload(`{"date":"2024-03-01","title":"Galaxy","media_type":""}`)
	res, err := (&APOD{}).Collect(context.Background(), f)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(res.Records) != 1 || res.Malformed != 0 {
		t.Fatalf("got %d records, %d malformed", len(res.Records), res.Malformed)
	}
	pic := res.Records[0].(*types.PictureOfDay)
	if pic.NaturalKey() != "2024-03-01" {
		t.Fatalf("natural key = %q", pic.NaturalKey())
	}
	if pic.MediaType != "image" {
		t.Fatalf("media type default = %q", pic.MediaType)
	}
}

func TestAPODListWithMalformedItem(t *testing.T) {
	f := fixedPayload(`[{"date":"2024-03-01","title":"a"},{"title":"no date"},{"date":"2024-03-02","title":"b"}]`)
	res, err := (&APOD{}).Collect(context.Background(), f)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(res.Records) != 2 || res.Malformed != 1 {
		t.Fatalf("got %d records, %d malformed", len(res.Records), res.Malformed)
	}
}

func TestNeoWsExtractsFirstApproach(t *testing.T) {
	f := fixedPayload(`{"near_earth_objects":{"2024-03-01":[
		{"id":"3542519","name":"(2010 PK9)","absolute_magnitude_h":21.8,
		 "estimated_diameter":{"meters":{"estimated_diameter_min":110.8,"estimated_diameter_max":247.8}},
		 "is_potentially_hazardous_asteroid":true,
		 "close_approach_data":[
			{"close_approach_date_full":"2024-03-01T10:11:00","orbiting_body":"Earth",
			 "relative_velocity":{"kilometers_per_second":"13.9"},
			 "miss_distance":{"kilometers":"46713061"}},
			{"close_approach_date_full":"2030-01-01T00:00:00"}]},
		{"id":"","name":"missing id","close_approach_data":[{}]},
		{"id":"999","name":"no approaches","close_approach_data":[]}
	]}}`)
	res, err := (&NeoWs{}).Collect(context.Background(), f)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(res.Records) != 1 || res.Malformed != 2 {
		t.Fatalf("got %d records, %d malformed", len(res.Records), res.Malformed)
	}
	neo := res.Records[0].(*types.NearEarthObject)
	if neo.NeoID != "3542519" || !neo.IsPotentiallyHazardous {
		t.Fatalf("unexpected record %+v", neo)
	}
	if neo.CloseApproachVelKmS != 13.9 || neo.CloseApproachDistKm != 46713061 {
		t.Fatalf("approach columns = %v / %v", neo.CloseApproachVelKmS, neo.CloseApproachDistKm)
	}
	if neo.CloseApproachDate == nil || neo.CloseApproachDate.Day() != 1 {
		t.Fatalf("approach date = %v", neo.CloseApproachDate)
	}
	if neo.EstimatedDiameterMinM != 110.8 {
		t.Fatalf("diameter min = %v", neo.EstimatedDiameterMinM)
	}
}

func TestDONKICombinesFlaresAndCMEs(t *testing.T) {
	f := &stubFetcher{fn: func(endpoint string, params url.Values) ([]byte, error) {
		if params.Get("startDate") == "" {
			return nil, fmt.Errorf("missing startDate")
		}
		switch endpoint {
		case donkiFlareEndpoint:
			return []byte(`[{"flrID":"2024-03-01T00:00:00-FLR-001","classType":"M1.2","beginTime":"2024-03-01T00:00Z","peakTime":"2024-03-01T00:30Z"},{"classType":"no id"}]`), nil
		case donkiCMEEndpoint:
			return []byte(`[{"activityID":"2024-03-02T00:00:00-CME-001","startTime":"2024-03-02T00:00Z"}]`), nil
		}
		return nil, fmt.Errorf("unexpected endpoint %s", endpoint)
	}}

	d := &DONKI{WindowDays: 30}
	res, err := d.Collect(context.Background(), f)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(res.Records) != 2 || res.Malformed != 1 {
		t.Fatalf("got %d records, %d malformed", len(res.Records), res.Malformed)
	}
	flare := res.Records[0].(*types.SpaceWeatherEvent)
	if flare.EventType != "FLR" || flare.Description != "M1.2" || flare.PeakTime == nil {
		t.Fatalf("unexpected flare %+v", flare)
	}
	cme := res.Records[1].(*types.SpaceWeatherEvent)
	if cme.EventType != "CME" || cme.EventID != "2024-03-02T00:00:00-CME-001" {
		t.Fatalf("unexpected cme %+v", cme)
	}
	if len(f.calls) != 2 {
		t.Fatalf("expected 2 fetches, got %d", len(f.calls))
	}
}

func TestDONKIFailsWhenOneEndpointDown(t *testing.T) {
	f := &stubFetcher{fn: func(endpoint string, _ url.Values) ([]byte, error) {
		if endpoint == donkiCMEEndpoint {
			return nil, errors.New("upstream down")
		}
		return []byte(`[]`), nil
	}}
	if _, err := (&DONKI{WindowDays: 30}).Collect(context.Background(), f); err == nil {
		t.Fatalf("expected error when one endpoint is down")
	}
}

func TestEONETCategoryAndClosed(t *testing.T) {
	f := fixedPayload(`{"events":[
		{"id":"EONET_123","title":"Some Wildfire","categories":[{"id":"wildfires","title":"Wildfires"}],"closed":null},
		{"id":"EONET_124","title":"Old Storm","categories":[],"closed":"2024-02-01T00:00:00Z"},
		{"title":"no id"}
	]}`)
	res, err := (&EONET{Limit: 100}).Collect(context.Background(), f)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(res.Records) != 2 || res.Malformed != 1 {
		t.Fatalf("got %d records, %d malformed", len(res.Records), res.Malformed)
	}
	open := res.Records[0].(*types.NaturalEvent)
	if open.EventType != "Wildfires" || open.Closed {
		t.Fatalf("unexpected open event %+v", open)
	}
	closed := res.Records[1].(*types.NaturalEvent)
	if closed.EventType != "Unknown" || !closed.Closed {
		t.Fatalf("unexpected closed event %+v", closed)
	}
}

func TestInSightSkipsNonSolKeys(t *testing.T) {
	f := fixedPayload(`{
		"675":{"Season":"winter","LS":296,"Min Temp C":-96.9,"Max Temp C":-15.9,"Pressure":750.6,"terrestrial_date":"2024-03-01"},
		"676":{"Season":"winter","LS":297,"Min Temp C":null},
		"disclaimer":{"text":"ignore me"},
		"validity_checks":{"675":{}}
	}`)
	res, err := (&InSight{}).Collect(context.Background(), f)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(res.Records) != 2 || res.Malformed != 0 {
		t.Fatalf("got %d records, %d malformed", len(res.Records), res.Malformed)
	}
	byKey := map[string]*types.PlanetaryWeather{}
	for _, r := range res.Records {
		w := r.(*types.PlanetaryWeather)
		byKey[w.NaturalKey()] = w
	}
	w := byKey["675"]
	if w == nil || w.MinTempC == nil || *w.MinTempC != -96.9 || w.EarthDate == nil {
		t.Fatalf("unexpected sol 675 %+v", w)
	}
	if byKey["676"].MinTempC != nil {
		t.Fatalf("null min temp should map to nil")
	}
}

func TestCNEOSMapsPositionalRows(t *testing.T) {
	f := fixedPayload(`{
		"fields":["des","orbit_id","jd","cd","dist","dist_min","dist_max","v_rel","v_inf","t_sigma_f","h"],
		"data":[
			["2010 PK9","35","2460370.5","2024-Mar-01 10:11","0.1249","0.1248","0.1250","13.90","13.88","< 00:01","21.8"],
			["","0","x","y","z","a","b","c","d","e","f"]
		]}`)
	res, err := (&CNEOS{}).Collect(context.Background(), f)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(res.Records) != 1 || res.Malformed != 1 {
		t.Fatalf("got %d records, %d malformed", len(res.Records), res.Malformed)
	}
	ca := res.Records[0].(*types.CloseApproach)
	if ca.Designation != "2010 PK9" || ca.DistanceAU != 0.1249 || ca.VelocityKmS != 13.9 {
		t.Fatalf("unexpected record %+v", ca)
	}
	if ca.ApproachTime == nil || ca.ApproachTime.Month() != time.March {
		t.Fatalf("approach time = %v", ca.ApproachTime)
	}
}

func TestCNEOSRejectsMissingFieldsHeader(t *testing.T) {
	f := fixedPayload(`{"fields":["cd"],"data":[]}`)
	if _, err := (&CNEOS{}).Collect(context.Background(), f); err == nil {
		t.Fatalf("expected error for missing designation column")
	}
}

func TestMediaLibraryPreviewLink(t *testing.T) {
	f := fixedPayload(`{"collection":{"items":[
		{"data":[{"nasa_id":"PIA12345","title":"Mars","media_type":"image","date_created":"2024-01-15T00:00:00Z"}],
		 "links":[{"rel":"captions","href":"x"},{"rel":"preview","href":"https://images-assets.nasa.gov/p.jpg"}]},
		{"data":[],"links":[]}
	]}}`)
	res, err := (&MediaLibrary{Query: "mars"}).Collect(context.Background(), f)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(res.Records) != 1 || res.Malformed != 1 {
		t.Fatalf("got %d records, %d malformed", len(res.Records), res.Malformed)
	}
	asset := res.Records[0].(*types.MediaAsset)
	if asset.NASAID != "PIA12345" || asset.PreviewURL != "https://images-assets.nasa.gov/p.jpg" {
		t.Fatalf("unexpected asset %+v", asset)
	}
}

func TestTLEParsesElementSet(t *testing.T) {
	line1 := "1 25544U 98067A   24060.50000000  .00016717  00000-0  30571-3 0  9993"
	line2 := "2 25544  51.6400 208.9163 0006317  69.9862  25.2906 15.49733095437626"
	f := &stubFetcher{fn: func(_ string, params url.Values) ([]byte, error) {
		if params.Get("CATNR") != "25544" {
			return nil, errors.New("unknown satellite")
		}
		return []byte(fmt.Sprintf(`{"tle_line1":%q,"tle_line2":%q}`, line1, line2)), nil
	}}

	adapter := &TLE{Satellites: []config.Satellite{
		{CatalogNumber: "25544", Name: "ISS"},
		{CatalogNumber: "99999", Name: "down"},
	}}
	res, err := adapter.Collect(context.Background(), f)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(res.Records) != 1 || res.Malformed != 1 {
		t.Fatalf("got %d records, %d malformed", len(res.Records), res.Malformed)
	}
	els := res.Records[0].(*types.OrbitalElementSet)
	if els.SatelliteNumber != "25544" || els.SatelliteName != "ISS" {
		t.Fatalf("unexpected record %+v", els)
	}
	if els.InclinationDeg != 51.64 || els.RAANDeg != 208.9163 {
		t.Fatalf("inclination/raan = %v / %v", els.InclinationDeg, els.RAANDeg)
	}
	if els.Eccentricity != 0.0006317 {
		t.Fatalf("eccentricity = %v", els.Eccentricity)
	}
	if els.ArgPerigeeDeg != 69.9862 || els.MeanAnomalyDeg != 25.2906 {
		t.Fatalf("argp/ma = %v / %v", els.ArgPerigeeDeg, els.MeanAnomalyDeg)
	}
	if els.MeanMotionRevD != 15.49733095 {
		t.Fatalf("mean motion = %v", els.MeanMotionRevD)
	}
	if els.EpochYear != 2024 || els.EpochDay != 60.5 {
		t.Fatalf("epoch year/day = %d / %v", els.EpochYear, els.EpochDay)
	}
	want := time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC)
	if !els.Epoch.Equal(want) {
		t.Fatalf("epoch = %v, want %v", els.Epoch, want)
	}
}

func TestGIBSProbeFailureIsIsolated(t *testing.T) {
	f := &stubFetcher{fn: func(_ string, params url.Values) ([]byte, error) {
		if params.Get("layer") == "Broken_Layer" {
			return nil, errors.New("not found")
		}
		return []byte(`<Capabilities/>`), nil
	}}
	adapter := &GIBS{Layers: []config.GIBSLayer{
		{Name: "MODIS_Terra_CorrectedReflectance_TrueColor", ProductType: "corrected_reflectance", Resolution: "250m"},
		{Name: "Broken_Layer"},
	}}
	res, err := adapter.Collect(context.Background(), f)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(res.Records) != 1 || res.Malformed != 1 {
		t.Fatalf("got %d records, %d malformed", len(res.Records), res.Malformed)
	}
	layer := res.Records[0].(*types.ImageryLayer)
	if layer.NaturalKey() != "MODIS_Terra_CorrectedReflectance_TrueColor" {
		t.Fatalf("natural key = %q", layer.NaturalKey())
	}
}

func TestTrekBuildsLayerIdentifier(t *testing.T) {
	f := fixedPayload(`<metadata/>`)
	adapter := &Trek{Products: []config.TrekProduct{{Body: "Moon", Product: "SRTM30_PLUS"}}}
	res, err := adapter.Collect(context.Background(), f)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(res.Records) != 1 {
		t.Fatalf("got %d records", len(res.Records))
	}
	layer := res.Records[0].(*types.MapLayer)
	if layer.LayerIdentifier != "Moon/SRTM30_PLUS" || layer.Body != "Moon" {
		t.Fatalf("unexpected layer %+v", layer)
	}
}

func TestTechPortNumericProjectID(t *testing.T) {
	f := fixedPayload(`{"projects":[{"projectId":117538,"title":"X","statusDescription":"Active","trl":4},{"title":"no id"}]}`)
	res, err := (&TechPort{}).Collect(context.Background(), f)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(res.Records) != 1 || res.Malformed != 1 {
		t.Fatalf("got %d records, %d malformed", len(res.Records), res.Malformed)
	}
	if res.Records[0].NaturalKey() != "117538" {
		t.Fatalf("natural key = %q", res.Records[0].NaturalKey())
	}
}
