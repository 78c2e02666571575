package repos

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/palsulearavapsit/SPACESCOPE/internal/logger"
	"github.com/palsulearavapsit/SPACESCOPE/internal/types"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=busy_timeout(5000)", url.QueryEscape(t.Name()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(types.AllModels()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
	})
	return db
}

func TestUpsertIdempotent(t *testing.T) {
	repo := NewRecordRepo(testDB(t), logger.NewNop())
	ctx := context.Background()

	first := &types.PictureOfDay{Date: "2024-03-01", Title: "Galaxy"}
	outcome, err := repo.Upsert(ctx, nil, first)
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if outcome != OutcomeInserted {
		t.Fatalf("first outcome = %s", outcome)
	}

	dup := &types.PictureOfDay{Date: "2024-03-01", Title: "Galaxy again"}
	outcome, err = repo.Upsert(ctx, nil, dup)
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if outcome != OutcomeSkippedDuplicate {
		t.Fatalf("second outcome = %s", outcome)
	}

	count, err := repo.CountByKind(ctx, nil, types.KindPictureOfDay)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 row, got %d", count)
	}
}

func TestUpsertSkipKeepsOriginalRow(t *testing.T) {
	repo := NewRecordRepo(testDB(t), logger.NewNop())
	ctx := context.Background()

	if _, err := repo.Upsert(ctx, nil, &types.TechSpinoff{SpinoffID: "42", Title: "original"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if _, err := repo.Upsert(ctx, nil, &types.TechSpinoff{SpinoffID: "42", Title: "replacement"}); err != nil {
		t.Fatalf("upsert dup: %v", err)
	}

	out, err := repo.ListByKind(ctx, nil, types.KindTechSpinoff, ListFilters{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	spinoffs := *out.(*[]*types.TechSpinoff)
	if len(spinoffs) != 1 || spinoffs[0].Title != "original" {
		t.Fatalf("duplicate overwrote original: %+v", spinoffs)
	}
}

func TestUpsertRefreshableOverwrites(t *testing.T) {
	repo := NewRecordRepo(testDB(t), logger.NewNop())
	ctx := context.Background()

	first := &types.OrbitalElementSet{
		SatelliteNumber: "25544",
		SatelliteName:   "ISS",
		Line1:           "old line1",
		MeanMotionRevD:  15.49,
	}
	outcome, err := repo.Upsert(ctx, nil, first)
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if outcome != OutcomeInserted {
		t.Fatalf("first outcome = %s", outcome)
	}

	refreshed := &types.OrbitalElementSet{
		SatelliteNumber: "25544",
		SatelliteName:   "ISS",
		Line1:           "new line1",
		MeanMotionRevD:  15.51,
	}
	outcome, err = repo.Upsert(ctx, nil, refreshed)
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if outcome != OutcomeUpdated {
		t.Fatalf("second outcome = %s", outcome)
	}

	out, err := repo.ListByKind(ctx, nil, types.KindOrbitalElementSet, ListFilters{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	sets := *out.(*[]*types.OrbitalElementSet)
	if len(sets) != 1 {
		t.Fatalf("expected 1 row, got %d", len(sets))
	}
	if sets[0].Line1 != "new line1" || sets[0].MeanMotionRevD != 15.51 {
		t.Fatalf("refresh columns not overwritten: %+v", sets[0])
	}
}

func TestUpsertConcurrentDuplicates(t *testing.T) {
	repo := NewRecordRepo(testDB(t), logger.NewNop())
	ctx := context.Background()

	const writers = 8
	outcomes := make([]UpsertOutcome, writers)
	errs := make([]error, writers)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rec := &types.NaturalEvent{EONETID: "EONET_999", Title: "Storm", LastUpdate: time.Now()}
			outcomes[i], errs[i] = repo.Upsert(ctx, nil, rec)
		}(i)
	}
	wg.Wait()

	inserted := 0
	for i := 0; i < writers; i++ {
		if errs[i] != nil {
			t.Fatalf("writer %d: %v", i, errs[i])
		}
		if outcomes[i] == OutcomeInserted {
			inserted++
		}
	}
	if inserted != 1 {
		t.Fatalf("expected exactly 1 insert, got %d", inserted)
	}
	count, err := repo.CountByKind(ctx, nil, types.KindNaturalEvent)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 row, got %d", count)
	}
}

func TestListByKindFilters(t *testing.T) {
	repo := NewRecordRepo(testDB(t), logger.NewNop())
	ctx := context.Background()

	hazardous := &types.NearEarthObject{NeoID: "1", Name: "a", IsPotentiallyHazardous: true}
	benign := &types.NearEarthObject{NeoID: "2", Name: "b"}
	for _, rec := range []types.Record{hazardous, benign} {
		if _, err := repo.Upsert(ctx, nil, rec); err != nil {
			t.Fatalf("upsert: %v", err)
		}
	}

	flag := true
	out, err := repo.ListByKind(ctx, nil, types.KindNearEarthObject, ListFilters{Hazardous: &flag})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	neos := *out.(*[]*types.NearEarthObject)
	if len(neos) != 1 || neos[0].NeoID != "1" {
		t.Fatalf("hazardous filter returned %+v", neos)
	}

	out, err = repo.ListByKind(ctx, nil, types.KindNearEarthObject, ListFilters{Limit: 1})
	if err != nil {
		t.Fatalf("list limit: %v", err)
	}
	if got := *out.(*[]*types.NearEarthObject); len(got) != 1 {
		t.Fatalf("limit filter returned %d rows", len(got))
	}
}

func TestListByKindUnknown(t *testing.T) {
	repo := NewRecordRepo(testDB(t), logger.NewNop())
	if _, err := repo.ListByKind(context.Background(), nil, types.Kind("nope"), ListFilters{}); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}
