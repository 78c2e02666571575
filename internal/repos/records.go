package repos

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/palsulearavapsit/SPACESCOPE/internal/logger"
	"github.com/palsulearavapsit/SPACESCOPE/internal/metrics"
	"github.com/palsulearavapsit/SPACESCOPE/internal/types"
)

// UpsertOutcome classifies one persistence attempt.
type UpsertOutcome string

const (
	OutcomeInserted         UpsertOutcome = "inserted"
	OutcomeSkippedDuplicate UpsertOutcome = "skipped_duplicate"
	OutcomeUpdated          UpsertOutcome = "updated"
	OutcomeFailed           UpsertOutcome = "failed"
)

// ListFilters narrows a record listing. Zero values mean no filter.
type ListFilters struct {
	Limit     int
	Hazardous *bool
	Since     *time.Time
	Until     *time.Time
}

// RecordRepo persists normalized records under the per-kind natural-key
// uniqueness constraint. The constraint itself is the concurrency control:
// two writers racing on the same key resolve at the store, not here.
type RecordRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, rec types.Record) (UpsertOutcome, error)
	ListByKind(ctx context.Context, tx *gorm.DB, kind types.Kind, filters ListFilters) (any, error)
	CountByKind(ctx context.Context, tx *gorm.DB, kind types.Kind) (int64, error)
}

type recordRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRecordRepo(db *gorm.DB, baseLog *logger.Logger) RecordRepo {
	return &recordRepo{db: db, log: baseLog.With("repo", "RecordRepo")}
}

// Upsert persists one record. A duplicate natural key is skipped, except
// for kinds that declare refresh columns, where the stored row's refresh
// columns are overwritten instead.
func (rr *recordRepo) Upsert(ctx context.Context, tx *gorm.DB, rec types.Record) (UpsertOutcome, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	rec.StampFetched(time.Now().UTC())

	outcome, err := rr.upsert(ctx, transaction, rec)
	metrics.UpsertOutcomes.WithLabelValues(string(rec.EntityKind()), string(outcome)).Inc()
	return outcome, err
}

func (rr *recordRepo) upsert(ctx context.Context, tx *gorm.DB, rec types.Record) (UpsertOutcome, error) {
	keyCols := []clause.Column{{Name: rec.NaturalKeyColumn()}}

	if refreshable, ok := rec.(types.RefreshableRecord); ok {
		// The overwrite path cannot tell inserted from updated by rows
		// affected, so existence is checked first. A race between the
		// check and the write only misclassifies the outcome label, the
		// stored row is correct either way.
		var count int64
		if err := tx.WithContext(ctx).
			Model(types.ModelFor(rec.EntityKind())).
			Where(rec.NaturalKeyColumn()+" = ?", rec.NaturalKey()).
			Count(&count).Error; err != nil {
			return OutcomeFailed, err
		}
		err := tx.WithContext(ctx).
			Clauses(clause.OnConflict{
				Columns:   keyCols,
				DoUpdates: clause.AssignmentColumns(refreshable.RefreshColumns()),
			}).
			Create(rec).Error
		if err != nil {
			return OutcomeFailed, err
		}
		if count > 0 {
			return OutcomeUpdated, nil
		}
		return OutcomeInserted, nil
	}

	result := tx.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: keyCols, DoNothing: true}).
		Create(rec)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return OutcomeSkippedDuplicate, nil
		}
		return OutcomeFailed, result.Error
	}
	if result.RowsAffected == 0 {
		return OutcomeSkippedDuplicate, nil
	}
	return OutcomeInserted, nil
}

// ListByKind returns stored records for one kind, newest fetch first. The
// result is a pointer to a slice of the kind's model type.
func (rr *recordRepo) ListByKind(ctx context.Context, tx *gorm.DB, kind types.Kind, filters ListFilters) (any, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	out := types.SliceFor(kind)
	if out == nil {
		return nil, types.ErrUnknownKind
	}

	q := transaction.WithContext(ctx).Order("fetched_at DESC")
	if filters.Limit > 0 {
		q = q.Limit(filters.Limit)
	}
	if filters.Hazardous != nil && kind == types.KindNearEarthObject {
		q = q.Where("is_potentially_hazardous = ?", *filters.Hazardous)
	}
	if filters.Since != nil {
		q = q.Where("fetched_at >= ?", *filters.Since)
	}
	if filters.Until != nil {
		q = q.Where("fetched_at <= ?", *filters.Until)
	}

	if err := q.Find(out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (rr *recordRepo) CountByKind(ctx context.Context, tx *gorm.DB, kind types.Kind) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	model := types.ModelFor(kind)
	if model == nil {
		return 0, types.ErrUnknownKind
	}
	var count int64
	if err := transaction.WithContext(ctx).Model(model).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
