package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/palsulearavapsit/SPACESCOPE/internal/logger"
	"github.com/palsulearavapsit/SPACESCOPE/internal/types"
)

// ErrRunNotFound is returned when no ingestion run matches the id.
var ErrRunNotFound = errors.New("ingestion run not found")

type IngestionRunRepo interface {
	Create(ctx context.Context, tx *gorm.DB, run *types.IngestionRun) (*types.IngestionRun, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.IngestionRun, error)
	GetByBatchID(ctx context.Context, tx *gorm.DB, batchID uuid.UUID) ([]*types.IngestionRun, error)
	ListRecent(ctx context.Context, tx *gorm.DB, kind string, limit int) ([]*types.IngestionRun, error)
}

type ingestionRunRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIngestionRunRepo(db *gorm.DB, baseLog *logger.Logger) IngestionRunRepo {
	return &ingestionRunRepo{db: db, log: baseLog.With("repo", "IngestionRunRepo")}
}

func (r *ingestionRunRepo) Create(ctx context.Context, tx *gorm.DB, run *types.IngestionRun) (*types.IngestionRun, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(run).Error; err != nil {
		return nil, err
	}
	return run, nil
}

func (r *ingestionRunRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Model(&types.IngestionRun{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *ingestionRunRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.IngestionRun, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var run types.IngestionRun
	if err := transaction.WithContext(ctx).Where("id = ?", id).First(&run).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRunNotFound
		}
		return nil, err
	}
	return &run, nil
}

func (r *ingestionRunRepo) GetByBatchID(ctx context.Context, tx *gorm.DB, batchID uuid.UUID) ([]*types.IngestionRun, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var runs []*types.IngestionRun
	if err := transaction.WithContext(ctx).
		Where("batch_id = ?", batchID).
		Order("kind ASC").
		Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}

func (r *ingestionRunRepo) ListRecent(ctx context.Context, tx *gorm.DB, kind string, limit int) ([]*types.IngestionRun, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if limit <= 0 {
		limit = 50
	}
	q := transaction.WithContext(ctx).Order("started_at DESC").Limit(limit)
	if kind != "" {
		q = q.Where("kind = ?", kind)
	}
	var runs []*types.IngestionRun
	if err := q.Find(&runs).Error; err != nil {
		return nil, err
	}
	return runs, nil
}
