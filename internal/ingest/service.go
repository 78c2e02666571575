package ingest

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/palsulearavapsit/SPACESCOPE/internal/config"
	"github.com/palsulearavapsit/SPACESCOPE/internal/logger"
	"github.com/palsulearavapsit/SPACESCOPE/internal/nasa/sources"
	"github.com/palsulearavapsit/SPACESCOPE/internal/repos"
	"github.com/palsulearavapsit/SPACESCOPE/internal/types"
)

// recentBatches bounds the in-memory batch index used for polling.
const recentBatches = 32

// Service is the ingestion orchestrator. It fans one job per entity kind
// out onto concurrent workers and tracks each fan-out as a batch that can
// be polled while jobs are still running.
type Service struct {
	fetcher    sources.Fetcher
	records    repos.RecordRepo
	runs       repos.IngestionRunRepo
	log        *logger.Logger
	srcCfg     config.Sources
	maxRetries int
	retryDelay time.Duration
	deadline   time.Duration
	maxWorkers int

	mu      sync.Mutex
	batches map[uuid.UUID]*Batch
	history []uuid.UUID
}

func NewService(fetcher sources.Fetcher, records repos.RecordRepo, runs repos.IngestionRunRepo, baseLog *logger.Logger, cfg *config.Config, jobDeadline time.Duration) *Service {
	return &Service{
		fetcher:    fetcher,
		records:    records,
		runs:       runs,
		log:        baseLog.With("service", "IngestService"),
		srcCfg:     cfg.Sources,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		deadline:   jobDeadline,
		maxWorkers: len(types.AllKinds()),
		batches:    make(map[uuid.UUID]*Batch),
	}
}

// IngestAll launches one job per requested kind (every kind when none are
// named) and returns as soon as all jobs are registered and spawned. Job
// ids are on the returned batch immediately; jobs complete in the
// background.
func (s *Service) IngestAll(ctx context.Context, kinds ...types.Kind) (*Batch, error) {
	if len(kinds) == 0 {
		kinds = types.AllKinds()
	}

	adapters := make([]sources.Adapter, 0, len(kinds))
	for _, k := range kinds {
		adapter, ok := sources.ByKind(s.srcCfg, k)
		if !ok {
			return nil, fmt.Errorf("%w %q", types.ErrUnknownKind, k)
		}
		adapters = append(adapters, adapter)
	}

	batchID := uuid.New()
	runs := make([]*types.IngestionRun, 0, len(adapters))
	for _, adapter := range adapters {
		run := &types.IngestionRun{
			BatchID:   batchID,
			Kind:      string(adapter.Kind()),
			Status:    types.RunStatusPending,
			StartedAt: time.Now().UTC(),
		}
		if _, err := s.runs.Create(ctx, nil, run); err != nil {
			return nil, fmt.Errorf("create ingestion run for %s: %w", adapter.Kind(), err)
		}
		runs = append(runs, run)
	}

	batch := newBatch(runs)
	batch.ID = batchID
	s.remember(batch)

	s.log.Info("Ingestion batch started",
		"batch_id", batchID.String(),
		"jobs", len(adapters),
	)

	// Jobs are independent; a failing job never cancels its siblings, so
	// the group context is deliberately detached from job outcomes.
	g := new(errgroup.Group)
	g.SetLimit(s.maxWorkers)
	jobCtx := context.WithoutCancel(ctx)
	for i, adapter := range adapters {
		job := NewJob(adapter, s.fetcher, s.records, s.runs, s.log, s.maxRetries, s.retryDelay, s.deadline)
		run := runs[i]
		g.Go(func() error {
			batch.record(job.Run(jobCtx, run))
			return nil
		})
	}
	go func() {
		g.Wait()
		batch.finish()
		s.log.Info("Ingestion batch finished", "batch_id", batchID.String())
	}()

	return batch, nil
}

// IngestKind runs a single kind synchronously and returns its result.
func (s *Service) IngestKind(ctx context.Context, kind types.Kind) (*JobResult, error) {
	batch, err := s.IngestAll(ctx, kind)
	if err != nil {
		return nil, err
	}
	if err := batch.Wait(ctx); err != nil {
		return nil, err
	}
	summary := batch.Summary()
	if len(summary.Jobs) != 1 {
		return nil, fmt.Errorf("expected 1 job in batch, got %d", len(summary.Jobs))
	}
	batch.mu.Lock()
	defer batch.mu.Unlock()
	return batch.results[summary.Jobs[0].RunID], nil
}

// GetBatch returns a still-tracked batch by id.
func (s *Service) GetBatch(id uuid.UUID) (*Batch, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.batches[id]
	return b, ok
}

func (s *Service) remember(b *Batch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches[b.ID] = b
	s.history = append(s.history, b.ID)
	for len(s.history) > recentBatches {
		delete(s.batches, s.history[0])
		s.history = s.history[1:]
	}
}
