package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron"

	"github.com/palsulearavapsit/SPACESCOPE/internal/ingest"
	"github.com/palsulearavapsit/SPACESCOPE/internal/logger"
	"github.com/palsulearavapsit/SPACESCOPE/internal/types"
)

// Cadences: everything refreshes every six hours; fast-moving kinds
// (space weather, near-earth objects, element sets) also refresh every
// thirty minutes.
const (
	broadSchedule = "@every 6h"
	fastSchedule  = "@every 30m"
)

// Scheduler drives periodic ingestion batches.
type Scheduler struct {
	svc  *ingest.Service
	log  *logger.Logger
	cron *cron.Cron
}

func New(svc *ingest.Service, baseLog *logger.Logger) *Scheduler {
	return &Scheduler{
		svc:  svc,
		log:  baseLog.With("service", "Scheduler"),
		cron: cron.New(),
	}
}

// Start registers the cadences and begins firing them. The returned error
// only reflects schedule registration; batch outcomes land in ingestion
// runs.
func (s *Scheduler) Start() error {
	if err := s.cron.AddFunc(broadSchedule, func() { s.fire(types.AllKinds()...) }); err != nil {
		return err
	}
	if err := s.cron.AddFunc(fastSchedule, func() { s.fire(types.FastRefreshKinds()...) }); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info("Scheduler started", "broad", broadSchedule, "fast", fastSchedule)
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.log.Info("Scheduler stopped")
}

func (s *Scheduler) fire(kinds ...types.Kind) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	batch, err := s.svc.IngestAll(ctx, kinds...)
	if err != nil {
		s.log.Error("Scheduled ingestion failed to start", "error", err)
		return
	}
	s.log.Info("Scheduled ingestion batch started",
		"batch_id", batch.ID.String(),
		"jobs", len(batch.JobIDs()),
	)
}
