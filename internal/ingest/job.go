package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/palsulearavapsit/SPACESCOPE/internal/logger"
	"github.com/palsulearavapsit/SPACESCOPE/internal/metrics"
	"github.com/palsulearavapsit/SPACESCOPE/internal/nasa/sources"
	"github.com/palsulearavapsit/SPACESCOPE/internal/repos"
	"github.com/palsulearavapsit/SPACESCOPE/internal/types"
)

// JobResult is the in-memory outcome of one ingestion job, mirroring the
// finalized ingestion run row.
type JobResult struct {
	RunID    uuid.UUID
	Kind     types.Kind
	Status   string
	Fetched  int
	Inserted int
	Updated  int
	Skipped  int
	Failed   int
	Attempts int
	Err      error
}

// Job binds one source adapter to the record store for a single execution.
// The fetch client already retries transient network failures, so a fetch
// error that reaches the job is final and is not retried again here; only
// a panicking attempt is retried.
type Job struct {
	adapter    sources.Adapter
	fetcher    sources.Fetcher
	records    repos.RecordRepo
	runs       repos.IngestionRunRepo
	log        *logger.Logger
	maxRetries int
	retryDelay time.Duration
	deadline   time.Duration
}

func NewJob(adapter sources.Adapter, fetcher sources.Fetcher, records repos.RecordRepo, runs repos.IngestionRunRepo, baseLog *logger.Logger, maxRetries int, retryDelay, deadline time.Duration) *Job {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &Job{
		adapter:    adapter,
		fetcher:    fetcher,
		records:    records,
		runs:       runs,
		log:        baseLog.With("service", "IngestionJob", "kind", string(adapter.Kind())),
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		deadline:   deadline,
	}
}

// Run executes the job against an already-created ingestion run row and
// finalizes that row exactly once.
func (j *Job) Run(ctx context.Context, run *types.IngestionRun) *JobResult {
	res := &JobResult{RunID: run.ID, Kind: j.adapter.Kind()}

	if err := j.runs.UpdateFields(ctx, nil, run.ID, map[string]interface{}{
		"status": types.RunStatusRunning,
	}); err != nil {
		j.log.Error("Failed to mark run running", "run_id", run.ID.String(), "error", err)
	}

	for attempt := 1; attempt <= j.maxRetries; attempt++ {
		res.Attempts = attempt
		err := j.attempt(ctx, res)
		if err == nil {
			break
		}
		res.Err = err
		if attempt < j.maxRetries && ctx.Err() == nil {
			j.log.Warn("Ingestion attempt panicked, retrying",
				"attempt", attempt,
				"max_retries", j.maxRetries,
				"error", err,
			)
			select {
			case <-time.After(j.retryDelay):
			case <-ctx.Done():
			}
			continue
		}
	}

	j.finalize(ctx, run.ID, res)
	return res
}

// attempt runs one collect-and-persist pass. It returns an error only when
// the pass panicked; a fetch failure is recorded on the result and is
// final.
func (j *Job) attempt(ctx context.Context, res *JobResult) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("ingestion panic: %v", r)
		}
	}()

	runCtx := ctx
	if j.deadline > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, j.deadline)
		defer cancel()
	}

	res.Fetched, res.Inserted, res.Updated, res.Skipped, res.Failed = 0, 0, 0, 0, 0
	res.Err = nil

	collected, collectErr := j.adapter.Collect(runCtx, j.fetcher)
	if collectErr != nil {
		res.Err = collectErr
		return nil
	}

	res.Fetched = len(collected.Records) + collected.Malformed
	res.Failed = collected.Malformed

	for _, rec := range collected.Records {
		outcome, upsertErr := j.records.Upsert(runCtx, nil, rec)
		switch outcome {
		case repos.OutcomeInserted:
			res.Inserted++
		case repos.OutcomeUpdated:
			res.Updated++
		case repos.OutcomeSkippedDuplicate:
			res.Skipped++
		default:
			res.Failed++
			j.log.Warn("Upsert failed",
				"natural_key", rec.NaturalKey(),
				"error", upsertErr,
			)
		}
	}
	return nil
}

func (j *Job) finalize(ctx context.Context, runID uuid.UUID, res *JobResult) {
	res.Status = classify(res)
	metrics.JobsCompleted.WithLabelValues(string(res.Kind), res.Status).Inc()

	errMsg := ""
	if res.Err != nil {
		errMsg = res.Err.Error()
	}
	now := time.Now().UTC()
	updates := map[string]interface{}{
		"status":      res.Status,
		"fetched":     res.Fetched,
		"inserted":    res.Inserted + res.Updated,
		"skipped":     res.Skipped,
		"failed":      res.Failed,
		"attempts":    res.Attempts,
		"error":       errMsg,
		"finished_at": &now,
	}
	// Finalization must not die with the job's deadline.
	finalizeCtx := context.WithoutCancel(ctx)
	if err := j.runs.UpdateFields(finalizeCtx, nil, runID, updates); err != nil {
		j.log.Error("Failed to finalize run", "run_id", runID.String(), "error", err)
	}

	j.log.Info("Ingestion job finished",
		"run_id", runID.String(),
		"status", res.Status,
		"fetched", res.Fetched,
		"inserted", res.Inserted,
		"updated", res.Updated,
		"skipped", res.Skipped,
		"failed", res.Failed,
		"attempts", res.Attempts,
	)
}

// classify maps counts to the terminal status. A benign skip is a success;
// a run with both successes and failures is partial.
func classify(res *JobResult) string {
	if res.Err != nil {
		return types.RunStatusFailed
	}
	succeeded := res.Inserted + res.Updated + res.Skipped
	switch {
	case res.Failed == 0:
		return types.RunStatusSucceeded
	case succeeded > 0:
		return types.RunStatusPartial
	default:
		return types.RunStatusFailed
	}
}
