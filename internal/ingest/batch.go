package ingest

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/palsulearavapsit/SPACESCOPE/internal/types"
)

// Batch tracks one orchestrated fan-out of ingestion jobs. Job ids are
// known the moment the batch is built; results fill in as jobs terminate.
type Batch struct {
	ID        uuid.UUID
	StartedAt time.Time

	mu      sync.Mutex
	order   []uuid.UUID
	kinds   map[uuid.UUID]types.Kind
	results map[uuid.UUID]*JobResult
	done    chan struct{}
}

func newBatch(runs []*types.IngestionRun) *Batch {
	b := &Batch{
		ID:        uuid.New(),
		StartedAt: time.Now().UTC(),
		kinds:     make(map[uuid.UUID]types.Kind, len(runs)),
		results:   make(map[uuid.UUID]*JobResult, len(runs)),
		done:      make(chan struct{}),
	}
	for _, run := range runs {
		b.order = append(b.order, run.ID)
		b.kinds[run.ID] = types.Kind(run.Kind)
	}
	return b
}

// JobIDs returns the run id of every job in the batch, in spawn order.
// Available immediately, before any job finishes.
func (b *Batch) JobIDs() []uuid.UUID {
	out := make([]uuid.UUID, len(b.order))
	copy(out, b.order)
	return out
}

func (b *Batch) record(res *JobResult) {
	b.mu.Lock()
	b.results[res.RunID] = res
	b.mu.Unlock()
}

func (b *Batch) finish() { close(b.done) }

// Wait blocks until every job in the batch has terminated or the context
// expires.
func (b *Batch) Wait(ctx context.Context) error {
	select {
	case <-b.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done reports whether every job has terminated, without blocking.
func (b *Batch) Done() bool {
	select {
	case <-b.done:
		return true
	default:
		return false
	}
}

// JobStatus is one job's row in a batch summary.
type JobStatus struct {
	RunID    uuid.UUID  `json:"run_id"`
	Kind     types.Kind `json:"kind"`
	Status   string     `json:"status"`
	Fetched  int        `json:"fetched"`
	Inserted int        `json:"inserted"`
	Updated  int        `json:"updated"`
	Skipped  int        `json:"skipped"`
	Failed   int        `json:"failed"`
	Error    string     `json:"error,omitempty"`
}

// Summary is a point-in-time view of a batch.
type Summary struct {
	BatchID   uuid.UUID   `json:"batch_id"`
	StartedAt time.Time   `json:"started_at"`
	Total     int         `json:"total"`
	Completed int         `json:"completed"`
	Running   int         `json:"running"`
	Jobs      []JobStatus `json:"jobs"`
}

// Summary snapshots the batch without blocking. Jobs still in flight
// appear with a running status and zero counts.
func (b *Batch) Summary() *Summary {
	b.mu.Lock()
	defer b.mu.Unlock()

	s := &Summary{
		BatchID:   b.ID,
		StartedAt: b.StartedAt,
		Total:     len(b.order),
	}
	for _, id := range b.order {
		res, ok := b.results[id]
		if !ok {
			s.Running++
			s.Jobs = append(s.Jobs, JobStatus{RunID: id, Kind: b.kinds[id], Status: types.RunStatusRunning})
			continue
		}
		s.Completed++
		js := JobStatus{
			RunID:    id,
			Kind:     res.Kind,
			Status:   res.Status,
			Fetched:  res.Fetched,
			Inserted: res.Inserted,
			Updated:  res.Updated,
			Skipped:  res.Skipped,
			Failed:   res.Failed,
		}
		if res.Err != nil {
			js.Error = res.Err.Error()
		}
		s.Jobs = append(s.Jobs, js)
	}
	return s
}
