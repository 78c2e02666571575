package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/palsulearavapsit/SPACESCOPE/internal/ingest"
	"github.com/palsulearavapsit/SPACESCOPE/internal/repos"
	"github.com/palsulearavapsit/SPACESCOPE/internal/types"
)

type IngestHandler struct {
	svc  *ingest.Service
	runs repos.IngestionRunRepo
}

func NewIngestHandler(svc *ingest.Service, runs repos.IngestionRunRepo) *IngestHandler {
	return &IngestHandler{svc: svc, runs: runs}
}

// POST /api/ingest
func (h *IngestHandler) TriggerAll(c *gin.Context) {
	batch, err := h.svc.IngestAll(c.Request.Context())
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "ingest_failed", err)
		return
	}
	RespondAccepted(c, gin.H{
		"batch_id": batch.ID,
		"job_ids":  batch.JobIDs(),
	})
}

// POST /api/ingest/:kind
func (h *IngestHandler) TriggerKind(c *gin.Context) {
	kind, err := types.ParseKind(c.Param("kind"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_kind", err)
		return
	}
	batch, err := h.svc.IngestAll(c.Request.Context(), kind)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "ingest_failed", err)
		return
	}
	RespondAccepted(c, gin.H{
		"batch_id": batch.ID,
		"job_ids":  batch.JobIDs(),
	})
}

// GET /api/ingest/batches/:id
func (h *IngestHandler) GetBatch(c *gin.Context) {
	batchID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_batch_id", err)
		return
	}
	// The in-memory snapshot covers live batches; older batches fall back
	// to the persisted run rows.
	if batch, ok := h.svc.GetBatch(batchID); ok {
		RespondOK(c, batch.Summary())
		return
	}
	runs, err := h.runs.GetByBatchID(c.Request.Context(), nil, batchID)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "batch_lookup_failed", err)
		return
	}
	if len(runs) == 0 {
		RespondError(c, http.StatusNotFound, "batch_not_found", errors.New("no runs for batch"))
		return
	}
	RespondOK(c, gin.H{"batch_id": batchID, "runs": runs})
}

// GET /api/ingest/runs/:id
func (h *IngestHandler) GetRun(c *gin.Context) {
	runID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_run_id", err)
		return
	}
	run, err := h.runs.GetByID(c.Request.Context(), nil, runID)
	if err != nil {
		if errors.Is(err, repos.ErrRunNotFound) {
			RespondError(c, http.StatusNotFound, "run_not_found", err)
			return
		}
		RespondError(c, http.StatusInternalServerError, "run_lookup_failed", err)
		return
	}
	RespondOK(c, gin.H{"run": run})
}

// GET /api/ingest/runs?kind=...&limit=...
func (h *IngestHandler) ListRuns(c *gin.Context) {
	kind := c.Query("kind")
	if kind != "" {
		if _, err := types.ParseKind(kind); err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_kind", err)
			return
		}
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	runs, err := h.runs.ListRecent(c.Request.Context(), nil, kind, limit)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "run_list_failed", err)
		return
	}
	RespondOK(c, gin.H{"runs": runs})
}
