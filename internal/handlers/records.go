package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/palsulearavapsit/SPACESCOPE/internal/repos"
	"github.com/palsulearavapsit/SPACESCOPE/internal/types"
)

type RecordsHandler struct {
	records repos.RecordRepo
}

func NewRecordsHandler(records repos.RecordRepo) *RecordsHandler {
	return &RecordsHandler{records: records}
}

// GET /api/records/:kind?limit=...&hazardous=...&since=...&until=...
func (h *RecordsHandler) ListByKind(c *gin.Context) {
	kind, err := types.ParseKind(c.Param("kind"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_kind", err)
		return
	}

	filters := repos.ListFilters{Limit: 100}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > 1000 {
			RespondError(c, http.StatusBadRequest, "invalid_limit", err)
			return
		}
		filters.Limit = limit
	}
	if raw := c.Query("hazardous"); raw != "" {
		hazardous, err := strconv.ParseBool(raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_hazardous", err)
			return
		}
		filters.Hazardous = &hazardous
	}
	if raw := c.Query("since"); raw != "" {
		since, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_since", err)
			return
		}
		filters.Since = &since
	}
	if raw := c.Query("until"); raw != "" {
		until, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "invalid_until", err)
			return
		}
		filters.Until = &until
	}

	records, err := h.records.ListByKind(c.Request.Context(), nil, kind, filters)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "record_list_failed", err)
		return
	}
	RespondOK(c, gin.H{"kind": kind, "records": records})
}

// GET /api/records/:kind/count
func (h *RecordsHandler) CountByKind(c *gin.Context) {
	kind, err := types.ParseKind(c.Param("kind"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_kind", err)
		return
	}
	count, err := h.records.CountByKind(c.Request.Context(), nil, kind)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "record_count_failed", err)
		return
	}
	RespondOK(c, gin.H{"kind": kind, "count": count})
}
