package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/paulossjunior/exemplokiro-sub001/internal/adapter/http/dto"
	"github.com/paulossjunior/exemplokiro-sub001/internal/domain"
	"github.com/paulossjunior/exemplokiro-sub001/internal/usecase"
)

// AuditHandler handles audit trail HTTP requests.
type AuditHandler struct {
	auditUC *usecase.AuditUseCase
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(auditUC *usecase.AuditUseCase) *AuditHandler {
	return &AuditHandler{auditUC: auditUC}
}

// List lists audit entries matching the query filters.
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.AuditFilter{
		UserID:     r.URL.Query().Get("user_id"),
		ActionType: r.URL.Query().Get("action_type"),
		EntityType: r.URL.Query().Get("entity_type"),
		EntityID:   r.URL.Query().Get("entity_id"),
		Limit:      parseIntQuery(r, "limit", 0),
		Offset:     parseIntQuery(r, "offset", 0),
	}

	if start, err := parseTimeQuery(r, "start_date"); err != nil {
		writeError(w, http.StatusBadRequest, "invalid start_date", err.Error())
		return
	} else {
		filter.StartDate = start
	}

	if end, err := parseTimeQuery(r, "end_date"); err != nil {
		writeError(w, http.StatusBadRequest, "invalid end_date", err.Error())
		return
	} else {
		filter.EndDate = end
	}

	entries, err := h.auditUC.ListAuditEntries(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list audit entries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AuditEntriesFromDomain(entries))
}

// GetEntityTrail returns the complete audit trail of one entity in
// chronological order.
func (h *AuditHandler) GetEntityTrail(w http.ResponseWriter, r *http.Request) {
	entityType := chi.URLParam(r, "entityType")
	entityID := chi.URLParam(r, "entityID")
	if entityType == "" || entityID == "" {
		writeError(w, http.StatusBadRequest, "missing entity type or ID", "")
		return
	}

	entries, err := h.auditUC.GetEntityTrail(r.Context(), entityType, entityID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get audit trail", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AuditEntriesFromDomain(entries))
}

// parseTimeQuery parses an RFC 3339 time query parameter. A missing
// parameter yields nil.
func parseTimeQuery(r *http.Request, key string) (*time.Time, error) {
	val := r.URL.Query().Get(key)
	if val == "" {
		return nil, nil
	}

	t, err := time.Parse(time.RFC3339, val)
	if err != nil {
		return nil, err
	}

	return &t, nil
}
