package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/paulossjunior/exemplokiro-sub001/internal/adapter/http/dto"
	"github.com/paulossjunior/exemplokiro-sub001/internal/adapter/http/middleware"
	"github.com/paulossjunior/exemplokiro-sub001/internal/integrity"
)

// IntegrityService defines the behavior needed by IntegrityHandler.
type IntegrityService interface {
	GenerateReport(ctx context.Context, requestedBy string) (*integrity.IntegrityReport, error)
	VerifyTransaction(ctx context.Context, id string) (bool, error)
}

// IntegrityHandler handles integrity verification HTTP requests.
type IntegrityHandler struct {
	integrityUC IntegrityService
}

// NewIntegrityHandler creates a new IntegrityHandler.
func NewIntegrityHandler(integrityUC IntegrityService) *IntegrityHandler {
	return &IntegrityHandler{integrityUC: integrityUC}
}

// GenerateReport runs a full integrity scan and returns the report. The
// scan itself is recorded in the audit trail, attributed to the caller.
func (h *IntegrityHandler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	report, err := h.integrityUC.GenerateReport(r.Context(), user.ID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to generate integrity report", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.IntegrityReportFromDomain(report))
}

// VerifyTransaction checks the stored hash of one transaction.
func (h *IntegrityHandler) VerifyTransaction(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transaction ID", "")
		return
	}

	valid, err := h.integrityUC.VerifyTransaction(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to verify transaction", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"transaction_id": id,
		"valid":          valid,
	})
}
