package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/KaneTraylor/empowertreatment-sub000/internal/admin"
	"github.com/KaneTraylor/empowertreatment-sub000/internal/domain"
	"github.com/KaneTraylor/empowertreatment-sub000/internal/pkg/validate"
	"github.com/KaneTraylor/empowertreatment-sub000/internal/transport/http/middleware"
)

// SubmissionsEnvelope wraps the admin submission export.
type SubmissionsEnvelope struct {
	Success bool                      `json:"success"`
	Data    []domain.IntakeSubmission `json:"data"`
}

// PassesEnvelope wraps the weekend pass list.
type PassesEnvelope struct {
	Passes []domain.WeekendPassRequest `json:"passes"`
}

// PassDecisionEnvelope wraps a pass approve/deny response.
type PassDecisionEnvelope struct {
	Success bool                       `json:"success"`
	Pass    *domain.WeekendPassRequest `json:"pass"`
}

// AcksEnvelope wraps the handbook acknowledgment list.
type AcksEnvelope struct {
	Success bool                            `json:"success"`
	Data    []domain.HandbookAcknowledgment `json:"data"`
}

// AdminHandler serves the staff-facing endpoints. Auth middleware runs first;
// handlers can assume claims are present.
type AdminHandler struct {
	svc *admin.Service
}

func NewAdminHandler(svc *admin.Service) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func (h *AdminHandler) Submissions(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("format") == "csv" {
		data, filename, err := h.svc.ExportCSV(r.Context())
		if err != nil {
			httpError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	subs, err := h.svc.ListSubmissions(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	if subs == nil {
		subs = []domain.IntakeSubmission{}
	}
	writeJSON(w, http.StatusOK, SubmissionsEnvelope{Success: true, Data: subs})
}

func (h *AdminHandler) ListPasses(w http.ResponseWriter, r *http.Request) {
	passes, err := h.svc.ListPasses(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	if passes == nil {
		passes = []domain.WeekendPassRequest{}
	}
	writeJSON(w, http.StatusOK, PassesEnvelope{Passes: passes})
}

type passDecisionRequest struct {
	PassID string `json:"passId" validate:"required"`
	Action string `json:"action" validate:"required,oneof=approve deny"`
}

func (h *AdminHandler) DecidePass(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req passDecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	pass, err := h.svc.DecidePass(r.Context(), req.PassID, req.Action, claims.User)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, PassDecisionEnvelope{Success: true, Pass: pass})
}

func (h *AdminHandler) HandbookAcks(w http.ResponseWriter, r *http.Request) {
	acks, err := h.svc.ListHandbookAcks(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	if acks == nil {
		acks = []domain.HandbookAcknowledgment{}
	}
	writeJSON(w, http.StatusOK, AcksEnvelope{Success: true, Data: acks})
}
