package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/KaneTraylor/empowertreatment-sub000/internal/domain"
	"github.com/KaneTraylor/empowertreatment-sub000/internal/intake"
	"github.com/go-chi/chi/v5"
)

// Pipeline is what the forms handler needs from the intake service.
type Pipeline interface {
	Process(ctx context.Context, formType domain.FormType, payload domain.Payload) (*intake.PipelineResult, error)
}

// FormsHandler routes every form-type submission into the pipeline.
type FormsHandler struct {
	pipeline Pipeline
}

func NewFormsHandler(pipeline Pipeline) *FormsHandler {
	return &FormsHandler{pipeline: pipeline}
}

// Submit handles POST /forms/{formType}. The form type comes from the URL so
// a new form only needs a schema entry, not a new handler.
func (h *FormsHandler) Submit(w http.ResponseWriter, r *http.Request) {
	formType := domain.FormType(chi.URLParam(r, "formType"))

	var payload domain.Payload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.pipeline.Process(r.Context(), formType, payload)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
