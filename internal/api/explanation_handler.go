package api

import (
	"log/slog"
	"net/http"

	"github.com/luminapath/lumina-api/internal/api/shared"
	"github.com/luminapath/lumina-api/internal/generation"
)

// ExplanationHandler serves disease explanation requests.
type ExplanationHandler struct {
	service *generation.Service
	logger  *slog.Logger
}

// NewExplanationHandler creates an ExplanationHandler.
func NewExplanationHandler(service *generation.Service, logger *slog.Logger) *ExplanationHandler {
	return &ExplanationHandler{
		service: service,
		logger:  logger.With(slog.String("component", "explanation_handler")),
	}
}

// HandleExplain handles POST /api/explain. The endpoint is total: provider
// failures degrade to fallback text with success=false rather than an error
// status.
func (h *ExplanationHandler) HandleExplain(w http.ResponseWriter, r *http.Request) {
	var req ExplainRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "disease_name is required")
		return
	}

	result := h.service.GetExplanation(r.Context(), generation.ExplanationRequest{
		DiseaseName: req.DiseaseName,
		Language:    req.Language,
	})

	shared.RespondWithJSON(w, r, http.StatusOK, ExplainResponse{
		DiseaseName: result.DiseaseName,
		Language:    result.Language,
		Explanation: result.ExplanationText,
		Provider:    result.ProviderName,
		Role:        string(result.ProviderUsed),
		Success:     result.Succeeded,
		ErrorDetail: result.ErrorDetail,
	})
}
