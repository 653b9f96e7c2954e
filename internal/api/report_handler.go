package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/luminapath/lumina-api/internal/api/shared"
	"github.com/luminapath/lumina-api/internal/generation"
	"github.com/luminapath/lumina-api/internal/mail"
	"github.com/luminapath/lumina-api/internal/report"
)

// ReportHandler serves full-report generation, rendering, and delivery.
type ReportHandler struct {
	service  *generation.Service
	renderer *report.Renderer
	mailer   mail.Mailer
	logger   *slog.Logger
}

// NewReportHandler creates a ReportHandler.
func NewReportHandler(
	service *generation.Service,
	renderer *report.Renderer,
	mailer mail.Mailer,
	logger *slog.Logger,
) *ReportHandler {
	return &ReportHandler{
		service:  service,
		renderer: renderer,
		mailer:   mailer,
		logger:   logger.With(slog.String("component", "report_handler")),
	}
}

// HandleFullReport handles POST /api/reports/full. Like the explanation
// endpoint it is total: a failed provider yields the structural template
// with generated_by_template=true, never an error status.
func (h *ReportHandler) HandleFullReport(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeReportRequest(w, r)
	if !ok {
		return
	}

	rep := h.service.BuildFullReport(r.Context(), toGenerationRequest(req))

	shared.RespondWithJSON(w, r, http.StatusOK, ReportResponse{
		ReportID:            rep.ID.String(),
		Report:              rep.ReportText,
		GeneratedAt:         rep.GeneratedAt.Format(time.RFC3339),
		GeneratedByTemplate: rep.GeneratedByTemplate,
	})
}

// HandleRenderReport handles POST /api/reports/render: pure formatting of
// an already-obtained explanation into HTML and plain-text documents.
func (h *ReportHandler) HandleRenderReport(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeReportRequest(w, r)
	if !ok {
		return
	}

	genReq := toGenerationRequest(req)
	html, err := h.renderer.RenderHTML(genReq)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to render report", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, RenderedReportResponse{
		HTML: html,
		Text: h.renderer.RenderText(genReq),
	})
}

// HandleSendReport handles POST /api/reports/send: generate the full
// report, convert it to an HTML email, and deliver it to the patient.
func (h *ReportHandler) HandleSendReport(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeReportRequest(w, r)
	if !ok {
		return
	}

	rep := h.service.BuildFullReport(r.Context(), toGenerationRequest(req))
	htmlBody := h.renderer.EmailHTML(rep.ReportText, req.PatientName)

	err := h.mailer.Send(r.Context(), mail.Message{
		Recipient:   req.Email,
		PatientName: req.PatientName,
		HTMLBody:    htmlBody,
		TextBody:    mail.PlainTextBody(req.PatientName),
	})
	switch {
	case errors.Is(err, mail.ErrNotConfigured):
		shared.RespondWithErrorAndLog(w, r, http.StatusServiceUnavailable,
			"Email delivery is not configured", err)
		return
	case errors.Is(err, mail.ErrAuthFailed):
		shared.RespondWithErrorAndLog(w, r, http.StatusBadGateway,
			"Email provider rejected the sender credentials", err)
		return
	case err != nil:
		shared.RespondWithErrorAndLog(w, r, http.StatusBadGateway,
			"Failed to send report email", err)
		return
	}

	h.logger.Info("report emailed",
		slog.String("report_id", rep.ID.String()),
		slog.Bool("generated_by_template", rep.GeneratedByTemplate))

	shared.RespondWithJSON(w, r, http.StatusOK, SendReportResponse{
		Success:   true,
		Message:   fmt.Sprintf("Report sent successfully to %s", req.Email),
		Recipient: req.Email,
	})
}

func (h *ReportHandler) decodeReportRequest(w http.ResponseWriter, r *http.Request) (ReportRequest, bool) {
	var req ReportRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return ReportRequest{}, false
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Missing or invalid report fields")
		return ReportRequest{}, false
	}
	return req, true
}

func toGenerationRequest(req ReportRequest) generation.ReportRequest {
	return generation.ReportRequest{
		PatientName:      req.PatientName,
		PatientID:        req.PatientID,
		PatientAge:       req.PatientAge,
		Gender:           req.Gender,
		Physician:        req.Physician,
		Email:            req.Email,
		PredictedDisease: req.PredictedDisease,
		ExplanationText:  req.Explanation,
		Language:         req.Language,
	}
}
