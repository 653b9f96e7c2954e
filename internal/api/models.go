// Package api implements the HTTP surface: explanation, report, prediction,
// and health endpoints. Handlers translate between wire DTOs and the core
// service types; all domain decisions live below this layer.
package api

import "github.com/luminapath/lumina-api/internal/generation"

// ExplainRequest asks for a patient-friendly explanation of a detected
// condition.
type ExplainRequest struct {
	DiseaseName string `json:"disease_name" validate:"required"`
	Language    string `json:"language"`
}

// Validate delegates to the core request invariant, which rejects blank
// disease names, not just absent ones.
func (r ExplainRequest) Validate() error {
	return generation.ExplanationRequest{
		DiseaseName: r.DiseaseName,
		Language:    r.Language,
	}.Validate()
}

// ExplainResponse carries the explanation and its provenance. Success is
// false only when every provider failed and the static fallback text was
// returned.
type ExplainResponse struct {
	DiseaseName string `json:"disease_name"`
	Language    string `json:"language"`
	Explanation string `json:"explanation"`
	Provider    string `json:"provider,omitempty"`
	Role        string `json:"role"`
	Success     bool   `json:"success"`
	ErrorDetail string `json:"error_detail,omitempty"`
}

// ReportRequest carries everything needed to generate a full medical
// report for a patient.
type ReportRequest struct {
	PatientName      string `json:"patient_name" validate:"required"`
	PatientAge       string `json:"patient_age" validate:"required"`
	PatientID        string `json:"patient_id" validate:"required"`
	Gender           string `json:"gender" validate:"required"`
	Physician        string `json:"physician"`
	Email            string `json:"email" validate:"required,email"`
	PredictedDisease string `json:"predicted_disease" validate:"required"`
	Explanation      string `json:"explanation" validate:"required"`
	Language         string `json:"language"`
}

// ReportResponse returns a generated full report.
type ReportResponse struct {
	ReportID            string `json:"report_id"`
	Report              string `json:"report"`
	GeneratedAt         string `json:"generated_at"`
	GeneratedByTemplate bool   `json:"generated_by_template"`
}

// RenderedReportResponse returns the formatted report documents.
type RenderedReportResponse struct {
	HTML string `json:"html_report"`
	Text string `json:"text_report"`
}

// SendReportResponse acknowledges report delivery.
type SendReportResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Recipient string `json:"recipient"`
}

// PredictResponse returns the classifier verdict for an uploaded scan.
// PredictedClass carries the readable disease label, e.g.
// "CNV - Choroidal Neovascularization".
type PredictResponse struct {
	PredictedClass string `json:"predicted_class"`
}

// HealthResponse reports liveness and which optional capabilities are
// configured. Booleans only; credentials are never echoed.
type HealthResponse struct {
	Status               string `json:"status"`
	GeminiConfigured     bool   `json:"gemini_configured"`
	PerplexityConfigured bool   `json:"perplexity_configured"`
	ClassifierConfigured bool   `json:"classifier_configured"`
	EmailConfigured      bool   `json:"email_configured"`
}
