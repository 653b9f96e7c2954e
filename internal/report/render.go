// Package report implements the document formatter collaborator: pure
// rendering of explanation and report content into HTML and plain text, plus
// conversion of a provider-written markdown report into an HTML email body.
// No network I/O happens here.
package report

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/luminapath/lumina-api/internal/generation"
)

// Renderer renders reports. The clock is injectable so rendered timestamps
// are deterministic under test.
type Renderer struct {
	now func() time.Time
}

// Option customizes a Renderer.
type Option func(*Renderer)

// WithClock overrides the renderer clock.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) {
		r.now = now
	}
}

// NewRenderer creates a Renderer.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// reportPage is the data passed to the HTML report template.
type reportPage struct {
	PatientName    string
	PatientID      string
	PatientAge     string
	Gender         string
	Physician      string
	Email          string
	DiseaseDisplay string
	Language       string
	ReportDate     string
	ReportTime     string
	Paragraphs     []string
}

var reportTemplate = template.Must(template.New("report").Parse(reportHTML))

// RenderHTML renders the structured HTML medical report. Pure formatting:
// same request and clock, same bytes.
func (r *Renderer) RenderHTML(req generation.ReportRequest) (string, error) {
	now := r.now()

	page := reportPage{
		PatientName:    req.PatientName,
		PatientID:      req.PatientID,
		PatientAge:     req.PatientAge,
		Gender:         req.Gender,
		Physician:      req.PhysicianOrPlaceholder(),
		Email:          req.Email,
		DiseaseDisplay: req.DiseaseDisplay(),
		Language:       req.Language,
		ReportDate:     now.Format("January 2, 2006"),
		ReportTime:     now.Format("3:04 PM"),
		Paragraphs:     splitParagraphs(req.ExplanationText),
	}

	var b strings.Builder
	if err := reportTemplate.Execute(&b, page); err != nil {
		return "", fmt.Errorf("failed to render HTML report: %w", err)
	}
	return b.String(), nil
}

// RenderText renders the plain-text report used as the email fallback body
// and for clients that cannot display HTML.
func (r *Renderer) RenderText(req generation.ReportRequest) string {
	now := r.now()
	divider := strings.Repeat("=", 60)

	var b strings.Builder
	fmt.Fprintf(&b, "LUMINAPATH - RETINAL ANALYSIS REPORT\n")
	fmt.Fprintf(&b, "Generated: %s at %s\n", now.Format("January 2, 2006"), now.Format("3:04 PM"))
	fmt.Fprintf(&b, "%s\n\n", divider)

	fmt.Fprintf(&b, "PATIENT DETAILS\n")
	fmt.Fprintf(&b, "  Patient Name:        %s\n", req.PatientName)
	fmt.Fprintf(&b, "  Patient ID:          %s\n", req.PatientID)
	fmt.Fprintf(&b, "  Age:                 %s years\n", req.PatientAge)
	fmt.Fprintf(&b, "  Gender:              %s\n", req.Gender)
	fmt.Fprintf(&b, "  Email:               %s\n", req.Email)
	fmt.Fprintf(&b, "  Referring Physician: %s\n\n", req.PhysicianOrPlaceholder())

	fmt.Fprintf(&b, "DIAGNOSIS\n")
	fmt.Fprintf(&b, "  Detected Condition: %s\n\n", req.DiseaseDisplay())

	fmt.Fprintf(&b, "MEDICAL OVERVIEW\n%s\n\n", req.ExplanationText)

	fmt.Fprintf(&b, "RECOMMENDATION\n")
	fmt.Fprintf(&b, "  - Schedule a follow-up appointment with your ophthalmologist\n")
	fmt.Fprintf(&b, "  - Regular monitoring is essential for optimal eye health\n")
	fmt.Fprintf(&b, "  - Contact your doctor if visual symptoms worsen\n\n")

	fmt.Fprintf(&b, "MEDICAL DISCLAIMER\n")
	fmt.Fprintf(&b, "This report is generated by an AI-assisted diagnostic tool and is\n")
	fmt.Fprintf(&b, "intended for educational purposes. Always consult a qualified\n")
	fmt.Fprintf(&b, "ophthalmologist for diagnosis and treatment decisions.\n")

	return b.String()
}

// splitParagraphs breaks explanation text on blank lines, dropping empties.
func splitParagraphs(text string) []string {
	var out []string
	for _, block := range strings.Split(text, "\n\n") {
		block = strings.TrimSpace(block)
		if block != "" {
			out = append(out, block)
		}
	}
	return out
}

// reportHTML is the structured report document. Styling is inline so the
// document survives email clients.
const reportHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>LuminaPath Medical Report - {{.PatientName}}</title>
</head>
<body style="font-family: 'Segoe UI', Arial, sans-serif; line-height: 1.7; color: #000; max-width: 850px; margin: 0 auto; padding: 30px; background-color: #f5f7fa;">
<div style="background: white; padding: 35px; border-radius: 12px; border-left: 6px solid #1e88e5;">
  <div style="text-align: center; border-bottom: 3px solid #1e88e5; padding-bottom: 20px; margin-bottom: 35px;">
    <h1 style="color: #0d47a1; margin: 0; font-size: 32px;">LuminaPath</h1>
    <p style="color: #1976d2; margin: 8px 0; font-size: 16px;">AI-Powered Retinal Analysis Report</p>
    <p style="color: #666; margin: 8px 0; font-size: 14px;">Generated: {{.ReportDate}} at {{.ReportTime}}</p>
  </div>

  <div style="margin-bottom: 30px;">
    <div style="background-color: #e3f2fd; color: #0d47a1; padding: 12px 18px; font-size: 19px; font-weight: 600; border-radius: 8px; margin-bottom: 18px;">Patient &amp; Clinic Details</div>
    <table style="width: 100%; border-collapse: collapse;">
      <tr><td style="padding: 12px 15px; border: 1px solid #e0e0e0; background-color: #f5f5f5; font-weight: 600; width: 35%;">Patient Name</td><td style="padding: 12px 15px; border: 1px solid #e0e0e0;">{{.PatientName}}</td></tr>
      <tr><td style="padding: 12px 15px; border: 1px solid #e0e0e0; background-color: #f5f5f5; font-weight: 600;">Patient ID</td><td style="padding: 12px 15px; border: 1px solid #e0e0e0;">{{.PatientID}}</td></tr>
      <tr><td style="padding: 12px 15px; border: 1px solid #e0e0e0; background-color: #f5f5f5; font-weight: 600;">Age</td><td style="padding: 12px 15px; border: 1px solid #e0e0e0;">{{.PatientAge}} years</td></tr>
      <tr><td style="padding: 12px 15px; border: 1px solid #e0e0e0; background-color: #f5f5f5; font-weight: 600;">Gender</td><td style="padding: 12px 15px; border: 1px solid #e0e0e0;">{{.Gender}}</td></tr>
      <tr><td style="padding: 12px 15px; border: 1px solid #e0e0e0; background-color: #f5f5f5; font-weight: 600;">Email</td><td style="padding: 12px 15px; border: 1px solid #e0e0e0;">{{.Email}}</td></tr>
      <tr><td style="padding: 12px 15px; border: 1px solid #e0e0e0; background-color: #f5f5f5; font-weight: 600;">Referring Physician</td><td style="padding: 12px 15px; border: 1px solid #e0e0e0;">{{.Physician}}</td></tr>
      <tr><td style="padding: 12px 15px; border: 1px solid #e0e0e0; background-color: #f5f5f5; font-weight: 600;">Report Language</td><td style="padding: 12px 15px; border: 1px solid #e0e0e0;">{{.Language}}</td></tr>
    </table>
  </div>

  <div style="margin-bottom: 30px;">
    <div style="background-color: #e3f2fd; color: #0d47a1; padding: 12px 18px; font-size: 19px; font-weight: 600; border-radius: 8px; margin-bottom: 18px;">Diagnosis</div>
    <div style="background-color: #fff3e0; border-left: 5px solid #ff9800; padding: 18px; border-radius: 8px;">
      <strong style="color: #e65100; font-size: 19px;">Detected Condition: {{.DiseaseDisplay}}</strong>
    </div>
  </div>

  <div style="margin-bottom: 30px;">
    <div style="background-color: #e3f2fd; color: #0d47a1; padding: 12px 18px; font-size: 19px; font-weight: 600; border-radius: 8px; margin-bottom: 18px;">Medical Overview</div>
{{range .Paragraphs}}    <p style="margin: 10px 0; color: #333;">{{.}}</p>
{{end}}  </div>

  <div style="margin-bottom: 30px;">
    <div style="background-color: #e3f2fd; color: #0d47a1; padding: 12px 18px; font-size: 19px; font-weight: 600; border-radius: 8px; margin-bottom: 18px;">Recommendation</div>
    <ul style="margin-left: 20px; line-height: 1.8;">
      <li>Schedule a comprehensive follow-up appointment with your ophthalmologist</li>
      <li>Regular monitoring is essential for optimal eye health and early intervention</li>
      <li>Contact your doctor immediately if you experience worsening visual symptoms</li>
    </ul>
  </div>

  <div style="background-color: #fce4ec; border-left: 5px solid #e91e63; padding: 18px; border-radius: 8px; margin-bottom: 30px;">
    <strong>Medical Disclaimer:</strong> This report is generated by an AI-assisted
    diagnostic tool and is intended to provide educational information to aid medical
    professionals. It should not be used as the sole basis for medical diagnosis or
    treatment decisions. Always consult with a qualified ophthalmologist for
    professional medical advice.
  </div>

  <div style="border-top: 2px solid #e0e0e0; padding-top: 20px; text-align: center; color: #666; font-size: 13px;">
    <p style="margin: 0;">LuminaPath AI System &mdash; Making retinal healthcare accessible through AI</p>
  </div>
</div>
</body>
</html>
`
