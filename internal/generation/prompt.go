package generation

import (
	"embed"
	"strings"
	"text/template"
)

//go:embed prompts/*.tmpl
var promptFS embed.FS

var promptTemplates = template.Must(template.ParseFS(promptFS, "prompts/*.tmpl"))

// explanationPromptData is the data passed to the explanation prompt template.
type explanationPromptData struct {
	DiseaseName string
	Language    string
}

// reportPromptData is the data passed to the full-report prompt template.
type reportPromptData struct {
	PatientName     string
	PatientID       string
	PatientAge      string
	Gender          string
	Physician       string
	Email           string
	ReportDate      string
	ReportTime      string
	Language        string
	DiseaseDisplay  string
	ExplanationText string
}

// DefaultLanguage is substituted when a request does not name a language.
const DefaultLanguage = "English"

// BuildExplanationPrompt produces the provider prompt for a short educational
// overview. Pure function: same inputs, same prompt, no side effects. The same
// prompt is reused across every provider in the fallback chain.
func BuildExplanationPrompt(diseaseName, language string) string {
	if strings.TrimSpace(language) == "" {
		language = DefaultLanguage
	}

	var b strings.Builder
	// The templates are parsed at init from embedded files; execution over a
	// plain struct cannot fail.
	if err := promptTemplates.ExecuteTemplate(&b, "explanation.tmpl", explanationPromptData{
		DiseaseName: diseaseName,
		Language:    language,
	}); err != nil {
		panic(err)
	}
	return b.String()
}

// BuildReportPrompt produces the provider prompt for a full clinic-grade
// report. Missing optional fields render as explicit placeholders rather than
// blanks. reportDate and reportTime are passed in so the builder stays pure.
func BuildReportPrompt(req ReportRequest, reportDate, reportTime string) string {
	language := req.Language
	if strings.TrimSpace(language) == "" {
		language = DefaultLanguage
	}

	var b strings.Builder
	if err := promptTemplates.ExecuteTemplate(&b, "report.tmpl", reportPromptData{
		PatientName:     req.PatientName,
		PatientID:       req.PatientID,
		PatientAge:      req.PatientAge,
		Gender:          req.Gender,
		Physician:       req.PhysicianOrPlaceholder(),
		Email:           req.Email,
		ReportDate:      reportDate,
		ReportTime:      reportTime,
		Language:        language,
		DiseaseDisplay:  req.DiseaseDisplay(),
		ExplanationText: req.ExplanationText,
	}); err != nil {
		panic(err)
	}
	return b.String()
}
