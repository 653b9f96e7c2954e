package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luminapath/lumina-api/internal/generation"
)

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2026, time.March, 14, 15, 4, 0, 0, time.UTC)
	}
}

func sampleRequest() generation.ReportRequest {
	return generation.ReportRequest{
		PatientName:      "Jane Roe",
		PatientAge:       "58",
		PatientID:        "P-1001",
		Gender:           "Female",
		Email:            "jane.roe@example.com",
		PredictedDisease: "CNV - Choroidal Neovascularization",
		ExplanationText:  "First paragraph about the condition.\n\nSecond paragraph with guidance.",
		Language:         "English",
	}
}

func TestRenderHTML(t *testing.T) {
	t.Parallel()

	r := NewRenderer(WithClock(fixedClock()))

	doc, err := r.RenderHTML(sampleRequest())
	require.NoError(t, err)

	assert.Contains(t, doc, "Jane Roe")
	assert.Contains(t, doc, "P-1001")
	assert.Contains(t, doc, "58 years")
	assert.Contains(t, doc, "Choroidal Neovascularization")
	assert.Contains(t, doc, "First paragraph about the condition.")
	assert.Contains(t, doc, "Second paragraph with guidance.")
	assert.Contains(t, doc, "March 14, 2026")
	assert.Contains(t, doc, "3:04 PM")
	assert.Contains(t, doc, "Medical Disclaimer")
}

func TestRenderHTMLPhysicianPlaceholder(t *testing.T) {
	t.Parallel()

	r := NewRenderer(WithClock(fixedClock()))

	req := sampleRequest()
	req.Physician = ""

	doc, err := r.RenderHTML(req)
	require.NoError(t, err)
	assert.Contains(t, doc, "Not specified")
}

func TestRenderHTMLEscapesPatientInput(t *testing.T) {
	t.Parallel()

	r := NewRenderer(WithClock(fixedClock()))

	req := sampleRequest()
	req.PatientName = `<script>alert("x")</script>`

	doc, err := r.RenderHTML(req)
	require.NoError(t, err)
	assert.NotContains(t, doc, "<script>")
	assert.Contains(t, doc, "&lt;script&gt;")
}

func TestRenderHTMLDeterministic(t *testing.T) {
	t.Parallel()

	r := NewRenderer(WithClock(fixedClock()))

	first, err := r.RenderHTML(sampleRequest())
	require.NoError(t, err)
	second, err := r.RenderHTML(sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRenderText(t *testing.T) {
	t.Parallel()

	r := NewRenderer(WithClock(fixedClock()))

	text := r.RenderText(sampleRequest())

	assert.Contains(t, text, "LUMINAPATH - RETINAL ANALYSIS REPORT")
	assert.Contains(t, text, "Jane Roe")
	assert.Contains(t, text, "Detected Condition: CNV - Choroidal Neovascularization")
	assert.Contains(t, text, "First paragraph about the condition.")
	assert.Contains(t, text, "MEDICAL DISCLAIMER")
	assert.Contains(t, text, "March 14, 2026")
}

func TestSplitParagraphs(t *testing.T) {
	t.Parallel()

	got := splitParagraphs("one\n\n\n\n  two  \n\n")
	assert.Equal(t, []string{"one", "two"}, got)

	assert.Nil(t, splitParagraphs("   \n\n   "))
}

func TestEmailHTMLMarkdownConversion(t *testing.T) {
	t.Parallel()

	r := NewRenderer(WithClock(fixedClock()))

	md := strings.Join([]string{
		"# LuminaPath Medical Report",
		"## Patient Details",
		"Patient Name: Jane Roe",
		"",
		"### Findings",
		"* **Condition** detected in the left eye",
		"- Routine monitoring advised",
		"---",
		"Plain closing paragraph with *emphasis*.",
	}, "\n")

	doc := r.EmailHTML(md, "Jane Roe")

	assert.Contains(t, doc, "<h1 style")
	assert.Contains(t, doc, "<h2 style")
	assert.Contains(t, doc, "<h3 style")
	assert.Contains(t, doc, `<b style="color: #1e88e5;">Patient Name:</b> Jane Roe`)
	assert.Contains(t, doc, "<li style")
	assert.Contains(t, doc, "<b>Condition</b> detected")
	assert.Contains(t, doc, "<hr style")
	assert.Contains(t, doc, "<i>emphasis</i>")
	assert.Contains(t, doc, "LuminaPath Medical Report - Jane Roe")
	assert.Contains(t, doc, "March 14, 2026 at 3:04 PM")
	assert.Contains(t, doc, "&copy; 2026 LuminaPath")

	// Every opened list is closed.
	assert.Equal(t, strings.Count(doc, "<ul"), strings.Count(doc, "</ul>"))
}

func TestEmailHTMLEscapesProviderText(t *testing.T) {
	t.Parallel()

	r := NewRenderer(WithClock(fixedClock()))

	doc := r.EmailHTML("<img src=x onerror=alert(1)>", "Jane")
	assert.NotContains(t, doc, "<img")
	assert.Contains(t, doc, "&lt;img")
}

func TestEmailHTMLClosesTrailingList(t *testing.T) {
	t.Parallel()

	r := NewRenderer(WithClock(fixedClock()))

	doc := r.EmailHTML("* last item", "Jane")
	assert.Contains(t, doc, "</ul>")
}
