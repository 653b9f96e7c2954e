package report

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

var (
	boldRe   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicRe = regexp.MustCompile(`\*(.+?)\*`)
	bulletRe = regexp.MustCompile(`^[*-]\s*`)
)

// EmailHTML converts a markdown-style report produced by a language model
// into a self-contained HTML email document. The converter is line-oriented
// and intentionally forgiving: provider output varies, and unrecognized
// lines degrade to plain paragraphs rather than failing.
func (r *Renderer) EmailHTML(markdownReport, patientName string) string {
	now := r.now()

	var body strings.Builder
	inList := false

	closeList := func() {
		if inList {
			body.WriteString("</ul>\n")
			inList = false
		}
	}

	for _, line := range strings.Split(markdownReport, "\n") {
		line = strings.TrimSpace(line)

		switch {
		case line == "":
			closeList()
			body.WriteString("<br/>\n")

		case strings.HasPrefix(line, "###"):
			closeList()
			text := inlineHTML(strings.TrimSpace(strings.TrimLeft(line, "#")))
			fmt.Fprintf(&body, `<h3 style="color: #1e88e5; margin-top: 25px; margin-bottom: 12px; font-size: 18px;">%s</h3>`+"\n", text)

		case strings.HasPrefix(line, "##"):
			closeList()
			text := inlineHTML(strings.TrimSpace(strings.TrimLeft(line, "#")))
			fmt.Fprintf(&body, `<h2 style="color: #0d47a1; margin-top: 30px; margin-bottom: 15px; font-size: 22px; border-bottom: 2px solid #1e88e5; padding-bottom: 8px;">%s</h2>`+"\n", text)

		case strings.HasPrefix(line, "#"):
			closeList()
			text := inlineHTML(strings.TrimSpace(strings.TrimLeft(line, "#")))
			fmt.Fprintf(&body, `<h1 style="color: #0d47a1; margin-top: 20px; margin-bottom: 15px; font-size: 26px;">%s</h1>`+"\n", text)

		case strings.HasPrefix(line, "---") || strings.HasPrefix(line, "***"):
			closeList()
			body.WriteString(`<hr style="border: none; border-top: 2px solid #e0e0e0; margin: 20px 0;"/>` + "\n")

		case strings.HasPrefix(line, "* ") || strings.HasPrefix(line, "- ") || line == "*" || line == "-":
			text := inlineHTML(bulletRe.ReplaceAllString(line, ""))
			if !inList {
				body.WriteString(`<ul style="margin-left: 20px; margin-bottom: 15px; line-height: 1.8;">` + "\n")
				inList = true
			}
			fmt.Fprintf(&body, `<li style="margin-bottom: 8px; color: #333;">%s</li>`+"\n", text)

		case strings.Contains(line, ":") && !strings.HasSuffix(line, ":"):
			closeList()
			key, value, _ := strings.Cut(line, ":")
			fmt.Fprintf(&body, `<p style="margin: 8px 0; line-height: 1.6;"><b style="color: #1e88e5;">%s:</b> %s</p>`+"\n",
				inlineHTML(strings.TrimSpace(key)), inlineHTML(strings.TrimSpace(value)))

		default:
			closeList()
			fmt.Fprintf(&body, `<p style="margin: 10px 0; line-height: 1.7; color: #333;">%s</p>`+"\n", inlineHTML(line))
		}
	}
	closeList()

	return fmt.Sprintf(emailShell,
		html.EscapeString(patientName),
		now.Format("January 2, 2006 at 3:04 PM"),
		body.String(),
		now.Year(),
	)
}

// inlineHTML escapes a line and then applies **bold** and *italic* spans.
// Escaping happens first so provider text cannot inject markup.
func inlineHTML(text string) string {
	text = html.EscapeString(text)
	text = boldRe.ReplaceAllString(text, "<b>$1</b>")
	text = italicRe.ReplaceAllString(text, "<i>$1</i>")
	return text
}

const emailShell = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>LuminaPath Medical Report - %s</title>
</head>
<body style="font-family: 'Segoe UI', Arial, sans-serif; line-height: 1.6; color: #000000; margin: 0; padding: 0; background-color: #f5f7fa;">
<div style="max-width: 700px; margin: 20px auto; background-color: #ffffff; border-radius: 12px; box-shadow: 0 4px 20px rgba(0,0,0,0.1); overflow: hidden;">
  <div style="background: linear-gradient(135deg, #1e88e5 0%%, #1565c0 100%%); color: white; padding: 30px 40px; text-align: center;">
    <h1 style="margin: 0; font-size: 32px; font-weight: 600; color: #ffffff;">LuminaPath</h1>
    <p style="margin: 10px 0 0 0; font-size: 16px; color: #e3f2fd;">AI-Powered Retinal Analysis Report</p>
    <p style="margin: 15px 0 0 0; font-size: 14px; color: #bbdefb;">Generated: %s</p>
  </div>
  <div style="padding: 40px;">
%s  </div>
  <div style="background-color: #f5f7fa; padding: 25px 40px; border-top: 2px solid #e0e0e0; text-align: center;">
    <p style="margin: 0; font-size: 13px; color: #666; font-style: italic;">
      This report was generated by the LuminaPath AI-Powered Retinal Analysis System.<br/>
      For clinical interpretation and treatment decisions, please consult with a qualified ophthalmologist.
    </p>
    <p style="margin: 15px 0 0 0; font-size: 12px; color: #999;">&copy; %d LuminaPath. All rights reserved.</p>
  </div>
</div>
</body>
</html>
`
