package generation

import "fmt"

// StaticFallbackExplanation returns the deterministic explanation text used
// when no provider produces usable output. Two calls with the same disease
// name produce byte-identical text, and the text never embeds error strings.
func StaticFallbackExplanation(diseaseName string) string {
	return fmt.Sprintf(`Educational Overview of %s:

%s is a retinal condition affecting visual function.

Key points:
- Visual symptoms may vary by severity
- Treatment options depend on specific presentation
- Regular ophthalmological monitoring recommended

Consult an ophthalmologist for personalized medical guidance.`, diseaseName, diseaseName)
}

const reportDivider = "------------------------------------------------------------"

// fallbackReport fills the fixed structural report template: title, patient
// table, diagnosis, the previously obtained short explanation, a fixed
// recommendation list, the medical disclaimer, and date/time stamps. No
// provider call is involved.
func fallbackReport(req ReportRequest, reportDate, reportTime string) string {
	language := req.Language
	if language == "" {
		language = DefaultLanguage
	}

	return fmt.Sprintf(`LUMINAPATH - AI-POWERED RETINAL ANALYSIS REPORT

Report Date: %s | Time: %s

%s

PATIENT & CLINIC DETAILS

Patient Name:        %s
Patient ID:          %s
Age:                 %s years
Gender:              %s
Email:               %s
Referring Physician: %s
Report Language:     %s

%s

DIAGNOSIS

Detected Condition: %s

%s

MEDICAL OVERVIEW

%s

%s

RECOMMENDATION

Next Steps:
- Schedule a comprehensive follow-up appointment with your ophthalmologist
- Discuss this report and explore appropriate treatment options
- Regular monitoring is essential for optimal eye health and early intervention
- Contact your doctor immediately if you experience worsening visual symptoms
- Maintain detailed records of any vision changes

%s

MEDICAL DISCLAIMER

This report is generated by an AI-assisted diagnostic tool and is intended to
provide educational information to aid medical professionals. It should NOT be
used as the sole basis for medical diagnosis or treatment decisions. Always
consult with a qualified ophthalmologist or healthcare provider for
professional medical advice, diagnosis, and personalized treatment
recommendations.

%s

LuminaPath AI System
Making retinal healthcare accessible through AI
Report generated on %s at %s`,
		reportDate, reportTime,
		reportDivider,
		req.PatientName,
		req.PatientID,
		req.PatientAge,
		req.Gender,
		req.Email,
		req.PhysicianOrPlaceholder(),
		language,
		reportDivider,
		req.DiseaseDisplay(),
		reportDivider,
		req.ExplanationText,
		reportDivider,
		reportDivider,
		reportDivider,
		reportDate, reportTime)
}
