package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/luminapath/lumina-api/internal/redact"
)

// Service orchestrates explanation and report generation across an ordered
// list of providers, degrading to deterministic templates when every provider
// fails. Construction-time configuration is read-only, so two differently
// configured services can run concurrently.
type Service struct {
	logger    *slog.Logger
	providers []Provider

	explainPolicy RetryPolicy
	reportPolicy  RetryPolicy

	// now supplies timestamps for report stamps; injectable for tests.
	now func() time.Time
}

// ServiceOption customizes a Service.
type ServiceOption func(*Service)

// WithClock overrides the service clock. Used by tests to make report
// timestamps deterministic.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a Service over providers in strict priority order.
// The first provider is the primary; any later provider is a backup. The
// same provider list drives both explanations and reports; reports use the
// head of the list as their designated provider.
func NewService(
	logger *slog.Logger,
	providers []Provider,
	explainPolicy, reportPolicy RetryPolicy,
	opts ...ServiceOption,
) (*Service, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if len(providers) == 0 {
		return nil, errors.New("at least one provider is required")
	}

	s := &Service{
		logger:        logger,
		providers:     providers,
		explainPolicy: explainPolicy.normalized(),
		reportPolicy:  reportPolicy.normalized(),
		now:           time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// GetExplanation produces an educational overview of the requested condition.
//
// The prompt is built once and reused for every provider. Providers are tried
// strictly in priority order; each is driven to exhaustion under the retry
// policy before the next is attempted, and the first success short-circuits
// the rest. If every provider terminates non-successfully the deterministic
// static fallback text is returned.
//
// GetExplanation is total: it never returns an error and the result's
// ExplanationText is never empty, even under full provider outage.
func (s *Service) GetExplanation(ctx context.Context, req ExplanationRequest) ExplanationResult {
	prompt := BuildExplanationPrompt(req.DiseaseName, req.Language)

	var last Outcome
	for i, provider := range s.providers {
		outcome := CallWithRetry(ctx, s.logger, provider, prompt, s.explainPolicy)

		if outcome.Kind == OutcomeSuccess {
			s.logger.InfoContext(ctx, "explanation generated",
				"disease", req.DiseaseName,
				"provider", provider.Name(),
				"role", string(roleForIndex(i)))
			return ExplanationResult{
				DiseaseName:     req.DiseaseName,
				Language:        req.Language,
				ExplanationText: outcome.Text,
				ProviderUsed:    roleForIndex(i),
				ProviderName:    provider.Name(),
				Succeeded:       true,
			}
		}

		last = outcome
		s.logger.WarnContext(ctx, "provider exhausted, falling through",
			"disease", req.DiseaseName,
			"provider", provider.Name(),
			"outcome", outcome.Kind.String())
	}

	s.logger.WarnContext(ctx, "all providers failed, using static fallback",
		"disease", req.DiseaseName,
		"last_outcome", last.Kind.String())

	return ExplanationResult{
		DiseaseName:     req.DiseaseName,
		Language:        req.Language,
		ExplanationText: StaticFallbackExplanation(req.DiseaseName),
		ProviderUsed:    RoleStaticFallback,
		Succeeded:       false,
		ErrorDetail:     errorDetail(last),
	}
}

// BuildFullReport produces the long-form structured report, delegating to the
// designated report provider with retry, then to the fixed structural
// template when that fails. Like GetExplanation, it is total: the returned
// report text is always non-empty and well-formed.
func (s *Service) BuildFullReport(ctx context.Context, req ReportRequest) Report {
	now := s.now()
	reportDate := now.Format("January 2, 2006")
	reportTime := now.Format("3:04 PM")

	prompt := BuildReportPrompt(req, reportDate, reportTime)
	provider := s.providers[0]

	outcome := CallWithRetry(ctx, s.logger, provider, prompt, s.reportPolicy)
	if outcome.Kind == OutcomeSuccess {
		s.logger.InfoContext(ctx, "full report generated",
			"patient_id", req.PatientID,
			"provider", provider.Name(),
			"length", len(outcome.Text))
		return Report{
			ID:          uuid.New(),
			ReportText:  outcome.Text,
			GeneratedAt: now,
		}
	}

	s.logger.WarnContext(ctx, "report provider failed, using template report",
		"patient_id", req.PatientID,
		"provider", provider.Name(),
		"outcome", outcome.Kind.String())

	return Report{
		ID:                  uuid.New(),
		ReportText:          fallbackReport(req, reportDate, reportTime),
		GeneratedAt:         now,
		GeneratedByTemplate: true,
	}
}

// roleForIndex maps a position in the configured order to a priority role.
func roleForIndex(i int) ProviderRole {
	if i == 0 {
		return RolePrimary
	}
	return RoleBackup
}

// errorDetail renders a failure outcome for the result's diagnostic field.
// The cause passes through redaction so credentials and endpoints never reach
// callers.
func errorDetail(o Outcome) string {
	if o.Err == nil {
		return o.Kind.String()
	}
	return fmt.Sprintf("%s: %s", o.Kind.String(), redact.Error(o.Err))
}
