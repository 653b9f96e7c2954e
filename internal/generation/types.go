package generation

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ProviderRole identifies which priority slot produced a result.
type ProviderRole string

const (
	// RolePrimary is the first provider in the configured order.
	RolePrimary ProviderRole = "primary"

	// RoleBackup is any provider after the first in the configured order.
	RoleBackup ProviderRole = "backup"

	// RoleStaticFallback marks text produced by the local template after
	// every provider failed.
	RoleStaticFallback ProviderRole = "static_fallback"
)

// ExplanationRequest asks for a short educational overview of a condition.
// Requests are immutable; construct a new one per call.
type ExplanationRequest struct {
	DiseaseName string
	Language    string
}

// Validate checks the request invariants.
func (r ExplanationRequest) Validate() error {
	if strings.TrimSpace(r.DiseaseName) == "" {
		return errors.New("disease name cannot be empty")
	}
	return nil
}

// ExplanationResult is the total result of an explanation request.
// ExplanationText is always non-empty, regardless of Succeeded.
type ExplanationResult struct {
	DiseaseName     string
	Language        string
	ExplanationText string

	// ProviderUsed records which priority slot answered, or
	// RoleStaticFallback when every provider failed.
	ProviderUsed ProviderRole

	// ProviderName is the concrete provider that answered; empty for the
	// static fallback.
	ProviderName string

	// Succeeded is false only when every provider attempt failed and the
	// static fallback was used.
	Succeeded bool

	// ErrorDetail carries the last failure's redacted cause for
	// observability. Empty on success.
	ErrorDetail string
}

// ReportRequest carries the fields of a full clinic-grade report. Patient
// identity fields are opaque strings; the core does not validate them.
type ReportRequest struct {
	PatientName      string
	PatientID        string
	PatientAge       string
	Gender           string
	Physician        string
	Email            string
	PredictedDisease string
	ExplanationText  string
	Language         string
}

// DiseaseDisplay returns the readable part of a classifier label. Labels
// arrive as "CNV - Choroidal Neovascularization"; the display name is the
// part after the last separator, or the whole label when no separator
// exists.
func (r ReportRequest) DiseaseDisplay() string {
	if i := strings.LastIndex(r.PredictedDisease, " - "); i >= 0 {
		return r.PredictedDisease[i+len(" - "):]
	}
	return r.PredictedDisease
}

// PhysicianOrPlaceholder substitutes an explicit placeholder for a missing
// referring physician rather than leaving the field blank.
func (r ReportRequest) PhysicianOrPlaceholder() string {
	if strings.TrimSpace(r.Physician) == "" {
		return "Not specified"
	}
	return r.Physician
}

// Report is the total result of a full-report request. ReportText is always
// non-empty and well-formed by construction.
type Report struct {
	ID          uuid.UUID
	ReportText  string
	GeneratedAt time.Time

	// GeneratedByTemplate is true when the report provider failed and the
	// deterministic structural template produced the text.
	GeneratedByTemplate bool
}
