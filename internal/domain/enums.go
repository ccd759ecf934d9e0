package domain

import (
	"fmt"
	"strings"
)

const (
	// TrendThreshold is the score delta (percentage points) a service must
	// exceed, strictly, to leave STABLE.
	TrendThreshold = 1.0

	// DefaultDaysBack bounds readiness history reads when no window is given.
	DefaultDaysBack = 30

	MinConfidence = 0
	MaxConfidence = 100
	MinScore      = 0.0
	MaxScore      = 100.0
)

type ControlType string

const (
	ControlPrevent ControlType = "PREVENT"
	ControlDetect  ControlType = "DETECT"
	ControlRespond ControlType = "RESPOND"
	ControlLearn   ControlType = "LEARN"
)

var ControlTypes = []ControlType{ControlPrevent, ControlDetect, ControlRespond, ControlLearn}

type ControlStatus string

const (
	ControlProposed   ControlStatus = "PROPOSED"
	ControlApproved   ControlStatus = "APPROVED"
	ControlInProgress ControlStatus = "IN_PROGRESS"
	ControlCompleted  ControlStatus = "COMPLETED"
	ControlRejected   ControlStatus = "REJECTED"
)

var ControlStatuses = []ControlStatus{ControlProposed, ControlApproved, ControlInProgress, ControlCompleted, ControlRejected}

type Priority string

const (
	PriorityLow      Priority = "LOW"
	PriorityMedium   Priority = "MEDIUM"
	PriorityHigh     Priority = "HIGH"
	PriorityCritical Priority = "CRITICAL"
)

var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

type WorkType string

const (
	WorkRemediation   WorkType = "REMEDIATION"
	WorkInvestigation WorkType = "INVESTIGATION"
	WorkDocumentation WorkType = "DOCUMENTATION"
	WorkModelUpdate   WorkType = "MODEL_UPDATE"
)

var WorkTypes = []WorkType{WorkRemediation, WorkInvestigation, WorkDocumentation, WorkModelUpdate}

type WorkStatus string

const (
	WorkOpen       WorkStatus = "OPEN"
	WorkInProgress WorkStatus = "IN_PROGRESS"
	WorkCompleted  WorkStatus = "COMPLETED"
	WorkClosed     WorkStatus = "CLOSED"
)

var WorkStatuses = []WorkStatus{WorkOpen, WorkInProgress, WorkCompleted, WorkClosed}

type ExternalSystem string

const (
	ExternalGitHub ExternalSystem = "GITHUB"
	ExternalJira   ExternalSystem = "JIRA"
	ExternalLinear ExternalSystem = "LINEAR"
)

var ExternalSystems = []ExternalSystem{ExternalGitHub, ExternalJira, ExternalLinear}

type Severity string

const (
	Sev1 Severity = "SEV1"
	Sev2 Severity = "SEV2"
	Sev3 Severity = "SEV3"
	Sev4 Severity = "SEV4"
)

var Severities = []Severity{Sev1, Sev2, Sev3, Sev4}

type EvidenceType string

const (
	EvidenceSBOM              EvidenceType = "SBOM"
	EvidenceVulnerabilityScan EvidenceType = "VULNERABILITY_SCAN"
	EvidenceMonitoring        EvidenceType = "MONITORING"
	EvidenceTesting           EvidenceType = "TESTING"
	EvidenceDeployment        EvidenceType = "DEPLOYMENT"
	EvidenceProvenance        EvidenceType = "PROVENANCE"
	EvidenceConfiguration     EvidenceType = "CONFIGURATION"
	EvidenceOther             EvidenceType = "OTHER"
)

var EvidenceTypes = []EvidenceType{
	EvidenceSBOM, EvidenceVulnerabilityScan, EvidenceMonitoring, EvidenceTesting,
	EvidenceDeployment, EvidenceProvenance, EvidenceConfiguration, EvidenceOther,
}

type ClaimStatus string

const (
	ClaimPass    ClaimStatus = "PASS"
	ClaimPartial ClaimStatus = "PARTIAL"
	ClaimFail    ClaimStatus = "FAIL"
	ClaimUnknown ClaimStatus = "UNKNOWN"
)

var ClaimStatuses = []ClaimStatus{ClaimPass, ClaimPartial, ClaimFail, ClaimUnknown}

type TrendDirection string

const (
	TrendImproving TrendDirection = "IMPROVING"
	TrendDeclining TrendDirection = "DECLINING"
	TrendStable    TrendDirection = "STABLE"
	TrendNew       TrendDirection = "NEW"
)

func (v ControlType) Valid() bool    { return oneOf(v, ControlTypes) }
func (v ControlStatus) Valid() bool  { return oneOf(v, ControlStatuses) }
func (v Priority) Valid() bool       { return oneOf(v, Priorities) }
func (v WorkType) Valid() bool       { return oneOf(v, WorkTypes) }
func (v WorkStatus) Valid() bool     { return oneOf(v, WorkStatuses) }
func (v ExternalSystem) Valid() bool { return oneOf(v, ExternalSystems) }
func (v Severity) Valid() bool       { return oneOf(v, Severities) }
func (v EvidenceType) Valid() bool   { return oneOf(v, EvidenceTypes) }
func (v ClaimStatus) Valid() bool    { return oneOf(v, ClaimStatuses) }

func oneOf[T ~string](v T, all []T) bool {
	for _, a := range all {
		if v == a {
			return true
		}
	}
	return false
}

// ParseEnum normalises raw (case-insensitive) into one of all. An empty raw value
// parses to the zero value, which filters treat as "no constraint".
func ParseEnum[T ~string](field, raw string, all []T) (T, error) {
	var zero T
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return zero, nil
	}
	v := T(strings.ToUpper(raw))
	if !oneOf(v, all) {
		return zero, &ValidationError{Field: field, Message: fmt.Sprintf("must be one of %s", joinEnum(all))}
	}
	return v, nil
}

func joinEnum[T ~string](all []T) string {
	parts := make([]string, len(all))
	for i, a := range all {
		parts[i] = string(a)
	}
	return strings.Join(parts, ", ")
}
