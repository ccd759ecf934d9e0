package ports

import (
	"strings"

	"ravegraph/internal/domain"
)

func (in UpsertEvidenceInput) Validate() error {
	if in.ID != nil && *in.ID <= 0 {
		return domain.Invalid("id", "must be positive")
	}
	if strings.TrimSpace(in.ServiceID) == "" {
		return domain.Invalid("serviceId", "is required")
	}
	if !in.EvidenceType.Valid() {
		return domain.Invalid("evidenceType", "unknown evidence type %q", in.EvidenceType)
	}
	if strings.TrimSpace(in.Source) == "" {
		return domain.Invalid("source", "is required")
	}
	if in.Body == nil {
		return domain.Invalid("body", "is required")
	}
	if err := checkConfidence(in.Confidence); err != nil {
		return err
	}
	if in.TTLHours != nil && *in.TTLHours <= 0 {
		return domain.Invalid("ttlHours", "must be a positive number of hours")
	}
	for _, t := range in.Tags {
		if strings.TrimSpace(t) == "" {
			return domain.Invalid("tags", "must not contain empty tags")
		}
	}
	return nil
}

func (in UpsertClaimInput) Validate() error {
	if in.ID != nil && *in.ID <= 0 {
		return domain.Invalid("id", "must be positive")
	}
	if strings.TrimSpace(in.ServiceID) == "" {
		return domain.Invalid("serviceId", "is required")
	}
	if strings.TrimSpace(in.Title) == "" {
		return domain.Invalid("title", "is required")
	}
	if strings.TrimSpace(in.Section) == "" {
		return domain.Invalid("section", "is required")
	}
	if in.Status != "" && !in.Status.Valid() {
		return domain.Invalid("status", "unknown claim status %q", in.Status)
	}
	if in.Confidence != nil {
		if err := checkConfidence(*in.Confidence); err != nil {
			return err
		}
	}
	return ValidateIDs("evidenceIds", in.EvidenceIDs)
}

func (f ControlFilter) Validate() error {
	switch {
	case f.Status != "" && !f.Status.Valid():
		return domain.Invalid("status", "unknown control status %q", f.Status)
	case f.Priority != "" && !f.Priority.Valid():
		return domain.Invalid("priority", "unknown priority %q", f.Priority)
	case f.Type != "" && !f.Type.Valid():
		return domain.Invalid("controlType", "unknown control type %q", f.Type)
	}
	return nil
}

func (f WorkItemFilter) Validate() error {
	switch {
	case f.Status != "" && !f.Status.Valid():
		return domain.Invalid("status", "unknown work status %q", f.Status)
	case f.Type != "" && !f.Type.Valid():
		return domain.Invalid("workType", "unknown work type %q", f.Type)
	}
	return nil
}

func (f ReadinessFilter) Validate() error {
	if f.DaysBack < 0 {
		return domain.Invalid("daysBack", "must be at least 1")
	}
	return nil
}

// Days returns the effective history window.
func (f ReadinessFilter) Days() int {
	if f.DaysBack == 0 {
		return domain.DefaultDaysBack
	}
	return f.DaysBack
}

func (f EvidenceFilter) Validate() error {
	if f.Type != "" && !f.Type.Valid() {
		return domain.Invalid("evidenceType", "unknown evidence type %q", f.Type)
	}
	return nil
}

func (f ClaimFilter) Validate() error {
	if f.Status != "" && !f.Status.Valid() {
		return domain.Invalid("status", "unknown claim status %q", f.Status)
	}
	return nil
}

// ValidateIDs rejects non-positive ids in a link list.
func ValidateIDs(field string, ids []int64) error {
	for _, id := range ids {
		if id <= 0 {
			return domain.Invalid(field, "ids must be positive, got %d", id)
		}
	}
	return nil
}

func checkConfidence(c int) error {
	if c < domain.MinConfidence || c > domain.MaxConfidence {
		return domain.Invalid("confidence", "must be between %d and %d", domain.MinConfidence, domain.MaxConfidence)
	}
	return nil
}
