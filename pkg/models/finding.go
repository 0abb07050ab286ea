package models

import (
	"fmt"

	"github.com/zeebo/blake3"
)

// Severity represents the urgency of addressing a finding.
type Severity string

// String implements fmt.Stringer for toon serialization.
func (s Severity) String() string {
	return string(s)
}

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Severities returns every valid severity, lowest first.
func Severities() []Severity {
	return []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}
}

// Weight returns a numeric weight for sorting and comparison.
func (s Severity) Weight() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// ParseSeverity maps a string to a Severity. Unknown values map to low
// so a bad label can only ever under-report, never inflate.
func ParseSeverity(s string) Severity {
	switch Severity(s) {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow:
		return Severity(s)
	default:
		return SeverityLow
	}
}

// MaxSeverity returns the higher of two severities.
func MaxSeverity(a, b Severity) Severity {
	if a.Weight() >= b.Weight() {
		return a
	}
	return b
}

// Location points at the artifact position that produced a finding.
// Line is 1-based; zero means the finding applies to the whole artifact.
type Location struct {
	Path string `json:"path" toon:"path"`
	Line int    `json:"line,omitempty" toon:"line,omitempty"`
}

// Finding is a single typed observation: a vulnerability, a bottleneck,
// a debt marker. All category analyzers share this shape.
type Finding struct {
	ID          string   `json:"id" toon:"id"`
	Type        string   `json:"type" toon:"type"`
	Severity    Severity `json:"severity" toon:"severity"`
	Location    Location `json:"location" toon:"location"`
	Description string   `json:"description" toon:"description"`
	Remediation string   `json:"remediation,omitempty" toon:"remediation,omitempty"`
}

// NewFinding builds a finding with its identity hash filled in.
func NewFinding(typ string, sev Severity, loc Location, description, remediation string) Finding {
	return Finding{
		ID:          FindingID(typ, loc, description),
		Type:        typ,
		Severity:    sev,
		Location:    loc,
		Description: description,
		Remediation: remediation,
	}
}

// FindingID derives a stable identity for tracking a finding across
// runs. BLAKE3 over type, location and description, truncated to 16
// hex characters.
func FindingID(typ string, loc Location, description string) string {
	sum := blake3.Sum256(fmt.Appendf(nil, "%s|%s|%d|%s", typ, loc.Path, loc.Line, description))
	return fmt.Sprintf("%x", sum[:8])
}
