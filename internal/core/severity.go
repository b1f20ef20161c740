package core

import (
	"math"
	"strconv"
	"strings"
)

// Severity is the reviewer-side four-level classification of a finding.
type Severity string

const (
	SeverityCritical   Severity = "critical"
	SeverityHigh       Severity = "high"
	SeverityWarning    Severity = "warning"
	SeveritySuggestion Severity = "suggestion"
)

// Severities lists every known severity in rendering order.
var Severities = []Severity{SeverityCritical, SeverityHigh, SeverityWarning, SeveritySuggestion}

// issueKeys maps severities to their key in the review "issues" object.
var issueKeys = map[Severity]string{
	SeverityCritical:   "critical",
	SeverityHigh:       "high",
	SeverityWarning:    "warnings",
	SeveritySuggestion: "suggestions",
}

// IssueKey returns the "issues" object key holding findings of s.
func (s Severity) IssueKey() string {
	if k, ok := issueKeys[s]; ok {
		return k
	}
	return string(s)
}

// Known reports whether s is one of the four reviewer severities.
func (s Severity) Known() bool {
	_, ok := issueKeys[s.normalized()]
	return ok
}

func (s Severity) normalized() Severity {
	return Severity(strings.ToLower(strings.TrimSpace(string(s))))
}

// SeverityForKey maps an "issues" key back to its severity. ok is false for
// keys outside {critical, high, warnings, suggestions}.
func SeverityForKey(key string) (Severity, bool) {
	for sev, k := range issueKeys {
		if k == key {
			return sev, true
		}
	}
	return Severity(key), false
}

// Level is the three-level classification used by Zuul inline comments.
type Level string

const (
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
)

// Levels lists every valid comment level, most severe first.
var Levels = []Level{LevelError, LevelWarning, LevelInfo}

// CILevel maps a reviewer severity to a Zuul comment level. Unknown
// severities map to info so emission is never blocked.
func CILevel(s Severity) Level {
	switch s.normalized() {
	case SeverityCritical, SeverityHigh:
		return LevelError
	case SeverityWarning:
		return LevelWarning
	default:
		return LevelInfo
	}
}

// Presentation is the HTML badge for a severity.
type Presentation struct {
	Icon  string
	Label string
	Class string
}

var presentations = map[Severity]Presentation{
	SeverityCritical:   {Icon: "⛔", Label: "CRITICAL"},
	SeverityHigh:       {Icon: "🔴", Label: "HIGH"},
	SeverityWarning:    {Icon: "⚠️", Label: "WARNING"},
	SeveritySuggestion: {Icon: "ℹ️", Label: "SUGGESTION"},
}

// PresentationFor returns the badge for s; unknown severities get a bullet
// and their upper-cased name.
func PresentationFor(s Severity) Presentation {
	p, ok := presentations[s.normalized()]
	if !ok {
		p = Presentation{Icon: "•", Label: strings.ToUpper(string(s))}
	}
	p.Class = "severity-" + string(s.normalized())
	return p
}

// FormatConfidence renders a confidence with one decimal, rounding halves
// away from zero on the scaled value so 0.95 renders as "1.0".
func FormatConfidence(c float64) string {
	if math.IsNaN(c) || math.IsInf(c, 0) {
		return strconv.FormatFloat(c, 'f', 1, 64)
	}
	return strconv.FormatFloat(math.Round(c*10)/10, 'f', 1, 64)
}
