package review

import "github.com/sanix-darker/zreview/internal/core"

// Top-level sections of a review document.
const (
	SectionContext              = "context"
	SectionStatistics           = "statistics"
	SectionIssues               = "issues"
	SectionPositiveObservations = "positive_observations"
	SectionSummary              = "summary"
)

// HTMLSections are the sections the HTML report cannot be rendered without.
var HTMLSections = []string{SectionContext, SectionStatistics, SectionIssues, SectionSummary}

// Field is an optional text attribute. Present is true when the key was in
// the input, even if its value was empty.
type Field struct {
	Value   string
	Present bool
}

// Text returns the value, or fallback when the key was absent.
func (f Field) Text(fallback string) string {
	if !f.Present {
		return fallback
	}
	return f.Value
}

// Issue is one reviewer finding.
type Issue struct {
	Severity    core.Severity
	Description string
	Confidence  float64

	Location            Field
	Risk                Field
	RemediationPriority Field
	WhyMatters          Field
	Recommendation      Field
	Impact              Field
	Suggestion          Field
	Benefit             Field
}

// Statistics are the counts declared by the reviewer. Total is taken as
// given and may disagree with the sum of the other four.
type Statistics struct {
	Critical    int
	High        int
	Warnings    int
	Suggestions int
	Total       int
}

// Sum adds up the four per-severity counts.
func (s Statistics) Sum() int {
	return s.Critical + s.High + s.Warnings + s.Suggestions
}

type Context struct {
	Change Field
	Scope  Field
	Impact Field
}

type Observation struct {
	Category    Field
	Observation Field
}

type Summary struct {
	Assessment      Field
	PriorityFocus   Field
	DetailedSummary Field
}

// Document is a review report. It is built once per run and treated as
// read-only by every renderer.
type Document struct {
	Context              Context
	Statistics           Statistics
	PositiveObservations []Observation
	Summary              Summary

	// issues holds the four known severities; a missing key is an empty list.
	issues map[core.Severity][]Issue

	// Unrecognized counts issues filed under keys outside the known
	// severity set. They are never rendered.
	Unrecognized map[string]int

	sections map[string]bool
}

// Issues returns the ordered findings of sev.
func (d *Document) Issues(sev core.Severity) []Issue {
	return d.issues[sev]
}

// IssueCount returns the number of rendered findings across all severities.
func (d *Document) IssueCount() int {
	n := 0
	for _, sev := range core.Severities {
		n += len(d.issues[sev])
	}
	return n
}

// Has reports whether section was present in the input.
func (d *Document) Has(section string) bool {
	return d.sections[section]
}
