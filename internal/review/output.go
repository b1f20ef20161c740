package review

import (
	"fmt"
	"strings"

	"github.com/sanix-darker/zreview/internal/core"
)

var severityHeadings = map[core.Severity]string{
	core.SeverityCritical:   "Critical Issues",
	core.SeverityHigh:       "High Issues",
	core.SeverityWarning:    "Warnings",
	core.SeveritySuggestion: "Suggestions",
}

// Heading returns the section title used for sev in every report format.
func Heading(sev core.Severity) string {
	if h, ok := severityHeadings[sev]; ok {
		return h
	}
	return strings.ToUpper(string(sev))
}

// FormatReview formats a Document into CLI-friendly markdown.
func FormatReview(doc *Document) string {
	var sb strings.Builder

	sb.WriteString("# Code Review\n\n")

	sb.WriteString("## Context\n\n")
	sb.WriteString(fmt.Sprintf("- Change: %s\n", doc.Context.Change.Text("N/A")))
	sb.WriteString(fmt.Sprintf("- Scope: %s\n", doc.Context.Scope.Text("N/A")))
	sb.WriteString(fmt.Sprintf("- Impact: %s\n\n", doc.Context.Impact.Text("N/A")))

	for _, sev := range core.Severities {
		issues := doc.Issues(sev)
		sb.WriteString(fmt.Sprintf("## %s (%d)\n\n", Heading(sev), len(issues)))

		if len(issues) == 0 {
			sb.WriteString("None found.\n\n")
			continue
		}

		for i, issue := range issues {
			if issue.Location.Present {
				sb.WriteString(fmt.Sprintf("%d. **%s** [%s, %s]: %s\n",
					i+1, issue.Location.Value, strings.ToUpper(string(sev)),
					core.FormatConfidence(issue.Confidence), issue.Description))
			} else {
				sb.WriteString(fmt.Sprintf("%d. [%s, %s]: %s\n",
					i+1, strings.ToUpper(string(sev)),
					core.FormatConfidence(issue.Confidence), issue.Description))
			}

			if text := remedy(issue); text != "" {
				sb.WriteString(fmt.Sprintf("   > %s\n", text))
			}
		}
		sb.WriteString("\n")
	}

	if len(doc.PositiveObservations) > 0 {
		sb.WriteString("## Positive Observations\n\n")
		for _, obs := range doc.PositiveObservations {
			sb.WriteString(fmt.Sprintf("- **%s**: %s\n",
				obs.Category.Text("General"), obs.Observation.Value))
		}
		sb.WriteString("\n")
	}

	// Statistics
	st := doc.Statistics
	sb.WriteString("## Statistics\n\n")
	sb.WriteString(fmt.Sprintf("- Issues: %d (%d critical, %d high, %d warnings, %d suggestions)\n",
		st.Sum(), st.Critical, st.High, st.Warnings, st.Suggestions))
	if st.Total != st.Sum() {
		sb.WriteString(fmt.Sprintf("- Declared total: %d\n", st.Total))
	}
	if keys := doc.UnrecognizedKeys(); len(keys) > 0 {
		sb.WriteString(fmt.Sprintf("- Unrecognized severities: %s\n", strings.Join(keys, ", ")))
	}

	sb.WriteString("\n## Summary\n\n")
	sb.WriteString(fmt.Sprintf("- Assessment: %s\n", doc.Summary.Assessment.Text("N/A")))
	sb.WriteString(fmt.Sprintf("- Priority focus: %s\n", doc.Summary.PriorityFocus.Text("N/A")))
	if doc.Summary.DetailedSummary.Value != "" {
		sb.WriteString("\n")
		sb.WriteString(doc.Summary.DetailedSummary.Value)
		sb.WriteString("\n")
	}

	return sb.String()
}

// remedy picks the actionable text of an issue for its severity.
func remedy(issue Issue) string {
	switch issue.Severity {
	case core.SeverityWarning:
		return issue.Suggestion.Value
	default:
		return issue.Recommendation.Value
	}
}
