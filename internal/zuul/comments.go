package zuul

import (
	"strings"

	"github.com/sanix-darker/zreview/internal/core"
	"github.com/sanix-darker/zreview/internal/review"
)

// Stats describes what BuildFileComments did with the issues it saw.
type Stats struct {
	Issues          int
	Emitted         int
	MissingLocation int
	Unparseable     int
}

// Skipped is the number of issues left out of the payload.
func (s Stats) Skipped() int {
	return s.MissingLocation + s.Unparseable
}

// BuildFileComments turns every locatable issue of doc into an inline
// comment. Issues are visited by severity, most severe first, then in
// input order; comments are not sorted by line. Issues without a usable
// location are skipped and only counted.
func BuildFileComments(doc *review.Document, n core.LocationNormalizer) (*FileComments, Stats) {
	fc := NewFileComments()
	var stats Stats

	for _, sev := range core.Severities {
		for _, issue := range doc.Issues(sev) {
			stats.Issues++

			if issue.Location.Value == "" {
				stats.MissingLocation++
				continue
			}
			loc, ok := n.Normalize(issue.Location.Value)
			if !ok {
				stats.Unparseable++
				continue
			}

			fc.Add(loc.Path, Comment{
				Line:    loc.Line,
				Message: FormatMessage(issue),
				Level:   core.CILevel(issue.Severity),
			})
			stats.Emitted++
		}
	}
	return fc, stats
}

// FormatMessage builds the comment body for issue. Fields the issue does
// not carry are left out rather than printed empty.
func FormatMessage(issue review.Issue) string {
	parts := []string{
		issue.Description,
		"",
		"Severity: " + strings.ToUpper(string(issue.Severity)) +
			" | Confidence: " + core.FormatConfidence(issue.Confidence),
		"",
	}

	switch issue.Severity {
	case core.SeverityCritical, core.SeverityHigh:
		if issue.Risk.Present {
			parts = append(parts, "Risk: "+issue.Risk.Value, "")
		}
		if issue.RemediationPriority.Present {
			parts = append(parts, "Priority: "+issue.RemediationPriority.Value)
		}
		if issue.WhyMatters.Present {
			parts = append(parts, "Why This Matters: "+issue.WhyMatters.Value, "")
		}
		if issue.Recommendation.Present {
			parts = append(parts, "Recommendation:", issue.Recommendation.Value)
		}
	case core.SeverityWarning:
		if issue.Impact.Present {
			parts = append(parts, "Impact: "+issue.Impact.Value, "")
		}
		if issue.Suggestion.Present {
			parts = append(parts, "Suggestion:", issue.Suggestion.Value)
		}
	case core.SeveritySuggestion:
		if issue.Benefit.Present {
			parts = append(parts, "Benefit: "+issue.Benefit.Value, "")
		}
		if issue.Recommendation.Present {
			parts = append(parts, "Recommendation:", issue.Recommendation.Value)
		}
	}

	return strings.Join(parts, "\n")
}
