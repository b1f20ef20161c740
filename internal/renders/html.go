package renders

import (
	"fmt"
	"strings"

	"github.com/sanix-darker/zreview/internal/core"
	"github.com/sanix-darker/zreview/internal/review"
)

// DefaultTitle is the report title when none is configured.
const DefaultTitle = "Code Review Report"

// HTMLOptions tunes RenderHTML.
type HTMLOptions struct {
	Title string
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeHTML escapes text for use in element content and quoted attributes.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

var sectionLabels = map[core.Severity]string{
	core.SeverityCritical:   "Critical issues",
	core.SeverityHigh:       "High severity issues",
	core.SeverityWarning:    "Warnings",
	core.SeveritySuggestion: "Suggestions",
}

// RenderHTML renders doc as a self-contained HTML5 document. The output
// depends only on doc and opts. Callers must check review.HTMLSections
// with doc.RequireSections first.
func RenderHTML(doc *review.Document, opts HTMLOptions) string {
	title := opts.Title
	if title == "" {
		title = DefaultTitle
	}
	title = EscapeHTML(title)

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n")
	sb.WriteString("<html lang=\"en\">\n<head>\n")
	sb.WriteString("    <meta charset=\"UTF-8\">\n")
	sb.WriteString("    <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	sb.WriteString("    <meta name=\"description\" content=\"AI Code Review Report - WCAG 2.1 Level AA Accessible\">\n")
	sb.WriteString(fmt.Sprintf("    <title>%s</title>\n", title))
	sb.WriteString("    <style>")
	sb.WriteString(reportCSS)
	sb.WriteString("    </style>\n</head>\n<body>\n")
	sb.WriteString("    <div class=\"container\" role=\"main\">\n")
	sb.WriteString(fmt.Sprintf("        <h1>%s</h1>\n\n", title))

	writeStatistics(&sb, doc.Statistics)
	writeContext(&sb, doc.Context)
	for _, sev := range core.Severities {
		writeSeverity(&sb, sev, doc.Issues(sev))
	}
	writeObservations(&sb, doc.PositiveObservations)
	writeSummary(&sb, doc.Summary, doc.Statistics)

	sb.WriteString("    </div>\n</body>\n</html>\n")
	return sb.String()
}

func writeStatistics(sb *strings.Builder, st review.Statistics) {
	// The total tile shows the sum of the four counts, not the declared total.
	items := []struct {
		class, aria, label string
		n                  int
	}{
		{" stat-critical", "critical issues", "Critical", st.Critical},
		{" stat-high", "high issues", "High", st.High},
		{" stat-warning", "warnings", "Warnings", st.Warnings},
		{" stat-suggestion", "suggestions", "Suggestions", st.Suggestions},
		{"", "total findings", "Total", st.Sum()},
	}

	sb.WriteString("<div class=\"summary-stats\">\n")
	sb.WriteString("<div class=\"stats-container\" role=\"region\" aria-label=\"Summary statistics\">\n")
	for _, it := range items {
		sb.WriteString(fmt.Sprintf("    <div class=\"stat-item%s\">\n", it.class))
		sb.WriteString(fmt.Sprintf("        <div class=\"stat-number\" aria-label=\"%d %s\">%d</div>\n", it.n, it.aria, it.n))
		sb.WriteString(fmt.Sprintf("        <div class=\"stat-label\">%s</div>\n", it.label))
		sb.WriteString("    </div>\n")
	}
	sb.WriteString("</div>\n</div>\n")
}

func writeContext(sb *strings.Builder, ctx review.Context) {
	sb.WriteString("<section role=\"region\" aria-label=\"Review context\">\n")
	sb.WriteString("<h2>Context</h2>\n<ul>\n")
	sb.WriteString(fmt.Sprintf("<li><strong>Change</strong>: %s</li>\n", EscapeHTML(ctx.Change.Text("N/A"))))
	sb.WriteString(fmt.Sprintf("<li><strong>Scope</strong>: %s</li>\n", EscapeHTML(ctx.Scope.Text("N/A"))))
	sb.WriteString(fmt.Sprintf("<li><strong>Impact</strong>: %s</li>\n", EscapeHTML(ctx.Impact.Text("N/A"))))
	sb.WriteString("</ul>\n</section>\n")
}

func writeSeverity(sb *strings.Builder, sev core.Severity, issues []review.Issue) {
	heading := review.Heading(sev)
	if len(issues) == 0 {
		sb.WriteString(fmt.Sprintf("<h2>%s</h2><p>None found.</p>\n", heading))
		return
	}

	sb.WriteString(fmt.Sprintf("<section role=\"region\" aria-label=\"%s\">\n", sectionLabels[sev]))
	sb.WriteString(fmt.Sprintf("<h2>%s</h2>\n", heading))
	for i, issue := range issues {
		writeIssueCard(sb, issue, i+1, len(issues))
	}
	sb.WriteString("</section>\n")
}

func writeIssueCard(sb *strings.Builder, issue review.Issue, number, total int) {
	badge := core.PresentationFor(issue.Severity)

	sb.WriteString(fmt.Sprintf("<details class=\"issue-card %s\" open>\n", EscapeHTML(string(issue.Severity))))
	sb.WriteString("    <summary class=\"issue-summary\">\n")
	sb.WriteString(fmt.Sprintf("        <span class=\"severity-badge %s\">\n", EscapeHTML(badge.Class)))
	sb.WriteString(fmt.Sprintf("            <span class=\"severity-icon\" aria-hidden=\"true\">%s</span>\n", badge.Icon))
	sb.WriteString(fmt.Sprintf("            %s\n", EscapeHTML(badge.Label)))
	sb.WriteString("        </span>\n")
	sb.WriteString(fmt.Sprintf("        <span class=\"issue-number\">%d of %d</span>\n", number, total))
	sb.WriteString(fmt.Sprintf("        <span class=\"issue-description\">%s</span>\n", EscapeHTML(issue.Description)))
	sb.WriteString(fmt.Sprintf("        <span class=\"confidence\">Confidence: %s</span>\n", core.FormatConfidence(issue.Confidence)))
	sb.WriteString("    </summary>\n")
	sb.WriteString("    <div class=\"issue-details\">\n")
	sb.WriteString(fmt.Sprintf("        <p><strong>Location</strong>: <code>%s</code></p>\n",
		EscapeHTML(issue.Location.Text("Unknown"))))
	for _, d := range issueDetails(issue) {
		sb.WriteString(fmt.Sprintf("        <p><strong>%s</strong>: %s</p>\n", d.label, EscapeHTML(d.value)))
	}
	sb.WriteString("    </div>\n</details>\n")
}

type detail struct {
	label string
	value string
}

// issueDetails lists the severity-specific fields present on issue, in
// display order.
func issueDetails(issue review.Issue) []detail {
	var fields []detail
	add := func(label string, f review.Field) {
		if f.Present {
			fields = append(fields, detail{label: label, value: f.Value})
		}
	}

	switch issue.Severity {
	case core.SeverityCritical, core.SeverityHigh:
		add("Risk", issue.Risk)
		add("Remediation Priority", issue.RemediationPriority)
		add("Why This Matters", issue.WhyMatters)
		add("Recommendation", issue.Recommendation)
	case core.SeverityWarning:
		add("Impact", issue.Impact)
		add("Suggestion", issue.Suggestion)
	case core.SeveritySuggestion:
		add("Benefit", issue.Benefit)
		add("Recommendation", issue.Recommendation)
	}
	return fields
}

func writeObservations(sb *strings.Builder, observations []review.Observation) {
	if len(observations) == 0 {
		return
	}

	sb.WriteString("<section role=\"region\" aria-label=\"Positive observations\">\n")
	sb.WriteString("<h2>Positive Observations</h2>\n")
	sb.WriteString("<div class=\"positive-observation\">\n<ul>\n")
	for _, obs := range observations {
		sb.WriteString(fmt.Sprintf("<li><strong>%s</strong>: %s</li>\n",
			EscapeHTML(obs.Category.Text("General")), EscapeHTML(obs.Observation.Value)))
	}
	sb.WriteString("</ul>\n</div>\n</section>\n")
}

func writeSummary(sb *strings.Builder, summary review.Summary, st review.Statistics) {
	sb.WriteString("<section role=\"region\" aria-label=\"Summary\">\n")
	sb.WriteString("<h2>Summary</h2>\n<ul>\n")
	sb.WriteString(fmt.Sprintf("<li><strong>Total Issues</strong>: %d Critical, %d High, %d Warnings, %d Suggestions</li>\n",
		st.Critical, st.High, st.Warnings, st.Suggestions))
	sb.WriteString(fmt.Sprintf("<li><strong>Overall Assessment</strong>: %s</li>\n", EscapeHTML(summary.Assessment.Text("N/A"))))
	sb.WriteString(fmt.Sprintf("<li><strong>Priority Focus</strong>: %s</li>\n", EscapeHTML(summary.PriorityFocus.Text("N/A"))))
	sb.WriteString("</ul>\n")
	sb.WriteString(fmt.Sprintf("<p>%s</p>\n", EscapeHTML(summary.DetailedSummary.Text("N/A"))))
	sb.WriteString("</section>\n")
}
