package renders

import (
	"strings"
	"testing"

	"github.com/sanix-darker/zreview/internal/review"
	"github.com/stretchr/testify/assert"
)

func testDocument() *review.Document {
	return review.FromMap(map[string]interface{}{
		"context": map[string]interface{}{"change": "I1234", "scope": "compute"},
		"statistics": map[string]interface{}{
			"critical": float64(2), "high": float64(0),
			"warnings": float64(1), "suggestions": float64(1),
			"total": float64(99),
		},
		"issues": map[string]interface{}{
			"critical": []interface{}{
				map[string]interface{}{
					"description":          "SQL injection",
					"confidence":           0.95,
					"location":             "nova/db/api.py:10",
					"risk":                 "High",
					"remediation_priority": "Immediate",
					"why_matters":          "Data loss",
					"recommendation":       "Use bound parameters",
					"impact":               "ignored for critical",
				},
				map[string]interface{}{
					"description": "Unchecked path",
					"confidence":  0.8,
					"location":    "not-a-location",
				},
			},
			"warnings": []interface{}{
				map[string]interface{}{
					"description": "Broad except",
					"confidence":  0.6,
					"impact":      "Hides bugs",
					"suggestion":  "Catch specific errors",
				},
			},
			"suggestions": []interface{}{
				map[string]interface{}{
					"description":    "Add type hints",
					"confidence":     0.4,
					"benefit":        "Readability",
					"recommendation": "Annotate public functions",
				},
			},
		},
		"positive_observations": []interface{}{
			map[string]interface{}{"category": "Testing", "observation": "Good unit tests"},
		},
		"summary": map[string]interface{}{
			"assessment":       "Request changes",
			"priority_focus":   "Security",
			"detailed_summary": "Fix the injection first.",
		},
	})
}

func TestRenderHTML_Document(t *testing.T) {
	out := RenderHTML(testDocument(), HTMLOptions{})

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>\n"))
	assert.Contains(t, out, "<title>Code Review Report</title>")
	assert.Contains(t, out, "<h1>Code Review Report</h1>")
	assert.Contains(t, out, "<style>")
	assert.NotContains(t, out, "<link")
	assert.NotContains(t, out, "<script")
	assert.True(t, strings.HasSuffix(out, "</html>\n"))
}

func TestRenderHTML_OneHeaderPerSeverity(t *testing.T) {
	for _, doc := range []*review.Document{
		testDocument(),
		review.FromMap(map[string]interface{}{}),
	} {
		out := RenderHTML(doc, HTMLOptions{})
		for _, h := range []string{"Critical Issues", "High Issues", "Warnings", "Suggestions"} {
			assert.Equal(t, 1, strings.Count(out, "<h2>"+h+"</h2>"), h)
		}
	}
}

func TestRenderHTML_SeverityOrder(t *testing.T) {
	out := RenderHTML(testDocument(), HTMLOptions{})

	crit := strings.Index(out, "<h2>Critical Issues</h2>")
	high := strings.Index(out, "<h2>High Issues</h2>")
	warn := strings.Index(out, "<h2>Warnings</h2>")
	sugg := strings.Index(out, "<h2>Suggestions</h2>")
	obs := strings.Index(out, "<h2>Positive Observations</h2>")
	summary := strings.Index(out, "<h2>Summary</h2>")

	assert.Greater(t, crit, -1)
	assert.Greater(t, high, crit)
	assert.Greater(t, warn, high)
	assert.Greater(t, sugg, warn)
	assert.Greater(t, obs, sugg)
	assert.Greater(t, summary, obs)
}

func TestRenderHTML_EmptySeverity(t *testing.T) {
	out := RenderHTML(testDocument(), HTMLOptions{})
	assert.Contains(t, out, "<h2>High Issues</h2><p>None found.</p>")
	assert.NotContains(t, out, "<h2>Critical Issues</h2><p>None found.</p>")
}

func TestRenderHTML_IssueCards(t *testing.T) {
	out := RenderHTML(testDocument(), HTMLOptions{})

	assert.Equal(t, 4, strings.Count(out, "<details class=\"issue-card"))
	assert.Contains(t, out, "<details class=\"issue-card critical\" open>")
	assert.Contains(t, out, "<span class=\"severity-badge severity-critical\">")
	assert.Contains(t, out, "⛔")
	assert.Contains(t, out, "1 of 2")
	assert.Contains(t, out, "2 of 2")
	assert.Contains(t, out, "1 of 1")
	assert.Contains(t, out, "Confidence: 1.0")
	assert.Contains(t, out, "Confidence: 0.8")
	assert.Contains(t, out, "<code>nova/db/api.py:10</code>")
}

func TestRenderHTML_UnparseableLocationStillRendered(t *testing.T) {
	out := RenderHTML(testDocument(), HTMLOptions{})
	assert.Contains(t, out, "Unchecked path")
	assert.Contains(t, out, "<code>not-a-location</code>")
}

func TestRenderHTML_MissingLocation(t *testing.T) {
	out := RenderHTML(testDocument(), HTMLOptions{})
	assert.Contains(t, out, "<code>Unknown</code>")
}

func TestRenderHTML_SeveritySpecificFields(t *testing.T) {
	out := RenderHTML(testDocument(), HTMLOptions{})

	risk := strings.Index(out, "<strong>Risk</strong>: High")
	prio := strings.Index(out, "<strong>Remediation Priority</strong>: Immediate")
	why := strings.Index(out, "<strong>Why This Matters</strong>: Data loss")
	rec := strings.Index(out, "<strong>Recommendation</strong>: Use bound parameters")
	assert.Greater(t, risk, -1)
	assert.Greater(t, prio, risk)
	assert.Greater(t, why, prio)
	assert.Greater(t, rec, why)

	// Fields that do not belong to the severity are not shown.
	assert.NotContains(t, out, "ignored for critical")

	assert.Contains(t, out, "<strong>Impact</strong>: Hides bugs")
	assert.Contains(t, out, "<strong>Suggestion</strong>: Catch specific errors")
	assert.Contains(t, out, "<strong>Benefit</strong>: Readability")
	assert.Contains(t, out, "<strong>Recommendation</strong>: Annotate public functions")
}

func TestRenderHTML_StatisticsTotalIsSum(t *testing.T) {
	out := RenderHTML(testDocument(), HTMLOptions{})

	assert.Contains(t, out, "aria-label=\"4 total findings\">4</div>")
	assert.NotContains(t, out, ">99<")
	assert.Contains(t, out, "<strong>Total Issues</strong>: 2 Critical, 0 High, 1 Warnings, 1 Suggestions")
}

func TestRenderHTML_ContextAndSummary(t *testing.T) {
	out := RenderHTML(testDocument(), HTMLOptions{})

	assert.Contains(t, out, "<li><strong>Change</strong>: I1234</li>")
	assert.Contains(t, out, "<li><strong>Impact</strong>: N/A</li>")
	assert.Contains(t, out, "<li><strong>Overall Assessment</strong>: Request changes</li>")
	assert.Contains(t, out, "<p>Fix the injection first.</p>")
	assert.Contains(t, out, "<li><strong>Testing</strong>: Good unit tests</li>")
}

func TestRenderHTML_NoObservationsSection(t *testing.T) {
	out := RenderHTML(review.FromMap(map[string]interface{}{}), HTMLOptions{})
	assert.NotContains(t, out, "Positive Observations")
}

func TestRenderHTML_EscapesText(t *testing.T) {
	doc := review.FromMap(map[string]interface{}{
		"issues": map[string]interface{}{
			"high": []interface{}{
				map[string]interface{}{
					"description": "<script>alert(1)</script>",
					"location":    "a&b.py:1",
					"risk":        `say "hi" it's`,
				},
			},
		},
	})

	out := RenderHTML(doc, HTMLOptions{})
	assert.Contains(t, out, "&lt;script&gt;alert(1)&lt;/script&gt;")
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "<code>a&amp;b.py:1</code>")
	assert.Contains(t, out, "say &quot;hi&quot; it&#39;s")
}

func TestRenderHTML_EscapesEveryFreeTextField(t *testing.T) {
	tag := func(field string) string { return "<" + field + ">" }
	doc := review.FromMap(map[string]interface{}{
		"context": map[string]interface{}{
			"change": tag("change"), "scope": tag("scope"), "impact": tag("ctx-impact"),
		},
		"statistics": map[string]interface{}{"high": float64(1), "warnings": float64(1), "suggestions": float64(1)},
		"issues": map[string]interface{}{
			"high": []interface{}{
				map[string]interface{}{
					"description":          tag("high-desc"),
					"location":             tag("loc") + ":1",
					"risk":                 tag("risk"),
					"remediation_priority": tag("priority"),
					"why_matters":          tag("why"),
					"recommendation":       tag("high-rec"),
				},
			},
			"warnings": []interface{}{
				map[string]interface{}{
					"description": tag("warn-desc"),
					"impact":      tag("warn-impact"),
					"suggestion":  tag("suggestion"),
				},
			},
			"suggestions": []interface{}{
				map[string]interface{}{
					"description":    tag("sugg-desc"),
					"benefit":        tag("benefit"),
					"recommendation": tag("sugg-rec"),
				},
			},
		},
		"positive_observations": []interface{}{
			map[string]interface{}{"category": tag("category"), "observation": tag("observation")},
		},
		"summary": map[string]interface{}{
			"assessment":       tag("assessment"),
			"priority_focus":   tag("focus"),
			"detailed_summary": tag("detailed"),
		},
	})

	out := RenderHTML(doc, HTMLOptions{})
	for _, field := range []string{
		"change", "scope", "ctx-impact",
		"high-desc", "loc", "risk", "priority", "why", "high-rec",
		"warn-desc", "warn-impact", "suggestion",
		"sugg-desc", "benefit", "sugg-rec",
		"category", "observation",
		"assessment", "focus", "detailed",
	} {
		assert.Contains(t, out, "&lt;"+field+"&gt;", field)
		assert.NotContains(t, out, tag(field), field)
	}
}

func TestRenderHTML_CustomTitle(t *testing.T) {
	out := RenderHTML(review.FromMap(map[string]interface{}{}), HTMLOptions{Title: "Nova <review>"})
	assert.Contains(t, out, "<title>Nova &lt;review&gt;</title>")
	assert.Contains(t, out, "<h1>Nova &lt;review&gt;</h1>")
}

func TestRenderHTML_Deterministic(t *testing.T) {
	first := RenderHTML(testDocument(), HTMLOptions{})
	second := RenderHTML(testDocument(), HTMLOptions{})
	assert.Equal(t, first, second)
}

func TestEscapeHTML(t *testing.T) {
	assert.Equal(t, "&amp;lt;", EscapeHTML("&lt;"))
	assert.Equal(t, "&lt;&gt;&amp;&quot;&#39;", EscapeHTML(`<>&"'`))
	assert.Equal(t, "plain", EscapeHTML("plain"))
}
