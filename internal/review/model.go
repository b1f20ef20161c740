package review

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/sanix-darker/zreview/internal/core"
)

// FromMap builds a Document from a decoded review object. It never fails:
// absent sections stay zero-valued and values of the wrong type are read
// as their nearest sensible equivalent.
func FromMap(m map[string]interface{}) *Document {
	doc := &Document{
		issues:       map[core.Severity][]Issue{},
		Unrecognized: map[string]int{},
		sections:     map[string]bool{},
	}
	for key := range m {
		doc.sections[key] = true
	}

	ctx := asObject(m[SectionContext])
	doc.Context = Context{
		Change: field(ctx, "change"),
		Scope:  field(ctx, "scope"),
		Impact: field(ctx, "impact"),
	}

	stats := asObject(m[SectionStatistics])
	doc.Statistics = Statistics{
		Critical:    asInt(stats["critical"]),
		High:        asInt(stats["high"]),
		Warnings:    asInt(stats["warnings"]),
		Suggestions: asInt(stats["suggestions"]),
		Total:       asInt(stats["total"]),
	}

	issues := asObject(m[SectionIssues])
	for _, key := range sortedKeys(issues) {
		entries := asList(issues[key])
		sev, known := core.SeverityForKey(key)
		if !known {
			doc.Unrecognized[key] += len(entries)
			continue
		}
		for _, entry := range entries {
			obj, ok := entry.(map[string]interface{})
			if !ok {
				continue
			}
			doc.issues[sev] = append(doc.issues[sev], issueFromMap(sev, obj))
		}
	}

	for _, entry := range asList(m[SectionPositiveObservations]) {
		obj, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		doc.PositiveObservations = append(doc.PositiveObservations, Observation{
			Category:    field(obj, "category"),
			Observation: field(obj, "observation"),
		})
	}

	summary := asObject(m[SectionSummary])
	doc.Summary = Summary{
		Assessment:      field(summary, "assessment"),
		PriorityFocus:   field(summary, "priority_focus"),
		DetailedSummary: field(summary, "detailed_summary"),
	}

	return doc
}

func issueFromMap(sev core.Severity, obj map[string]interface{}) Issue {
	return Issue{
		Severity:            sev,
		Description:         field(obj, "description").Text("No description"),
		Confidence:          asFloat(obj["confidence"]),
		Location:            field(obj, "location"),
		Risk:                field(obj, "risk"),
		RemediationPriority: field(obj, "remediation_priority"),
		WhyMatters:          field(obj, "why_matters"),
		Recommendation:      field(obj, "recommendation"),
		Impact:              field(obj, "impact"),
		Suggestion:          field(obj, "suggestion"),
		Benefit:             field(obj, "benefit"),
	}
}

// RequireSections fails with a MissingSection error naming every section
// in keys that was absent from the input.
func (d *Document) RequireSections(keys ...string) error {
	var missing []string
	for _, k := range keys {
		if !d.Has(k) {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return core.MissingSectionError(missing)
	}
	return nil
}

// UnrecognizedKeys returns the unknown issue keys in sorted order.
func (d *Document) UnrecognizedKeys() []string {
	return sortedKeys(d.Unrecognized)
}

func field(obj map[string]interface{}, key string) Field {
	v, ok := obj[key]
	if !ok {
		return Field{}
	}
	return Field{Value: stringify(v), Present: true}
}

// stringify renders a JSON value as display text.
func stringify(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

func asObject(v interface{}) map[string]interface{} {
	if m, ok := v.(map[string]interface{}); ok {
		return m
	}
	return nil
}

func asList(v interface{}) []interface{} {
	if l, ok := v.([]interface{}); ok {
		return l
	}
	return nil
}

func asFloat(v interface{}) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func asInt(v interface{}) int {
	return int(asFloat(v))
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
