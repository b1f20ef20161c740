package core

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// BuildDrift compares a freshly rendered output against a previously
// stored one. It returns an empty string when both are identical, and
// otherwise a line-oriented "+ / -" report of the differences.
func BuildDrift(expected, actual string) string {
	if expected == actual {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(expected, actual)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var changes []string
	for _, diff := range diffs {
		switch diff.Type {
		case diffmatchpatch.DiffInsert:
			changes = append(changes, prefixLines("+ ", diff.Text)...)
		case diffmatchpatch.DiffDelete:
			changes = append(changes, prefixLines("- ", diff.Text)...)
		}
	}
	return strings.Join(changes, "\n")
}

func prefixLines(prefix, text string) []string {
	text = strings.TrimSuffix(text, "\n")
	var out []string
	for _, line := range strings.Split(text, "\n") {
		out = append(out, fmt.Sprintf("%s%s", prefix, line))
	}
	return out
}
