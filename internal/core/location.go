package core

import (
	"regexp"
	"strconv"
	"strings"
)

// locationPattern accepts "path:line" and "path:start-end". The path may
// not contain a colon.
var locationPattern = regexp.MustCompile(`^([^:]+):(\d+)(?:-\d+)?$`)

// DefaultExecutionRoots are the Zuul checkout prefixes, most specific first.
var DefaultExecutionRoots = []string{
	"/home/zuul/src/review.opendev.org/",
	"/home/zuul/src/opendev.org/",
	"/home/zuul/src/",
}

// Location is a repository-relative file path with a 1-based line.
type Location struct {
	Path string
	Line int
}

// LocationNormalizer turns reviewer location strings into repo-relative
// locations. Prefixes is the ordered list of execution roots to strip.
type LocationNormalizer struct {
	Prefixes []string
}

// NewLocationNormalizer returns a normalizer using prefixes, or the Zuul
// defaults when prefixes is empty.
func NewLocationNormalizer(prefixes []string) LocationNormalizer {
	if len(prefixes) == 0 {
		prefixes = DefaultExecutionRoots
	}
	return LocationNormalizer{Prefixes: prefixes}
}

// Normalize parses raw. ok is false when raw does not match the location
// grammar, the line is not a positive integer, or nothing is left of the
// path after normalization; callers skip the issue in that case.
func (n LocationNormalizer) Normalize(raw string) (Location, bool) {
	match := locationPattern.FindStringSubmatch(raw)
	if match == nil {
		return Location{}, false
	}

	line, err := strconv.Atoi(match[2])
	if err != nil || line <= 0 {
		return Location{}, false
	}

	path := n.NormalizePath(match[1])
	if path == "" {
		return Location{}, false
	}
	return Location{Path: path, Line: line}, true
}

// NormalizePath makes path relative to the repository root.
//
// A known execution root is stripped together with the org/project pair
// that follows it. Any other absolute path loses its leading slashes and,
// when at least three segments exist, its first two segments.
func (n LocationNormalizer) NormalizePath(path string) string {
	prefixes := n.Prefixes
	if len(prefixes) == 0 {
		prefixes = DefaultExecutionRoots
	}

	for _, prefix := range prefixes {
		if !strings.HasPrefix(path, prefix) {
			continue
		}
		rest := strings.TrimPrefix(path, prefix)
		if parts := strings.SplitN(rest, "/", 3); len(parts) == 3 {
			return parts[2]
		}
		return rest
	}

	if strings.HasPrefix(path, "/") {
		stripped := strings.TrimLeft(path, "/")
		if parts := strings.SplitN(stripped, "/", 3); len(parts) == 3 {
			return parts[2]
		}
		return stripped
	}

	return path
}
