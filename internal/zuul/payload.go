package zuul

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/sanix-darker/zreview/internal/core"
)

// Comment is one Zuul inline comment. Field order is the wire order.
type Comment struct {
	Line    int        `json:"line"`
	Message string     `json:"message"`
	Level   core.Level `json:"level"`
}

// FileComments maps repository paths to their comments and remembers the
// order in which paths were first seen.
type FileComments struct {
	paths    []string
	comments map[string][]Comment
}

func NewFileComments() *FileComments {
	return &FileComments{comments: map[string][]Comment{}}
}

// Add appends c to the comments of path.
func (fc *FileComments) Add(path string, c Comment) {
	if _, ok := fc.comments[path]; !ok {
		fc.paths = append(fc.paths, path)
	}
	fc.comments[path] = append(fc.comments[path], c)
}

// Paths returns the commented paths in insertion order.
func (fc *FileComments) Paths() []string {
	return fc.paths
}

func (fc *FileComments) Comments(path string) []Comment {
	return fc.comments[path]
}

// Files is the number of distinct commented paths.
func (fc *FileComments) Files() int {
	return len(fc.paths)
}

// Total is the number of comments across all paths.
func (fc *FileComments) Total() int {
	n := 0
	for _, cs := range fc.comments {
		n += len(cs)
	}
	return n
}

// LevelCounts returns how many comments carry each level. Every level is
// present in the result.
func (fc *FileComments) LevelCounts() map[core.Level]int {
	counts := map[core.Level]int{}
	for _, lvl := range core.Levels {
		counts[lvl] = 0
	}
	for _, cs := range fc.comments {
		for _, c := range cs {
			counts[c.Level]++
		}
	}
	return counts
}

// SummaryLines describes the extracted comments for humans.
func (fc *FileComments) SummaryLines() []string {
	counts := fc.LevelCounts()
	return []string{
		fmt.Sprintf("Extracted %d comments across %d files", fc.Total(), fc.Files()),
		fmt.Sprintf("Breakdown: %d errors, %d warnings, %d info",
			counts[core.LevelError], counts[core.LevelWarning], counts[core.LevelInfo]),
	}
}

// MarshalJSON writes paths in insertion order.
func (fc *FileComments) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, path := range fc.paths {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := encode(path)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		value, err := encode(fc.comments[path])
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// encode marshals v without escaping <, > and &, which are common in
// review text.
func encode(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Payload is the document handed to zuul_return.
type Payload struct {
	Zuul Data `json:"zuul"`
}

type Data struct {
	FileComments *FileComments `json:"file_comments"`
}

func NewPayload(fc *FileComments) *Payload {
	if fc == nil {
		fc = NewFileComments()
	}
	return &Payload{Zuul: Data{FileComments: fc}}
}

// MarshalIndent renders the payload as two-space indented JSON followed by
// a newline.
func (p *Payload) MarshalIndent() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return nil, fmt.Errorf("failed to encode zuul payload: %w", err)
	}
	return buf.Bytes(), nil
}
