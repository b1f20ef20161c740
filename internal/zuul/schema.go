package zuul

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/sanix-darker/zreview/internal/core"
)

// PayloadSchema describes what Zuul accepts as file comments.
const PayloadSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["zuul"],
  "properties": {
    "zuul": {
      "type": "object",
      "required": ["file_comments"],
      "properties": {
        "file_comments": {
          "type": "object",
          "additionalProperties": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["message"],
              "properties": {
                "line": {"type": "integer"},
                "message": {"type": "string"},
                "level": {"enum": ["info", "warning", "error"]}
              }
            }
          }
        }
      }
    }
  }
}`

var payloadSchema = jsonschema.MustCompileString("zuul-file-comments.json", PayloadSchema)

// Validate checks payload against PayloadSchema. It never modifies or
// drops records; any violation is returned as a SchemaValidation error.
func Validate(payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return &core.Error{
			Kind:    core.KindSchemaValidation,
			Message: "payload cannot be encoded as JSON",
			Cause:   err,
		}
	}
	return ValidateJSON(data)
}

// ValidateJSON checks an encoded payload against PayloadSchema.
func ValidateJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return &core.Error{
			Kind:    core.KindMalformedInput,
			Message: "payload is not valid JSON",
			Cause:   err,
		}
	}

	err := payloadSchema.Validate(v)
	if err == nil {
		if pointer := nonIntegerLine(v); pointer != "" {
			return &core.Error{
				Kind:    core.KindSchemaValidation,
				Message: fmt.Sprintf("%s: expected integer, but got number", displayPath(pointer)),
			}
		}
		return nil
	}

	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return &core.Error{Kind: core.KindSchemaValidation, Message: "schema validation failed", Cause: err}
	}

	leaf := firstLeaf(verr)
	return &core.Error{
		Kind:    core.KindSchemaValidation,
		Message: fmt.Sprintf("%s: %s", displayPath(leaf.InstanceLocation), leaf.Message),
	}
}

// firstLeaf returns the deepest cause that sorts first by instance then
// keyword location, so the same payload always reports the same problem.
func firstLeaf(err *jsonschema.ValidationError) *jsonschema.ValidationError {
	var leaves []*jsonschema.ValidationError
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			leaves = append(leaves, e)
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(err)

	sort.SliceStable(leaves, func(i, j int) bool {
		if leaves[i].InstanceLocation != leaves[j].InstanceLocation {
			return leaves[i].InstanceLocation < leaves[j].InstanceLocation
		}
		return leaves[i].KeywordLocation < leaves[j].KeywordLocation
	})
	return leaves[0]
}

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// displayPath turns a JSON pointer such as /zuul/file_comments/f.py/0 into
// zuul.file_comments["f.py"][0].
func displayPath(pointer string) string {
	if pointer == "" || pointer == "/" {
		return "payload"
	}

	tokens := strings.Split(strings.TrimPrefix(pointer, "/"), "/")
	var sb strings.Builder
	for i, tok := range tokens {
		tok = strings.ReplaceAll(strings.ReplaceAll(tok, "~1", "/"), "~0", "~")

		// Children of file_comments are file paths, never field names.
		isPath := i == 2 && tokens[0] == "zuul" && tokens[1] == "file_comments"
		_, numErr := strconv.Atoi(tok)

		switch {
		case i == 0 && !isPath:
			sb.WriteString(tok)
		case isPath:
			sb.WriteString("[" + strconv.Quote(tok) + "]")
		case numErr == nil:
			sb.WriteString("[" + tok + "]")
		case identifier.MatchString(tok):
			sb.WriteString("." + tok)
		default:
			sb.WriteString("[" + strconv.Quote(tok) + "]")
		}
	}
	return sb.String()
}

// nonIntegerLine returns the pointer of the first line written with a
// fraction or exponent, such as 1.0. The schema accepts those as integers
// but Zuul does not. v must be decoded with UseNumber and already match
// the schema.
func nonIntegerLine(v interface{}) string {
	root, _ := v.(map[string]interface{})
	zuul, _ := root["zuul"].(map[string]interface{})
	files, _ := zuul["file_comments"].(map[string]interface{})

	paths := make([]string, 0, len(files))
	for path := range files {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	escape := strings.NewReplacer("~", "~0", "/", "~1")
	for _, path := range paths {
		comments, _ := files[path].([]interface{})
		for i, c := range comments {
			comment, _ := c.(map[string]interface{})
			line, ok := comment["line"].(json.Number)
			if ok && strings.ContainsAny(line.String(), ".eE") {
				return fmt.Sprintf("/zuul/file_comments/%s/%d/line", escape.Replace(path), i)
			}
		}
	}
	return ""
}
