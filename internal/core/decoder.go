package core

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// WrapperKey is the key under which the reviewer CLI nests the review when
// it is invoked with a JSON schema:
//
//	{"type": "result", "structured_output": {...}, ...}
const WrapperKey = "structured_output"

// Decode parses a review document from raw reviewer output.
//
// The reviewer sometimes appends free text after the JSON object, so when a
// full parse fails only the first complete JSON value is decoded and the
// remainder is ignored. The returned mapping is the unwrapped review: when
// the outer object carries WrapperKey with an object value, that inner
// object is returned.
func Decode(raw []byte) (map[string]interface{}, error) {
	value, err := decodeTolerant(raw)
	if err != nil {
		return nil, err
	}

	obj, ok := value.(map[string]interface{})
	if !ok {
		return nil, &Error{
			Kind:    KindMalformedInput,
			Message: fmt.Sprintf("expected a JSON object at top level, got %s", jsonTypeName(value)),
		}
	}

	return unwrap(obj)
}

func decodeTolerant(raw []byte) (interface{}, error) {
	var value interface{}
	fullErr := json.Unmarshal(raw, &value)
	if fullErr == nil {
		return value, nil
	}

	// Decode only the leading JSON value; trailing bytes are never read
	// past the end of that value.
	dec := json.NewDecoder(bytes.NewReader(raw))
	var prefix interface{}
	if err := dec.Decode(&prefix); err == nil {
		return prefix, nil
	}

	return nil, malformedInput(raw, fullErr)
}

func unwrap(obj map[string]interface{}) (map[string]interface{}, error) {
	inner, present := obj[WrapperKey]
	if !present {
		return obj, nil
	}
	m, ok := inner.(map[string]interface{})
	if !ok {
		return nil, &Error{
			Kind: KindWrapperShape,
			Message: fmt.Sprintf("%s field exists but is not an object (got %s)",
				WrapperKey, jsonTypeName(inner)),
		}
	}
	return m, nil
}

// malformedInput builds the decode error, locating the original full-parse
// failure in the input text.
func malformedInput(raw []byte, cause error) *Error {
	e := &Error{
		Kind:    KindMalformedInput,
		Message: "no valid JSON found in input",
		Cause:   cause,
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(cause, &syntaxErr):
		e.Offset = syntaxErr.Offset
	case errors.As(cause, &typeErr):
		e.Offset = typeErr.Offset
	default:
		return e
	}
	e.Line, e.Column = position(raw, e.Offset)
	return e
}

// position converts a byte offset into a 1-based line and column.
func position(raw []byte, offset int64) (int, int) {
	if offset > int64(len(raw)) {
		offset = int64(len(raw))
	}
	line, col := 1, 1
	for _, b := range raw[:offset] {
		if b == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}

func jsonTypeName(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]interface{}:
		return "object"
	case []interface{}:
		return "array"
	case string:
		return "string"
	case float64, json.Number:
		return "number"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}
