package zuul

import (
	"encoding/json"
	"testing"

	"github.com/sanix-darker/zreview/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayload_MarshalIndent(t *testing.T) {
	fc := NewFileComments()
	fc.Add("z.py", Comment{Line: 3, Message: "a < b && c > d", Level: core.LevelError})
	fc.Add("a.py", Comment{Line: 1, Message: "m", Level: core.LevelInfo})

	out, err := NewPayload(fc).MarshalIndent()
	require.NoError(t, err)

	want := `{
  "zuul": {
    "file_comments": {
      "z.py": [
        {
          "line": 3,
          "message": "a < b && c > d",
          "level": "error"
        }
      ],
      "a.py": [
        {
          "line": 1,
          "message": "m",
          "level": "info"
        }
      ]
    }
  }
}
`
	assert.Equal(t, want, string(out))
}

func TestPayload_Empty(t *testing.T) {
	out, err := NewPayload(nil).MarshalIndent()
	require.NoError(t, err)
	assert.JSONEq(t, `{"zuul": {"file_comments": {}}}`, string(out))
}

func TestPayload_RoundTripsAsJSON(t *testing.T) {
	fc := NewFileComments()
	fc.Add("nova/api.py", Comment{Line: 7, Message: "line one\nline two", Level: core.LevelWarning})

	out, err := NewPayload(fc).MarshalIndent()
	require.NoError(t, err)

	var decoded map[string]map[string]map[string][]Comment
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, []Comment{{Line: 7, Message: "line one\nline two", Level: core.LevelWarning}},
		decoded["zuul"]["file_comments"]["nova/api.py"])
}

func TestFileComments_Counts(t *testing.T) {
	fc := NewFileComments()
	fc.Add("a.py", Comment{Line: 1, Level: core.LevelError})
	fc.Add("a.py", Comment{Line: 2, Level: core.LevelError})
	fc.Add("b.py", Comment{Line: 1, Level: core.LevelInfo})

	assert.Equal(t, 2, fc.Files())
	assert.Equal(t, 3, fc.Total())
	assert.Equal(t, map[core.Level]int{core.LevelError: 2, core.LevelWarning: 0, core.LevelInfo: 1}, fc.LevelCounts())
	assert.Equal(t, []string{
		"Extracted 3 comments across 2 files",
		"Breakdown: 2 errors, 0 warnings, 1 info",
	}, fc.SummaryLines())
}
