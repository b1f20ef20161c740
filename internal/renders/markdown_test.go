package renders

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderMarkdown(t *testing.T) {
	result := RenderMarkdown("# Hello\n\nThis is **bold** text.")
	assert.NotEmpty(t, result)
	assert.Contains(t, result, "Hello")
}

func TestRenderMarkdown_Empty(t *testing.T) {
	result := RenderMarkdown("")
	// Should not panic on empty input
	assert.NotNil(t, result)
}

func TestWriteMarkdown_RawWhenNotTTY(t *testing.T) {
	var buf bytes.Buffer
	input := "## Critical Issues (0)\n\nNone found.\n"

	require.NoError(t, WriteMarkdown(&buf, input, false))
	assert.Equal(t, input, buf.String())
}

func TestWriteMarkdown_RenderedOnTTY(t *testing.T) {
	var buf bytes.Buffer
	input := "## Critical Issues (0)\n\nNone found.\n"

	require.NoError(t, WriteMarkdown(&buf, input, true))
	assert.Contains(t, buf.String(), "None found.")
	assert.NotEqual(t, input, buf.String())
}
