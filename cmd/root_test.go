package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sanix-darker/zreview/internal/config"
	"github.com/sanix-darker/zreview/internal/core"
	"github.com/sanix-darker/zreview/internal/printers"
)

const cliReview = `{
  "context": {"change": "I42", "scope": "api", "impact": "low"},
  "statistics": {"critical": 0, "high": 1, "warnings": 0, "suggestions": 1, "total": 2},
  "issues": {
    "high": [
      {"description": "Unchecked <error>", "confidence": 0.8,
       "location": "/home/zuul/src/opendev.org/openstack/nova/nova/api.py:7", "impact": "Crash"}
    ],
    "suggestions": [
      {"description": "Rename helper", "confidence": 0.4, "location": "nova/utils.py:3"}
    ]
  },
  "summary": {"assessment": "Fine", "priority_focus": "Errors", "detailed_summary": "Minor."}
}`

type mockPrinters struct {
	mock.Mock
}

func (m *mockPrinters) Confirm(message string) bool {
	args := m.Called(message)
	return args.Bool(0)
}

type result struct {
	stdout string
	stderr string
	err    error
}

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	homedir.DisableCache = true
	t.Setenv("HOME", home)
	t.Setenv(config.EnvConfigPath, "")
	return home
}

func execute(t *testing.T, p printers.IPrinters, args ...string) result {
	t.Helper()

	conf := config.NewDefaultConfig()
	conf.Printers = p

	root := NewRootCmd(conf)
	var stdout, stderr bytes.Buffer
	root.SetArgs(args)
	root.SetIn(strings.NewReader(cliReview))
	root.SetOut(&stdout)
	root.SetErr(&stderr)

	err := root.Execute()
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func writeInput(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "review.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestHTMLCmd(t *testing.T) {
	dir := isolateHome(t)
	out := filepath.Join(dir, "report.html")

	res := execute(t, printers.Static(false), "html", writeInput(t, dir, cliReview), out, "-v")
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, "✓ HTML report generated: "+out)
	assert.Contains(t, res.stderr, "Loaded review data from")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Unchecked &lt;error&gt;")
}

func TestHTMLCmd_ArgCount(t *testing.T) {
	isolateHome(t)

	res := execute(t, printers.Static(false), "html", "review.json")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "accepts 2 arg(s), received 1")
}

func TestCommentsCmd_Stdin(t *testing.T) {
	isolateHome(t)

	res := execute(t, printers.Static(false), "comments", "-", "--summary")
	require.NoError(t, res.err)

	var payload map[string]map[string]map[string][]map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &payload))

	files := payload["zuul"]["file_comments"]
	require.Len(t, files, 2)
	assert.Equal(t, "error", files["nova/api.py"][0]["level"])
	assert.Equal(t, float64(7), files["nova/api.py"][0]["line"])
	assert.Equal(t, "info", files["nova/utils.py"][0]["level"])

	assert.Contains(t, res.stderr, "Extracted 2 comments across 2 files")
	assert.Contains(t, res.stderr, "Breakdown: 1 errors, 0 warnings, 1 info")
}

func TestCommentsCmd_OutputAndMetrics(t *testing.T) {
	dir := isolateHome(t)
	out := filepath.Join(dir, "zuul_return.json")
	prom := filepath.Join(dir, "zreview.prom")

	res := execute(t, printers.Static(false), "comments", writeInput(t, dir, cliReview),
		"-o", out, "--metrics-file", prom)
	require.NoError(t, res.err)
	assert.Empty(t, res.stdout)

	payload, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(payload), "}\n"))

	metrics, err := os.ReadFile(prom)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), `zreview_comments_total{level="error"} 1`)
}

func TestCommentsCmd_MalformedInput(t *testing.T) {
	dir := isolateHome(t)

	res := execute(t, printers.Static(false), "comments", writeInput(t, dir, "{\n  \"issues\": oops\n}"))
	require.Error(t, res.err)
	assert.True(t, errors.Is(res.err, core.ErrMalformedInput))
	assert.Contains(t, res.err.Error(), "line 2")
	assert.Empty(t, res.stdout)
}

func TestRunCmd(t *testing.T) {
	dir := isolateHome(t)
	htmlOut := filepath.Join(dir, "report.html")
	commentsOut := filepath.Join(dir, "zuul_return.json")

	res := execute(t, printers.Static(false), "run", writeInput(t, dir, cliReview),
		"--html", htmlOut, "--comments", commentsOut)
	require.NoError(t, res.err)
	assert.FileExists(t, htmlOut)
	assert.FileExists(t, commentsOut)
}

func TestRunCmd_HTMLFailureStillWritesComments(t *testing.T) {
	dir := isolateHome(t)
	htmlOut := filepath.Join(dir, "report.html")
	commentsOut := filepath.Join(dir, "zuul_return.json")
	input := writeInput(t, dir, `{"issues": {"critical": [{"description": "d", "location": "a.py:1"}]}}`)

	res := execute(t, printers.Static(false), "run", input, "--html", htmlOut, "--comments", commentsOut)
	require.Error(t, res.err)
	assert.True(t, errors.Is(res.err, core.ErrMissingSection))
	assert.NoFileExists(t, htmlOut)
	assert.FileExists(t, commentsOut)
}

func TestRunCmd_RequiresHTML(t *testing.T) {
	isolateHome(t)

	res := execute(t, printers.Static(false), "run", "-")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), `"html"`)
}

func TestValidateCmd(t *testing.T) {
	dir := isolateHome(t)
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"zuul": {"file_comments": {"f.py": "not-a-list"}}}`), 0o644))

	res := execute(t, printers.Static(false), "validate", bad)
	require.Error(t, res.err)
	assert.True(t, errors.Is(res.err, core.ErrSchemaValidation))
	assert.Contains(t, res.err.Error(), "f.py")
}

func TestShowCmd_PlainWhenNotATerminal(t *testing.T) {
	isolateHome(t)

	res := execute(t, printers.Static(false), "show", "-")
	require.NoError(t, res.err)
	assert.True(t, strings.HasPrefix(res.stdout, "# Code Review"))
	assert.Contains(t, res.stdout, "## High Issues (1)")
}

func TestConfigInit(t *testing.T) {
	home := isolateHome(t)
	cfgPath := filepath.Join(home, ".config", "zreview", "config.yml")

	res := execute(t, printers.Static(false), "config", "init")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Config file created at "+cfgPath)
	assert.FileExists(t, cfgPath)
}

func TestConfigInit_AsksBeforeOverwrite(t *testing.T) {
	home := isolateHome(t)
	cfgPath := filepath.Join(home, ".config", "zreview", "config.yml")
	require.NoError(t, os.MkdirAll(filepath.Dir(cfgPath), 0o755))
	require.NoError(t, os.WriteFile(cfgPath, []byte("debug: true\n"), 0o644))

	declined := &mockPrinters{}
	declined.On("Confirm", mock.MatchedBy(func(msg string) bool {
		return strings.Contains(msg, cfgPath)
	})).Return(false).Once()

	res := execute(t, declined, "config", "init")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Config file already exists at "+cfgPath)
	declined.AssertExpectations(t)

	data, err := os.ReadFile(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "debug: true\n", string(data))

	accepted := &mockPrinters{}
	accepted.On("Confirm", mock.Anything).Return(true).Once()

	res = execute(t, accepted, "config", "init")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Config file created at "+cfgPath)
	accepted.AssertExpectations(t)

	data, err = os.ReadFile(cfgPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "execution_roots")
}

func TestConfigShow_NoFile(t *testing.T) {
	isolateHome(t)

	res := execute(t, printers.Static(false), "config", "show")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "No config file found at")
	assert.Contains(t, res.stdout, "Default configuration:")
}

func TestConfigEffective_EnvOverride(t *testing.T) {
	isolateHome(t)
	t.Setenv("ZREVIEW_HTML_TITLE", "Nightly Review")

	res := execute(t, printers.Static(false), "config", "effective")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "title: Nightly Review")
}

func TestConfigValidate(t *testing.T) {
	dir := isolateHome(t)
	cfgPath := filepath.Join(dir, "bad.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("paths:\n  execution_roots:\n    - relative/\n"), 0o644))

	res := execute(t, printers.Static(false), "--config", cfgPath, "config", "validate")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "paths.execution_roots")

	res = execute(t, printers.Static(false), "config", "validate")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Configuration is valid.")
}

func TestConfig_MissingExplicitFile(t *testing.T) {
	dir := isolateHome(t)

	res := execute(t, printers.Static(false), "--config", filepath.Join(dir, "nope.yml"), "version")
	require.Error(t, res.err)
	assert.True(t, errors.Is(res.err, core.ErrIO))
}

func TestVersionCmd(t *testing.T) {
	isolateHome(t)

	res := execute(t, printers.Static(false), "version")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "zreview - ")
	assert.Contains(t, res.stdout, "Go version")
}

func TestManCmd(t *testing.T) {
	isolateHome(t)

	res := execute(t, printers.Static(false), "man")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, ".TH")
	assert.Contains(t, res.stdout, "zreview")
}
