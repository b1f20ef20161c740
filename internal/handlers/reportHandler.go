package handlers

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	common "github.com/sanix-darker/zreview/internal/common"
	config "github.com/sanix-darker/zreview/internal/config"
	core "github.com/sanix-darker/zreview/internal/core"
	"github.com/sanix-darker/zreview/internal/metrics"
	"github.com/sanix-darker/zreview/internal/renders"
	"github.com/sanix-darker/zreview/internal/review"
	"github.com/sanix-darker/zreview/internal/zuul"
)

// ErrDrift is returned when a rendered payload differs from its golden file.
var ErrDrift = errors.New("comments payload drifted from golden file")

// ReportHandler runs the review pipeline stages for one invocation.
type ReportHandler struct {
	Conf    config.Config
	Metrics *metrics.Recorder
	Verbose bool
}

func NewReportHandler(conf config.Config, verbose bool) *ReportHandler {
	return &ReportHandler{
		Conf:    conf,
		Metrics: metrics.NewRecorder(),
		Verbose: verbose,
	}
}

// LoadSource selects the input: a path, "-", a URL, or the clipboard.
type LoadSource struct {
	Path          string
	FromClipboard bool
}

func (s LoadSource) String() string {
	if s.FromClipboard {
		return "clipboard"
	}
	if s.Path == common.StdinSource {
		return "stdin"
	}
	return s.Path
}

// LoadHandler reads and decodes a review document.
func (h *ReportHandler) LoadHandler(ctx context.Context, src LoadSource) (*review.Document, error) {
	raw, err := h.read(ctx, src)
	if err != nil {
		return nil, h.fail(err)
	}

	decoded, err := core.Decode(raw)
	if err != nil {
		var perr *core.Error
		if errors.As(err, &perr) && perr.Path == "" {
			perr.Path = src.String()
		}
		return nil, h.fail(err)
	}

	doc := review.FromMap(decoded)
	h.logf("Loaded review data from %s", src)
	h.logf("Statistics: %d total issues", doc.Statistics.Total)

	if sum := doc.Statistics.Sum(); sum != doc.Statistics.Total {
		h.debugf("declared total %d differs from the sum of counts %d", doc.Statistics.Total, sum)
	}

	for _, sev := range core.Severities {
		h.Metrics.Issues.WithLabelValues(string(sev)).Add(float64(len(doc.Issues(sev))))
	}
	for _, key := range doc.UnrecognizedKeys() {
		n := doc.Unrecognized[key]
		h.Metrics.UnknownSeverities.WithLabelValues(key).Add(float64(n))
		common.LogWarn(h.Conf.ErrWriter,
			fmt.Sprintf("ignoring %d issues with unrecognized severity %q", n, key))
	}

	return doc, nil
}

func (h *ReportHandler) read(ctx context.Context, src LoadSource) ([]byte, error) {
	if src.FromClipboard {
		value, err := common.GetClipboardValue()
		if err != nil {
			return nil, core.IOError("clipboard", "failed to read input", err)
		}
		return []byte(value), nil
	}

	opts := common.InputOptions{
		Stdin:   h.Conf.InReader,
		Timeout: h.Conf.Settings.Fetch.Timeout,
	}
	if common.IsTerminal(h.Conf.ErrWriter) {
		opts.Progress = h.Conf.ErrWriter
	}
	return common.ReadInput(ctx, src.Path, opts)
}

// HTMLHandler renders doc and writes it to outPath.
func (h *ReportHandler) HTMLHandler(doc *review.Document, outPath string) error {
	if err := doc.RequireSections(review.HTMLSections...); err != nil {
		return h.fail(err)
	}

	start := time.Now()
	html := renders.RenderHTML(doc, renders.HTMLOptions{Title: h.Conf.Settings.HTML.Title})
	h.Metrics.ObserveRender("html", start)

	if err := common.WriteFileAtomic(outPath, []byte(html), 0o644); err != nil {
		return h.fail(err)
	}

	common.LogInfo(h.Conf.ErrWriter, fmt.Sprintf("✓ HTML report generated: %s", outPath), nil)
	h.logf("  File size: %d bytes", len(html))
	return nil
}

// CommentsOptions tunes CommentsHandler.
type CommentsOptions struct {
	// Output is the payload file; empty writes to the configured stdout.
	Output   string
	Summary  bool
	Validate bool

	// RepoPath, when set, checks every commented path against HEAD.
	RepoPath string

	// GoldenPath, when set, compares the payload to this file instead of
	// writing it.
	GoldenPath string
}

// CommentsHandler builds, validates and emits the Zuul payload. Nothing is
// written when validation fails.
func (h *ReportHandler) CommentsHandler(doc *review.Document, opts CommentsOptions) error {
	start := time.Now()
	normalizer := core.NewLocationNormalizer(h.Conf.Settings.Paths.ExecutionRoots)
	fc, stats := zuul.BuildFileComments(doc, normalizer)
	payload := zuul.NewPayload(fc)

	out, err := payload.MarshalIndent()
	if err != nil {
		return h.fail(err)
	}
	h.Metrics.ObserveRender("comments", start)

	h.Metrics.MissingLocations.Add(float64(stats.MissingLocation))
	h.Metrics.LocationFailures.Add(float64(stats.Unparseable))
	if stats.Skipped() > 0 {
		h.logf("Skipped %d of %d issues without a usable location", stats.Skipped(), stats.Issues)
	}
	for level, n := range fc.LevelCounts() {
		h.Metrics.Comments.WithLabelValues(string(level)).Add(float64(n))
	}

	if opts.Validate {
		if err := zuul.ValidateJSON(out); err != nil {
			common.LogError(h.Conf.ErrWriter, "Schema validation failed")
			return h.fail(err)
		}
		h.logf("Schema validation passed")
	}

	if opts.RepoPath != "" {
		h.auditPaths(opts.RepoPath, fc.Paths())
	}

	if opts.Summary {
		for _, line := range fc.SummaryLines() {
			common.LogInfo(h.Conf.ErrWriter, line, nil)
		}
	}

	if opts.GoldenPath != "" {
		return h.checkGolden(opts.GoldenPath, out)
	}

	if opts.Output == "" {
		if _, err := h.Conf.OutWriter.Write(out); err != nil {
			return h.fail(core.IOError("stdout", "failed to write output", err))
		}
		return nil
	}

	if err := common.WriteFileAtomic(opts.Output, out, 0o644); err != nil {
		return h.fail(err)
	}
	h.logf("✓ Zuul return data written to %s", opts.Output)
	return nil
}

// auditPaths warns about commented paths absent from the repository. Zuul
// drops such comments, so they are reported but kept.
func (h *ReportHandler) auditPaths(repoPath string, paths []string) {
	missing, err := core.MissingPaths(repoPath, paths)
	if err != nil {
		common.LogWarn(h.Conf.ErrWriter, fmt.Sprintf("path audit skipped: %v", err))
		return
	}
	for _, p := range missing {
		common.LogWarn(h.Conf.ErrWriter, fmt.Sprintf("%s is not in %s at HEAD", p, repoPath))
	}
}

func (h *ReportHandler) checkGolden(goldenPath string, out []byte) error {
	golden, err := os.ReadFile(goldenPath)
	if err != nil {
		return h.fail(core.IOError(goldenPath, "failed to read golden file", err))
	}

	drift := core.BuildDrift(string(golden), string(out))
	if drift == "" {
		h.logf("Payload matches %s", goldenPath)
		return nil
	}

	common.LogInfo(h.Conf.ErrWriter, drift, nil)
	return fmt.Errorf("%w: %s", ErrDrift, goldenPath)
}

// ValidateFileHandler checks an existing payload file against the schema.
func (h *ReportHandler) ValidateFileHandler(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return h.fail(core.IOError(path, "failed to read payload", err))
	}
	if err := zuul.ValidateJSON(data); err != nil {
		return h.fail(err)
	}
	common.LogInfo(h.Conf.ErrWriter, "Schema validation passed", nil)
	return nil
}

// FlushMetrics writes the metrics textfile when one is configured.
func (h *ReportHandler) FlushMetrics(path string) error {
	if path == "" {
		return nil
	}
	if err := h.Metrics.WriteTextfile(path); err != nil {
		return core.IOError(path, "failed to write metrics", err)
	}
	h.debugf("metrics written to %s", path)
	return nil
}

// fail counts err by kind and returns it unchanged.
func (h *ReportHandler) fail(err error) error {
	kind := "other"
	var perr *core.Error
	if errors.As(err, &perr) {
		kind = string(perr.Kind)
	}
	h.Metrics.Failures.WithLabelValues(kind).Inc()
	return err
}

func (h *ReportHandler) logf(format string, args ...interface{}) {
	if h.Verbose {
		common.LogInfo(h.Conf.ErrWriter, fmt.Sprintf(format, args...), nil)
	}
}

func (h *ReportHandler) debugf(format string, args ...interface{}) {
	common.LogDebug(h.Conf.ErrWriter, h.Conf.Settings.Debug, fmt.Sprintf(format, args...))
}
