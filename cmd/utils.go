/*
Copyright © 2023 sanix-darker <s4nixd@gmail.com>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	common "github.com/sanix-darker/zreview/internal/common"
	"github.com/sanix-darker/zreview/internal/config"
	handlers "github.com/sanix-darker/zreview/internal/handlers"
	models "github.com/sanix-darker/zreview/internal/models"
)

var (
	verboseFlag = models.FlagStruct{
		Label:       "verbose",
		Short:       "v",
		Description: "print progress information",
		Bool:        true,
	}
	summaryFlag = models.FlagStruct{
		Label:       "summary",
		Description: "print a breakdown of the extracted comments by level",
		Bool:        true,
	}
	metricsFileFlag = models.FlagStruct{
		Label:       "metrics-file",
		Description: "write Prometheus metrics to this textfile (.prom)",
	}
)

// inputArgs accepts the review source followed by extra positional
// arguments. The source is dropped when it comes from the clipboard.
func inputArgs(opts *rootOptions, extra int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		want := extra + 1
		if opts.fromClipboard {
			want = extra
		}
		if len(args) != want {
			return fmt.Errorf("accepts %d arg(s), received %d", want, len(args))
		}
		return nil
	}
}

// loadSource splits args into the review source and the remaining
// positional arguments.
func loadSource(opts *rootOptions, args []string) (handlers.LoadSource, []string) {
	if opts.fromClipboard {
		return handlers.LoadSource{FromClipboard: true}, args
	}
	return handlers.LoadSource{Path: args[0]}, args[1:]
}

func getBool(flags *pflag.FlagSet, key string) bool {
	value, err := flags.GetBool(key)
	if err != nil {
		return false
	}
	return value
}

// boolSetting returns the flag value when it was given, otherwise the
// configured fallback.
func boolSetting(flags *pflag.FlagSet, key string, fallback bool) bool {
	if flags.Changed(key) {
		return getBool(flags, key)
	}
	return fallback
}

// metricsPath prefers --metrics-file over the configured metrics.file.
func metricsPath(flags *pflag.FlagSet, conf *config.Config) string {
	if path := common.GetArgByKey(metricsFileFlag.Label, flags); path != "" {
		return path
	}
	return conf.Settings.Metrics.File
}

// withMetrics runs fn and writes the metrics textfile whatever the outcome,
// so failures are counted too.
func withMetrics(h *handlers.ReportHandler, path string, fn func() error) error {
	err := fn()
	if ferr := h.FlushMetrics(path); ferr != nil && err == nil {
		err = ferr
	}
	return err
}
