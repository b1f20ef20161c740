package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	common "github.com/sanix-darker/zreview/internal/common"
	"github.com/sanix-darker/zreview/internal/config"
	handlers "github.com/sanix-darker/zreview/internal/handlers"
	models "github.com/sanix-darker/zreview/internal/models"
)

// NewRunCmd: render both outputs from a single read of the review
func NewRunCmd(conf *config.Config, opts *rootOptions) *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run <review.json|-|URL> --html <report.html> [--comments <out.json>]",
		Short: "Render the HTML report, then the Zuul comments payload.",
		Long: `Render the HTML report, then the Zuul comments payload, from one read of
the review document. A comments failure does not undo the HTML report, but
the command still exits non-zero.`,
		Example: "zreview run review.json --html report.html --comments zuul_return.json --summary",
		Args:    inputArgs(opts, 0),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, _ := loadSource(opts, args)
			flags := cmd.Flags()
			h := handlers.NewReportHandler(*conf, getBool(flags, verboseFlag.Label))

			return withMetrics(h, metricsPath(flags, conf), func() error {
				doc, err := h.LoadHandler(cmd.Context(), src)
				if err != nil {
					return err
				}

				htmlErr := h.HTMLHandler(doc, common.GetArgByKey("html", flags))
				commentsErr := h.CommentsHandler(doc, handlers.CommentsOptions{
					Output:   common.GetArgByKey("comments", flags),
					Summary:  boolSetting(flags, summaryFlag.Label, conf.Settings.Comments.Summary),
					Validate: conf.Settings.Comments.Validate,
				})
				return errors.Join(htmlErr, commentsErr)
			})
		},
	}

	models.RegisterAll(runCmd.Flags(), []models.FlagStruct{
		verboseFlag,
		summaryFlag,
		metricsFileFlag,
		{Label: "html", Description: "HTML report path"},
		{Label: "comments", Description: "payload path, stdout when empty"},
	})
	_ = runCmd.MarkFlagRequired("html")
	return runCmd
}
