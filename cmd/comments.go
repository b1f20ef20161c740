package cmd

import (
	"github.com/spf13/cobra"

	common "github.com/sanix-darker/zreview/internal/common"
	"github.com/sanix-darker/zreview/internal/config"
	handlers "github.com/sanix-darker/zreview/internal/handlers"
	models "github.com/sanix-darker/zreview/internal/models"
)

// NewCommentsCmd: build the Zuul file_comments payload for inline comments
func NewCommentsCmd(conf *config.Config, opts *rootOptions) *cobra.Command {
	commentsCmd := &cobra.Command{
		Use:   "comments <review.json|-|URL>",
		Short: "Build the Zuul file_comments payload from a review document.",
		Example: "zreview comments review.json -o zuul_return.json --summary\n" +
			"zreview comments review.json --check testdata/golden.json\n" +
			"zreview comments review.json --repo /home/zuul/src/opendev.org/openstack/nova",
		Args: inputArgs(opts, 0),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, _ := loadSource(opts, args)
			flags := cmd.Flags()
			h := handlers.NewReportHandler(*conf, getBool(flags, verboseFlag.Label))

			return withMetrics(h, metricsPath(flags, conf), func() error {
				doc, err := h.LoadHandler(cmd.Context(), src)
				if err != nil {
					return err
				}
				return h.CommentsHandler(doc, handlers.CommentsOptions{
					Output:     common.GetArgByKey("output", flags),
					Summary:    boolSetting(flags, summaryFlag.Label, conf.Settings.Comments.Summary),
					Validate:   boolSetting(flags, "validate", conf.Settings.Comments.Validate),
					RepoPath:   common.GetArgByKey("repo", flags),
					GoldenPath: common.GetArgByKey("check", flags),
				})
			})
		},
	}

	models.RegisterAll(commentsCmd.Flags(), []models.FlagStruct{
		verboseFlag,
		summaryFlag,
		metricsFileFlag,
		{
			Label:       "output",
			Short:       "o",
			Description: "write the payload to this file instead of stdout",
		},
		{
			Label:        "validate",
			Description:  "validate the payload against the file_comments schema before writing",
			DefaultValue: "true",
			Bool:         true,
		},
		{
			Label:       "repo",
			Description: "warn about commented paths missing from this git checkout at HEAD",
		},
		{
			Label:       "check",
			Description: "compare the payload with a golden file instead of writing it",
		},
	})
	return commentsCmd
}
