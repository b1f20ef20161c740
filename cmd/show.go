package cmd

import (
	"github.com/spf13/cobra"

	common "github.com/sanix-darker/zreview/internal/common"
	"github.com/sanix-darker/zreview/internal/config"
	handlers "github.com/sanix-darker/zreview/internal/handlers"
	"github.com/sanix-darker/zreview/internal/renders"
	"github.com/sanix-darker/zreview/internal/review"
)

// NewShowCmd: print a review digest in the terminal
func NewShowCmd(conf *config.Config, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "show <review.json|-|URL>",
		Short:   "Print a markdown digest of a review document.",
		Example: "zreview show review.json\nzreview show https://logs.example.org/ci/review.json",
		Args:    inputArgs(opts, 0),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, _ := loadSource(opts, args)
			h := handlers.NewReportHandler(*conf, false)

			doc, err := h.LoadHandler(cmd.Context(), src)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			return renders.WriteMarkdown(out, review.FormatReview(doc), common.IsTerminal(out))
		},
	}
}
