package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sanix-darker/zreview/internal/config"
	handlers "github.com/sanix-darker/zreview/internal/handlers"
	models "github.com/sanix-darker/zreview/internal/models"
)

// NewHTMLCmd: render a review document as a standalone HTML report
func NewHTMLCmd(conf *config.Config, opts *rootOptions) *cobra.Command {
	htmlCmd := &cobra.Command{
		Use:     "html <review.json|-|URL> <report.html>",
		Short:   "Render a review document as a standalone HTML report.",
		Example: "zreview html review.json report.html\nzreview --from-clipboard html report.html -v",
		Args:    inputArgs(opts, 1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, rest := loadSource(opts, args)
			h := handlers.NewReportHandler(*conf, getBool(cmd.Flags(), verboseFlag.Label))

			doc, err := h.LoadHandler(cmd.Context(), src)
			if err != nil {
				return err
			}
			return h.HTMLHandler(doc, rest[0])
		},
	}

	models.RegisterAll(htmlCmd.Flags(), []models.FlagStruct{verboseFlag})
	return htmlCmd
}
