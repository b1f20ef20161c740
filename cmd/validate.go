package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sanix-darker/zreview/internal/config"
	handlers "github.com/sanix-darker/zreview/internal/handlers"
)

// NewValidateCmd: check a payload file written earlier
func NewValidateCmd(conf *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:     "validate <payload.json>",
		Short:   "Validate a Zuul file_comments payload against its schema.",
		Example: "zreview validate zuul_return.json",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.NewReportHandler(*conf, false).ValidateFileHandler(args[0])
		},
	}
}
