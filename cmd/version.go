/*
Copyright © 2023 sanix-darker <s4nixd@gmail.com>
*/

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sanix-darker/zreview/internal/cmd/version"
)

// NewVersionCmd represents the version command
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the application version.",
		Long:  `Print the application version with built/platform informations.`,
		Run: func(cmd *cobra.Command, args []string) {
			version.Print(cmd.OutOrStdout())
		},
	}
}
