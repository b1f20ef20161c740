/*
Copyright © 2023 sanix-darker <s4nixd@gmail.com>
*/

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	common "github.com/sanix-darker/zreview/internal/common"
	"github.com/sanix-darker/zreview/internal/config"
	"github.com/sanix-darker/zreview/internal/printers"
)

// rootOptions are the global flags, shared by every subcommand.
type rootOptions struct {
	configPath    string
	debug         bool
	fromClipboard bool
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = NewRootCmd(config.NewDefaultConfig())

// NewRootCmd builds the command tree around conf. The config file and the
// environment are loaded into conf before any subcommand runs.
func NewRootCmd(conf config.Config) *cobra.Command {
	opts := &rootOptions{}
	state := &conf

	root := &cobra.Command{
		Use:   "zreview",
		Short: "Render AI code reviews as HTML reports and Zuul comments.",
		Long: `Turn the structured output of an AI code reviewer into a standalone
HTML report and a Zuul file_comments payload for inline CI comments.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd, state)
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "",
		"config file (default is $ZREVIEW_CONFIG or ~/.config/zreview/config.yml)")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "print debug information")
	root.PersistentFlags().BoolVar(&opts.fromClipboard, "from-clipboard", false,
		"read the review document from the system clipboard")

	root.AddCommand(
		NewHTMLCmd(state, opts),
		NewCommentsCmd(state, opts),
		NewRunCmd(state, opts),
		NewValidateCmd(state),
		NewShowCmd(state, opts),
		NewConfigCmd(state),
		NewManCmd(),
		NewVersionCmd(),
	)
	return root
}

// load merges the config file and environment into conf and binds the
// command's streams.
func (o *rootOptions) load(cmd *cobra.Command, conf *config.Config) error {
	loaded, err := config.Load(o.configPath)
	if err != nil {
		return err
	}

	conf.Settings = loaded.Settings
	conf.Viper = loaded.Viper
	conf.ConfigFilePath = loaded.ConfigFilePath
	if o.debug {
		conf.Settings.Debug = true
	}

	conf.InReader = cmd.InOrStdin()
	conf.OutWriter = cmd.OutOrStdout()
	conf.ErrWriter = cmd.ErrOrStderr()

	// Prompts need a terminal; without one every confirmation is declined.
	if conf.Printers == nil {
		conf.Printers = printers.NewPrinters()
	}
	if _, prompt := conf.Printers.(*printers.Printers); prompt && !common.IsTerminal(conf.InReader) {
		conf.Printers = printers.Static(false)
	}

	common.LogDebug(conf.ErrWriter, conf.Settings.Debug,
		fmt.Sprintf("config file: %s", conf.ConfigFilePath))
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
