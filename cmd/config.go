package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	common "github.com/sanix-darker/zreview/internal/common"
	"github.com/sanix-darker/zreview/internal/config"
)

// NewConfigCmd groups the config file subcommands.
func NewConfigCmd(conf *config.Config) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage zreview configuration",
	}

	configCmd.AddCommand(newConfigInitCmd(conf))
	configCmd.AddCommand(newConfigShowCmd(conf))
	configCmd.AddCommand(newConfigEffectiveCmd(conf))
	configCmd.AddCommand(newConfigValidateCmd(conf))
	return configCmd
}

func newConfigInitCmd(conf *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create default config file at ~/.config/zreview/config.yml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath := conf.ConfigFilePath
			out := cmd.OutOrStdout()

			if _, err := os.Stat(cfgPath); err == nil {
				if !conf.Printers.Confirm(fmt.Sprintf("Config file already exists at %s, overwrite?", cfgPath)) {
					fmt.Fprintf(out, "Config file already exists at %s\n", cfgPath)
					return nil
				}
			}

			if err := os.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
				return fmt.Errorf("failed to create config directory: %w", err)
			}

			body, err := config.SampleConfigYAML()
			if err != nil {
				return err
			}
			if err := common.WriteFileAtomic(cfgPath, body, 0o644); err != nil {
				return err
			}

			fmt.Fprintf(out, "Config file created at %s\n", cfgPath)
			return nil
		},
	}
}

func newConfigShowCmd(conf *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print current config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			data, err := os.ReadFile(conf.ConfigFilePath)
			if err != nil {
				body, serr := config.SampleConfigYAML()
				if serr != nil {
					return serr
				}
				fmt.Fprintf(out, "No config file found at %s\n", conf.ConfigFilePath)
				fmt.Fprintln(out, "\nDefault configuration:")
				fmt.Fprint(out, string(body))
				return nil
			}

			fmt.Fprintf(out, "# Config file: %s\n", conf.ConfigFilePath)
			fmt.Fprint(out, string(data))
			return nil
		},
	}
}

func newConfigEffectiveCmd(conf *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "effective",
		Short: "Print effective config after env/flag overrides",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := conf.Settings.YAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}

func newConfigValidateCmd(conf *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate config values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := conf.Settings.Validate(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Configuration is valid.")
			return nil
		},
	}
}
