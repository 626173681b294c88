package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zero-day-ai/graphqa/cmd/graphqa/internal"
	"github.com/zero-day-ai/graphqa/internal/config"
)

func newConfigCmd(env *environment) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage graphqa configuration",
		Long: `The config command writes, displays and validates the graphqa
configuration.

Configuration is stored in YAML format at ~/.graphqa/config.yaml by default.
Environment variables prefixed with GRAPHQA_ override file values, and the
conventional NEO4J_URI, NEO4J_USER and NEO4J_PWD variables are honored.`,
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with default values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := env.configPath()
			if _, err := os.Stat(path); err == nil && !force {
				return internal.NewCLIError(internal.ExitConfigError, "Config file already exists at "+path+" (use --force to overwrite)")
			}
			if err := config.Save(config.DefaultConfig(), path); err != nil {
				return internal.WrapError(internal.ExitConfigError, "Failed to write config file", err)
			}
			if !env.flags.Quiet {
				fmt.Fprintln(cmd.OutOrStdout(), "Wrote default configuration to", path)
			}
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Display the effective configuration with secrets redacted",
		Long: `Display the configuration after defaults, the config file and environment
variables are merged. Passwords and API keys are shown as [REDACTED].`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			redacted := env.cfg.Redacted()
			return env.formatter(cmd).PrintValue(&redacted)
		},
	}

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Loading in PersistentPreRunE already checked the schema; these
			// are the checks the graph client and provider apply at startup.
			if err := env.cfg.Graph.ClientConfig().Validate(); err != nil {
				return internal.WrapError(internal.ExitConfigError, "Invalid graph configuration", err)
			}
			if err := env.cfg.LLM.ProviderConfig().Validate(); err != nil {
				return internal.WrapError(internal.ExitConfigError, "Invalid completion provider configuration", err)
			}
			if !env.flags.Quiet {
				fmt.Fprintln(cmd.OutOrStdout(), "Configuration is valid")
			}
			return nil
		},
	}

	configCmd.AddCommand(initCmd, showCmd, validateCmd)
	return configCmd
}
