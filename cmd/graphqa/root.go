package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	sdklog "go.opentelemetry.io/otel/sdk/log"

	"github.com/zero-day-ai/graphqa/cmd/graphqa/internal"
	"github.com/zero-day-ai/graphqa/internal/config"
	"github.com/zero-day-ai/graphqa/internal/graphrag/graph"
	"github.com/zero-day-ai/graphqa/internal/observability"
	"github.com/zero-day-ai/graphqa/internal/types"
	"github.com/zero-day-ai/graphqa/pkg/version"
)

// GlobalFlags holds global flags available to all commands
type GlobalFlags struct {
	Verbose      bool
	Quiet        bool
	OutputFormat string
	ConfigFile   string
}

// environment is everything a command reads from outside its flags. Tests
// swap the graph client constructor and stdin.
type environment struct {
	flags GlobalFlags
	stdin io.Reader

	newGraphClient func(graph.GraphClientConfig) (graph.GraphClient, error)

	cfg       *config.Config
	logger    *slog.Logger
	logExport *sdklog.LoggerProvider
	format    internal.OutputFormat
}

func defaultEnvironment() *environment {
	return &environment{
		stdin: os.Stdin,
		newGraphClient: func(cfg graph.GraphClientConfig) (graph.GraphClient, error) {
			return graph.NewNeo4jClient(cfg)
		},
	}
}

// skipConfig lists commands that must work without a loadable configuration.
var skipConfig = map[string]bool{
	"init":       true,
	"version":    true,
	"help":       true,
	"completion": true,
}

func newRootCmd(env *environment) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "graphqa",
		Short: "Answer questions from a Neo4j knowledge graph",
		Long: `graphqa answers natural-language questions using facts retrieved from a
Neo4j knowledge graph. Each word of the question is looked up as an entity
name, the matching relations are flattened into short sentences, and a
language model is asked to answer from those sentences alone.`,
		PersistentPreRunE: env.setup,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&env.flags.Verbose, "verbose", "v", false, "Enable verbose output")
	flags.BoolVarP(&env.flags.Quiet, "quiet", "q", false, "Suppress non-essential output")
	flags.StringVarP(&env.flags.OutputFormat, "output", "o", "text", "Output format (text|json)")
	flags.StringVar(&env.flags.ConfigFile, "config", "", "Path to config file (default: ~/.graphqa/config.yaml)")

	rootCmd.AddCommand(
		newAskCmd(env),
		newChatCmd(env),
		newFactsCmd(env),
		newHealthCmd(env),
		newConfigCmd(env),
		newVersionCmd(env),
	)
	return rootCmd
}

// Execute runs the root command with signal handling
func Execute(ctx context.Context, rootCmd *cobra.Command) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return rootCmd.ExecuteContext(ctx)
}

// setup validates global flags, then loads configuration and builds the
// logger for commands that need them.
func (e *environment) setup(cmd *cobra.Command, args []string) error {
	format, err := internal.ParseOutputFormat(e.flags.OutputFormat)
	if err != nil {
		return err
	}
	e.format = format

	if e.flags.Verbose && e.flags.Quiet {
		return internal.NewCLIError(internal.ExitError, "--verbose and --quiet cannot be used together")
	}

	if skipConfig[cmd.Name()] {
		return nil
	}

	cfg, err := e.loadConfig()
	if err != nil {
		return err
	}
	e.cfg = cfg

	logCfg := cfg.Logging.LoggerConfig()
	switch {
	case e.flags.Quiet:
		logCfg.Level = "error"
	case e.flags.Verbose:
		logCfg.Level = "debug"
	}

	exportProvider, err := observability.InitLogExport(cmd.Context(), cfg.LogExportConfig(), version.Version)
	if err != nil {
		return internal.WrapError(internal.ExitConfigError, "Failed to initialize log export", err)
	}
	var logOpts []observability.LoggerOption
	if exportProvider != nil {
		e.logExport = exportProvider
		logOpts = append(logOpts, observability.WithLogExport(exportProvider))
	}

	logger, err := observability.NewLogger(cmd.ErrOrStderr(), logCfg, logOpts...)
	if err != nil {
		return internal.WrapError(internal.ExitConfigError, "Invalid logging configuration", err)
	}
	e.logger = logger
	return nil
}

// loadConfig reads an explicit --config file strictly; the default location
// may be absent, in which case defaults and environment variables apply.
func (e *environment) loadConfig() (*config.Config, error) {
	loader := config.NewConfigLoader(config.NewValidator())

	var (
		cfg *config.Config
		err error
	)
	if e.flags.ConfigFile != "" {
		cfg, err = loader.Load(e.flags.ConfigFile)
	} else {
		cfg, err = loader.LoadWithDefaults(e.configPath())
	}
	if err != nil {
		var coded *types.Error
		if errors.As(err, &coded) {
			return nil, internal.WrapError(internal.ExitConfigError, coded.Message, err)
		}
		return nil, internal.WrapError(internal.ExitConfigError, "Failed to load configuration", err)
	}
	return cfg, nil
}

func (e *environment) configPath() string {
	if e.flags.ConfigFile != "" {
		return e.flags.ConfigFile
	}
	return config.DefaultConfigPath(config.DefaultHomeDir())
}

// shutdown flushes exported log records.
func (e *environment) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	_ = observability.ShutdownLogExport(ctx, e.logExport)
}

func (e *environment) formatter(cmd *cobra.Command) internal.Formatter {
	return internal.NewFormatter(e.format, cmd.OutOrStdout())
}
