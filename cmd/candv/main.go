// Package main provides the candv binary entry point.
// candv compiles YAML vocabulary documents into constants containers and
// prints or checks them.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/c360studio/candv/config"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "candv"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	format     string
	logLevel   string
}

func rootCmd() *cobra.Command {
	var flags globalFlags

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Declarative constants containers",
		Long: `candv compiles YAML vocabulary documents into ordered constants
containers with nested groups and metadata.

Documents are located through glob patterns ("defs/**/*.yaml"). When no
pattern is given, the patterns from candv.yaml are used.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVarP(&flags.format, "format", "f", "", "Output format (json, yaml)")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(dumpCmd(&flags), checkCmd(&flags))

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

func dumpCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "dump [pattern...]",
		Short: "Print the primitive form of every container",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := setup(cmd, flags)
			if err != nil {
				return err
			}
			return app.Dump(cmd.Context(), args)
		},
	}
}

func checkCmd(flags *globalFlags) *cobra.Command {
	var (
		watch   bool
		metrics bool
	)

	cmd := &cobra.Command{
		Use:   "check [pattern...]",
		Short: "Compile vocabularies and report problems",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := setup(cmd, flags)
			if err != nil {
				return err
			}
			if !watch {
				if _, err := app.Check(args); err != nil {
					return err
				}
				if metrics {
					return app.WriteMetrics(cmd.OutOrStdout())
				}
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return app.Watch(ctx, args)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Recompile whenever a matched file changes")
	cmd.Flags().BoolVar(&metrics, "metrics", false, "Print definition metrics after the check")
	return cmd
}

// setup resolves configuration and logging for a subcommand.
func setup(cmd *cobra.Command, flags *globalFlags) (*App, error) {
	bootstrap := newLogger(slog.LevelWarn)

	cfg, err := loadConfig(flags.configPath, bootstrap)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if flags.format != "" {
		cfg.Output.Format = flags.format
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	level, _ := config.ParseLevel(cfg.Log.Level)
	logger := newLogger(level)
	slog.SetDefault(logger)

	return NewApp(cfg, logger, cmd.OutOrStdout())
}

func loadConfig(path string, logger *slog.Logger) (*config.Config, error) {
	loader := config.NewLoader(logger)
	if path != "" {
		return loader.LoadPath(path)
	}
	return loader.Load()
}

func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
