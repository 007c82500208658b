package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/opd-ai/go-planetwalk/pkg/config"
	"github.com/opd-ai/go-planetwalk/pkg/logging"
)

// rootOptions holds the flags shared by every subcommand.
type rootOptions struct {
	configFile string
	logLevel   string
	logFormat  string
}

// NewRootCmd creates the root command for the planetwalk CLI.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "planetwalk",
		Short: "Third-person locomotion on a spherical planet",
		Long: `planetwalk walks a character around a small spherical planet with
an orbit camera. Sessions run headless from an input script (simulate)
or in a window with keyboard and mouse (play).`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file path (YAML or JSON)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", os.Getenv(logging.LevelEnv), "log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "json", "log format (json, text)")

	cmd.AddCommand(newSimulateCmd(opts))
	cmd.AddCommand(newPlayCmd(opts))
	cmd.AddCommand(newConfigCmd(opts))

	return cmd
}

// logger builds the logger selected by the global flags, writing to the
// command's error stream
func (o *rootOptions) logger(cmd *cobra.Command) *logging.Logger {
	return logging.NewLoggerWithOptions(logging.Options{
		Output: cmd.ErrOrStderr(),
		Level:  logging.ParseLevel(o.logLevel),
		Format: o.logFormat,
	})
}

// loadConfig reads the config file if one was given, then applies
// environment overrides
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if o.configFile != "" {
		var err error
		if cfg, err = config.LoadConfig(o.configFile); err != nil {
			return nil, err
		}
	}
	if err := config.ApplyEnvironmentOverrides(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
