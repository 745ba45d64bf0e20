// Package cmd provides the command-line interface of pdqsim.
package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

const (
	LogLevelOptionName = "log-level"
	EnvFileOptionName  = "env-file"
)

type rootOptions struct {
	logLevel string
	envFile  string

	cfg Config
	log *Logger
}

// NewRootCommand creates the pdqsim command with all its subcommands.
func NewRootCommand(out io.Writer) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "pdqsim",
		Short: "Tool to replay host byte streams through the PDQ core",
		Long: "pdqsim builds host byte streams from programs and replays " +
			"them through a cycle model of the PDQ communication core.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := LoadConfig(opts.envFile)
			if err != nil {
				return err
			}

			if opts.logLevel != "" {
				cfg.LogLevel = opts.logLevel
			}

			logger, err := NewLogger(cmd.ErrOrStderr(), cfg.LogLevel)
			if err != nil {
				return err
			}

			opts.cfg = cfg
			opts.log = logger

			return nil
		},
	}
	cmd.SetOut(out)

	cmd.AddCommand(newReplayCommand(opts))
	cmd.AddCommand(newEncodeCommand(opts))
	cmd.AddCommand(newCommandsCommand())

	cmd.PersistentFlags().StringVar(&opts.logLevel, LogLevelOptionName, "",
		fmt.Sprintf("Log level. %s", HelpLevels))
	cmd.PersistentFlags().StringVar(&opts.envFile, EnvFileOptionName,
		DefaultEnvFile, "File with PDQSIM_* defaults")

	return cmd
}
