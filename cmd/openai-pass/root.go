package main

import (
	"fmt"
	"os"

	"github.com/genesis-xyz/openai-pass/internal/config"
	"github.com/genesis-xyz/openai-pass/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

type rootOptions struct {
	cfgFile  string
	envFile  string
	debug    bool
	jsonLogs bool
	// appOptions are appended to the fx graph of every command.
	appOptions []fx.Option
}

func newRootCmd(appOptions []fx.Option) *cobra.Command {
	opts := &rootOptions{appOptions: appOptions}
	cmd := &cobra.Command{
		Use:           "openai-pass",
		Short:         "openai-pass requests OpenAI API credentials through a pass request provider",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logging.Init(logging.Options{Debug: opts.debug, JSON: opts.jsonLogs, Out: cmd.ErrOrStderr()})
			return config.LoadDotEnv(opts.envFile)
		},
	}
	cmd.PersistentFlags().StringVar(&opts.cfgFile, "config", config.DefaultPath, "config file path")
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before config")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")
	cmd.PersistentFlags().BoolVar(&opts.jsonLogs, "log-json", false, "write logs as JSON lines")

	cmd.AddCommand(requestCmd(opts))
	cmd.AddCommand(verifyCmd(opts))
	cmd.AddCommand(topicsCmd())
	cmd.AddCommand(historyCmd(opts))
	return cmd
}

func (o *rootOptions) loadConfig(cmd *cobra.Command) (config.Config, error) {
	return config.Load(config.LoadOptions{
		Path:     o.cfgFile,
		Required: cmd.Flags().Changed("config"),
	})
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
}
