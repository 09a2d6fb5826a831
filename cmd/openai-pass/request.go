package main

import (
	"context"
	"fmt"

	"github.com/genesis-xyz/openai-pass/internal/config"
	"github.com/genesis-xyz/openai-pass/openaiapi"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func requestCmd(root *rootOptions) *cobra.Command {
	var (
		output string
		verify bool
	)
	cmd := &cobra.Command{
		Use:   "request",
		Short: "Request OpenAI API credentials and print them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("output") {
				cfg.Output = output
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			return runApp(cmd.Context(), cfg, root.appOptions, func(ctx context.Context, d deps) error {
				creds, err := openaiapi.RequestWith(ctx, d.sender)
				if err != nil {
					return err
				}
				log.Info().Str("base_url", creds.BaseURL).Msg("openai api pass request accepted")

				if verify {
					if _, err := openaiapi.Verify(ctx, creds, verifyConfig(d.cfg)); err != nil {
						return fmt.Errorf("verify credentials: %w", err)
					}
				}

				out := cmd.OutOrStdout()
				if d.cfg.Output == config.OutputEnv {
					return writeEnv(out, creds.Env())
				}
				return writeValue(out, d.cfg.Output, creds)
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", config.OutputJSON, "output format: json, yaml or env")
	cmd.Flags().BoolVar(&verify, "verify", false, "check the credentials against the OpenAI API before printing")
	return cmd
}
