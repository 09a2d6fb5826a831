package main

import (
	"context"
	"fmt"

	"github.com/genesis-xyz/openai-pass/internal/config"
	"github.com/genesis-xyz/openai-pass/openaiapi"
	"github.com/spf13/cobra"
)

func verifyCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Request OpenAI API credentials and check that they work, without printing the key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig(cmd)
			if err != nil {
				return err
			}
			return runApp(cmd.Context(), cfg, root.appOptions, func(ctx context.Context, d deps) error {
				creds, err := openaiapi.RequestWith(ctx, d.sender)
				if err != nil {
					return err
				}
				res, err := openaiapi.Verify(ctx, creds, verifyConfig(d.cfg))
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%d models)\n",
					acceptedStyle.Render("verified"), res.BaseURL, res.Models)
				return err
			})
		},
	}
}

func verifyConfig(cfg config.Config) openaiapi.ClientConfig {
	return openaiapi.ClientConfig{Timeout: cfg.Timeout, UserAgent: cfg.UserAgent}
}
