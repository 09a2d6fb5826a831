package main

import (
	"fmt"

	"github.com/genesis-xyz/openai-pass/reqs"
	"github.com/spf13/cobra"
)

func topicsCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "topics",
		Short: "List registered pass request topics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			topics := reqs.Topics()
			if output != "" {
				return writeValue(cmd.OutOrStdout(), output, topics)
			}
			for _, t := range topics {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\trequest=%s\tresult=%s\n", t.ID, t.RequestCodec, t.ResultCodec); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: json or yaml")
	return cmd
}
