package main

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func historyCmd(root *rootOptions) *cobra.Command {
	var (
		limit  int
		output string
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded pass request outcomes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.loadConfig(cmd)
			if err != nil {
				return err
			}
			if !cfg.History.Enabled {
				return fmt.Errorf("history is disabled (history.enabled=false)")
			}
			return runApp(cmd.Context(), cfg, root.appOptions, func(ctx context.Context, d deps) error {
				entries, err := d.store.List(ctx, limit)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if output != "" {
					return writeValue(out, output, entries)
				}
				if len(entries) == 0 {
					_, err := fmt.Fprintln(out, "no requests recorded")
					return err
				}

				col := func(width int) lipgloss.Style { return lipgloss.NewStyle().Width(width) }
				if _, err := fmt.Fprintln(out, lipgloss.JoinHorizontal(lipgloss.Top,
					headerStyle.Width(22).Render("TIME"),
					headerStyle.Width(28).Render("TOPIC"),
					headerStyle.Width(10).Render("OUTCOME"),
					headerStyle.Width(9).Render("TOOK"),
					headerStyle.Render("REASON"),
				)); err != nil {
					return err
				}
				for _, e := range entries {
					row := lipgloss.JoinHorizontal(lipgloss.Top,
						col(22).Render(e.RequestedAt.Local().Format(time.DateTime)),
						col(28).Render(e.TopicID),
						styleOutcome(e.Outcome).Width(10).Render(e.Outcome),
						col(9).Render(e.Duration.Round(time.Millisecond).String()),
						e.Reason,
					)
					if _, err := fmt.Fprintln(out, row); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of entries, 0 for all")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output format: json or yaml")
	return cmd
}
