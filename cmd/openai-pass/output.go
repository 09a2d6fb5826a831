package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/genesis-xyz/openai-pass/internal/config"
	"gopkg.in/yaml.v3"
)

var (
	acceptedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	deniedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	pendingStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	headerStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
)

func styleOutcome(outcome string) lipgloss.Style {
	switch outcome {
	case "accepted":
		return acceptedStyle
	case "pending":
		return pendingStyle
	default:
		return deniedStyle
	}
}

// writeValue prints v as json or yaml.
func writeValue(w io.Writer, format string, v any) error {
	switch format {
	case config.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case config.OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// writeEnv prints export statements that can be passed to eval.
func writeEnv(w io.Writer, env map[string]string) error {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, err := fmt.Fprintf(w, "export %s=%s\n", k, shellQuote(env[k])); err != nil {
			return err
		}
	}
	return nil
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
