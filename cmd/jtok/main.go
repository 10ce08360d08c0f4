// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Program jtok tokenizes JSON text and reports the tokens it contains.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var rootCmd = &cobra.Command{
	Use:          "jtok",
	Short:        "Tokenize JSON text",
	Long:         `jtok breaks JSON documents down into a flat list of tokens`,
	SilenceUsage: true,
}

func main() {
	rootCmd.AddCommand(tokenizeCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	cancel()
	if err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// colorFor reports whether output to f should be colorized, according to the
// --color flag of cmd.
func colorFor(cmd *cobra.Command, f *os.File) (bool, error) {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch mode {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto":
		return isTerminal(f), nil
	default:
		return false, fmt.Errorf("unknown color mode: %s", mode)
	}
}
