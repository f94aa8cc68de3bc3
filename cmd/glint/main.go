package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "glint",
		Short: "Server-driven data apps in Go",
		Long: `Glint streams UI elements from Go code to the browser.

An app function writes elements (toasts, text, markdown) through a
DeltaGenerator; Glint validates them, encodes them as binary deltas,
and delivers them over a WebSocket session.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}
