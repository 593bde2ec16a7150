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
		Use:   "formwork",
		Short: "Reactive form state for Go",
		Long: `Formwork keeps form state on the server.

Controls, validators, and forms are reactive values: every change to a
control's value or flags recomputes validity and error state, and
connected clients receive a fresh snapshot over WebSocket.

Commands:
  serve     Run a form server
  init      Write a default formwork.json
  version   Print version information`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		initCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
