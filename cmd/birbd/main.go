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
		Use:   "birbd",
		Short: "Host daemon for remote view trees",
		Long: `birbd hosts rendering surfaces for remote producer processes.

Producers connect over WebSocket, stream view-tree patches, and
receive input events for the views they created. Each connection
gets its own isolated node registry backed by the software
compositor.`,
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
