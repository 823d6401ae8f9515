// Package cmd contains all CLI commands for sheetctl.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "sheetctl",
	Short: "Drive an in-memory spreadsheet engine from the command line",
	Long: `sheetctl runs a small line-oriented protocol against one in-memory
sheet for the life of the process: SET, GET, CLEAR, PRINT, PRINTTEXT.

  sheetctl repl            read commands interactively from stdin
  sheetctl run script.txt  run a command script, stopping at the first error
  sheetctl serve           run a live-view HTTP/WebSocket server`,
}

// Execute adds all child commands to the root command and runs it.
// This is called by main.main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "sheet.yaml", "path to an optional config file")
}
