// progress-api serves the project progress tracker.
//
// Usage:
//
//	progress-api [serve] [--port=<port>]
//	progress-api stats
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "progress-api",
	Short: "Track progress toward quantified project goals",
	Long:  "progress-api serves a REST API for projects and the progress\nentries that accumulate toward each project's goal.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
