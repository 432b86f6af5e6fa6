package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "ngcc-go",
	Short:         "Analyze decorated class declarations",
	Long:          `ngcc-go matches decorated classes against the built-in handlers, reports diagnostics and prints the compiled definitions.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if err != errHasErrors {
			fmt.Fprintf(os.Stderr, "ngcc-go: %v\n", err)
		}
		os.Exit(1)
	}
}
