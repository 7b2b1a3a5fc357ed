// Package cmd provides the CLI commands for skuflow.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/skuflow/skuflow/internal/logging"
	"github.com/skuflow/skuflow/internal/process"
)

var verbose bool

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "skuflow",
	Short: "Pivot Shopify inventory exports into a size matrix",
	Long: `skuflow turns a Shopify inventory export into a size-pivoted
spreadsheet: one row per product, one column per size, EU and US
size labels consolidated.

Examples:
  skuflow process export.csv
  skuflow process export.csv -o inventory.xlsx
  skuflow process export.csv --history runs.db`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI. Errors are printed as user-facing messages with a
// support code; the technical detail is logged at debug level.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, process.FormatUserError(process.MapError(err)))
		if verbose {
			fmt.Fprintf(os.Stderr, "detail: %v\n", err)
		}
	}
	return err
}

func init() {
	cobra.OnInitialize(initLogging)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(versionCmd)
}

func initLogging() {
	level := "warn"
	if verbose {
		level = "debug"
	}
	logging.Setup(level, "text")
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println("skuflow version 0.1.0")
	},
}
