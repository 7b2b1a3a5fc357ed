// Package cmd - process command
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skuflow/skuflow/internal/history"
	"github.com/skuflow/skuflow/internal/history/sqlite"
	"github.com/skuflow/skuflow/internal/process"
	"github.com/skuflow/skuflow/internal/xlsx"
)

var (
	outputPath  string
	historyPath string
)

// processCmd represents the process command
var processCmd = &cobra.Command{
	Use:   "process <input.csv>",
	Short: "Pivot an inventory export into an .xlsx size matrix",
	Long: `Read a Shopify inventory export, split each Variant SKU into product
and size, and write a spreadsheet with one row per product and one
column per size.

The default output path is output/<input>.xlsx.

Examples:
  skuflow process export.csv
  skuflow process export.csv -o inventory.xlsx
  skuflow process export.csv --history runs.db`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	processCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output .xlsx path (default: output/<input>.xlsx)")
	processCmd.Flags().StringVar(&historyPath, "history", "", "SQLite file to record this run in")
}

func runProcess(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	input := args[0]

	var store history.Store = history.NopStore{}
	if historyPath != "" {
		s, err := sqlite.Open(historyPath)
		if err != nil {
			return fmt.Errorf("open history db: %w", err)
		}
		defer s.Close()
		store = s
	}

	f, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	svc := process.NewService(store)
	res, err := svc.Run(ctx, f, filepath.Base(input), "cli")
	if err != nil {
		return err
	}

	out := outputPath
	if out == "" {
		out = defaultOutputPath(input)
	}
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := xlsx.WriteFile(res.Table, out); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	printSummary(cmd, res, out)
	return nil
}

// defaultOutputPath maps export.csv to output/export.xlsx.
func defaultOutputPath(input string) string {
	base := filepath.Base(input)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		stem = "inventory"
	}
	return filepath.Join("output", stem+".xlsx")
}

func printSummary(cmd *cobra.Command, res *process.Result, out string) {
	cmd.Printf("Wrote %s\n", out)
	cmd.Printf("  products: %d\n", res.Stats.Products)
	cmd.Printf("  sizes:    %d\n", res.Stats.Sizes)
	cmd.Printf("  units:    %d\n", res.Stats.TotalUnits)
	cmd.Printf("  rows:     %d accepted, %d rejected\n", res.Stats.Accepted, res.Stats.Rejected)
	if len(res.Stats.MergedSizes) > 0 {
		cmd.Printf("  merged US sizes: %s\n", strings.Join(res.Stats.MergedSizes, ", "))
	}
	for _, d := range res.Diagnostics {
		cmd.Printf("  skipped line %d: %q (%s)\n", d.Line, d.SKU, d.Reason)
	}
}
