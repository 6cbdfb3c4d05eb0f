package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"grocery.GO/service/gateway"
	productService "grocery.GO/service/product"
)

var (
	importFile    string
	importWorkers int
	importDryRun  bool
)

var importCmd = &cobra.Command{
	Use:   "products:import",
	Short: "Import products from CSV (name,price,sizes,category,image,createdAt)",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(importFile)
		if err != nil {
			return err
		}
		defer f.Close()

		r, err := repos()
		if err != nil {
			return err
		}
		gw := gateway.New(stores(r), nil, nil, nil, nil, logger())

		res, err := productService.ImportProducts(cmd.Context(), gw, f, productService.ImportOptions{
			Workers: importWorkers,
			DryRun:  importDryRun,
		})
		if err != nil {
			return err
		}
		for _, w := range res.Warnings {
			cmd.Printf("  [warn] %s\n", w)
		}
		cmd.Printf(`
=== Import Report ===
CSV rows:       %d
Created:        %d
Skipped:        %d
Failed:         %d
Mode:           %s
Total time:     %s
=====================
`, res.TotalRows, res.Created, res.Skipped, res.Failed,
			map[bool]string{true: "dry run", false: "backend"}[importDryRun],
			res.TotalTime.Round(time.Millisecond))
		return nil
	},
}

func init() {
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "CSV file path (required)")
	importCmd.MarkFlagRequired("file")
	importCmd.Flags().IntVar(&importWorkers, "workers", 4, "Concurrent create requests")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Parse and validate rows without creating products")
	rootCmd.AddCommand(importCmd)
}
