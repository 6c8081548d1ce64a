package main

import (
	"github.com/spf13/cobra"

	"github.com/fekuna/omnipos-inventory/internal/apperror"
	"github.com/fekuna/omnipos-inventory/internal/report"
	"github.com/fekuna/omnipos-inventory/pkg/output"
)

var flagReportSection string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the inventory, sales and low-stock report",
	Long: `Print the fixed-width inventory report.

Sections:
  all        - header plus every section (default)
  inventory  - stock value per product, highest first
  sales      - purchases in the sales window grouped by product
  low-stock  - products at or below the low-stock threshold`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		switch flagReportSection {
		case "", "all":
			rep, err := a.Reports.GenerateReport(ctx)
			if err != nil {
				return err
			}
			if flagJSON {
				return printJSON(rep)
			}
			return report.Render(output.Out, rep)
		case "inventory":
			s, err := a.Reports.InventorySummary(ctx)
			if err != nil {
				return err
			}
			if flagJSON {
				return printJSON(s)
			}
			report.RenderInventory(output.Out, s)
		case "sales":
			s, err := a.Reports.SalesSummary(ctx)
			if err != nil {
				return err
			}
			if flagJSON {
				return printJSON(s)
			}
			report.RenderSales(output.Out, s)
		case "low-stock":
			s, err := a.Reports.LowStock(ctx)
			if err != nil {
				return err
			}
			if flagJSON {
				return printJSON(s)
			}
			report.RenderLowStock(output.Out, s)
		default:
			return apperror.Validation("unknown report section %q", flagReportSection)
		}
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVar(&flagReportSection, "section", "all", "all, inventory, sales or low-stock")
}
