package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fekuna/omnipos-inventory/internal/model"
)

const timestampLayout = "2006-01-02 15:04:05"

var separator = strings.Repeat("-", 60)

// Render writes the full report as fixed-width text.
func Render(w io.Writer, r *model.Report) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "Inventory Management System Report")
	fmt.Fprintf(bw, "Generated on: %s\n\n", r.GeneratedAt.Format(timestampLayout))

	RenderInventory(bw, &r.Inventory)
	fmt.Fprintln(bw)
	RenderSales(bw, &r.Sales)
	fmt.Fprintln(bw)
	RenderLowStock(bw, &r.LowStock)

	return bw.Flush()
}

func RenderInventory(w io.Writer, s *model.InventorySummary) {
	fmt.Fprintln(w, "Inventory Summary:")
	fmt.Fprintf(w, "%-30s %-10s %-10s %-15s\n", "Product", "Quantity", "Price", "Total Value")
	fmt.Fprintln(w, separator)
	for _, l := range s.Lines {
		fmt.Fprintf(w, "%-30s %-10d $%-9s $%-14s\n", l.Name, l.Quantity, l.Price.StringFixed(2), l.Value.StringFixed(2))
	}
	fmt.Fprintln(w, separator)
	fmt.Fprintf(w, "%-30s %-10s %-10s $%-14s\n", "Total Inventory Value", "", "", s.Total.StringFixed(2))
}

func RenderSales(w io.Writer, s *model.SalesSummary) {
	fmt.Fprintf(w, "Sales Summary (Last %d days):\n", s.WindowDays)
	fmt.Fprintf(w, "%-30s %-10s %-15s\n", "Product", "Quantity", "Total Sales")
	fmt.Fprintln(w, separator)
	for _, l := range s.Lines {
		fmt.Fprintf(w, "%-30s %-10d $%-14s\n", l.Name, l.Quantity, l.Total.StringFixed(2))
	}
	fmt.Fprintln(w, separator)
	fmt.Fprintf(w, "%-30s %-10s $%-14s\n", "Total Sales", "", s.Total.StringFixed(2))
}

func RenderLowStock(w io.Writer, s *model.LowStockReport) {
	fmt.Fprintf(w, "Low Stock Alert (Quantity <= %d):\n", s.Threshold)
	fmt.Fprintf(w, "%-30s %-10s\n", "Product", "Quantity")
	fmt.Fprintln(w, separator)
	for _, l := range s.Lines {
		fmt.Fprintf(w, "%-30s %-10d\n", l.Name, l.Quantity)
	}
}
