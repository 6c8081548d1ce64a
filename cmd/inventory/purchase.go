package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fekuna/omnipos-inventory/internal/purchase/dto"
	"github.com/fekuna/omnipos-inventory/pkg/output"
)

var (
	flagPurchaseProduct   string
	flagPurchaseProductID int64
	flagPurchaseQuantity  int
	flagPurchaseReference string
	flagHistoryProductID  int64
	flagHistoryDays       int
	flagHistoryLimit      int
)

var purchaseCmd = &cobra.Command{
	Use:   "purchase",
	Short: "Record purchases and browse the purchase history",
}

var purchaseMakeCmd = &cobra.Command{
	Use:   "make",
	Short: "Buy a quantity of a product, decrementing its stock",
	Example: `  inventory purchase make --product Mouse --qty 3
  inventory purchase make --product-id 2 --qty 1 --ref order-1042`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := a.Purchases.Purchase(cmd.Context(), &dto.PurchaseInput{
			ProductID:   flagPurchaseProductID,
			ProductName: flagPurchaseProduct,
			Quantity:    flagPurchaseQuantity,
			Reference:   flagPurchaseReference,
		})
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(res)
		}
		if res.Duplicate {
			output.Warning("Purchase %s was already recorded. Total price: %s", res.Record.Reference, money(res.Record.TotalPrice))
			return nil
		}
		output.Success("Purchase successful. Total price: %s", money(res.Record.TotalPrice))
		output.Muted("%s: %d left in stock (reference %s)", res.Record.ProductName, res.RemainingStock, res.Record.Reference)
		return nil
	},
}

var purchaseHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show purchases, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		filters := &dto.PurchaseFilters{
			ProductID: flagHistoryProductID,
			Limit:     flagHistoryLimit,
		}
		if flagHistoryDays > 0 {
			filters.Since = time.Now().AddDate(0, 0, -flagHistoryDays)
		}
		records, err := a.Purchases.ListPurchases(cmd.Context(), filters)
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(records)
		}
		if len(records) == 0 {
			output.Muted("No purchases")
			return nil
		}
		w := newTable("ID\tPRODUCT\tQUANTITY\tTOTAL\tDATE\tREFERENCE")
		for _, r := range records {
			_, _ = fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\t%s\n",
				r.ID, r.ProductName, r.Quantity, money(r.TotalPrice),
				r.PurchaseDate.Local().Format("2006-01-02 15:04:05"), r.Reference)
		}
		return w.Flush()
	},
}

var purchaseAvailableCmd = &cobra.Command{
	Use:   "available",
	Short: "List products that can be purchased",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		products, err := a.Purchases.ListPurchasableProducts(cmd.Context())
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(products)
		}
		if len(products) == 0 {
			output.Muted("Nothing in stock")
			return nil
		}
		w := newTable("ID\tNAME\tPRICE\tAVAILABLE")
		for _, p := range products {
			_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", p.ID, p.Name, money(p.Price), p.Quantity)
		}
		return w.Flush()
	},
}

func init() {
	purchaseMakeCmd.Flags().StringVar(&flagPurchaseProduct, "product", "", "product name")
	purchaseMakeCmd.Flags().Int64Var(&flagPurchaseProductID, "product-id", 0, "product id (takes priority over --product)")
	purchaseMakeCmd.Flags().IntVar(&flagPurchaseQuantity, "qty", 0, "quantity to buy")
	purchaseMakeCmd.Flags().StringVar(&flagPurchaseReference, "ref", "", "idempotency reference; replays are not charged twice")
	_ = purchaseMakeCmd.MarkFlagRequired("qty")
	purchaseMakeCmd.MarkFlagsOneRequired("product", "product-id")

	purchaseHistoryCmd.Flags().Int64Var(&flagHistoryProductID, "product-id", 0, "only purchases of this product")
	purchaseHistoryCmd.Flags().IntVar(&flagHistoryDays, "days", 0, "only the last N days")
	purchaseHistoryCmd.Flags().IntVar(&flagHistoryLimit, "limit", 0, "at most N records")

	purchaseCmd.AddCommand(purchaseMakeCmd, purchaseHistoryCmd, purchaseAvailableCmd)
}
