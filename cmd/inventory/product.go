package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fekuna/omnipos-inventory/internal/product/dto"
	"github.com/fekuna/omnipos-inventory/pkg/output"
)

var (
	flagProductName     string
	flagProductPrice    string
	flagProductQuantity int
	flagProductCatID    int64
	flagProductCatName  string
	flagProductInStock  bool
)

var productCmd = &cobra.Command{
	Use:   "product",
	Short: "Manage products",
}

var productAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a product",
	Example: `  inventory product add --name Mouse --price 20.00 --qty 50 --category Electronics
  inventory product add --name Laptop --price 1000 --qty 5 --category-id 1`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		price, err := dto.ParsePrice(flagProductPrice)
		if err != nil {
			return err
		}
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		p, err := a.Products.CreateProduct(cmd.Context(), &dto.CreateProductInput{
			Name:         flagProductName,
			Price:        price,
			Quantity:     flagProductQuantity,
			CategoryID:   flagProductCatID,
			CategoryName: flagProductCatName,
		})
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(p)
		}
		output.Success("Product added successfully (id %d)", p.ID)
		return nil
	},
}

var productListCmd = &cobra.Command{
	Use:   "list",
	Short: "List products with their category",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		products, err := a.Products.ListProducts(cmd.Context(), &dto.ProductFilters{
			Name:        flagProductName,
			CategoryID:  flagProductCatID,
			InStockOnly: flagProductInStock,
		})
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(products)
		}
		if len(products) == 0 {
			output.Muted("No products")
			return nil
		}
		w := newTable("ID\tNAME\tPRICE\tQUANTITY\tCATEGORY")
		for _, p := range products {
			_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n", p.ID, p.Name, money(p.Price), p.Quantity, p.CategoryName)
		}
		return w.Flush()
	},
}

var productUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a product; omitted flags keep their current value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("product", args[0])
		if err != nil {
			return err
		}
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		current, err := a.Products.GetProduct(cmd.Context(), id)
		if err != nil {
			return err
		}
		input := &dto.UpdateProductInput{
			ID:       id,
			Name:     current.Name,
			Price:    current.Price,
			Quantity: current.Quantity,
		}
		flags := cmd.Flags()
		if flags.Changed("name") {
			input.Name = flagProductName
		}
		if flags.Changed("price") {
			if input.Price, err = dto.ParsePrice(flagProductPrice); err != nil {
				return err
			}
		}
		if flags.Changed("qty") {
			input.Quantity = flagProductQuantity
		}
		if flags.Changed("category-id") {
			input.CategoryID = flagProductCatID
		}
		if flags.Changed("category") {
			input.CategoryName = flagProductCatName
		}

		p, err := a.Products.UpdateProduct(cmd.Context(), input)
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(p)
		}
		output.Success("Product updated successfully")
		return nil
	},
}

var productDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a product; its purchase history is kept",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("product", args[0])
		if err != nil {
			return err
		}
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.Products.DeleteProduct(cmd.Context(), id); err != nil {
			return err
		}
		output.Success("Product deleted successfully")
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{productAddCmd, productUpdateCmd} {
		c.Flags().StringVar(&flagProductName, "name", "", "product name")
		c.Flags().StringVar(&flagProductPrice, "price", "", "unit price, e.g. 19.99")
		c.Flags().IntVar(&flagProductQuantity, "qty", 0, "quantity in stock")
		c.Flags().Int64Var(&flagProductCatID, "category-id", 0, "category id")
		c.Flags().StringVar(&flagProductCatName, "category", "", "category name, resolved once to its id")
	}
	_ = productAddCmd.MarkFlagRequired("name")
	_ = productAddCmd.MarkFlagRequired("price")
	productAddCmd.MarkFlagsOneRequired("category-id", "category")

	productListCmd.Flags().StringVar(&flagProductName, "name", "", "only products with this exact name")
	productListCmd.Flags().Int64Var(&flagProductCatID, "category-id", 0, "only products in this category")
	productListCmd.Flags().BoolVar(&flagProductInStock, "in-stock", false, "only products with quantity > 0")

	productCmd.AddCommand(productAddCmd, productListCmd, productUpdateCmd, productDeleteCmd)
}
