package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fekuna/omnipos-inventory/internal/category/dto"
	"github.com/fekuna/omnipos-inventory/pkg/output"
)

var flagCategoryName string

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Manage categories",
}

var categoryAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		cat, err := a.Categories.CreateCategory(cmd.Context(), &dto.CreateCategoryInput{Name: args[0]})
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(cat)
		}
		output.Success("Category added successfully (id %d)", cat.ID)
		return nil
	},
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories by name",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		cats, err := a.Categories.ListCategories(cmd.Context(), &dto.CategoryFilters{Name: flagCategoryName})
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(cats)
		}
		if len(cats) == 0 {
			output.Muted("No categories")
			return nil
		}
		w := newTable("ID\tNAME")
		for _, c := range cats {
			_, _ = fmt.Fprintf(w, "%d\t%s\n", c.ID, c.Name)
		}
		return w.Flush()
	},
}

var categoryRenameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename a category",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("category", args[0])
		if err != nil {
			return err
		}
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		cat, err := a.Categories.UpdateCategory(cmd.Context(), &dto.UpdateCategoryInput{ID: id, Name: args[1]})
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(cat)
		}
		output.Success("Category updated successfully")
		return nil
	},
}

var categoryDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a category together with its products",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID("category", args[0])
		if err != nil {
			return err
		}
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := a.Categories.DeleteCategory(cmd.Context(), id)
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(res)
		}
		output.Success("Category deleted successfully (%d products removed)", res.ProductsRemoved)
		return nil
	},
}

func init() {
	categoryListCmd.Flags().StringVar(&flagCategoryName, "name", "", "only the category with this exact name")
	categoryCmd.AddCommand(categoryAddCmd, categoryListCmd, categoryRenameCmd, categoryDeleteCmd)
}
