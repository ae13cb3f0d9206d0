package main

import (
	"github.com/spf13/cobra"

	"github.com/freshmart/admin-console/internal/catalog"
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Manage the product catalog",
}

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all products",
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := cli.catalog.List(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(items)
	},
}

var productsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		item, err := cli.catalog.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(item)
	},
}

var productsSaveCmd = &cobra.Command{
	Use:   "save <file.json>",
	Short: "Create or update a product from a JSON payload",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var input catalog.SaveProductInput
		if err := readInputFile(args[0], &input); err != nil {
			return err
		}
		update, err := cmd.Flags().GetBool("update")
		if err != nil {
			return err
		}
		var item *catalog.Product
		if update {
			item, err = cli.catalog.Update(cmd.Context(), input)
		} else {
			item, err = cli.catalog.Create(cmd.Context(), input)
		}
		if err != nil {
			return err
		}
		return printJSON(item)
	},
}

var productsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.catalog.Delete(cmd.Context(), args[0])
	},
}

func init() {
	productsSaveCmd.Flags().Bool("update", false, "update an existing product instead of creating one")
	productsCmd.AddCommand(productsListCmd, productsGetCmd, productsSaveCmd, productsDeleteCmd)
}
