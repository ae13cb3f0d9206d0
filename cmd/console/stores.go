package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/freshmart/admin-console/internal/stores"
	pkgerrors "github.com/freshmart/admin-console/pkg/errors"
)

var storesCmd = &cobra.Command{
	Use:   "stores",
	Short: "Manage pickup stores",
}

var storesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stores",
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := cli.stores.List(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(items)
	},
}

var storesGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseStoreID(args[0])
		if err != nil {
			return err
		}
		item, err := cli.stores.Get(cmd.Context(), id)
		if err != nil {
			return err
		}
		return printJSON(item)
	},
}

var storesSaveCmd = &cobra.Command{
	Use:   "save <file.json>",
	Short: "Create or update a store from a JSON payload",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var input stores.SaveStoreInput
		if err := readInputFile(args[0], &input); err != nil {
			return err
		}
		idArg, err := cmd.Flags().GetString("id")
		if err != nil {
			return err
		}
		if idArg != "" {
			id, err := parseStoreID(idArg)
			if err != nil {
				return err
			}
			return cli.stores.Update(cmd.Context(), id, input)
		}
		id, err := cli.stores.Create(cmd.Context(), input)
		if err != nil {
			return err
		}
		return printJSON(map[string]int64{"id": id})
	},
}

var storesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseStoreID(args[0])
		if err != nil {
			return err
		}
		return cli.stores.Delete(cmd.Context(), id)
	},
}

func parseStoreID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "store id must be a number")
	}
	return id, nil
}

func init() {
	storesSaveCmd.Flags().String("id", "", "update the store with this id instead of creating one")
	storesCmd.AddCommand(storesListCmd, storesGetCmd, storesSaveCmd, storesDeleteCmd)
}
