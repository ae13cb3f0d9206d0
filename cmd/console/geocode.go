package main

import (
	"github.com/spf13/cobra"
)

var geocodeCmd = &cobra.Command{
	Use:   "geocode <address>",
	Short: "Resolve a store address to coordinates",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		city, err := cmd.Flags().GetString("city")
		if err != nil {
			return err
		}
		result, err := cli.stores.Geocode(cmd.Context(), args[0], city)
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}

func init() {
	geocodeCmd.Flags().String("city", "", "city to narrow the lookup")
}
