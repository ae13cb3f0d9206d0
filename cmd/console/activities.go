package main

import (
	"github.com/spf13/cobra"

	"github.com/freshmart/admin-console/internal/activities"
)

var activitiesCmd = &cobra.Command{
	Use:   "activities",
	Short: "Manage marketing campaigns",
}

var activitiesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all campaigns",
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := cli.activities.List(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(items)
	},
}

var activitiesGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one campaign",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		item, err := cli.activities.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(item)
	},
}

var activitiesSaveCmd = &cobra.Command{
	Use:   "save <file.json>",
	Short: "Create or update a campaign from a JSON payload",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var input activities.SaveActivityInput
		if err := readInputFile(args[0], &input); err != nil {
			return err
		}
		id, err := cmd.Flags().GetString("id")
		if err != nil {
			return err
		}
		if id != "" {
			return cli.activities.Update(cmd.Context(), id, input)
		}
		created, err := cli.activities.Create(cmd.Context(), input)
		if err != nil {
			return err
		}
		return printJSON(map[string]string{"id": created})
	},
}

var activitiesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a campaign",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.activities.Delete(cmd.Context(), args[0])
	},
}

func init() {
	activitiesSaveCmd.Flags().String("id", "", "update the campaign with this id instead of creating one")
	activitiesCmd.AddCommand(activitiesListCmd, activitiesGetCmd, activitiesSaveCmd, activitiesDeleteCmd)
}
