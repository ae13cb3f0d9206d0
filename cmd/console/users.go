package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/freshmart/admin-console/internal/users"
	pkgerrors "github.com/freshmart/admin-console/pkg/errors"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage accounts",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := cli.users.List(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(items)
	},
}

var usersCreateCmd = &cobra.Command{
	Use:   "create <phone>",
	Short: "Register an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := cmd.Flags().GetString("password")
		if err != nil {
			return err
		}
		staff, err := cmd.Flags().GetBool("staff")
		if err != nil {
			return err
		}
		id, err := cli.users.Create(cmd.Context(), users.CreateUserInput{
			Phone:    args[0],
			Password: password,
			IsStaff:  staff,
		})
		if err != nil {
			return err
		}
		return printJSON(map[string]int64{"id": id})
	},
}

var usersUpdateCmd = &cobra.Command{
	Use:   "update <id> <file.json>",
	Short: "Apply a partial account update from a JSON payload",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseUserID(args[0])
		if err != nil {
			return err
		}
		var input users.UpdateUserInput
		if err := readInputFile(args[1], &input); err != nil {
			return err
		}
		return cli.users.Update(cmd.Context(), id, input)
	},
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseUserID(args[0])
		if err != nil {
			return err
		}
		return cli.users.Delete(cmd.Context(), id)
	},
}

func parseUserID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "user id must be a number")
	}
	return id, nil
}

func init() {
	usersCreateCmd.Flags().String("password", "", "initial password")
	usersCreateCmd.Flags().Bool("staff", false, "grant admin console access")
	usersCmd.AddCommand(usersListCmd, usersCreateCmd, usersUpdateCmd, usersDeleteCmd)
}
