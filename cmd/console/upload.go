package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	pkgerrors "github.com/freshmart/admin-console/pkg/errors"
)

var uploadCmd = &cobra.Command{
	Use:   "upload <image>",
	Short: "Upload a product or chat image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := os.Open(args[0])
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeValidation, err, fmt.Sprintf("open %s", args[0]))
		}
		defer func() { _ = file.Close() }()

		info, err := file.Stat()
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "stat upload file")
		}

		result, err := cli.uploader.Upload(cmd.Context(), args[0], info.Size(), file)
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}
