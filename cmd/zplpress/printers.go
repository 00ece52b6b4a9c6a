package main

import (
	"github.com/spf13/cobra"

	"github.com/five82/zplpress/internal/app"
)

var printersCmd = &cobra.Command{
	Use:   "printers",
	Short: "List the printers known to this computer",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.ListPrinters(cmd.Context(), options(), cmd.OutOrStdout())
	},
}
