package main

import (
	"github.com/spf13/cobra"

	"github.com/five82/zplpress/internal/app"
	"github.com/five82/zplpress/internal/labels"
)

var (
	printPrinter string
	printAll     bool
	printBatch   int
	printDryRun  bool
)

var printCmd = &cobra.Command{
	Use:   "print FILE",
	Short: "Print a label file",
	Long: `Print the labels in FILE. Only the first label is sent unless --all is given.

The printer defaults to the printer set in the config file. Printers named
tcp://host[:port] are reached directly over the network.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode := labels.ModeTest
		if printAll {
			mode = labels.ModeAll
		}
		_, err := app.PrintFile(cmd.Context(), options(), app.PrintOptions{
			Path:      args[0],
			Printer:   printPrinter,
			Mode:      mode,
			BatchSize: printBatch,
			DryRun:    printDryRun,
		}, cmd.OutOrStdout())
		return err
	},
}

func init() {
	printCmd.Flags().StringVarP(&printPrinter, "printer", "p", "", "printer name or tcp://host[:port]")
	printCmd.Flags().BoolVarP(&printAll, "all", "a", false, "print every label instead of only the first")
	printCmd.Flags().IntVar(&printBatch, "batch", 0, "labels per print job with --all (overrides batch_size)")
	printCmd.Flags().BoolVar(&printDryRun, "dry-run", false, "split and validate the file without printing")
}
