package main

import (
	"github.com/spf13/cobra"

	"github.com/five82/zplpress/internal/app"
)

var (
	cfgFile   string
	prefsFile string
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "zplpress",
	Short: "Send ZPL label files to thermal printers",
	Long: `zplpress splits ZPL label files on ^XZ and sends each label to a printer
as raw data, through the Windows spooler, lp on macOS and Linux, or straight
to port 9100 for tcp:// printers.

Run without a command to pick a printer and a file in the terminal UI.
Test mode is on by default and prints only the first label of a file.`,
	Version:       version,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Run(cmd.Context(), options())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ~/.config/zplpress/config.toml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&prefsFile, "prefs", "", "preferences file (default: ~/.config/zplpress/prefs.toml)",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false, "log at debug level",
	)

	rootCmd.AddCommand(printCmd)
	rootCmd.AddCommand(printersCmd)
	rootCmd.AddCommand(versionCmd)
}

func options() app.Options {
	return app.Options{
		ConfigPath: cfgFile,
		PrefsPath:  prefsFile,
		Verbose:    verbose,
	}
}
