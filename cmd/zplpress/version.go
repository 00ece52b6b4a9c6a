package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		_, _ = fmt.Fprintf(out, "zplpress %s\n", version)
		_, _ = fmt.Fprintf(out, "  Go:     %s\n", runtime.Version())
		_, _ = fmt.Fprintf(out, "  OS:     %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}
