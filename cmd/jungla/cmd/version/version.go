package version

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"habla-jungla/cmd/jungla/cmd/cmdutil"
)

var version = "v0.1.0"

// Cmd represents the version command
var Cmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of habla-jungla",
	Long:  `All software has versions. This is habla-jungla's.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		printVersion(cmd)
		return nil
	},
}

func printVersion(cmd *cobra.Command) {
	fmt.Fprintln(cmd.OutOrStdout(), version)
	if cmdutil.Verbose {
		fmt.Fprintf(cmd.OutOrStdout(), "go: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	}
}
