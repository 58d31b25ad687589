package analyze

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"habla-jungla/cmd/jungla/cmd/cmdutil"
	"habla-jungla/internal/app"
)

// Cmd represents the analyze command
var Cmd = &cobra.Command{
	Use:   "analyze <file>...",
	Short: "Send recordings to the remote analysis service",
	Long: `Send recordings to the remote analysis service configured under
analysis.endpoint and print what it returns.

The remote service is best effort: a failed call prints
"translation unavailable" instead of failing the command.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, logger, err := cmdutil.Setup()
		if err != nil {
			return err
		}
		defer logger.Sync()

		analyzer, err := app.InitializeAnalyzer(settings, logger)
		if err != nil {
			return err
		}
		if analyzer == nil {
			return fmt.Errorf("no analysis endpoint configured (set analysis.endpoint or JUNGLA_ANALYSIS_ENDPOINT)")
		}

		out := cmd.OutOrStdout()
		for _, path := range args {
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			result := analyzer.Analyze(cmd.Context(), data)
			if result == nil {
				fmt.Fprintf(out, "%s\ttranslation unavailable\n", path)
				continue
			}
			fmt.Fprintf(out, "%s\t%s\n", path, result.Summary())
		}
		return nil
	},
}
