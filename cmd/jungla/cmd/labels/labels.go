package labels

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"habla-jungla/cmd/jungla/cmd/cmdutil"
	"habla-jungla/internal/app"
	"habla-jungla/internal/app/classifier"
)

// Cmd represents the labels command
var Cmd = &cobra.Command{
	Use:   "labels",
	Short: "List the species vocabulary and prompt templates",
	Long: `List the species vocabulary in output-channel order together with the
prompt each species is voiced with. The last line is the fallback used when
classification fails.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, logger, err := cmdutil.Setup()
		if err != nil {
			return err
		}
		defer logger.Sync()

		p, err := app.InitializePipeline(settings, logger)
		if err != nil {
			return err
		}
		constants := p.Constants()

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for i, label := range constants.Vocabulary {
			prompt, ok := constants.Templates[label]
			if !ok {
				prompt = constants.FallbackTemplate
			}
			fmt.Fprintf(w, "%d\t%s\t%q\n", i, label, prompt)
		}
		fmt.Fprintf(w, "-\t%s\t%q\n", classifier.Unknown, constants.FallbackTemplate)
		return w.Flush()
	},
}
