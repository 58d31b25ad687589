package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"habla-jungla/cmd/jungla/cmd/analyze"
	"habla-jungla/cmd/jungla/cmd/backbone"
	"habla-jungla/cmd/jungla/cmd/cmdutil"
	"habla-jungla/cmd/jungla/cmd/config"
	"habla-jungla/cmd/jungla/cmd/labels"
	"habla-jungla/cmd/jungla/cmd/serve"
	"habla-jungla/cmd/jungla/cmd/translate"
	"habla-jungla/cmd/jungla/cmd/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "jungla",
	Short: "Translate animal sounds into what the animal is saying",
	Long: `Habla Jungla listens to a recording of an animal, guesses the species
and asks a language model what that animal might be saying.

- jungla serve runs the HTTP service and the recorder page
- jungla translate runs local files through the same pipeline`,
	SilenceUsage:     true,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(translate.Cmd)
	rootCmd.AddCommand(analyze.Cmd)
	rootCmd.AddCommand(labels.Cmd)
	rootCmd.AddCommand(config.Cmd)
	rootCmd.AddCommand(backbone.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().StringVarP(&cmdutil.ConfigPath, "config", "c", "",
		"settings file (default: $JUNGLA_CONFIG, ./jungla.yaml, ./config/jungla.yaml, ~/.habla-jungla/jungla.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&cmdutil.Verbose, "verbose", "V", false, "verbose output")
}
