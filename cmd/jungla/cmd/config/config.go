package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"habla-jungla/cmd/jungla/cmd/cmdutil"
	"habla-jungla/internal/app"
	appconfig "habla-jungla/internal/config"
)

var (
	output string
	all    bool
	force  bool
)

func init() {
	showCmd.Flags().StringVarP(&output, "output", "o", "yaml", "output format: yaml or json")
	showCmd.Flags().BoolVar(&all, "all", false, "print every loaded setting (secrets omitted) as JSON")
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(initCmd)
}

// Cmd represents the config command
var Cmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create settings files",
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the constants a translation runs with",
	Long: `Print the constants a translation runs with: target sample rate, band
count, classifier input width, ordered vocabulary, per-label templates and the
generation cap. These are the values GET /api/v1/config reports.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, logger, err := cmdutil.Setup()
		if err != nil {
			return err
		}
		defer logger.Sync()

		if all {
			return writeJSON(cmd.OutOrStdout(), settings)
		}

		p, err := app.InitializePipeline(settings, logger)
		if err != nil {
			return err
		}

		switch output {
		case "json":
			return writeJSON(cmd.OutOrStdout(), p.Constants())
		case "yaml":
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(p.Constants()); err != nil {
				return err
			}
			return enc.Close()
		default:
			return fmt.Errorf("unknown output format %q, expected yaml or json", output)
		}
	},
}

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default settings to a file",
	Long: `Write the default settings to a YAML file (./jungla.yaml unless a path
is given). Secrets are written as ${VAR} references and expanded when the
file is loaded.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "jungla.yaml"
		if len(args) == 1 {
			path = args[0]
		}
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists, use --force to overwrite", path)
		}

		if err := appconfig.Save(appconfig.Default(), path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote default settings to %s\n", path)
		return nil
	},
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
