package backbone

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"habla-jungla/cmd/jungla/cmd/cmdutil"
	"habla-jungla/internal/app"
	bb "habla-jungla/internal/app/classifier/backbone"
)

var (
	seed  uint64
	force bool
)

func init() {
	initCmd.Flags().Uint64Var(&seed, "seed", 0, "weight seed (default: classifier.backbone.seed)")
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	Cmd.AddCommand(initCmd)
}

// Cmd represents the backbone command
var Cmd = &cobra.Command{
	Use:   "backbone",
	Short: "Manage convnet backbone weights",
}

var initCmd = &cobra.Command{
	Use:   "init <path>",
	Short: "Write seeded convnet weights to a file",
	Long: `Write deterministic He-initialized convnet weights, laid out as configured
under classifier.backbone.blocks, to a msgpack file. Point
classifier.backbone.weights_path at the file to load it instead of seeding
at startup.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := cmdutil.LoadSettings()
		if err != nil {
			return err
		}

		path := args[0]
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists, use --force to overwrite", path)
		}

		cfg := app.BackboneConfig(settings)
		if cmd.Flags().Changed("seed") {
			cfg.Seed = seed
		}
		blocks := cfg.Blocks
		if len(blocks) == 0 {
			blocks = bb.DefaultBlocks
		}

		w := bb.SeededWeights(cfg.Seed, bb.InputChannels, blocks)
		if err := w.Validate(); err != nil {
			return err
		}
		if err := bb.SaveWeights(path, w); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d-block weights (seed %d, %d output channels) to %s\n",
			len(w.Blocks), cfg.Seed, w.OutChannels(), path)
		return nil
	},
}
