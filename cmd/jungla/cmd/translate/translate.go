package translate

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"habla-jungla/cmd/jungla/cmd/cmdutil"
	"habla-jungla/internal/api/v1/dto"
	"habla-jungla/internal/app"
	"habla-jungla/internal/app/batch"
)

var (
	parallel   int
	progress   bool
	format     string
	pcmRate    int
	extensions []string
)

func init() {
	Cmd.Flags().IntVarP(&parallel, "parallel", "p", 2, "number of files translated at once")
	Cmd.Flags().BoolVar(&progress, "progress", false, "draw progress bars even when stderr is not a terminal")
	Cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text or json (one object per line)")
	Cmd.Flags().IntVar(&pcmRate, "pcm-rate", 0, "declared sample rate for headerless PCM files (default: audio.sample_rate)")
	Cmd.Flags().StringSliceVar(&extensions, "ext", batch.DefaultExtensions, "file extensions picked up from directories")
}

// Cmd represents the translate command
var Cmd = &cobra.Command{
	Use:   "translate <file|dir>...",
	Short: "Translate recordings on disk",
	Long: `Translate recordings on disk.

Each argument is an audio file or a directory that is searched recursively.
Files are decoded, classified and voiced with the configured backend, and
one result is printed per file in argument order. The command fails if any
file fails.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if format != "text" && format != "json" {
			return fmt.Errorf("unknown format %q, expected text or json", format)
		}

		settings, logger, err := cmdutil.Setup()
		if err != nil {
			return err
		}
		defer logger.Sync()

		paths, err := batch.ExpandPaths(args, lo.Map(extensions, func(ext string, _ int) string {
			return "." + strings.TrimPrefix(strings.ToLower(ext), ".")
		}))
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			return fmt.Errorf("no audio files found")
		}

		p, err := app.InitializePipeline(settings, logger)
		if err != nil {
			return err
		}

		runner := batch.NewRunner(p, batch.ProgressConfig{
			Enabled: len(paths) > 1 && batch.ShouldShowProgress(progress),
			Writer:  cmd.ErrOrStderr(),
		}, logger)
		runner.PCMRate = pcmRate
		if runner.PCMRate == 0 {
			runner.PCMRate = settings.Audio.SampleRate
		}

		items := runner.Run(cmd.Context(), paths, parallel)
		if err := printItems(cmd.OutOrStdout(), cmd.ErrOrStderr(), items); err != nil {
			return err
		}

		if failed := batch.Failed(items); len(failed) > 0 {
			return fmt.Errorf("%d of %d files failed", len(failed), len(items))
		}
		return nil
	},
}

type jsonLine struct {
	File string `json:"file"`
	*dto.TranslationResponse
	Error string `json:"error,omitempty"`
}

func printItems(w, summary io.Writer, items []batch.Item) error {
	enc := json.NewEncoder(w)
	for _, item := range items {
		if format == "json" {
			line := jsonLine{File: item.Path}
			if item.Err != nil {
				line.Error = item.Err.Error()
			} else {
				line.TranslationResponse = dto.NewTranslationResponse(item.Translation, "")
			}
			if err := enc.Encode(line); err != nil {
				return err
			}
			continue
		}

		if item.Err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", item.Path, item.Err)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", item.Path, item.Translation.Label, item.Translation.Utterance)
	}

	if format == "text" && len(items) > 1 {
		counts := batch.CountByLabel(items)
		labels := lo.Keys(counts)
		sort.Strings(labels)
		fmt.Fprintln(summary, strings.Join(lo.Map(labels, func(l string, _ int) string {
			return fmt.Sprintf("%s=%d", l, counts[l])
		}), " "))
	}
	return nil
}
