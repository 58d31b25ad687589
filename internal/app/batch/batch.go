// Package batch translates many recordings from disk with bounded
// parallelism and optional progress bars.
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"habla-jungla/internal/app/audio"
	"habla-jungla/internal/app/pipeline"
)

// DefaultExtensions are the file suffixes picked up when walking a directory.
var DefaultExtensions = []string{".wav", ".mp3", ".pcm", ".raw"}

// Translator is the part of the pipeline a batch needs.
type Translator interface {
	Translate(ctx context.Context, clip audio.Clip) (*pipeline.Translation, error)
}

// Item is the outcome for one input file.
type Item struct {
	Path        string
	Translation *pipeline.Translation
	Err         error
}

// Runner feeds files through a Translator.
type Runner struct {
	translator Translator
	progress   ProgressConfig
	logger     *zap.Logger
	// PCMRate is the declared sample rate for headerless PCM input.
	PCMRate int
}

func NewRunner(translator Translator, config ProgressConfig, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		translator: translator,
		progress:   config,
		logger:     logger,
	}
}

// Run translates every path and returns one Item per path in input order.
// At most parallel translations run at once. Per-file failures are recorded
// on the Item; Run itself only stops early when ctx is cancelled.
func (r *Runner) Run(ctx context.Context, paths []string, parallel int) []Item {
	items := make([]Item, len(paths))
	if len(paths) == 0 {
		return items
	}
	if parallel < 1 {
		parallel = 1
	}

	bar := newProgress(r.progress, len(paths), "Translating")
	defer bar.wait()

	var wg sync.WaitGroup
	sem := make(chan struct{}, parallel)

	for i, path := range paths {
		items[i].Path = path

		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			for j := i; j < len(paths); j++ {
				items[j] = Item{Path: paths[j], Err: ctx.Err()}
			}
			bar.abort()
			wg.Wait()
			return items
		}

		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			defer func() { <-sem }()

			start := time.Now()
			items[i].Translation, items[i].Err = r.translateFile(ctx, path)
			bar.done(time.Since(start), items[i].Err)

			if items[i].Err != nil {
				r.logger.Warn("translation failed", zap.String("file", path), zap.Error(items[i].Err))
			} else {
				r.logger.Debug("translated file", zap.String("file", path),
					zap.String("label", string(items[i].Translation.Label)))
			}
		}(i, path)
	}
	wg.Wait()
	return items
}

func (r *Runner) translateFile(ctx context.Context, path string) (*pipeline.Translation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	clip := audio.Clip{
		Data:     data,
		Filename: filepath.Base(path),
	}
	if audio.IsPCMFile(path) {
		clip.ContentType = audio.PCMContentType
		clip.SampleRate = r.PCMRate
		clip.Channels = 1
	}
	return r.translator.Translate(ctx, clip)
}

// Failed returns the items that carry an error.
func Failed(items []Item) []Item {
	return lo.Filter(items, func(item Item, _ int) bool {
		return item.Err != nil
	})
}

// CountByLabel tallies successful translations per label.
func CountByLabel(items []Item) map[string]int {
	ok := lo.Filter(items, func(item Item, _ int) bool {
		return item.Err == nil && item.Translation != nil
	})
	return lo.CountValuesBy(ok, func(item Item) string {
		return string(item.Translation.Label)
	})
}

// ExpandPaths replaces directories in args with the audio files they
// contain, sorted by name. Plain files are kept as given.
func ExpandPaths(args []string, extensions []string) ([]string, error) {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}

	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}

		var found []string
		err = filepath.WalkDir(arg, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			ext := strings.ToLower(filepath.Ext(path))
			if lo.Contains(extensions, ext) {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		sort.Strings(found)
		paths = append(paths, found...)
	}
	return lo.Uniq(paths), nil
}
