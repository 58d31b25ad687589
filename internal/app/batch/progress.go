package batch

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// ProgressConfig controls the progress display of a batch.
type ProgressConfig struct {
	Enabled bool
	// Writer defaults to stderr.
	Writer io.Writer
}

// progress draws one bar per batch. A disabled progress is a no-op, so
// callers never check Enabled themselves.
type progress struct {
	container *mpb.Progress
	bar       *mpb.Bar
	failed    atomic.Int64
}

func newProgress(config ProgressConfig, total int, name string) *progress {
	if !config.Enabled || total == 0 {
		return &progress{}
	}

	writer := config.Writer
	if writer == nil {
		writer = os.Stderr
	}

	p := &progress{
		container: mpb.New(
			mpb.WithOutput(writer),
			mpb.WithRefreshRate(120*time.Millisecond),
		),
	}
	p.bar = p.container.AddBar(int64(total),
		mpb.PrependDecorators(
			decor.Name(name+" ", decor.WC{W: len(name) + 1, C: decor.DindentRight}),
			decor.CountersNoUnit("(%d/%d)", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.Any(func(decor.Statistics) string {
				if n := p.failed.Load(); n > 0 {
					return fmt.Sprintf("%d failed", n)
				}
				return ""
			}, decor.WCSyncSpace),
			decor.OnComplete(
				decor.EwmaETA(decor.ET_STYLE_GO, 30, decor.WCSyncWidth), "done",
			),
			decor.OnComplete(
				decor.EwmaSpeed(0, "%.1f clips/s", 30, decor.WCSyncSpace), "",
			),
		),
	)
	return p
}

// done records one finished clip and how long it took.
func (p *progress) done(elapsed time.Duration, err error) {
	if err != nil {
		p.failed.Add(1)
	}
	if p.bar != nil {
		p.bar.EwmaIncrement(elapsed)
	}
}

func (p *progress) abort() {
	if p.bar != nil {
		p.bar.Abort(false)
	}
}

func (p *progress) wait() {
	if p.container != nil {
		p.container.Wait()
	}
}

// IsTTY reports whether writer is a character device.
func IsTTY(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok || file == nil {
		return false
	}
	stat, err := file.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice != 0
}

// ShouldShowProgress reports whether bars should be drawn on stderr.
func ShouldShowProgress(forced bool) bool {
	return forced || IsTTY(os.Stderr)
}
