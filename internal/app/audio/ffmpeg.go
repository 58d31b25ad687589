package audio

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
)

// decodeFFmpeg pipes the clip through ffmpeg and reads back mono s16le at
// the target rate. Used for containers the native decoders do not handle.
func decodeFFmpeg(ctx context.Context, ffmpegPath string, data []byte, targetRate int) (Waveform, error) {
	cmd := exec.CommandContext(ctx, ffmpegPath,
		"-hide_banner", "-loglevel", "error",
		"-i", "pipe:0",
		"-vn", "-acodec", "pcm_s16le", "-f", "s16le",
		"-ac", "1", "-ar", strconv.Itoa(targetRate),
		"pipe:1")

	var stdout, stderr bytes.Buffer
	cmd.Stdin = bytes.NewReader(data)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return Waveform{}, fmt.Errorf("FFmpeg error: %v, stderr: %s", err, stderr.String())
	}

	return Waveform{
		Samples:    s16leToFloat(stdout.Bytes()),
		SampleRate: targetRate,
	}, nil
}

// FFmpegAvailable reports whether the binary can be found on PATH or at the
// given location.
func FFmpegAvailable(ffmpegPath string) bool {
	if ffmpegPath == "" {
		return false
	}
	_, err := exec.LookPath(ffmpegPath)
	return err == nil
}
