package audio

import (
	"bytes"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/riff"
	"github.com/go-audio/wav"
)

const wavFormatPCM = 1

func decodeWAV(data []byte) (Waveform, error) {
	if err := checkChunkSizes(data); err != nil {
		return Waveform{}, err
	}

	d := wav.NewDecoder(bytes.NewReader(data))
	if !d.IsValidFile() {
		return Waveform{}, fmt.Errorf("not a valid wav file")
	}
	if d.WavAudioFormat != wavFormatPCM {
		return Waveform{}, fmt.Errorf("wav audio format %d is not integer PCM", d.WavAudioFormat)
	}

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return Waveform{}, err
	}
	if buf == nil || buf.Format == nil {
		return Waveform{}, fmt.Errorf("wav file has no format chunk")
	}

	channels := buf.Format.NumChannels
	if channels <= 0 {
		return Waveform{}, fmt.Errorf("wav file declares %d channels", channels)
	}

	samples := intsToFloat(buf.Data, buf.SourceBitDepth)
	return Waveform{
		Samples:    downmix(samples, channels),
		SampleRate: buf.Format.SampleRate,
	}, nil
}

// checkChunkSizes walks the RIFF chunk headers and rejects any chunk that
// declares more bytes than the upload holds. go-audio allocates the
// declared size up front.
func checkChunkSizes(data []byte) error {
	r := bytes.NewReader(data)
	p := riff.New(r)
	if err := p.ParseHeaders(); err != nil {
		return fmt.Errorf("read riff header: %w", err)
	}
	for {
		ch, err := p.NextChunk()
		if err != nil {
			// end of data, or trailing bytes too short for a chunk header
			return nil
		}
		// NextChunk rounds odd sizes up for the pad byte, which a final
		// chunk may omit.
		if ch.Size > r.Len()+1 {
			return fmt.Errorf("%q chunk declares %d bytes but only %d remain", string(ch.ID[:]), ch.Size, r.Len())
		}
		ch.Drain()
	}
}

func intsToFloat(data []int, bitDepth int) []float64 {
	out := make([]float64, len(data))
	if bitDepth == 8 {
		// 8-bit PCM is unsigned
		for i, v := range data {
			out[i] = float64(v-128) / 128
		}
		return out
	}
	scale := float64(int64(1) << (bitDepth - 1))
	for i, v := range data {
		out[i] = float64(v) / scale
	}
	return out
}

// EncodeWAV renders mono samples in [-1, 1] as a 16-bit PCM wav file.
func EncodeWAV(samples []float64, sampleRate int) ([]byte, error) {
	ws := &memWriteSeeker{}
	enc := wav.NewEncoder(ws, sampleRate, 16, 1, wavFormatPCM)

	ints := make([]int, len(samples))
	for i, s := range samples {
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		ints[i] = int(s * 32767)
	}
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           ints,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return ws.buf, nil
}

// memWriteSeeker is an in-memory io.WriteSeeker for the wav encoder, which
// seeks back to patch chunk sizes.
type memWriteSeeker struct {
	buf []byte
	pos int
}

func (m *memWriteSeeker) Write(p []byte) (int, error) {
	end := m.pos + len(p)
	if end > len(m.buf) {
		m.buf = append(m.buf, make([]byte, end-len(m.buf))...)
	}
	copy(m.buf[m.pos:], p)
	m.pos = end
	return len(p), nil
}

func (m *memWriteSeeker) Seek(offset int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = int64(m.pos) + offset
	case io.SeekEnd:
		abs = int64(len(m.buf)) + offset
	default:
		return 0, fmt.Errorf("invalid whence %d", whence)
	}
	if abs < 0 {
		return 0, fmt.Errorf("negative position %d", abs)
	}
	m.pos = int(abs)
	return abs, nil
}
