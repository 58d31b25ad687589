package audio

import (
	"math"
	"time"
)

// Tone synthesizes a sine wave of the given frequency and amplitude.
func Tone(freq float64, d time.Duration, sampleRate int, amplitude float64) []float64 {
	n := int(d.Seconds() * float64(sampleRate))
	out := make([]float64, n)
	for i := range out {
		out[i] = amplitude * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))
	}
	return out
}
