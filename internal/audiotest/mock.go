// SPDX-License-Identifier: EPL-2.0

// Package audiotest holds synthetic audio sources shared by the tests.
package audiotest

import (
	"io"
	"math"
)

// MockSource is a test helper that generates audio data for testing.
// It implements the audio.Source interface (without importing it to avoid cycles).
type MockSource struct {
	sampleRate   int
	channels     int
	totalSamples int // Total samples to generate (per channel)
	generated    int // Samples generated so far (per channel)
	waveform     func(sample int, channel int) float32
	closed       bool
}

// NewMockSource creates a new mock audio source.
// totalSamples is the total number of samples per channel to generate.
// waveform is a function that generates sample values given sample index and channel.
func NewMockSource(sampleRate, channels, totalSamples int, waveform func(sample int, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate:   sampleRate,
		channels:     channels,
		totalSamples: totalSamples,
		waveform:     waveform,
	}
}

// NewSilentSource creates a mock source that generates silence (all zeros).
func NewSilentSource(sampleRate, channels, totalSamples int) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(int, int) float32 {
		return 0.0
	})
}

// NewSineSource creates a mock source that generates a sine wave.
func NewSineSource(sampleRate, channels, totalSamples int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(sample int, _ int) float32 {
		t := float64(sample) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// NewConstantSource creates a mock source with constant value.
func NewConstantSource(sampleRate, channels, totalSamples int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, totalSamples, func(int, int) float32 {
		return value
	})
}

// NewClickSource creates a click track at bpm whose first click starts at
// offset seconds. Every channel carries the same signal.
func NewClickSource(sampleRate, channels, totalSamples int, bpm, offset float64) *MockSource {
	click := ClickTrack(sampleRate, totalSamples, bpm, offset)
	return NewMockSource(sampleRate, channels, totalSamples, func(sample int, _ int) float32 {
		return click[sample]
	})
}

// ClickDuration is the length of a single click in ClickTrack.
const ClickDuration = 0.03

// ClickTrack renders a mono click track: a short, decaying broadband burst
// every 60/bpm seconds starting at offset.
func ClickTrack(sampleRate, totalSamples int, bpm, offset float64) []float32 {
	out := make([]float32, totalSamples)
	if bpm <= 0 || sampleRate <= 0 {
		return out
	}

	period := 60.0 / bpm
	clickLen := int(ClickDuration * float64(sampleRate))

	for beat := 0; ; beat++ {
		start := int(math.Round((offset + float64(beat)*period) * float64(sampleRate)))
		if start >= totalSamples {
			break
		}
		seed := uint32(12345)
		for i := 0; i < clickLen && start+i < totalSamples; i++ {
			// xorshift noise keeps the burst deterministic
			seed ^= seed << 13
			seed ^= seed >> 17
			seed ^= seed << 5
			noise := float64(seed)/float64(math.MaxUint32)*2 - 1

			t := float64(i) / float64(sampleRate)
			env := math.Exp(-t / 0.005)
			out[start+i] = float32(0.8 * env * noise)
		}
	}

	return out
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }

func (m *MockSource) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MockSource) Closed() bool { return m.closed }

// Reset resets the generated sample counter to allow re-reading
func (m *MockSource) Reset() {
	m.generated = 0
}

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.generated >= m.totalSamples {
		return 0, io.EOF
	}

	framesRequested := len(dst) / m.channels
	framesToWrite := min(framesRequested, m.totalSamples-m.generated)

	for frame := range framesToWrite {
		sampleIndex := m.generated + frame
		for ch := range m.channels {
			dst[frame*m.channels+ch] = m.waveform(sampleIndex, ch)
		}
	}

	m.generated += framesToWrite
	samplesWritten := framesToWrite * m.channels

	if m.generated >= m.totalSamples {
		return samplesWritten, io.EOF
	}

	return samplesWritten, nil
}
