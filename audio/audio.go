// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"maps"
	"slices"
	"strings"
	"sync"
)

// Source is a pull-based stream of interleaved PCM.
type Source interface {
	SampleRate() int
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1,1] and
	// returns the number of values written, not frames. (0, io.EOF) ends the
	// stream.
	ReadSamples(dst []float32) (n int, err error)
	// BufSize is the read size the source works best with.
	BufSize() int
	Close() error
}

// Decoder opens a Source over r.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Buffer is a fully decoded mono waveform at its native sample rate.
type Buffer struct {
	Samples    []float32
	SampleRate int
}

// Duration in seconds.
func (b Buffer) Duration() float64 {
	if b.SampleRate <= 0 {
		return 0
	}
	return float64(len(b.Samples)) / float64(b.SampleRate)
}

// Float64 returns the samples widened to float64.
func (b Buffer) Float64() []float64 {
	out := make([]float64, len(b.Samples))
	for i, s := range b.Samples {
		out[i] = float64(s)
	}
	return out
}

// Registry maps format keys such as "wav" or "ogg" to decoders. Keys are
// case-insensitive. The zero value is ready to use and safe for concurrent
// use.
type Registry struct {
	mu       sync.RWMutex
	decoders map[string]Decoder
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds d under format, replacing any earlier decoder.
func (r *Registry) Register(format string, d Decoder) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.decoders == nil {
		r.decoders = make(map[string]Decoder)
	}
	r.decoders[strings.ToLower(format)] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.decoders[strings.ToLower(format)]
	return d, ok
}

// Formats lists the registered keys in sorted order.
func (r *Registry) Formats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.decoders))
}
