// SPDX-License-Identifier: EPL-2.0

// Package pcm turns the integer PCM readers of go-audio (wav, aiff) into
// audio.Source values producing float32 samples.
package pcm

import (
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"

	"github.com/ik5/getbpm/utils"
)

const defaultBufSize = 4096

var ErrUnsupportedBitDepth = errors.New("unsupported PCM bit depth")

// Reader is the part of wav.Decoder and aiff.Decoder that Source uses.
type Reader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Source reads interleaved integer PCM from a Reader.
type Source struct {
	r          Reader
	name       string
	sampleRate int
	channels   int
	bitDepth   int
	// 8-bit WAV is unsigned, 8-bit AIFF is not
	unsigned8 bool

	ints *goaudio.IntBuffer
}

// NewSource wraps r. name only shows up in error messages.
func NewSource(name string, r Reader, bitDepth int, unsigned8 bool) (*Source, error) {
	switch bitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%s: %d bits: %w", name, bitDepth, ErrUnsupportedBitDepth)
	}

	s := &Source{
		r:         r,
		name:      name,
		bitDepth:  bitDepth,
		unsigned8: unsigned8,
	}
	if f := r.Format(); f != nil {
		s.sampleRate = f.SampleRate
		s.channels = f.NumChannels
	}
	return s, nil
}

func (s *Source) SampleRate() int { return s.sampleRate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) Close() error    { return nil }

func (s *Source) BufSize() int {
	if s.ints != nil {
		return cap(s.ints.Data)
	}
	return defaultBufSize
}

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	if s.ints == nil || cap(s.ints.Data) < len(dst) {
		s.ints = &goaudio.IntBuffer{
			Data:           make([]int, len(dst)),
			Format:         s.r.Format(),
			SourceBitDepth: s.bitDepth,
		}
	} else {
		s.ints.Data = s.ints.Data[:len(dst)]
	}

	n, err := s.r.PCMBuffer(s.ints)
	if n == 0 {
		if err != nil && !errors.Is(err, io.EOF) {
			return 0, fmt.Errorf("reading %s pcm: %w", s.name, err)
		}
		return 0, io.EOF
	}

	utils.IntsToFloat32(dst, s.ints.Data[:n], s.bitDepth, s.unsigned8)

	// a short read with no error is the end of the data chunk
	if n < len(dst) && err == nil {
		return n, io.EOF
	}
	return n, err
}
