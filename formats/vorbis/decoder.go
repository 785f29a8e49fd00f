// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"errors"
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/getbpm/audio"
)

// packetReader is the subset of oggvorbis.Reader used by source
type packetReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type source struct {
	r packetReader
}

func (s *source) SampleRate() int { return s.r.SampleRate() }
func (s *source) Channels() int   { return s.r.Channels() }
func (s *source) Close() error    { return nil }

// BufSize is 2048 frames, the largest vorbis block.
func (s *source) BufSize() int { return 2048 * max(s.r.Channels(), 1) }

// ReadSamples returns interleaved values. A read may end mid-frame.
func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	n, err := s.r.Read(dst)
	switch {
	case errors.Is(err, io.EOF):
		return n, io.EOF
	case err != nil:
		return n, fmt.Errorf("reading vorbis packets: %w", err)
	case n == 0:
		return 0, io.EOF
	}
	return n, nil
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotOggVorbis, err)
	}
	if dec.Channels() <= 0 {
		return nil, audio.ErrNoChannels
	}

	return &source{r: dec}, nil
}
