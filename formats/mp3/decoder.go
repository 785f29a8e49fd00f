// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/getbpm/audio"
	"github.com/ik5/getbpm/utils"
)

// go-mp3 always emits 16-bit little-endian stereo
const outputChannels = 2

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec        mp3Reader
	sampleRate int
	buf        []byte
	// odd byte left over from a previous Read
	carry    byte
	hasCarry bool
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return outputChannels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.buf) / 2 }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	bytesNeeded := len(dst) * 2
	if cap(s.buf) < bytesNeeded {
		s.buf = make([]byte, bytesNeeded)
	}
	s.buf = s.buf[:bytesNeeded]

	start := 0
	if s.hasCarry {
		s.buf[0] = s.carry
		s.hasCarry = false
		start = 1
	}

	n, err := s.dec.Read(s.buf[start:])
	n += start
	if err != nil && err != io.EOF {
		return 0, fmt.Errorf("reading mp3 frames: %w", err)
	}

	samples := n / 2
	if n%2 == 1 {
		s.carry = s.buf[n-1]
		s.hasCarry = true
	}

	scale := utils.PCMScale(16)
	for i := range samples {
		dst[i] = float32(int16(binary.LittleEndian.Uint16(s.buf[2*i:]))) / scale
	}

	if samples == 0 && err == io.EOF {
		return 0, io.EOF
	}

	return samples, err
}

// Decoder reads MPEG-1/2 Layer III streams.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotMP3, err)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		buf:        make([]byte, 8192),
	}, nil
}
