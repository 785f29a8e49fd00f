// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

const defaultReadSize = 4096

// ReadAll drains src into a mono Buffer at the source's native sample rate.
// Multi-channel sources are averaged down with a MonoMixer. ReadAll does not
// close src.
func ReadAll(src Source) (Buffer, error) {
	rate := src.SampleRate()
	if src.Channels() <= 0 {
		return Buffer{SampleRate: rate}, ErrNoChannels
	}

	mono := NewMonoMixer(src)

	size := src.BufSize()
	if size <= 0 {
		size = defaultReadSize
	}
	buf := make([]float32, size)

	// start with roughly two seconds and let append grow it
	samples := make([]float32, 0, max(rate*2, size))

	for {
		n, err := mono.ReadSamples(buf)
		if n > 0 {
			samples = append(samples, buf[:n]...)
		}

		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return Buffer{SampleRate: rate}, fmt.Errorf("reading samples: %w", err)
		}

		if n == 0 {
			// decoders that signal EOF only by returning nothing
			break
		}
	}

	return Buffer{Samples: samples, SampleRate: rate}, nil
}
