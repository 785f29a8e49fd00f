// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/ik5/getbpm/utils"
)

// WriteWAV16 writes interleaved float32 samples as a 16-bit PCM WAV.
// go-audio patches the RIFF sizes on Close, so w must be seekable.
func WriteWAV16(w io.WriteSeeker, sampleRate, channels int, samples []float32) error {
	if channels <= 0 || len(samples)%channels != 0 {
		return ErrInvalidChannels
	}

	enc := wav.NewEncoder(w, sampleRate, 16, channels, formatPCM)

	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(utils.Float32ToInt16(s))
	}

	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("writing wav samples: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalizing wav: %w", err)
	}

	return nil
}
