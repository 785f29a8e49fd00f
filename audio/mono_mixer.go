// SPDX-License-Identifier: EPL-2.0

package audio

// MonoMixer averages the channels of src into a single channel. Sources may
// return a count that ends mid-frame; the incomplete frame is held back and
// completed by the next read.
type MonoMixer struct {
	src Source

	interleaved []float32
	// values of an incomplete frame at the start of interleaved
	pending int
}

func NewMonoMixer(src Source) *MonoMixer {
	return &MonoMixer{src: src}
}

func (m *MonoMixer) SampleRate() int { return m.src.SampleRate() }
func (m *MonoMixer) Channels() int   { return 1 }
func (m *MonoMixer) BufSize() int    { return m.src.BufSize() }
func (m *MonoMixer) Close() error    { return m.src.Close() }

// ReadSamples fills dst with up to len(dst) mono frames. An incomplete frame
// left when the source ends is dropped.
func (m *MonoMixer) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	channels := m.src.Channels()
	if channels <= 0 {
		return 0, ErrNoChannels
	}
	if channels == 1 {
		return m.src.ReadSamples(dst)
	}

	want := len(dst) * channels
	if cap(m.interleaved) < want {
		grown := make([]float32, want)
		copy(grown, m.interleaved[:m.pending])
		m.interleaved = grown
	}
	m.interleaved = m.interleaved[:want]

	n, err := m.src.ReadSamples(m.interleaved[m.pending:])
	total := m.pending + n
	frames := total / channels
	used := frames * channels

	mixDown(dst[:frames], m.interleaved[:used], channels)

	m.pending = copy(m.interleaved, m.interleaved[used:total])
	return frames, err
}

func mixDown(dst, interleaved []float32, channels int) {
	if channels == 2 {
		for f := range dst {
			dst[f] = (interleaved[2*f] + interleaved[2*f+1]) * 0.5
		}
		return
	}

	inv := 1 / float32(channels)
	for f := range dst {
		var sum float32
		for _, v := range interleaved[f*channels : (f+1)*channels] {
			sum += v
		}
		dst[f] = sum * inv
	}
}
