// SPDX-License-Identifier: EPL-2.0

// Package audio turns an audio file into a mono waveform at its native
// sample rate.
//
// Decoders under formats/ produce a Source, a pull-based stream of
// interleaved float32 samples in [-1.0, 1.0]. A Registry maps format keys
// ("wav", "aiff", "mp3", "ogg") to decoders, and Load ties it together:
//
//	reg := audio.NewRegistry()
//	reg.Register(audio.FormatWAV, wav.Decoder{})
//	buf, err := audio.Load("take1.wav", reg)
//
// Load chooses a decoder by extension, falling back to the file's magic
// bytes, then drains the stream through a MonoMixer with ReadAll.
//
// ReadSamples reports the end of a stream with io.EOF. Inputs that no
// registered decoder understands yield ErrUnsupportedFormat.
package audio
