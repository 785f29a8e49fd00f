// SPDX-License-Identifier: EPL-2.0

// Package wav provides WAV audio file decoding and encoding.
//
// Decoding is built on github.com/go-audio/wav, so files with extra chunks
// (LIST, fact, cue) and non-canonical header layouts are handled.
//
// # Supported Formats
//
//   - Integer PCM, 8 (unsigned), 16, 24 and 32-bit
//   - WAVE_FORMAT_EXTENSIBLE carrying integer PCM
//   - Any channel count and sample rate
//
// IEEE float and compressed WAV payloads return ErrOnlyPCMSupported.
//
// # Decoding WAV Files
//
//	file, _ := os.Open("audio.wav")
//	source, err := wav.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
//	buf := make([]float32, 4096)
//	n, err := source.ReadSamples(buf)
//
// The decoder returns an audio.Source with interleaved float32 samples in
// [-1, 1]. Input that is not an io.ReadSeeker is buffered in memory first.
//
// # Writing WAV Files
//
// WriteWAV16 stores interleaved float32 samples as 16-bit PCM. It needs an
// io.WriteSeeker such as *os.File:
//
//	out, _ := os.Create("click.wav")
//	defer out.Close()
//	err := wav.WriteWAV16(out, 22050, 1, samples)
package wav
