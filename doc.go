// SPDX-License-Identifier: EPL-2.0

// Package getbpm estimates the tempo and the first onset of an audio file.
//
// The work is split behind the Analyzer interface: decode a file into a mono
// buffer, estimate its tempo, detect onset frames and convert them to
// seconds. Engine is the default Analyzer and Process chains the steps:
//
//	res, err := getbpm.Process(getbpm.NewEngine(), "song.wav")
//	if err != nil {
//		return err
//	}
//	res.WriteTo(os.Stdout)
//
// # Supported Formats
//
// The default Engine decodes:
//   - WAV (PCM 8/16/24/32-bit) via formats/wav
//   - AIFF (PCM 8/16/24/32-bit) via formats/aiff
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//
// Audio is analysed at its native sample rate. Multi-channel files are
// averaged to mono first.
package getbpm
