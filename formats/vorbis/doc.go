// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams with github.com/jfreymuth/oggvorbis.
//
//	f, _ := os.Open("loop.ogg")
//	src, err := vorbis.Decoder{}.Decode(f)
//
// Samples are interleaved float32 in [-1.0, 1.0]. A read can stop in the
// middle of a frame; audio.MonoMixer joins split frames back together.
package vorbis
