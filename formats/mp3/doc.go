// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG audio with github.com/hajimehoshi/go-mp3.
//
// go-mp3 always emits 16-bit little-endian stereo, so every Source from this
// package reports two channels, mono files included. Reads may split a
// sample across calls; the odd byte is held until the next ReadSamples.
package mp3
