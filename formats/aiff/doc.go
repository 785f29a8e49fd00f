// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF and uncompressed AIFF-C files with
// github.com/go-audio/aiff.
//
// Signed PCM at 8, 16, 24 and 32 bits is supported, with any channel count
// and sample rate. go-audio needs an io.ReadSeeker, so other readers are
// buffered in memory first.
package aiff
