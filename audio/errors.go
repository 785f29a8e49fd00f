// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	// ErrUnsupportedFormat is returned when no registered decoder matches the input.
	ErrUnsupportedFormat = errors.New("unsupported audio format")

	// ErrNoChannels is returned by sources reporting zero channels.
	ErrNoChannels = errors.New("audio source has no channels")

	// ErrEmptyBuffer is returned when an analysis needs at least one sample.
	ErrEmptyBuffer = errors.New("audio buffer has no samples")
)
