// SPDX-License-Identifier: EPL-2.0

package tempo

import "errors"

var (
	ErrEmptySignal       = errors.New("tempo: onset envelope is empty")
	ErrInvalidSampleRate = errors.New("tempo: sample rate must be positive")
	ErrInvalidConfig     = errors.New("tempo: invalid estimation configuration")
)
