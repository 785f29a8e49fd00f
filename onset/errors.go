// SPDX-License-Identifier: EPL-2.0

package onset

import "errors"

var (
	ErrInvalidSampleRate = errors.New("onset: sample rate must be positive")
	ErrInvalidConfig     = errors.New("onset: invalid analysis configuration")
)
