// SPDX-License-Identifier: EPL-2.0

package onset

// Backtrack moves each event to the nearest preceding local minimum of
// energy. A minimum is an index i with energy[i-1] >= energy[i] < energy[i+1];
// index 0 always counts as one. Events must be ascending.
func Backtrack(events []int, energy []float64) []int {
	if len(events) == 0 {
		return nil
	}

	minima := []int{0}
	for i := 1; i+1 < len(energy); i++ {
		if energy[i] <= energy[i-1] && energy[i] < energy[i+1] {
			minima = append(minima, i)
		}
	}

	out := make([]int, len(events))
	j := 0
	for k, ev := range events {
		for j+1 < len(minima) && minima[j+1] <= ev {
			j++
		}
		out[k] = minima[j]
	}
	return out
}

// Normalize rescales env to [0, 1]. The input is not modified.
func Normalize(env []float64) []float64 {
	if len(env) == 0 {
		return nil
	}

	lo, hi := env[0], env[0]
	for _, v := range env {
		lo = min(lo, v)
		hi = max(hi, v)
	}

	out := make([]float64, len(env))
	span := hi - lo
	if span == 0 {
		return out
	}
	for i, v := range env {
		out[i] = (v - lo) / span
	}
	return out
}

// Detect picks onset frames out of an envelope produced by Strength. It
// returns nil when the envelope carries no energy at all.
func Detect(env []float64, sampleRate, hop int, backtrack bool) ([]int, error) {
	if sampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}
	if hop <= 0 {
		return nil, ErrInvalidConfig
	}

	silent := true
	for _, v := range env {
		if v != 0 {
			silent = false
			break
		}
	}
	if silent {
		return nil, nil
	}

	norm := Normalize(env)
	peaks := PeakPick(norm, PeakParamsFor(sampleRate, hop))
	if backtrack {
		peaks = Backtrack(peaks, norm)
	}
	return peaks, nil
}

// FramesToTime converts frame indices to seconds.
func FramesToTime(frames []int, sampleRate, hop int) []float64 {
	if sampleRate <= 0 {
		return nil
	}

	out := make([]float64, len(frames))
	for i, f := range frames {
		out[i] = float64(f*hop) / float64(sampleRate)
	}
	return out
}
