// SPDX-License-Identifier: EPL-2.0

package onset

// PeakParams are the neighbourhood sizes, in frames, used by PeakPick.
type PeakParams struct {
	PreMax  int
	PostMax int
	PreAvg  int
	PostAvg int
	Delta   float64
	Wait    int
}

// Time constants, in seconds, from which PeakParamsFor derives frame counts.
const (
	MaxWindow  = 0.03
	AvgWindow  = 0.10
	WaitWindow = 0.03
	Delta      = 0.07
)

// PeakParamsFor scales the default peak picking windows to a sample rate and
// hop length.
func PeakParamsFor(sampleRate, hop int) PeakParams {
	frames := func(sec float64) int {
		return int(sec * float64(sampleRate) / float64(hop))
	}

	return PeakParams{
		PreMax:  frames(MaxWindow),
		PostMax: 1,
		PreAvg:  frames(AvgWindow),
		PostAvg: frames(AvgWindow) + 1,
		Delta:   Delta,
		Wait:    frames(WaitWindow),
	}
}

// PeakPick returns the indices n of x for which
//
//	x[n] == max(x[n-PreMax : n+PostMax])
//	x[n] >= mean(x[n-PreAvg : n+PostAvg]) + Delta
//	x[n] > 0
//
// and that lie more than Wait frames after the previously kept peak. Windows
// are clamped to the bounds of x.
func PeakPick(x []float64, p PeakParams) []int {
	var peaks []int
	last := -p.Wait - 1

	for n, v := range x {
		if v <= 0 {
			continue
		}

		lo, hi := clamp(n-p.PreMax, n+p.PostMax, len(x))
		isMax := true
		for _, w := range x[lo:hi] {
			if w > v {
				isMax = false
				break
			}
		}
		if !isMax {
			continue
		}

		lo, hi = clamp(n-p.PreAvg, n+p.PostAvg, len(x))
		var sum float64
		for _, w := range x[lo:hi] {
			sum += w
		}
		if v < sum/float64(hi-lo)+p.Delta {
			continue
		}

		if n > last+p.Wait {
			peaks = append(peaks, n)
			last = n
		}
	}

	return peaks
}

func clamp(lo, hi, n int) (int, int) {
	return max(lo, 0), min(hi, n)
}
