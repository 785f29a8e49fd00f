// SPDX-License-Identifier: EPL-2.0

package spectral

import "math"

const (
	// DefaultAmin is the smallest power considered before taking the log.
	DefaultAmin = 1e-10
	// DefaultTopDB is the dynamic range kept below the loudest cell.
	DefaultTopDB = 80.0
)

// PowerToDB converts power values to decibels relative to 1.0. Values are
// floored at amin, and when topDB > 0 everything more than topDB below the
// global maximum is raised to that level. The input is not modified.
func PowerToDB(spec [][]float64, amin, topDB float64) [][]float64 {
	out := make([][]float64, len(spec))
	peak := math.Inf(-1)

	for t, frame := range spec {
		row := make([]float64, len(frame))
		for k, p := range frame {
			v := 10 * math.Log10(math.Max(amin, p))
			row[k] = v
			peak = math.Max(peak, v)
		}
		out[t] = row
	}

	if topDB > 0 && !math.IsInf(peak, -1) {
		floor := peak - topDB
		for _, row := range out {
			for k, v := range row {
				if v < floor {
					row[k] = floor
				}
			}
		}
	}

	return out
}
