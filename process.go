// SPDX-License-Identifier: EPL-2.0

package getbpm

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Result of analysing one file.
type Result struct {
	BPM float64
	// Onsets are onset times in seconds, ascending.
	Onsets []float64
}

// FirstBeat returns the earliest onset time, if any.
func (r Result) FirstBeat() (float64, bool) {
	if len(r.Onsets) == 0 {
		return 0, false
	}
	return r.Onsets[0], true
}

// WriteTo prints the tempo line followed by either the first beat time or a
// note that no beats were found.
func (r Result) WriteTo(w io.Writer) (int64, error) {
	n, err := fmt.Fprintf(w, "Estimated BPM: %s\n", formatBPM(r.BPM))
	total := int64(n)
	if err != nil {
		return total, err
	}

	if first, ok := r.FirstBeat(); ok {
		n, err = fmt.Fprintf(w, "Timing of the first beat: %.2f seconds\n", first)
	} else {
		n, err = fmt.Fprintln(w, "No beats detected in the audio.")
	}
	total += int64(n)

	return total, err
}

// formatBPM prints the shortest exact decimal form, keeping one fractional
// digit for whole numbers so 120 reads "120.0".
func formatBPM(bpm float64) string {
	s := strconv.FormatFloat(bpm, 'f', -1, 64)
	if math.IsInf(bpm, 0) || math.IsNaN(bpm) || strings.Contains(s, ".") {
		return s
	}
	return s + ".0"
}

// Process decodes path and analyses it with a. Onsets are backtracked to the
// preceding energy minimum. The first failing step aborts the run.
func Process(a Analyzer, path string) (Result, error) {
	buf, err := a.Decode(path)
	if err != nil {
		return Result{}, err
	}

	bpm, err := a.EstimateTempo(buf)
	if err != nil {
		return Result{}, err
	}

	frames, err := a.DetectOnsets(buf, true)
	if err != nil {
		return Result{}, err
	}

	return Result{
		BPM:    bpm,
		Onsets: a.FramesToTime(frames, buf.SampleRate),
	}, nil
}
