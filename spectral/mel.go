// SPDX-License-Identifier: EPL-2.0

package spectral

import "math"

// Slaney mel scale: linear below 1 kHz, logarithmic above.
const (
	melFSp      = 200.0 / 3
	melMinLogHz = 1000.0
	melMinLog   = melMinLogHz / melFSp
)

var melLogStep = math.Log(6.4) / 27.0

// HzToMel converts a frequency to the Slaney mel scale.
func HzToMel(hz float64) float64 {
	if hz < melMinLogHz {
		return hz / melFSp
	}
	return melMinLog + math.Log(hz/melMinLogHz)/melLogStep
}

// MelToHz is the inverse of HzToMel.
func MelToHz(mel float64) float64 {
	if mel < melMinLog {
		return mel * melFSp
	}
	return melMinLogHz * math.Exp(melLogStep*(mel-melMinLog))
}

// MelFrequencies returns n frequencies evenly spaced on the mel scale
// between fmin and fmax inclusive.
func MelFrequencies(n int, fmin, fmax float64) []float64 {
	out := make([]float64, n)
	if n == 0 {
		return out
	}
	lo, hi := HzToMel(fmin), HzToMel(fmax)
	if n == 1 {
		out[0] = MelToHz(lo)
		return out
	}
	step := (hi - lo) / float64(n-1)
	for i := range n {
		out[i] = MelToHz(lo + float64(i)*step)
	}
	return out
}

// MelFilterBank builds nMels triangular filters over the nFFT/2+1 bins of an
// STFT at sampleRate. Filters are area normalised (Slaney), so each one
// integrates to roughly the same energy regardless of its width.
func MelFilterBank(sampleRate, nFFT, nMels int, fmin, fmax float64) [][]float64 {
	bins := nFFT/2 + 1
	fftFreqs := make([]float64, bins)
	for k := range bins {
		fftFreqs[k] = float64(k) * float64(sampleRate) / float64(nFFT)
	}

	melF := MelFrequencies(nMels+2, fmin, fmax)

	bank := make([][]float64, nMels)
	for m := range nMels {
		lower, center, upper := melF[m], melF[m+1], melF[m+2]
		enorm := 2.0 / (upper - lower)

		row := make([]float64, bins)
		for k, f := range fftFreqs {
			up := (f - lower) / (center - lower)
			down := (upper - f) / (upper - center)
			if w := math.Min(up, down); w > 0 {
				row[k] = w * enorm
			}
		}
		bank[m] = row
	}

	return bank
}

// ApplyFilterBank projects every frame of a power spectrogram onto bank.
func ApplyFilterBank(spec [][]float64, bank [][]float64) [][]float64 {
	out := make([][]float64, len(spec))
	for t, frame := range spec {
		row := make([]float64, len(bank))
		for m, filter := range bank {
			var sum float64
			for k, w := range filter {
				if w != 0 && k < len(frame) {
					sum += w * frame[k]
				}
			}
			row[m] = sum
		}
		out[t] = row
	}
	return out
}
