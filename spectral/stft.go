// SPDX-License-Identifier: EPL-2.0

package spectral

import (
	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

// HannPeriodic returns a periodic (DFT-even) Hann window of length n.
func HannPeriodic(n int) []float64 {
	if n <= 0 {
		return nil
	}
	// a symmetric window one sample longer, minus its last point
	return window.Hann(n + 1)[:n]
}

// FrameCount is the number of STFT frames STFTPower produces for a signal of
// length n.
func FrameCount(n, nFFT, hop int, center bool) int {
	if center {
		n += 2 * (nFFT / 2)
	}
	if n < nFFT || hop <= 0 {
		return 0
	}
	return 1 + (n-nFFT)/hop
}

// STFTPower computes the power spectrogram |X|^2 of samples with a periodic
// Hann window. When center is set the signal is zero padded by nFFT/2 on both
// sides so frame t is centred on sample t*hop. Each frame holds nFFT/2+1 bins.
func STFTPower(samples []float64, nFFT, hop int, center bool) [][]float64 {
	padded := samples
	if center {
		half := nFFT / 2
		padded = make([]float64, len(samples)+2*half)
		copy(padded[half:], samples)
	}

	nFrames := FrameCount(len(samples), nFFT, hop, center)
	if nFrames == 0 {
		return nil
	}

	win := HannPeriodic(nFFT)
	bins := nFFT/2 + 1
	frame := make([]float64, nFFT)
	spec := make([][]float64, nFrames)

	for t := range nFrames {
		start := t * hop
		for i := range nFFT {
			frame[i] = padded[start+i] * win[i]
		}

		x := fft.FFTReal(frame)
		row := make([]float64, bins)
		for k := range bins {
			re, im := real(x[k]), imag(x[k])
			row[k] = re*re + im*im
		}
		spec[t] = row
	}

	return spec
}
