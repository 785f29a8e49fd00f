// SPDX-License-Identifier: EPL-2.0

// Package tempo estimates the global tempo of an onset strength envelope
// from its autocorrelation tempogram, weighted by a log-normal prior.
package tempo

import (
	"math"

	"github.com/mjibson/go-dsp/dsputils"
	"github.com/mjibson/go-dsp/fft"

	"github.com/ik5/getbpm/spectral"
)

// Autocorrelate returns the first maxSize lags of the linear autocorrelation
// of x, computed through the FFT.
func Autocorrelate(x []float64, maxSize int) []float64 {
	maxSize = min(maxSize, len(x))
	if maxSize <= 0 {
		return nil
	}

	n := dsputils.NextPowerOf2(2*len(x) - 1)
	padded := make([]float64, n)
	copy(padded, x)

	spec := fft.FFTReal(padded)
	for i, c := range spec {
		re, im := real(c), imag(c)
		spec[i] = complex(re*re+im*im, 0)
	}

	ac := fft.IFFT(spec)
	out := make([]float64, maxSize)
	for i := range out {
		out[i] = real(ac[i])
	}
	return out
}

// padLinearRamp pads env by width samples on both sides, ramping linearly
// from zero up to the edge values.
func padLinearRamp(env []float64, width int) []float64 {
	out := make([]float64, len(env)+2*width)
	copy(out[width:], env)
	if len(env) == 0 || width == 0 {
		return out
	}

	first, last := env[0], env[len(env)-1]
	for i := range width {
		frac := float64(i) / float64(width)
		out[i] = first * frac
		out[len(out)-1-i] = last * frac
	}
	return out
}

// Tempogram computes the local autocorrelation of env over windows of
// winLength frames, one row per envelope frame. Every row is scaled so its
// largest magnitude is 1; rows of a silent stretch stay zero.
func Tempogram(env []float64, winLength int) [][]float64 {
	if winLength <= 0 || len(env) == 0 {
		return nil
	}

	padded := padLinearRamp(env, winLength/2)
	// an even window yields one frame past the end of env
	nFrames := min(1+len(padded)-winLength, len(env))
	if nFrames <= 0 {
		return nil
	}

	win := spectral.HannPeriodic(winLength)
	frame := make([]float64, winLength)
	tg := make([][]float64, nFrames)

	for t := range nFrames {
		for i := range winLength {
			frame[i] = padded[t+i] * win[i]
		}

		ac := Autocorrelate(frame, winLength)
		var peak float64
		for _, v := range ac {
			peak = math.Max(peak, math.Abs(v))
		}
		if peak > 0 {
			for i := range ac {
				ac[i] /= peak
			}
		}
		tg[t] = ac
	}

	return tg
}
