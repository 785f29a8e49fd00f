// SPDX-License-Identifier: EPL-2.0

// Package spectral computes the time-frequency representations the onset
// and tempo packages work on: a centred power STFT, a Slaney-style mel
// filterbank and a dB conversion with a dynamic-range floor.
//
// All spectrograms are time-major: spec[frame][bin].
//
//	power := spectral.STFTPower(samples, 2048, 512, true)
//	bank := spectral.MelFilterBank(22050, 2048, 128, 0, 11025)
//	db := spectral.PowerToDB(spectral.ApplyFilterBank(power, bank), spectral.DefaultAmin, spectral.DefaultTopDB)
//
// FFTs come from github.com/mjibson/go-dsp.
package spectral
