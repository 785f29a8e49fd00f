// SPDX-License-Identifier: EPL-2.0

// Package onset finds note onsets in a mono signal.
//
// Detection is split in three steps that can be used on their own:
// Strength builds a spectral-flux envelope from a log-mel spectrogram,
// PeakPick selects local maxima that stand out from their neighbourhood, and
// Backtrack moves every peak back to the preceding energy minimum. Detect
// chains them with the default parameters.
package onset
