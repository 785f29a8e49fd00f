// SPDX-License-Identifier: EPL-2.0

package utils

// PCMScale returns the divisor that maps signed PCM of the given bit depth
// into [-1, 1). Unknown depths fall back to 16-bit.
func PCMScale(bitDepth int) float32 {
	switch bitDepth {
	case 8:
		return 128.0
	case 24:
		return 8388608.0
	case 32:
		return 2147483648.0
	default:
		return 32768.0
	}
}

// IntsToFloat32 converts signed PCM integers into normalized float32 samples.
// When unsigned8 is set, 8-bit input is treated as offset binary (0..255),
// which is how WAV stores it.
func IntsToFloat32(dst []float32, src []int, bitDepth int, unsigned8 bool) int {
	n := min(len(dst), len(src))
	scale := PCMScale(bitDepth)
	offset := 0
	if bitDepth == 8 && unsigned8 {
		offset = 128
	}

	for i := range n {
		dst[i] = float32(src[i]-offset) / scale
	}
	return n
}
