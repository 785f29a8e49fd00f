// SPDX-License-Identifier: EPL-2.0

package tempo

import (
	"fmt"
	"math"
	"slices"
)

// Estimation defaults.
const (
	DefaultHopLength = 512
	// DefaultACSize is the autocorrelation window in seconds.
	DefaultACSize   = 8.0
	DefaultStartBPM = 120.0
	DefaultStdBPM   = 1.0
	DefaultMaxTempo = 320.0
)

// Config controls Estimate.
type Config struct {
	HopLength int
	ACSize    float64
	// StartBPM is the centre of the prior, StdBPM its width in octaves.
	StartBPM float64
	StdBPM   float64
	// MaxTempo excludes faster periodicities.
	MaxTempo float64
}

// DefaultConfig returns the parameters used by the CLI.
func DefaultConfig() Config {
	return Config{
		HopLength: DefaultHopLength,
		ACSize:    DefaultACSize,
		StartBPM:  DefaultStartBPM,
		StdBPM:    DefaultStdBPM,
		MaxTempo:  DefaultMaxTempo,
	}
}

// Frequencies maps tempogram lags to BPM. Lag 0 is +Inf.
func Frequencies(n, sampleRate, hop int) []float64 {
	out := make([]float64, n)
	for k := range out {
		if k == 0 {
			out[k] = math.Inf(1)
			continue
		}
		out[k] = 60 * float64(sampleRate) / (float64(hop) * float64(k))
	}
	return out
}

// Estimate returns the dominant tempo in BPM of an onset envelope sampled
// every cfg.HopLength samples. An envelope that is zero everywhere has no
// tempo and yields 0.
func Estimate(env []float64, sampleRate int, cfg Config) (float64, error) {
	if sampleRate <= 0 {
		return 0, ErrInvalidSampleRate
	}
	if len(env) == 0 {
		return 0, ErrEmptySignal
	}
	if cfg.HopLength <= 0 || cfg.ACSize <= 0 || cfg.StartBPM <= 0 || cfg.StdBPM <= 0 {
		return 0, fmt.Errorf("%w: %+v", ErrInvalidConfig, cfg)
	}

	winLength := int(cfg.ACSize * float64(sampleRate) / float64(cfg.HopLength))
	if winLength < 2 {
		return 0, fmt.Errorf("%w: autocorrelation window of %d frames", ErrInvalidConfig, winLength)
	}

	if !slices.ContainsFunc(env, func(v float64) bool { return v != 0 }) {
		return 0, nil
	}

	tg := Tempogram(env, winLength)
	mean := make([]float64, winLength)
	for _, row := range tg {
		for k, v := range row {
			mean[k] += v
		}
	}
	for k := range mean {
		mean[k] /= float64(len(tg))
	}

	bpms := Frequencies(winLength, sampleRate, cfg.HopLength)

	// lags shorter than the first one under MaxTempo are out
	minLag := len(bpms)
	for k, b := range bpms {
		if b < cfg.MaxTempo {
			minLag = k
			break
		}
	}

	logStart := math.Log2(cfg.StartBPM)
	best, bestScore := -1, math.Inf(-1)
	for k := minLag; k < len(bpms); k++ {
		z := (math.Log2(bpms[k]) - logStart) / cfg.StdBPM
		score := math.Log1p(1e6*mean[k]) - 0.5*z*z
		if score > bestScore {
			best, bestScore = k, score
		}
	}

	if best < 0 {
		return 0, fmt.Errorf("%w: no lag below %.0f BPM", ErrInvalidConfig, cfg.MaxTempo)
	}
	return bpms[best], nil
}
