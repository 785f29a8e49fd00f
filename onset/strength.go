// SPDX-License-Identifier: EPL-2.0

package onset

import (
	"fmt"
	"math"
	"slices"

	"github.com/ik5/getbpm/spectral"
)

// Analysis defaults.
const (
	DefaultNFFT      = 2048
	DefaultHopLength = 512
	DefaultNMels     = 128
	DefaultFMax      = 11025.0
	DefaultLag       = 1
)

// Aggregation combines the per-band flux of one frame into a single value.
type Aggregation int

const (
	// AggregateMean is used for onset detection.
	AggregateMean Aggregation = iota
	// AggregateMedian is used for tempo estimation.
	AggregateMedian
)

func (a Aggregation) String() string {
	switch a {
	case AggregateMean:
		return "mean"
	case AggregateMedian:
		return "median"
	}
	return fmt.Sprintf("Aggregation(%d)", int(a))
}

// Config controls the spectrogram behind the onset envelope.
type Config struct {
	NFFT      int
	HopLength int
	NMels     int
	// FMax is capped at the Nyquist frequency.
	FMax      float64
	Lag       int
	Aggregate Aggregation
}

// DefaultConfig returns the parameters used for onset detection.
func DefaultConfig() Config {
	return Config{
		NFFT:      DefaultNFFT,
		HopLength: DefaultHopLength,
		NMels:     DefaultNMels,
		FMax:      DefaultFMax,
		Lag:       DefaultLag,
	}
}

func (c Config) validate() error {
	if c.NFFT <= 0 || c.HopLength <= 0 || c.NMels <= 0 || c.Lag <= 0 || c.FMax <= 0 ||
		(c.Aggregate != AggregateMean && c.Aggregate != AggregateMedian) {
		return fmt.Errorf("%w: %+v", ErrInvalidConfig, c)
	}
	return nil
}

// Strength computes the onset strength envelope of samples: the positive
// frame-to-frame increase of the log-mel spectrogram combined over bands
// with cfg.Aggregate.
// The result has one value per STFT frame and is aligned so that index t
// refers to the frame centred on sample t*HopLength.
func Strength(samples []float64, sampleRate int, cfg Config) ([]float64, error) {
	if sampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	fmax := math.Min(cfg.FMax, float64(sampleRate)/2)
	power := spectral.STFTPower(samples, cfg.NFFT, cfg.HopLength, true)
	bank := spectral.MelFilterBank(sampleRate, cfg.NFFT, cfg.NMels, 0, fmax)
	db := spectral.PowerToDB(spectral.ApplyFilterBank(power, bank), spectral.DefaultAmin, spectral.DefaultTopDB)

	nFrames := len(db)
	env := make([]float64, nFrames)
	shift := cfg.Lag + cfg.NFFT/(2*cfg.HopLength)
	flux := make([]float64, 0, cfg.NMels)

	for t := cfg.Lag; t < nFrames; t++ {
		dst := t - cfg.Lag + shift
		if dst >= nFrames {
			break
		}

		cur, prev := db[t], db[t-cfg.Lag]
		flux = flux[:0]
		for m := range cur {
			flux = append(flux, max(cur[m]-prev[m], 0))
		}
		env[dst] = aggregate(flux, cfg.Aggregate)
	}

	return env, nil
}

// aggregate reduces vals with a. The median sorts vals in place and averages
// the two middle values of an even-length slice.
func aggregate(vals []float64, a Aggregation) float64 {
	if len(vals) == 0 {
		return 0
	}

	if a == AggregateMedian {
		slices.Sort(vals)
		mid := len(vals) / 2
		if len(vals)%2 == 1 {
			return vals[mid]
		}
		return (vals[mid-1] + vals[mid]) / 2
	}

	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}
