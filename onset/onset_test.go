// SPDX-License-Identifier: EPL-2.0

package onset

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/ik5/getbpm/internal/audiotest"
	"github.com/ik5/getbpm/spectral"
)

func toFloat64(in []float32) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
}

func TestPeakParamsFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		sr   int
		want PeakParams
	}{
		{"22050", 22050, PeakParams{PreMax: 1, PostMax: 1, PreAvg: 4, PostAvg: 5, Delta: Delta, Wait: 1}},
		{"44100", 44100, PeakParams{PreMax: 2, PostMax: 1, PreAvg: 8, PostAvg: 9, Delta: Delta, Wait: 2}},
		{"8000", 8000, PeakParams{PreMax: 0, PostMax: 1, PreAvg: 1, PostAvg: 2, Delta: Delta, Wait: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := PeakParamsFor(tt.sr, DefaultHopLength); got != tt.want {
				t.Errorf("PeakParamsFor(%d) = %+v, want %+v", tt.sr, got, tt.want)
			}
		})
	}
}

func TestPeakPick(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		x    []float64
		p    PeakParams
		want []int
	}{
		{
			name: "two isolated peaks",
			x:    []float64{0, 0, 1, 0, 0, 0, 0.5, 0, 0, 0},
			p:    PeakParams{PreMax: 1, PostMax: 1, PreAvg: 1, PostAvg: 2, Delta: 0.07, Wait: 1},
			want: []int{2, 6},
		},
		{
			name: "wait suppresses close peaks",
			x:    []float64{0, 1, 0.9, 1, 0},
			p:    PeakParams{PreMax: 0, PostMax: 1, PreAvg: 0, PostAvg: 1, Wait: 2},
			want: []int{1},
		},
		{
			name: "shorter wait keeps the second",
			x:    []float64{0, 1, 0.9, 1, 0},
			p:    PeakParams{PreMax: 0, PostMax: 1, PreAvg: 0, PostAvg: 1, Wait: 1},
			want: []int{1, 3},
		},
		{
			name: "below moving average plus delta",
			x:    []float64{0.5, 0.55, 0.5},
			p:    PeakParams{PreMax: 1, PostMax: 1, PreAvg: 1, PostAvg: 2, Delta: 0.07},
			want: nil,
		},
		{
			name: "zeros are never peaks",
			x:    []float64{0, 0, 0},
			p:    PeakParams{PostMax: 1, PostAvg: 1},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := PeakPick(tt.x, tt.p); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("PeakPick() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBacktrack(t *testing.T) {
	t.Parallel()

	energy := []float64{0, 0, 1, 3, 2, 1, 1, 4, 2}

	tests := []struct {
		name   string
		events []int
		want   []int
	}{
		{"to preceding minima", []int{3, 7}, []int{1, 6}},
		{"event on a minimum", []int{6}, []int{6}},
		{"first frame", []int{0}, []int{0}},
		{"no events", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Backtrack(tt.events, energy); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Backtrack(%v) = %v, want %v", tt.events, got, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	got := Normalize([]float64{2, 4, 6})
	if want := []float64{0, 0.5, 1}; !reflect.DeepEqual(got, want) {
		t.Errorf("Normalize() = %v, want %v", got, want)
	}

	flat := Normalize([]float64{3, 3})
	if want := []float64{0, 0}; !reflect.DeepEqual(flat, want) {
		t.Errorf("Normalize(flat) = %v, want %v", flat, want)
	}
}

func TestFramesToTime(t *testing.T) {
	t.Parallel()

	got := FramesToTime([]int{0, 1, 4}, 1000, 500)
	if want := []float64{0, 0.5, 2}; !reflect.DeepEqual(got, want) {
		t.Errorf("FramesToTime() = %v, want %v", got, want)
	}

	if got := FramesToTime([]int{43}, 22050, 512); math.Abs(got[0]-43.0*512/22050) > 1e-12 {
		t.Errorf("FramesToTime(43) = %v", got[0])
	}

	if got := FramesToTime(nil, 22050, 512); len(got) != 0 {
		t.Errorf("FramesToTime(nil) = %v, want empty", got)
	}
}

func TestStrengthSilence(t *testing.T) {
	t.Parallel()

	const sr = 22050
	env, err := Strength(make([]float64, sr), sr, DefaultConfig())
	if err != nil {
		t.Fatalf("Strength() error = %v", err)
	}

	if want := spectral.FrameCount(sr, DefaultNFFT, DefaultHopLength, true); len(env) != want {
		t.Errorf("len(env) = %d, want %d", len(env), want)
	}
	for i, v := range env {
		if v != 0 {
			t.Fatalf("env[%d] = %v, want 0", i, v)
		}
	}
}

func TestStrengthErrors(t *testing.T) {
	t.Parallel()

	if _, err := Strength(nil, 0, DefaultConfig()); !errors.Is(err, ErrInvalidSampleRate) {
		t.Errorf("expected ErrInvalidSampleRate, got %v", err)
	}

	cfg := DefaultConfig()
	cfg.HopLength = 0
	if _, err := Strength(nil, 22050, cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestAggregate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		vals []float64
		a    Aggregation
		want float64
	}{
		{"mean", []float64{0, 0, 0, 8}, AggregateMean, 2},
		{"median even", []float64{0, 8, 0, 2}, AggregateMedian, 1},
		{"median odd", []float64{9, 0, 3}, AggregateMedian, 3},
		{"mostly quiet bands", []float64{0, 0, 0, 0, 40}, AggregateMedian, 0},
		{"empty", nil, AggregateMedian, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := aggregate(tt.vals, tt.a); got != tt.want {
				t.Errorf("aggregate(%v, %v) = %v, want %v", tt.vals, tt.a, got, tt.want)
			}
		})
	}
}

func TestAggregationString(t *testing.T) {
	t.Parallel()

	if AggregateMean.String() != "mean" || AggregateMedian.String() != "median" {
		t.Errorf("got %q and %q", AggregateMean, AggregateMedian)
	}
	if got := Aggregation(7).String(); got != "Aggregation(7)" {
		t.Errorf("Aggregation(7).String() = %q", got)
	}
}

func TestStrengthMedianDiffersFromMean(t *testing.T) {
	t.Parallel()

	// a pure tone switching on at 0.5 s only lights up a few mel bands
	const sr = 22050
	samples := make([]float64, 2*sr)
	for i := sr / 2; i < len(samples); i++ {
		samples[i] = 0.5 * math.Sin(2*math.Pi*1000*float64(i)/sr)
	}

	mean, err := Strength(samples, sr, DefaultConfig())
	if err != nil {
		t.Fatalf("Strength(mean) error = %v", err)
	}

	cfg := DefaultConfig()
	cfg.Aggregate = AggregateMedian
	median, err := Strength(samples, sr, cfg)
	if err != nil {
		t.Fatalf("Strength(median) error = %v", err)
	}

	if len(mean) != len(median) {
		t.Fatalf("lengths differ: %d vs %d", len(mean), len(median))
	}
	if reflect.DeepEqual(mean, median) {
		t.Error("mean and median envelopes are identical")
	}

	var peak float64
	for _, v := range mean {
		peak = max(peak, v)
	}
	if peak == 0 {
		t.Error("mean envelope has no onset")
	}
}

func TestStrengthInvalidAggregation(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Aggregate = Aggregation(9)
	if _, err := Strength(make([]float64, 100), 22050, cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestDetectSilence(t *testing.T) {
	t.Parallel()

	onsets, err := Detect(make([]float64, 50), 22050, DefaultHopLength, true)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(onsets) != 0 {
		t.Errorf("Detect(silence) = %v, want none", onsets)
	}
}

func TestDetectClickTrack(t *testing.T) {
	t.Parallel()

	const sr = 22050
	samples := toFloat64(audiotest.ClickTrack(sr, 3*sr, 120, 0.5))

	env, err := Strength(samples, sr, DefaultConfig())
	if err != nil {
		t.Fatalf("Strength() error = %v", err)
	}

	onsets, err := Detect(env, sr, DefaultHopLength, true)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(onsets) != 5 {
		t.Fatalf("got %d onsets %v, want 5", len(onsets), onsets)
	}

	times := FramesToTime(onsets, sr, DefaultHopLength)
	for i, got := range times {
		want := 0.5 + 0.5*float64(i)
		if math.Abs(got-want) > 0.05 {
			t.Errorf("onset %d at %.3fs, want %.3fs", i, got, want)
		}
	}

	// backtracking never moves an onset later
	raw, _ := Detect(env, sr, DefaultHopLength, false)
	for i := range raw {
		if onsets[i] > raw[i] {
			t.Errorf("backtracked onset %d = %d after raw %d", i, onsets[i], raw[i])
		}
	}
}

func TestDetectErrors(t *testing.T) {
	t.Parallel()

	if _, err := Detect([]float64{1}, 0, DefaultHopLength, false); !errors.Is(err, ErrInvalidSampleRate) {
		t.Errorf("expected ErrInvalidSampleRate, got %v", err)
	}
	if _, err := Detect([]float64{1}, 22050, 0, false); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}
