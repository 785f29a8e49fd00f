// SPDX-License-Identifier: EPL-2.0

package getbpm

import (
	"fmt"
	"log/slog"

	"github.com/ik5/getbpm/audio"
	"github.com/ik5/getbpm/formats/aiff"
	"github.com/ik5/getbpm/formats/mp3"
	"github.com/ik5/getbpm/formats/vorbis"
	"github.com/ik5/getbpm/formats/wav"
	"github.com/ik5/getbpm/onset"
	"github.com/ik5/getbpm/tempo"
)

// Analyzer is the set of audio analysis capabilities Process needs.
type Analyzer interface {
	// Decode loads a file into a mono buffer at its native sample rate.
	Decode(path string) (audio.Buffer, error)
	// EstimateTempo returns a single global tempo in BPM.
	EstimateTempo(buf audio.Buffer) (float64, error)
	// DetectOnsets returns ascending onset frame indices, possibly none.
	DetectOnsets(buf audio.Buffer, backtrack bool) ([]int, error)
	// FramesToTime converts frame indices to seconds.
	FramesToTime(frames []int, sampleRate int) []float64
}

// Option configures an Engine.
type Option func(*Engine)

// WithRegistry replaces the decoder registry.
func WithRegistry(reg *audio.Registry) Option {
	return func(e *Engine) {
		e.registry = reg
	}
}

// WithLogger sets the logger for debug output.
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) {
		e.log = log
	}
}

// Engine is the built-in Analyzer.
type Engine struct {
	registry *audio.Registry
	log      *slog.Logger

	// onset detection and tempo estimation combine mel bands differently
	onsetCfg      onset.Config
	tempoOnsetCfg onset.Config
	tempoCfg      tempo.Config
}

var _ Analyzer = (*Engine)(nil)

// DefaultRegistry returns a registry with every bundled decoder.
func DefaultRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register(audio.FormatWAV, wav.Decoder{})
	reg.Register(audio.FormatAIFF, aiff.Decoder{})
	reg.Register(audio.FormatMP3, mp3.Decoder{})
	reg.Register(audio.FormatOgg, vorbis.Decoder{})
	return reg
}

// NewEngine creates an Engine with the default decoders and analysis
// parameters.
func NewEngine(opts ...Option) *Engine {
	tempoOnset := onset.DefaultConfig()
	tempoOnset.Aggregate = onset.AggregateMedian

	e := &Engine{
		onsetCfg:      onset.DefaultConfig(),
		tempoOnsetCfg: tempoOnset,
		tempoCfg:      tempo.DefaultConfig(),
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.registry == nil {
		e.registry = DefaultRegistry()
	}
	if e.log == nil {
		e.log = slog.Default()
	}

	return e
}

// Decode loads path through the engine's registry.
func (e *Engine) Decode(path string) (audio.Buffer, error) {
	buf, err := audio.Load(path, e.registry)
	if err != nil {
		return audio.Buffer{}, err
	}

	e.log.Debug("decoded audio",
		"path", path,
		"samples", len(buf.Samples),
		"sample_rate", buf.SampleRate,
		"duration", buf.Duration(),
	)
	return buf, nil
}

func (e *Engine) strength(buf audio.Buffer, cfg onset.Config) ([]float64, error) {
	env, err := onset.Strength(buf.Float64(), buf.SampleRate, cfg)
	if err != nil {
		return nil, fmt.Errorf("computing onset strength: %w", err)
	}

	e.log.Debug("onset envelope", "frames", len(env), "aggregate", cfg.Aggregate)
	return env, nil
}

// EstimateTempo returns the tempo of buf in BPM, or 0 when buf has no
// onsets at all.
func (e *Engine) EstimateTempo(buf audio.Buffer) (float64, error) {
	if buf.SampleRate <= 0 {
		return 0, tempo.ErrInvalidSampleRate
	}
	if len(buf.Samples) == 0 {
		return 0, audio.ErrEmptyBuffer
	}

	env, err := e.strength(buf, e.tempoOnsetCfg)
	if err != nil {
		return 0, err
	}

	bpm, err := tempo.Estimate(env, buf.SampleRate, e.tempoCfg)
	if err != nil {
		return 0, fmt.Errorf("estimating tempo: %w", err)
	}

	e.log.Debug("estimated tempo", "bpm", bpm)
	return bpm, nil
}

// DetectOnsets returns the onset frames of buf, optionally backtracked to the
// preceding energy minimum.
func (e *Engine) DetectOnsets(buf audio.Buffer, backtrack bool) ([]int, error) {
	if len(buf.Samples) == 0 {
		return nil, nil
	}

	env, err := e.strength(buf, e.onsetCfg)
	if err != nil {
		return nil, err
	}

	frames, err := onset.Detect(env, buf.SampleRate, e.onsetCfg.HopLength, backtrack)
	if err != nil {
		return nil, fmt.Errorf("detecting onsets: %w", err)
	}

	e.log.Debug("detected onsets", "count", len(frames), "backtrack", backtrack)
	return frames, nil
}

// FramesToTime converts onset frames to seconds at the engine's hop length.
func (e *Engine) FramesToTime(frames []int, sampleRate int) []float64 {
	return onset.FramesToTime(frames, sampleRate, e.onsetCfg.HopLength)
}
