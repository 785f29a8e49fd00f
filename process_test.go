// SPDX-License-Identifier: EPL-2.0

package getbpm

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"github.com/ik5/getbpm/audio"
)

// fakeAnalyzer records the calls Process makes.
type fakeAnalyzer struct {
	buf       audio.Buffer
	bpm       float64
	frames    []int
	decodeErr error
	tempoErr  error
	onsetErr  error

	calls     []string
	backtrack bool
}

func (f *fakeAnalyzer) Decode(string) (audio.Buffer, error) {
	f.calls = append(f.calls, "decode")
	return f.buf, f.decodeErr
}

func (f *fakeAnalyzer) EstimateTempo(audio.Buffer) (float64, error) {
	f.calls = append(f.calls, "tempo")
	return f.bpm, f.tempoErr
}

func (f *fakeAnalyzer) DetectOnsets(_ audio.Buffer, backtrack bool) ([]int, error) {
	f.calls = append(f.calls, "onsets")
	f.backtrack = backtrack
	return f.frames, f.onsetErr
}

func (f *fakeAnalyzer) FramesToTime(frames []int, sampleRate int) []float64 {
	f.calls = append(f.calls, "times")
	out := make([]float64, len(frames))
	for i, fr := range frames {
		out[i] = float64(fr*512) / float64(sampleRate)
	}
	return out
}

func TestProcess(t *testing.T) {
	t.Parallel()

	a := &fakeAnalyzer{
		buf:    audio.Buffer{Samples: make([]float32, 10), SampleRate: 22050},
		bpm:    117.45383522727273,
		frames: []int{21, 43},
	}

	res, err := Process(a, "song.wav")
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if want := []string{"decode", "tempo", "onsets", "times"}; !reflect.DeepEqual(a.calls, want) {
		t.Errorf("calls = %v, want %v", a.calls, want)
	}
	if !a.backtrack {
		t.Error("expected onsets to be backtracked")
	}
	if res.BPM != a.bpm {
		t.Errorf("BPM = %v, want %v", res.BPM, a.bpm)
	}
	if first, ok := res.FirstBeat(); !ok || first != 21.0*512/22050 {
		t.Errorf("FirstBeat() = %v, %v", first, ok)
	}
}

func TestProcessStopsOnFirstError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")

	tests := []struct {
		name  string
		a     *fakeAnalyzer
		calls []string
	}{
		{"decode", &fakeAnalyzer{decodeErr: boom}, []string{"decode"}},
		{"tempo", &fakeAnalyzer{tempoErr: boom}, []string{"decode", "tempo"}},
		{"onsets", &fakeAnalyzer{onsetErr: boom}, []string{"decode", "tempo", "onsets"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res, err := Process(tt.a, "x.wav")
			if !errors.Is(err, boom) {
				t.Fatalf("error = %v, want %v", err, boom)
			}
			if !reflect.DeepEqual(res, Result{}) {
				t.Errorf("expected zero result, got %+v", res)
			}
			if !reflect.DeepEqual(tt.a.calls, tt.calls) {
				t.Errorf("calls = %v, want %v", tt.a.calls, tt.calls)
			}
		})
	}
}

func TestResultWriteTo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		res  Result
		want string
	}{
		{
			name: "with onsets",
			res:  Result{BPM: 172.265625, Onsets: []float64{0.48761904761904762, 1.0}},
			want: "Estimated BPM: 172.265625\nTiming of the first beat: 0.49 seconds\n",
		},
		{
			name: "no onsets",
			res:  Result{BPM: 123.046875},
			want: "Estimated BPM: 123.046875\nNo beats detected in the audio.\n",
		},
		{
			name: "onset at zero",
			res:  Result{BPM: 120, Onsets: []float64{0}},
			want: "Estimated BPM: 120.0\nTiming of the first beat: 0.00 seconds\n",
		},
		{
			name: "silence",
			res:  Result{},
			want: "Estimated BPM: 0.0\nNo beats detected in the audio.\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer
			n, err := tt.res.WriteTo(&out)
			if err != nil {
				t.Fatalf("WriteTo() error = %v", err)
			}
			if out.String() != tt.want {
				t.Errorf("WriteTo() = %q, want %q", out.String(), tt.want)
			}
			if n != int64(len(tt.want)) {
				t.Errorf("WriteTo() n = %d, want %d", n, len(tt.want))
			}
		})
	}
}
