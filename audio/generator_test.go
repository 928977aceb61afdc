package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/positional-audio/core"
)

// TestGeneratorsInRange verifies every built-in synth stays within [-1, 1] and never errors
func TestGeneratorsInRange(t *testing.T) {
	rate := beep.SampleRate(44100)

	for name, spec := range synths {
		t.Run(name, func(t *testing.T) {
			gen := spec.make(rate)
			samples := make([][2]float64, rate.N(500*time.Millisecond))

			n, ok := gen.Stream(samples)
			if !ok || n != len(samples) {
				t.Fatalf("Expected %d samples, got n=%d ok=%v", len(samples), n, ok)
			}

			nonZero := false
			for i := 0; i < n; i++ {
				if samples[i][0] < -1 || samples[i][0] > 1 {
					t.Fatalf("Sample %d out of range: %f", i, samples[i][0])
				}
				if samples[i][0] != samples[i][1] {
					t.Fatalf("Sample %d not mono: %v", i, samples[i])
				}
				if samples[i][0] != 0 {
					nonZero = true
				}
			}
			if !nonZero {
				t.Error("Expected audible output")
			}
			if gen.Err() != nil {
				t.Errorf("Expected no error, got: %v", gen.Err())
			}
		})
	}
}

// TestSynthCategories verifies looping synths are continuous and one-shots carry a length
func TestSynthCategories(t *testing.T) {
	for name, spec := range synths {
		if spec.length > 0 && spec.category != core.CategoryDiscrete {
			t.Errorf("%s: expected one-shot synth to be discrete", name)
		}
		if spec.length == 0 && spec.category != core.CategoryContinuous {
			t.Errorf("%s: expected endless synth to be continuous", name)
		}
	}
}

// TestKnockDecays verifies the knock is silent after its hit
func TestKnockDecays(t *testing.T) {
	rate := beep.SampleRate(8000)
	gen := NewKnockGenerator(rate)

	samples := make([][2]float64, rate.N(200*time.Millisecond))
	gen.Stream(samples)

	for i := rate.N(80 * time.Millisecond); i < len(samples); i++ {
		if samples[i][0] != 0 {
			t.Fatalf("Expected silence after the hit, sample %d = %f", i, samples[i][0])
		}
	}
}
