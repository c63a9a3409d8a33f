package cardio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runSamples(t *testing.T, d *Detector, samples []float64) []Result {
	t.Helper()
	results := make([]Result, len(samples))
	for i, s := range samples {
		results[i] = d.Process(i, s)
	}
	return results
}

// Test_ConstantDCInput covers spec.md §8 scenario 1: a flat line never
// produces a QRS, and evaluation stays at 0 throughout.
func Test_ConstantDCInput(t *testing.T) {
	d := NewDetector(DefaultConfig())
	samples := make([]float64, 2000)
	for i := range samples {
		samples[i] = 2048
	}

	results := runSamples(t, d, samples)

	for _, r := range results {
		assert.False(t, r.IsQRS)
		assert.Equal(t, 0.0, r.RRAverage)
		assert.Equal(t, 0, r.Evaluation)
	}
}

// periodicImpulses builds a sample stream that is flat except for a sharp
// spike every period samples, starting at start, high enough to clear the
// adaptive thresholds once warm-up ends.
func periodicImpulses(total, start, period int) []float64 {
	samples := make([]float64, total)
	for i := range samples {
		samples[i] = 2048
	}
	for p := start; p < total; p += period {
		for w := 0; w < 3 && p+w < total; w++ {
			samples[p+w] = 2048 + 1500
		}
	}
	return samples
}

// Test_PerfectPeriodicImpulses covers spec.md §8 scenario 2: regular 200
// sample period beats settle into rr_average ~= 200 and is_regular = true.
func Test_PerfectPeriodicImpulses(t *testing.T) {
	d := NewDetector(DefaultConfig())
	samples := periodicImpulses(3000, Warmup, 200)

	results := runSamples(t, d, samples)

	last := results[len(results)-1]
	require.Greater(t, last.RRAverage, 0.0)
	assert.InDelta(t, 200, last.RRAverage, 5)
	assert.True(t, last.IsRegular)
	assert.Equal(t, 1, last.Evaluation)
	assert.InDelta(t, 60, last.BPM(), 2)
}

// Test_CloseTwinPeaks covers spec.md §8 scenario 4: a second spike 30
// samples after an accepted beat falls inside T200 and is rejected, so no
// new RR interval is recorded for it.
func Test_CloseTwinPeaks(t *testing.T) {
	d := NewDetector(DefaultConfig())
	samples := make([]float64, Warmup+400)
	for i := range samples {
		samples[i] = 2048
	}
	first := Warmup + 50
	for w := 0; w < 3; w++ {
		samples[first+w] = 2048 + 1500
	}
	second := first + 30
	for w := 0; w < 3; w++ {
		samples[second+w] = 2048 + 1500
	}

	results := runSamples(t, d, samples)

	qrsCount := 0
	for _, r := range results {
		if r.IsQRS {
			qrsCount++
		}
	}
	assert.LessOrEqual(t, qrsCount, 1, "the twin peak within T200 must not register as a second QRS")
}

// Test_WarmupGate covers spec.md §8's boundary behavior: is_qrs is always
// false for i < WARMUP, regardless of input amplitude.
func Test_WarmupGate(t *testing.T) {
	d := NewDetector(DefaultConfig())
	samples := periodicImpulses(Warmup, 0, 50)

	results := runSamples(t, d, samples)

	for i, r := range results {
		assert.Falsef(t, r.IsQRS, "sample %d is inside warm-up and must not be a QRS", i)
	}
}

// Test_BackSearchDisabledByDefault confirms spec.md §9's "intentionally
// off" note: the default Config leaves BackSearchEnabled false.
func Test_BackSearchDisabledByDefault(t *testing.T) {
	cfg := DefaultConfig()
	require.False(t, cfg.BackSearchEnabled)
}

// Test_IdempotentReplay covers spec.md §8's replay invariant: running the
// same stream through two freshly-initialized detectors gives identical
// results.
func Test_IdempotentReplay(t *testing.T) {
	samples := periodicImpulses(2000, Warmup, 220)

	d1 := NewDetector(DefaultConfig())
	d2 := NewDetector(DefaultConfig())

	r1 := runSamples(t, d1, samples)
	r2 := runSamples(t, d2, samples)

	assert.Equal(t, r1, r2)
}
