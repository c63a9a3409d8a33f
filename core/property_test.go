package cardio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

// Test_RawAndDCBlockHistory covers spec.md §8: after Process(i, r),
// raw[i] = r and dc[i] follows the §4.2 recurrence exactly, for arbitrary
// sample streams.
func Test_RawAndDCBlockHistory(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 50).Draw(t, "n")
		d := NewDetector(DefaultConfig())

		var prevRaw, prevDC float64
		for i := 0; i < n; i++ {
			raw := rapid.Float64Range(0, 4095).Draw(t, "raw")
			d.Process(i, raw)

			assert.Equal(t, raw, d.filt.raw.At(i))

			var wantDC float64
			if i >= 1 {
				wantDC = raw - prevRaw + 0.995*prevDC
			}
			assert.InDelta(t, wantDC, d.filt.dc.At(i), 1e-9)

			prevRaw = raw
			prevDC = wantDC
		}
	})
}

// Test_LastQRSSampleNeverExceedsCurrentIndex covers spec.md §8:
// last_qrs_sample <= i at all times.
func Test_LastQRSSampleNeverExceedsCurrentIndex(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 1500).Draw(t, "n")
		d := NewDetector(DefaultConfig())

		for i := 0; i < n; i++ {
			raw := rapid.Float64Range(0, 4095).Draw(t, "raw")
			d.Process(i, raw)
			assert.LessOrEqual(t, d.qual.lastQRSSample, i)
		}
	})
}

// Test_HalfThresholdsInvariant covers spec.md §8: threshold_i2 =
// 0.5*threshold_i1 and threshold_f2 = 0.5*threshold_f1 after every update.
func Test_HalfThresholdsInvariant(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 1500).Draw(t, "n")
		d := NewDetector(DefaultConfig())

		for i := 0; i < n; i++ {
			raw := rapid.Float64Range(0, 4095).Draw(t, "raw")
			d.Process(i, raw)
			assert.InDelta(t, 0.5*d.qual.thresholdI1, d.qual.thresholdI2, 1e-9)
			assert.InDelta(t, 0.5*d.qual.thresholdF1, d.qual.thresholdF2, 1e-9)
		}
	})
}

// Test_RefractorySpacing covers the hard-refractory part of spec.md §8:
// between two consecutive accepted QRS events at a < b, b - a > T200. The
// soft-refractory slope clause is not checked here.
func Test_RefractorySpacing(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(Warmup, Warmup+2000).Draw(t, "n")
		samples := make([]float64, n)
		for i := range samples {
			samples[i] = rapid.Float64Range(0, 4095).Draw(t, "sample")
		}

		d := NewDetector(DefaultConfig())
		var lastQRS = -1
		for i, s := range samples {
			r := d.Process(i, s)
			if r.IsQRS {
				if lastQRS >= 0 {
					assert.Greater(t, i-lastQRS, T200)
				}
				lastQRS = i
			}
		}
	})
}

// Test_RegularityMatchesToleranceRule covers spec.md §8: when
// rr_valid_count >= 1, is_regular holds iff |rr_avg1 - rr_avg2| <= 2.
func Test_RegularityMatchesToleranceRule(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(Warmup, Warmup+2500).Draw(t, "n")
		samples := make([]float64, n)
		for i := range samples {
			samples[i] = rapid.Float64Range(0, 4095).Draw(t, "sample")
		}

		d := NewDetector(DefaultConfig())
		for i, s := range samples {
			d.Process(i, s)
		}

		if d.rr.rrValidCount >= 1 {
			want := diffAbs(d.rr.rrAvg1, d.rr.rrAvg2) <= 2
			assert.Equal(t, want, d.rr.regular)
		}
	})
}
