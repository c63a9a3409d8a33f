// Package cardio implements the Pan & Tompkins (1985) QRS-detection core:
// ring buffers, the six-stage filter chain, the adaptive peak qualifier,
// and the RR-interval/regularity tracker, wired behind a single streaming
// facade. It is a faithful, causal, allocation-free reimplementation of the
// detection behavior, not merely its API.
package cardio

import "fmt"

// Result is the record produced by every call to Detector.Process, per
// spec.md §4.4. derivative and squared_derivative are exposed as
// diagnostic-only fields — see DESIGN.md's Open Questions — and may change
// shape independently of the rest of the record.
type Result struct {
	SampleIndex int
	Filtered    float64 // hp[i], the trace the renderer draws
	Integral    float64 // mwi[i]

	PeakI       float64
	SignalPeakI float64
	NoisePeakI  float64
	ThresholdI1 float64

	IsQRS bool

	RRAverage  float64 // samples; 0 until the first post-skip interval
	IsRegular  bool
	Evaluation int // 0 no data, 1 regular, 2 irregular

	// Diagnostic only, not part of the stable contract.
	Derivative        float64
	SquaredDerivative float64
}

// BPM returns the display heart rate derived from RRAverage, or 0 if no RR
// data is available yet.
func (r Result) BPM() float64 {
	if r.RRAverage <= 0 {
		return 0
	}
	return 60 * float64(SamplingFrequency) / r.RRAverage
}

// Detector bundles the filter chain, peak qualifier, and RR tracker into a
// single owned structure instantiated once, per spec.md §9's redesign note
// — the source's file-scope globals become fields here, and the facade
// becomes a method, removing hidden cross-file dependencies.
type Detector struct {
	cfg Config

	filt filterState
	qual qualifierState
	rr   rrState

	sampleCount int
}

// NewDetector constructs a Detector with the §3 lifecycle defaults
// (rr_low = 100, rr_high = 200, regular = true, everything else zero).
// Zero-valued T200, T360 and RRSkip fields fall back to the package defaults.
func NewDetector(cfg Config) *Detector {
	if cfg.BufferSize != 0 && cfg.BufferSize != BufferSize {
		panic(fmt.Sprintf("cardio: Config.BufferSize %d disagrees with compiled BufferSize %d; Buffer[T] is sized at compile time", cfg.BufferSize, BufferSize))
	}
	if cfg.T200 == 0 {
		cfg.T200 = T200
	}
	if cfg.T360 == 0 {
		cfg.T360 = T360
	}
	if cfg.RRSkip == 0 {
		cfg.RRSkip = RRSkip
	}
	return &Detector{
		cfg: cfg,
		rr:  newRRState(),
	}
}

// Process implements §4.5's facade contract: called exactly once per
// sample, in strict index order. i must equal the detector's internal
// sample count; violating this is a wiring bug and is fatal, per spec.md
// §7's fault taxonomy.
func (d *Detector) Process(i int, raw float64) Result {
	assertf(i == d.sampleCount, "cardio: out-of-order sample: got index %d, expected %d", i, d.sampleCount)

	hp, mwi := d.filt.runFilterChain(i, d.windowSize(), raw)

	res := Result{
		SampleIndex:       i,
		Filtered:          hp,
		Integral:          mwi,
		Derivative:        d.filt.deriv.At(i),
		SquaredDerivative: d.filt.sqd.At(i),
		ThresholdI1:       d.qual.thresholdI1,
		SignalPeakI:       d.qual.signalPeakI,
		NoisePeakI:        d.qual.noisePeakI,
		RRAverage:         d.rr.rrAvg1,
		IsRegular:         d.rr.regular,
		Evaluation:        d.rr.evaluation(),
	}

	d.sampleCount = i + 1

	// Warm-up gate (§4.3): suppress detection until thresholds and filter
	// transients have settled.
	if i < d.warmup() {
		return res
	}

	outcome := d.qual.evaluate(d.cfg, i, mwi, hp, &d.filt)

	if outcome.isQRS {
		upd := d.rr.onAcceptedQRS(d.cfg, outcome.interval)
		if upd.thresholdsHalved {
			d.qual.halveThresholds()
		}
	} else if d.cfg.BackSearchEnabled {
		if j := d.qual.backSearch(d.cfg, i, d.rr.rrMiss, &d.filt); j >= 0 {
			interval := j - d.qual.lastQRSSample
			d.qual.acceptQRS(j, d.filt.mwi.At(j), d.filt.hp.At(j), d.filt.maxSquaredDerivative(j, 10))
			upd := d.rr.onAcceptedQRS(d.cfg, interval)
			if upd.thresholdsHalved {
				d.qual.halveThresholds()
			}
			outcome.isQRS = true
		}
	}

	res.IsQRS = outcome.isQRS
	res.PeakI = outcome.peakI
	res.ThresholdI1 = d.qual.thresholdI1
	res.SignalPeakI = d.qual.signalPeakI
	res.NoisePeakI = d.qual.noisePeakI
	res.RRAverage = d.rr.rrAvg1
	res.IsRegular = d.rr.regular
	res.Evaluation = d.rr.evaluation()

	return res
}

func (d *Detector) windowSize() int {
	if d.cfg.WindowSize != 0 {
		return d.cfg.WindowSize
	}
	return WindowSize
}

func (d *Detector) warmup() int {
	if d.cfg.Warmup != 0 {
		return d.cfg.Warmup
	}
	return Warmup
}
