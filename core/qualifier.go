package cardio

// qualifierState holds the adaptive-threshold fields from spec.md §3's
// Detector state. The update shape (two exponentially-smoothed running
// peaks compared against a pair of derived thresholds) is the same
// fast/slow envelope-follower idiom as the teacher's pll_dcd.go hysteresis
// engine and demod_9600.go's agc() peak/valley tracker, generalized here to
// Pan-Tompkins' fixed 0.125/0.875 mix and dual (integrator + filtered)
// threshold pair.
type qualifierState struct {
	lastQRSSample int
	lastSlope     float64

	signalPeakI float64
	signalPeakF float64
	noisePeakI  float64
	noisePeakF  float64

	thresholdI1 float64
	thresholdF1 float64
	thresholdI2 float64
	thresholdF2 float64
}

// qrsOutcome is the per-sample decision the peak qualifier reaches, handed
// to the RR tracker by the facade.
type qrsOutcome struct {
	isQRS    bool
	peakI    float64
	interval int // only meaningful when isQRS is true and lastQRSSample was already set
}

// evaluate runs §4.3's procedure for one sample. v_i is mwi[i], v_f is
// hp[i]. filt gives the slope check access to the squared-derivative
// history.
func (q *qualifierState) evaluate(cfg Config, i int, vI, vF float64, filt *filterState) qrsOutcome {
	// A sample with no integrator energy is never a candidate, so a flat
	// input cannot meet the still-zero initial thresholds.
	if vI <= 0 {
		return qrsOutcome{isQRS: false}
	}

	candidateAbove := vI >= q.thresholdI1 || vF >= q.thresholdF1
	if !candidateAbove {
		return qrsOutcome{isQRS: false}
	}

	peakI, peakF := vI, vF
	jointAbove := vI >= q.thresholdI1 && vF >= q.thresholdF1

	if !jointAbove {
		// Candidate fired on only one of the two streams: rule N only.
		q.updateNoise(peakI, peakF)
		return qrsOutcome{isQRS: false}
	}

	if i <= q.lastQRSSample+cfg.T200 {
		// Hard refractory: demote to noise unconditionally.
		q.updateNoise(peakI, peakF)
		return qrsOutcome{isQRS: false}
	}

	if i <= q.lastQRSSample+cfg.T360 {
		// Soft refractory: slope check against the previous beat's slope.
		currentSlope := filt.maxSquaredDerivative(i, 10)
		if currentSlope <= q.lastSlope/2 {
			// T-wave: reject, no threshold change either way.
			return qrsOutcome{isQRS: false}
		}
		return q.acceptQRS(i, peakI, peakF, currentSlope)
	}

	// Past both refractories.
	currentSlope := filt.maxSquaredDerivative(i, 10)
	return q.acceptQRS(i, peakI, peakF, currentSlope)
}

func (q *qualifierState) acceptQRS(i int, peakI, peakF, currentSlope float64) qrsOutcome {
	interval := i - q.lastQRSSample
	q.updateSignal(peakI, peakF)
	q.lastSlope = currentSlope
	q.lastQRSSample = i
	return qrsOutcome{isQRS: true, peakI: peakI, interval: interval}
}

// updateSignal is update rule S (§4.3): peak folded into the signal
// estimate, thresholds and half-thresholds recomputed from the gap between
// signal and noise estimates.
func (q *qualifierState) updateSignal(peakI, peakF float64) {
	q.signalPeakI = 0.125*peakI + 0.875*q.signalPeakI
	q.signalPeakF = 0.125*peakF + 0.875*q.signalPeakF
	q.recomputeThresholds()
}

// updateNoise is update rule N (§4.3): the same exponential mix applied to
// the noise estimate instead of the signal estimate.
func (q *qualifierState) updateNoise(peakI, peakF float64) {
	q.noisePeakI = 0.125*peakI + 0.875*q.noisePeakI
	q.noisePeakF = 0.125*peakF + 0.875*q.noisePeakF
	q.recomputeThresholds()
}

func (q *qualifierState) recomputeThresholds() {
	q.thresholdI1 = q.noisePeakI + 0.25*(q.signalPeakI-q.noisePeakI)
	q.thresholdF1 = q.noisePeakF + 0.25*(q.signalPeakF-q.noisePeakF)
	q.thresholdI2 = 0.5 * q.thresholdI1
	q.thresholdF2 = 0.5 * q.thresholdF1
}

// halveThresholds implements the RR tracker's regular-to-irregular
// transition rule (§4.4 step 3): halve the primary thresholds so weaker
// peaks become easier to detect. Half-thresholds are recomputed from the
// new primaries, not independently halved again.
func (q *qualifierState) halveThresholds() {
	q.thresholdI1 *= 0.5
	q.thresholdF1 *= 0.5
	q.thresholdI2 = 0.5 * q.thresholdI1
	q.thresholdF2 = 0.5 * q.thresholdF1
}

// backSearch implements the §4.3/§9 feature-flagged rescan: when enabled
// and no QRS has arrived for longer than rr_miss samples, rescan
// [last_qrs+T200, i) for samples exceeding threshold_i2 and threshold_f1,
// applying the same slope check as the soft-refractory path. Returns the
// earliest qualifying sample index, or -1 if none is found.
func (q *qualifierState) backSearch(cfg Config, i int, rrMiss float64, filt *filterState) int {
	if !cfg.BackSearchEnabled {
		return -1
	}
	if rrMiss <= 0 || float64(i-q.lastQRSSample) <= rrMiss {
		return -1
	}
	start := q.lastQRSSample + cfg.T200
	for j := start; j < i; j++ {
		vI := filt.mwi.At(j)
		vF := filt.hp.At(j)
		if vI < q.thresholdI2 || vF < q.thresholdF1 {
			continue
		}
		currentSlope := filt.maxSquaredDerivative(j, 10)
		if currentSlope <= q.lastSlope/2 {
			continue
		}
		return j
	}
	return -1
}
