package cardio

// rrState holds the RR-interval tracking fields from spec.md §3: two
// 8-slot sliding windows (raw and normal-range), their means, derived
// acceptance bounds, and the regularity flag. The measure-then-classify-
// into-bands-then-derive-a-bound shape follows
// linuxmatters-jivetalking/internal/processor/adaptive.go's tuneGateThreshold
// pattern, generalized to Pan-Tompkins' fixed 0.92/1.16/1.66 multipliers.
type rrState struct {
	rr1 [RRHistory]int
	rr2 [RRHistory]int

	rrAvg1 float64
	rrAvg2 float64

	rrLow  float64
	rrHigh float64
	rrMiss float64

	rrValidCount int // populated entries in rr1, saturates at RRHistory
	rr2Count     int // populated entries in rr2, saturates at RRHistory
	rrSkipCount  int

	regular     bool
	prevRegular bool
}

// newRRState returns the §3 lifecycle defaults: rr_low = 100, rr_high =
// 200, regular = true, everything else zero.
func newRRState() rrState {
	return rrState{
		rrLow:   100,
		rrHigh:  200,
		regular: true,
	}
}

// rrUpdateResult carries what the facade needs to build the result record
// after an accepted QRS has run through the RR tracker.
type rrUpdateResult struct {
	thresholdsHalved bool
}

// onAcceptedQRS runs §4.4 for one accepted beat. cfg.RRSkip initial
// intervals are discarded before any averaging begins.
func (r *rrState) onAcceptedQRS(cfg Config, interval int) rrUpdateResult {
	if r.rrSkipCount < cfg.RRSkip {
		r.rrSkipCount++
		return rrUpdateResult{}
	}

	shiftAppendInt(&r.rr1, interval)
	if r.rrValidCount < RRHistory {
		r.rrValidCount++
	}
	r.rrAvg1 = meanInt(r.rr1[:], r.rrValidCount)

	iv := float64(interval)
	if iv >= r.rrLow && iv <= r.rrHigh {
		shiftAppendInt(&r.rr2, interval)
		if r.rr2Count < RRHistory {
			r.rr2Count++
		}
		r.rrAvg2 = meanInt(r.rr2[:], r.rr2Count)
		r.rrLow = 0.92 * r.rrAvg2
		r.rrHigh = 1.16 * r.rrAvg2
		r.rrMiss = 1.66 * r.rrAvg2
	}

	r.prevRegular = r.regular
	r.regular = diffAbs(r.rrAvg1, r.rrAvg2) <= 2

	halved := r.prevRegular && !r.regular
	return rrUpdateResult{thresholdsHalved: halved}
}

// shiftAppendInt shifts window left by one slot and appends v at the tail,
// per §4.4 step 1's "shift left by one, append at the tail".
func shiftAppendInt(window *[RRHistory]int, v int) {
	copy(window[:RRHistory-1], window[1:])
	window[RRHistory-1] = v
}

// meanInt averages the populated suffix (the most recently written n
// entries) of window.
func meanInt(window []int, n int) float64 {
	if n <= 0 {
		return 0
	}
	var sum int
	for _, v := range window[RRHistory-n:] {
		sum += v
	}
	return float64(sum) / float64(n)
}

func diffAbs(a, b float64) float64 {
	d := a - b
	if d < 0 {
		return -d
	}
	return d
}

// evaluation maps the tracker's state onto §4.4's 0/1/2 result field: 0 if
// no RR data yet, 1 if regular, 2 if irregular.
func (r *rrState) evaluation() int {
	if r.rrValidCount == 0 {
		return 0
	}
	if r.regular {
		return 1
	}
	return 2
}
