package cardio

// filterState holds the per-signal ring buffers the filter chain writes,
// one per spec.md §3's signal frame: raw, DC-blocked, low-passed,
// high-passed, derivative, squared derivative, windowed integral. Each
// stage reads only the buffers upstream of it, mirroring the teacher's
// demod_9600_process_sample shift-register-plus-convolve shape, generalized
// from one fixed FIR kernel to Pan-Tompkins' four closed-form recurrences.
type filterState struct {
	raw   Buffer[float64]
	dc    Buffer[float64]
	lp    Buffer[float64]
	hp    Buffer[float64]
	deriv Buffer[float64]
	sqd   Buffer[float64]
	mwi   Buffer[float64]
}

// runFilterChain executes the full §4.2 cascade for sample index i and
// returns the high-pass ("filtered") and moving-window-integral values the
// peak qualifier needs.
func (f *filterState) runFilterChain(i int, windowSize int, raw float64) (hp, mwi float64) {
	f.raw.Store(i, raw)

	// 1. DC block: dc[i] = raw[i] - raw[i-1] + 0.995*dc[i-1], dc[0] = 0.
	var dcVal float64
	if i >= 1 {
		dcVal = raw - f.raw.At(i-1) + 0.995*f.dc.At(i-1)
	}
	f.dc.Store(i, dcVal)

	// 2. Low pass, 15 Hz: lp[i] = 2*lp[i-1] - lp[i-2] + dc[i] - 2*dc[i-6] + dc[i-12].
	lpVal := 2*f.lp.AtOffset(i, 1) - f.lp.AtOffset(i, 2) + dcVal - 2*f.dc.AtOffset(i, 6) + f.dc.AtOffset(i, 12)
	f.lp.Store(i, lpVal)

	// 3. High pass, 5 Hz: hp[i] = -lp[i] - hp[i-1] + 32*lp[i-16] + lp[i-32].
	hpVal := -lpVal - f.hp.AtOffset(i, 1) + 32*f.lp.AtOffset(i, 16) + f.lp.AtOffset(i, 32)
	f.hp.Store(i, hpVal)

	// 4. Derivative: d[i] = hp[i] - hp[i-1].
	dVal := hpVal - f.hp.AtOffset(i, 1)
	f.deriv.Store(i, dVal)

	// 5. Square: sd[i] = d[i]^2.
	sdVal := dVal * dVal
	f.sqd.Store(i, sdVal)

	// 6. Moving-window integral over the trailing windowSize samples.
	var sum float64
	for k := 0; k < windowSize; k++ {
		sum += f.sqd.AtOffset(i, k)
	}
	mwiVal := sum / float64(windowSize)
	f.mwi.Store(i, mwiVal)

	return hpVal, mwiVal
}

// maxSquaredDerivative returns max(sd[i-span..i]), used by the qualifier's
// slope check.
func (f *filterState) maxSquaredDerivative(i, span int) float64 {
	max := f.sqd.AtOffset(i, 0)
	for k := 1; k <= span; k++ {
		if v := f.sqd.AtOffset(i, k); v > max {
			max = v
		}
	}
	return max
}
