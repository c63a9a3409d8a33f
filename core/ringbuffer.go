package cardio

// Buffer is a fixed-capacity ring over a monotonically increasing sample
// index. Store and At both take the logical sample index, not the physical
// slot, and do the mod-N translation internally, so callers never reason
// about wraparound.
type Buffer[T any] struct {
	data [BufferSize]T
}

// Store writes v at logical index i, overwriting whatever previously
// occupied that slot BufferSize samples ago.
func (b *Buffer[T]) Store(i int, v T) {
	b.data[i%BufferSize] = v
}

// At returns the value stored at logical index i. Callers are responsible
// for only requesting indices that have actually been written; reading
// ahead of the write cursor returns stale data from BufferSize samples ago,
// same as the teacher's raw bit buffer.
func (b *Buffer[T]) At(i int) T {
	return b.data[i%BufferSize]
}

// AtOffset returns the value k samples before i, i.e. At(i - k), but
// guards against negative logical indices during warm-up the way spec.md's
// modular-index rule requires: offsets that would read before sample 0
// return the zero value of T.
func (b *Buffer[T]) AtOffset(i, k int) T {
	var zero T
	if i-k < 0 {
		return zero
	}
	return b.At(i - k)
}
