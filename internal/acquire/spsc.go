package acquire

import (
	"sync/atomic"
	"time"

	core "github.com/cardiomon/cardiomon/core"
)

// Ring is the single-producer single-consumer sample ring spec.md §5
// specifies: a producer goroutine (standing in for the ADC/timer
// interrupt) copies one sample into raw[fillIndex mod N] and increments
// fillIndex; the consumer (the main loop) polls fillIndex and calls
// core.Detector.Process in strict index order. fillIndex is the only
// field the producer writes and the consumer reads, ordered via
// sync/atomic per §5's memory-model note — no channel or mutex is used,
// matching the teacher's own ISR/main-loop split (audio.go's producer
// thread, the main loop's consumer), which is likewise a raw atomic index
// rather than a generic concurrent queue.
type Ring struct {
	buf       [core.BufferSize]float64
	fillIndex atomic.Int64
}

// Produce copies v into the ring at the next slot and publishes the new
// fillIndex. Must be called by exactly one producer.
func (r *Ring) Produce(v float64) {
	i := r.fillIndex.Load()
	r.buf[i%core.BufferSize] = v
	r.fillIndex.Store(i + 1)
}

// Run drives d with samples, polling the ring in a tight loop until done
// is closed and every produced sample has been consumed. It plays the role
// of the main loop in spec.md §5: "polls fill_index > current_index and,
// while true, calls process", each Result handed to onResult as it is
// produced so a live feed can publish it immediately.
func (r *Ring) Run(d *core.Detector, done <-chan struct{}, onResult func(core.Result)) {
	current := int64(0)
	for {
		for current < r.fillIndex.Load() {
			raw := r.buf[current%core.BufferSize]
			onResult(d.Process(int(current), raw))
			current++
		}
		select {
		case <-done:
			if current >= r.fillIndex.Load() {
				return
			}
		default:
			time.Sleep(time.Millisecond)
		}
	}
}

// PlaySynthetic feeds samples into the ring at the sampling period,
// standing in for the ADC/timer interrupt, and closes done once every
// sample has been handed off.
func PlaySynthetic(r *Ring, samples []float64, samplingHz int, done chan<- struct{}) {
	defer close(done)
	period := time.Second / time.Duration(samplingHz)
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for _, s := range samples {
		<-ticker.C
		r.Produce(s)
	}
}
