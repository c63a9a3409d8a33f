// Package acquire gives the ADC/DMA front end spec.md places out of scope
// a concrete, testable stand-in: a synthetic waveform generator covering
// spec.md §8's end-to-end scenarios, and (in spsc.go) the single-producer
// single-consumer ring spec.md §5 specifies, made concrete with an atomic
// fill index and a time.Ticker standing in for the ADC/timer interrupt.
package acquire

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Kind names one of spec.md §8's deterministic end-to-end scenarios.
type Kind string

const (
	ConstantDC         Kind = "constant_dc"
	PeriodicImpulses   Kind = "periodic_impulses"
	AcceleratingRhythm Kind = "accelerating_rhythm"
	TwinPeaks          Kind = "twin_peaks"
	SoftRefractory     Kind = "soft_refractory"
)

// Scenario describes one synthetic waveform recipe, loadable from YAML so
// the CLI can reproduce any spec.md §8 scenario on demand instead of only
// hard-coding it in tests.
type Scenario struct {
	Kind     Kind `yaml:"kind"`
	Samples  int  `yaml:"samples"`
	Baseline int  `yaml:"baseline"` // ADC midpoint, default 2048 (12-bit)
	Start    int  `yaml:"start"`    // first sample index carrying a beat

	// PeriodicImpulses / AcceleratingRhythm
	PeriodMS []int `yaml:"period_ms"` // one period: fixed interval; many: cycled

	// TwinPeaks / SoftRefractory
	GapSamples int `yaml:"gap_samples"`

	SpikeAmplitude int `yaml:"spike_amplitude"`
}

// LoadScenario reads a scenario recipe from a YAML file.
func LoadScenario(path string) (Scenario, error) {
	var sc Scenario
	data, err := os.ReadFile(path)
	if err != nil {
		return sc, fmt.Errorf("acquire: reading scenario %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return sc, fmt.Errorf("acquire: parsing scenario %s: %w", path, err)
	}
	if sc.Baseline == 0 {
		sc.Baseline = 2048
	}
	if sc.SpikeAmplitude == 0 {
		sc.SpikeAmplitude = 1500
	}
	return sc, nil
}

// Generate materializes the scenario into a sample stream of 12-bit ADC
// values, sampled at samplingHz.
func (sc Scenario) Generate(samplingHz int) []float64 {
	if sc.Baseline == 0 {
		sc.Baseline = 2048
	}
	if sc.SpikeAmplitude == 0 {
		sc.SpikeAmplitude = 1500
	}

	samples := make([]float64, sc.Samples)
	for i := range samples {
		samples[i] = float64(sc.Baseline)
	}

	switch sc.Kind {
	case ConstantDC:
		// Nothing more to do: flat line throughout.

	case PeriodicImpulses:
		periodSamples := msToSamples(firstOr(sc.PeriodMS, 1000), samplingHz)
		sc.stampSpikes(samples, sc.Start, periodSamples)

	case AcceleratingRhythm:
		periods := sc.PeriodMS
		if len(periods) == 0 {
			periods = []int{1000, 900, 800}
		}
		pos := sc.Start
		idx := 0
		for pos < len(samples) {
			sc.stampOneSpike(samples, pos)
			pos += msToSamples(periods[idx%len(periods)], samplingHz)
			idx++
		}

	case TwinPeaks:
		gap := sc.GapSamples
		if gap == 0 {
			gap = 30
		}
		sc.stampOneSpike(samples, sc.Start)
		sc.stampOneSpike(samples, sc.Start+gap)

	case SoftRefractory:
		gap := sc.GapSamples
		if gap == 0 {
			gap = 50
		}
		sc.stampOneSpike(samples, sc.Start)
		sc.stampWeakSpike(samples, sc.Start+gap)
	}

	return samples
}

func (sc Scenario) stampSpikes(samples []float64, start, period int) {
	for p := start; p < len(samples); p += period {
		sc.stampOneSpike(samples, p)
	}
}

func (sc Scenario) stampOneSpike(samples []float64, at int) {
	for w := 0; w < 3 && at+w < len(samples) && at+w >= 0; w++ {
		samples[at+w] = float64(sc.Baseline + sc.SpikeAmplitude)
	}
}

// stampWeakSpike stamps a spike at roughly a quarter of the normal
// amplitude, used by the soft-refractory/T-wave scenario where the second
// beat must fail the qualifier's slope check.
func (sc Scenario) stampWeakSpike(samples []float64, at int) {
	weak := sc.Baseline + sc.SpikeAmplitude/4
	for w := 0; w < 3 && at+w < len(samples) && at+w >= 0; w++ {
		samples[at+w] = float64(weak)
	}
}

func msToSamples(ms, samplingHz int) int {
	return int(math.Round(float64(ms) * float64(samplingHz) / 1000.0))
}

func firstOr(xs []int, def int) int {
	if len(xs) == 0 {
		return def
	}
	return xs[0]
}
