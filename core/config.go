package cardio

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default tunables, per spec.md §6. These were compile-time constants in
// the original firmware; here they are documented defaults, overridable by
// a Config for bench testing, the same liberty the teacher takes reading
// direwolf.conf for values the original TNC firmware hard-codes.
const (
	SamplingFrequency = 200 // Hz
	BufferSize        = 500 // samples, ring buffer capacity
	WindowSize        = 30  // samples, moving-window integral width
	T200              = 40  // samples, absolute refractory period
	T360              = 72  // samples, soft-refractory / T-wave window
	Warmup            = 600 // samples before qualification begins
	RRHistory         = 8   // rr1/rr2 window length
	RRSkip            = 7   // initial RR intervals discarded from averaging
)

// Config bundles the overridable tunables plus the REDESIGN FLAGS from
// spec.md §9. Zero value equals the spec.md defaults.
type Config struct {
	SamplingFrequency int `yaml:"sampling_frequency"`
	// BufferSize is informational only: Buffer[T]'s backing array is sized
	// by the BufferSize constant at compile time, per spec.md §9's "fixed
	// arrays, no heap" rule. A override here is rejected by NewDetector if
	// it disagrees with the constant.
	BufferSize int `yaml:"buffer_size"`
	WindowSize int `yaml:"window_size"`
	T200       int `yaml:"t200"`
	T360       int `yaml:"t360"`
	Warmup     int `yaml:"warmup"`
	// RRHistory is informational only, for the same reason as BufferSize:
	// rr1/rr2 are [RRHistory]int arrays sized at compile time.
	RRHistory int `yaml:"rr_history"`
	RRSkip    int `yaml:"rr_skip"`

	// BackSearchEnabled turns on the spec.md §4.3 back-search pass. Off by
	// default, matching spec.md §9's "intentionally off" note — but a real
	// flag, not a dead branch.
	BackSearchEnabled bool `yaml:"back_search_enabled"`
}

// DefaultConfig returns the spec.md §6 defaults.
func DefaultConfig() Config {
	return Config{
		SamplingFrequency: SamplingFrequency,
		BufferSize:        BufferSize,
		WindowSize:        WindowSize,
		T200:              T200,
		T360:              T360,
		Warmup:            Warmup,
		RRHistory:         RRHistory,
		RRSkip:            RRSkip,
		BackSearchEnabled: false,
	}
}

// LoadConfig reads a YAML tunables override from path, layering it on top
// of DefaultConfig. A missing file is not an error; it just means "use the
// defaults", matching the teacher's config.go treatment of an absent conf
// file.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("cardio: reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("cardio: parsing config %s: %w", path, err)
	}

	return cfg, nil
}
