//go:build portaudio

// Live line-in capture as an ADC stand-in: the hobbyist technique of
// feeding an ECG front-end's analog output into a sound card instead of a
// dedicated ADC/DMA peripheral. Grounded on the teacher's audio.go, whose
// job is described there as "interface to the sound card" for the
// demodulator's sample stream; here the same portaudio.Stream plumbing
// feeds core.Detector instead of a 1200/9600-baud demodulator.
package acquire

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// LineIn captures one channel from the default input device, downsampled
// to samplingHz, and forwards each captured frame to onSample.
type LineIn struct {
	stream *portaudio.Stream
}

// OpenLineIn opens the default audio input device at samplingHz mono.
func OpenLineIn(samplingHz int, onSample func(float64)) (*LineIn, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("acquire: portaudio init: %w", err)
	}

	buf := make([]float32, 64)
	stream, err := portaudio.OpenDefaultStream(1, 0, float64(samplingHz), len(buf), func(in []float32) {
		for _, s := range in {
			// Rescale from [-1, 1] float audio to a 12-bit ADC-like range
			// centered at 2048, matching the raw-sample domain core.Detector
			// expects from a real ADC front end.
			onSample(2048 + float64(s)*2047)
		}
	})
	if err != nil {
		portaudio.Terminate()
		return nil, fmt.Errorf("acquire: opening default stream: %w", err)
	}

	if err := stream.Start(); err != nil {
		stream.Close()
		portaudio.Terminate()
		return nil, fmt.Errorf("acquire: starting stream: %w", err)
	}

	return &LineIn{stream: stream}, nil
}

// Close stops capture and releases the portaudio device.
func (l *LineIn) Close() error {
	err := l.stream.Close()
	portaudio.Terminate()
	return err
}
