package animation

import "time"

// PulseSpec describes one swell-and-settle of the countdown text.
type PulseSpec struct {
	Duration time.Duration
	Steps    int
	// Amplitude is the peak extra scale, 0.1 grows the text by ten percent.
	Amplitude float32
}

// Scale returns the text scale factor for a pulse intensity in [0, 1].
func (spec PulseSpec) Scale(intensity float64) float32 {
	return 1 + spec.Amplitude*float32(intensity)
}

func (spec PulseSpec) stepDuration() time.Duration {
	if spec.Steps <= 0 {
		return spec.Duration
	}
	return spec.Duration / time.Duration(spec.Steps)
}
