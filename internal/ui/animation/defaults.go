package animation

import "time"

// DefaultPulse is the one-second pulse shown when a phase completes.
func DefaultPulse() PulseSpec {
	return PulseSpec{
		Duration:  time.Second,
		Steps:     20,
		Amplitude: 0.1,
	}
}
