package notify

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
)

const (
	toneFrequency = 800.0
	toneLength    = time.Second
	toneStartGain = 0.3
	toneEndGain   = 0.01

	toneSampleRate beep.SampleRate = 44100
)

// BeepTone synthesizes a short sine cue and plays it on the default speaker.
type BeepTone struct {
	once    sync.Once
	initErr error
	volume  float64
}

// NewBeepTone returns a tone player. volume is in halvings (0 unchanged, -1 half).
func NewBeepTone(volume float64) *BeepTone {
	return &BeepTone{volume: volume}
}

// Play starts the cue without waiting for it to finish.
func (tone *BeepTone) Play() error {
	tone.once.Do(func() {
		tone.initErr = speaker.Init(toneSampleRate, toneSampleRate.N(time.Second/10))
	})
	if tone.initErr != nil {
		return fmt.Errorf("%w: init speaker: %w", ErrUnavailable, tone.initErr)
	}

	speaker.Play(&effects.Volume{
		Streamer: newToneStreamer(toneSampleRate),
		Base:     2,
		Volume:   tone.volume,
		Silent:   false,
	})
	return nil
}

// newToneStreamer yields one second of an 800 Hz sine whose gain decays
// exponentially from 0.3 to 0.01.
func newToneStreamer(sampleRate beep.SampleRate) beep.Streamer {
	total := sampleRate.N(toneLength)
	decay := math.Log(toneEndGain / toneStartGain)
	position := 0

	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if position >= total {
			return 0, false
		}
		filled := 0
		for i := range samples {
			if position >= total {
				break
			}
			elapsed := float64(position) / float64(sampleRate)
			gain := toneStartGain * math.Exp(decay*float64(position)/float64(total))
			value := gain * math.Sin(2*math.Pi*toneFrequency*elapsed)
			samples[i][0] = value
			samples[i][1] = value
			position++
			filled++
		}
		return filled, true
	})
}
