// Package audio synthesizes the game's sound effects and background melody
// with beep and plays them through the system speaker.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave defines oscillator wave shapes.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveTriangle
)

// Tone describes a single synthesized note whose frequency and gain ramp
// exponentially from their start to their end values.
type Tone struct {
	Wave      Wave
	StartFreq float64 // Hz
	EndFreq   float64 // Hz
	StartGain float64
	EndGain   float64
	Duration  time.Duration
}

// Sound effect and melody definitions.
var (
	ShootTone = Tone{
		Wave: WaveSquare, StartFreq: 800, EndFreq: 800,
		StartGain: 0.1, EndGain: 0.01, Duration: 100 * time.Millisecond,
	}
	ExplosionTone = Tone{
		Wave: WaveSaw, StartFreq: 200, EndFreq: 50,
		StartGain: 0.3, EndGain: 0.01, Duration: 300 * time.Millisecond,
	}

	Melody         = []float64{200, 250, 300, 250, 350, 200}
	MelodyNoteTime = 300 * time.Millisecond
	melodyGain     = 0.05
)

// Streamer renders the tone at the given sample rate.
func (t Tone) Streamer(rate beep.SampleRate) beep.Streamer {
	return &tone{
		Tone:  t,
		rate:  rate,
		total: max(rate.N(t.Duration), 1),
	}
}

// tone generates the samples of one Tone.
type tone struct {
	Tone
	rate     beep.SampleRate
	phase    float64
	position int
	total    int
}

func (o *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.total {
			return i, i > 0
		}

		progress := float64(o.position) / float64(o.total)
		freq := ramp(o.StartFreq, o.EndFreq, progress)
		gain := ramp(o.StartGain, o.EndGain, progress)

		val := gain * waveValue(o.Wave, o.phase)
		samples[i][0] = val
		samples[i][1] = val

		// Advance phase
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *tone) Err() error { return nil }

// ramp interpolates exponentially from start to end; non-positive values
// fall back to a linear ramp.
func ramp(start, end, progress float64) float64 {
	if start <= 0 || end <= 0 {
		return start + (end-start)*progress
	}
	return start * math.Pow(end/start, progress)
}

// waveValue returns the wave's amplitude in [-1, 1] at phase [0, 1).
func waveValue(w Wave, phase float64) float64 {
	switch w {
	case WaveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case WaveSaw:
		return 2 * (phase - 0.5)
	case WaveTriangle:
		return 1 - 4*math.Abs(phase-0.5)
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// MelodyLoop plays the background melody forever.
func MelodyLoop(rate beep.SampleRate) beep.Streamer {
	i := 0
	return beep.Iterate(func() beep.Streamer {
		freq := Melody[i%len(Melody)]
		i++
		return Tone{
			Wave: WaveTriangle, StartFreq: freq, EndFreq: freq,
			StartGain: melodyGain, EndGain: melodyGain / 100, Duration: MelodyNoteTime,
		}.Streamer(rate)
	})
}

// newVolume scales a stream by a linear factor.
// math.Log2(0) is -Inf, so we handle 0 volume by making it silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
