package sound

import (
	"math"
	"time"
)

// Default tone parameters.
const (
	ToneDuration  = 1500 * time.Millisecond
	toneAmplitude = 0.3
	toneBaseFreq  = 800.0
	toneSweepFreq = 100.0
)

// Voice generates samples in the range [-1,1].
type Voice interface {
	// Sample returns the next sample and whether the voice has finished.
	Sample() (float64, bool)
}

// toneVoice is the decaying, slowly swept beep used when no upload is selected.
type toneVoice struct {
	i, n int
	sr   float64
}

// NewToneVoice returns the default alarm tone rendered at sampleRate.
func NewToneVoice(sampleRate int) Voice {
	return &toneVoice{
		n:  int(float64(sampleRate) * ToneDuration.Seconds()),
		sr: float64(sampleRate),
	}
}

func (v *toneVoice) Sample() (float64, bool) {
	if v.i >= v.n {
		return 0, true
	}

	t := float64(v.i) / v.sr
	envelope := math.Exp(-2*t) * (1 - math.Cos(2*math.Pi*t*2))
	freq := toneBaseFreq + math.Sin(2*math.Pi*t)*toneSweepFreq

	v.i++

	return math.Sin(2*math.Pi*freq*t) * envelope * toneAmplitude, false
}

// Render drains the voice into 16-bit samples.
func Render(v Voice) []int16 {
	var out []int16

	for {
		s, done := v.Sample()
		if done {
			return out
		}

		out = append(out, toInt16(s))
	}
}

func toInt16(f float64) int16 {
	switch {
	case f > 1:
		f = 1
	case f < -1:
		f = -1
	}

	return int16(math.Round(f * math.MaxInt16))
}
