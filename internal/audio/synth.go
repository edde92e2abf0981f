package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultSampleRate is the rendering rate for every built-in voice.
const DefaultSampleRate = 22050

// Waveform selects the oscillator a Synth renders with.
type Waveform int

const (
	Triangle Waveform = iota
	Sine
	Pluck
	Metal
)

// Envelope is an ADSR envelope in seconds; Sustain is a level in [0,1].
type Envelope struct {
	Attack, Decay, Sustain, Release float64
}

// level returns the envelope gain at t seconds for a note held for held seconds.
func (e Envelope) level(t, held float64) float64 {
	at := func(t float64) float64 {
		switch {
		case t < e.Attack:
			return t / e.Attack
		case t < e.Attack+e.Decay:
			return 1 - (1-e.Sustain)*(t-e.Attack)/e.Decay
		default:
			return e.Sustain
		}
	}
	if t < held {
		return at(t)
	}
	if e.Release <= 0 {
		return 0
	}
	r := 1 - (t-held)/e.Release
	if r < 0 {
		return 0
	}
	return at(held) * r
}

// Synth renders notes to PCM and hands them to a Sink.
type Synth struct {
	Name       string
	Wave       Waveform
	Env        Envelope
	BaseFreq   float64
	Gain       float64
	SampleRate int
	// Harmonicity and ModIndex shape the Metal waveform.
	Harmonicity float64
	ModIndex    float64

	sink Sink
	rng  *rand.Rand
}

// NewSynth returns a Synth writing to sink.
func NewSynth(name string, wave Waveform, env Envelope, sink Sink) *Synth {
	return &Synth{
		Name:       name,
		Wave:       wave,
		Env:        env,
		Gain:       0.6,
		SampleRate: DefaultSampleRate,
		sink:       sink,
		rng:        rand.New(rand.NewPCG(1, 2)), //nolint:gosec // pluck excitation noise, not security relevant
	}
}

// TriggerAttackRelease renders freqs held for held and sends them to the sink.
// Several frequencies are mixed into one buffer.
func (s *Synth) TriggerAttackRelease(freqs []float64, held time.Duration) {
	if len(freqs) == 0 {
		freqs = []float64{s.BaseFreq}
	}
	samples := s.Render(freqs, held)
	if s.sink == nil {
		return
	}
	if err := s.sink.Play(s.Name, samples); err != nil {
		logrus.Debugf("audio: %s voice: %v", s.Name, err)
	}
}

// Render returns mono float samples in [-1,1] for freqs held for held.
func (s *Synth) Render(freqs []float64, held time.Duration) []float32 {
	rate := s.SampleRate
	if rate <= 0 {
		rate = DefaultSampleRate
	}
	heldSec := held.Seconds()
	total := heldSec + s.Env.Release
	n := int(total * float64(rate))
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	for _, f := range freqs {
		if f <= 0 {
			continue
		}
		s.renderVoice(out, f, heldSec, rate)
	}
	peak := 0.0
	for _, v := range out {
		peak = math.Max(peak, math.Abs(v))
	}
	norm := s.Gain
	if peak > 1 {
		norm /= peak
	}
	res := make([]float32, n)
	for i, v := range out {
		res[i] = float32(v * norm)
	}
	return res
}

func (s *Synth) renderVoice(out []float64, freq, held float64, rate int) {
	dt := 1 / float64(rate)
	switch s.Wave {
	case Pluck:
		// Karplus-Strong: a noise burst recirculating through an averaging delay line.
		period := int(float64(rate) / freq)
		if period < 2 {
			period = 2
		}
		line := make([]float64, period)
		for i := range line {
			line[i] = s.rng.Float64()*2 - 1
		}
		for i := range out {
			idx := i % period
			next := (idx + 1) % period
			v := line[idx]
			line[idx] = 0.996 * 0.5 * (line[idx] + line[next])
			out[i] += v * s.Env.level(float64(i)*dt, held)
		}
	case Metal:
		mod := freq * s.Harmonicity
		for i := range out {
			t := float64(i) * dt
			v := math.Sin(2*math.Pi*freq*t + s.ModIndex*math.Sin(2*math.Pi*mod*t))
			out[i] += v * s.Env.level(t, held)
		}
	case Sine:
		for i := range out {
			t := float64(i) * dt
			out[i] += math.Sin(2*math.Pi*freq*t) * s.Env.level(t, held)
		}
	case Triangle:
		for i := range out {
			t := float64(i) * dt
			phase := math.Mod(freq*t, 1)
			out[i] += (4*math.Abs(phase-0.5) - 1) * s.Env.level(t, held)
		}
	}
}

// DefaultVoices builds the standard instrument set over sink.
func DefaultVoices(sink Sink) Voices {
	soft := NewSynth("soft", Triangle, Envelope{Attack: 0.05, Decay: 0.2, Sustain: 0.1, Release: 0.3}, sink)
	pluck := NewSynth("pluck", Pluck, Envelope{Attack: 0.001, Decay: 0.3, Sustain: 0, Release: 0.2}, sink)
	metal := NewSynth("metal", Metal, Envelope{Attack: 0.001, Decay: 0.1, Sustain: 0, Release: 0.01}, sink)
	metal.BaseFreq = 200
	metal.Harmonicity = 5.1
	metal.ModIndex = 32
	poly := NewSynth("poly", Triangle, Envelope{Attack: 0.005, Decay: 0.1, Sustain: 0.3, Release: 1}, sink)
	return Voices{Soft: soft, Pluck: pluck, Metal: metal, Poly: poly}
}
