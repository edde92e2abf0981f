// Package player steps through algorithm frames manually or on a timer.
//
// Player is a plain state machine. It never sleeps or starts goroutines: Play
// and Tick return the delay before the next Tick and the caller owns the
// timer. Every tick carries the generation it was scheduled under so that
// ticks outliving a Pause or Reset are dropped.
package player

import (
	"errors"
	"slices"
	"time"

	"github.com/bayanflow/bayan-flow/internal/algorithms"
	"github.com/bayanflow/bayan-flow/internal/algorithms/pathfinding"
	"github.com/bayanflow/bayan-flow/internal/algorithms/sorting"
	"github.com/bayanflow/bayan-flow/internal/audio"
)

// Mode selects how Play advances.
type Mode string

const (
	Manual   Mode = "manual"
	Autoplay Mode = "autoplay"
)

// Base per-step delays for an array of ReferenceSize elements.
const (
	Slow     = 8000 * time.Millisecond
	Medium   = 4800 * time.Millisecond
	Fast     = 2400 * time.Millisecond
	VeryFast = 1200 * time.Millisecond
)

const (
	// ReferenceSize is the array length the base speeds are tuned for.
	ReferenceSize = 20
	MaxTotal      = 30 * time.Second
	MinDelay      = 30 * time.Millisecond
	MaxDelay      = 10 * time.Second
)

var ErrUnknownSpeed = errors.New("unknown speed")

// ParseSpeed maps a speed name to its base delay.
func ParseSpeed(name string) (time.Duration, error) {
	switch name {
	case "slow":
		return Slow, nil
	case "medium":
		return Medium, nil
	case "fast":
		return Fast, nil
	case "veryFast", "very-fast":
		return VeryFast, nil
	default:
		return 0, ErrUnknownSpeed
	}
}

// EffectiveDelay scales base by ReferenceSize/length, shortens it so that
// totalSteps fit in MaxTotal, and clamps the result to [MinDelay, MaxDelay].
func EffectiveDelay(base time.Duration, length, totalSteps int) time.Duration {
	ms := float64(base.Milliseconds())
	scaled := int64(ms*float64(ReferenceSize)/float64(max(1, length)) + 0.5)
	d := time.Duration(scaled) * time.Millisecond
	if totalSteps > 0 && d*time.Duration(totalSteps) > MaxTotal {
		d = max(MinDelay, (MaxTotal/time.Duration(totalSteps)).Truncate(time.Millisecond))
	}
	return min(max(d, MinDelay), MaxDelay)
}

// Cuer receives sound cues for executed frames. *audio.SoundManager satisfies it.
type Cuer interface {
	Cue(ev audio.Event, value float64)
}

type noCue struct{}

func (noCue) Cue(audio.Event, float64) {}

// Player holds the loaded frames and the playback cursor.
type Player struct {
	frames   []algorithms.Frame
	index    int
	complete bool
	playing  bool
	mode     Mode
	speed    time.Duration
	gen      int
	sound    Cuer
}

// New returns an empty player. A nil sound discards cues.
func New(mode Mode, speed time.Duration, sound Cuer) *Player {
	if sound == nil {
		sound = noCue{}
	}
	return &Player{mode: mode, speed: speed, sound: sound}
}

// Load replaces the frames and rewinds to the first one without cueing it.
func (p *Player) Load(frames []algorithms.Frame) {
	p.stop()
	p.frames = frames
	p.index = 0
	p.complete = false
}

func (p *Player) Mode() Mode               { return p.mode }
func (p *Player) Speed() time.Duration     { return p.speed }
func (p *Player) SetSpeed(d time.Duration) { p.speed = d }
func (p *Player) Index() int               { return p.index }
func (p *Player) Total() int               { return len(p.frames) }
func (p *Player) Complete() bool           { return p.complete }
func (p *Player) Playing() bool            { return p.playing }
func (p *Player) Generation() int          { return p.gen }

// SetMode switches mode and stops any running autoplay.
func (p *Player) SetMode(m Mode) {
	p.stop()
	p.mode = m
}

// Current returns the frame under the cursor.
func (p *Player) Current() (algorithms.Frame, bool) {
	if len(p.frames) == 0 {
		return algorithms.Frame{}, false
	}
	return p.frames[p.index], true
}

// Delay is the effective autoplay delay for the loaded frames.
func (p *Player) Delay() time.Duration {
	length := ReferenceSize
	if f, ok := p.Current(); ok && f.Sort != nil && len(f.Sort.Array) > 0 {
		length = len(f.Sort.Array)
	}
	return EffectiveDelay(p.speed, length, len(p.frames))
}

// StepForward advances one frame. It reports whether the cursor moved.
func (p *Player) StepForward() bool {
	if p.index >= len(p.frames)-1 {
		return false
	}
	p.index++
	p.execute()
	if p.index == len(p.frames)-1 {
		p.complete = true
	}
	return true
}

// StepBackward rewinds one frame and clears completion.
func (p *Player) StepBackward() bool {
	if p.index <= 0 {
		return false
	}
	p.index--
	p.execute()
	p.complete = false
	return true
}

// Reset stops playback and returns to the first frame.
func (p *Player) Reset() {
	p.stop()
	p.index = 0
	p.complete = false
}

// Play advances one frame in manual mode. In autoplay it executes the current
// frame, starts playing and returns the delay before the first Tick; ok is
// false when nothing is scheduled.
func (p *Player) Play() (time.Duration, bool) {
	if len(p.frames) == 0 || p.complete {
		return 0, false
	}
	if p.mode == Manual {
		p.StepForward()
		return 0, false
	}
	p.stop()
	p.playing = true
	p.execute()
	return p.scheduleNext()
}

// Pause stops autoplay; pending ticks become stale.
func (p *Player) Pause() { p.stop() }

// Tick advances autoplay if gen matches the current generation.
func (p *Player) Tick(gen int) (time.Duration, bool) {
	if gen != p.gen || !p.playing {
		return 0, false
	}
	if p.index >= len(p.frames)-1 {
		p.finish()
		return 0, false
	}
	p.index++
	p.execute()
	return p.scheduleNext()
}

func (p *Player) scheduleNext() (time.Duration, bool) {
	if p.index >= len(p.frames)-1 {
		p.finish()
		return 0, false
	}
	return p.Delay(), true
}

func (p *Player) finish() {
	p.complete = true
	p.playing = false
	p.gen++
}

func (p *Player) stop() {
	p.playing = false
	p.gen++
}

func (p *Player) execute() {
	f, ok := p.Current()
	if !ok {
		return
	}
	switch {
	case f.Sort != nil:
		cueSorting(p.sound, *f.Sort)
	case f.Path != nil:
		cuePath(p.sound, *f.Path)
	}
}

// cueSorting plays at most one of swap, pivot or compare, keyed to the first
// highlighted bar, plus the sorted chord when every bar is sorted or idle.
func cueSorting(c Cuer, s sorting.Step) {
	valueAt := func(st sorting.ElementState) (float64, bool) {
		i := slices.Index(s.States, st)
		if i < 0 || i >= len(s.Array) {
			return 0, false
		}
		return float64(s.Array[i]), true
	}
	if v, ok := valueAt(sorting.Swapping); ok {
		c.Cue(audio.EventSwap, v)
	} else if v, ok := valueAt(sorting.Pivot); ok {
		c.Cue(audio.EventPivot, v)
	} else if v, ok := valueAt(sorting.Comparing); ok {
		c.Cue(audio.EventCompare, v)
	}

	hasSorted := false
	for _, st := range s.States {
		switch st {
		case sorting.Sorted:
			hasSorted = true
		case sorting.Default:
		default:
			return
		}
	}
	if hasSorted {
		c.Cue(audio.EventSorted, 0)
	}
}

func cuePath(c Cuer, s pathfinding.Step) {
	for _, row := range s.States {
		if slices.Contains(row, pathfinding.Path) {
			c.Cue(audio.EventPathFound, 0)
			return
		}
	}
	c.Cue(audio.EventNodeVisit, 0)
}
