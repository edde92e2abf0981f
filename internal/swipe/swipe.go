// Package swipe classifies a single pointer interaction as a horizontal swipe.
//
// A gesture is delivered as TouchStart, zero or more TouchMove calls and a
// TouchEnd. Only the start and end points decide the outcome; vertical motion
// wins over horizontal when its magnitude is strictly greater, so scrolling is
// never mistaken for a swipe.
package swipe

import (
	"errors"
	"math"
)

// DefaultThreshold is the minimum horizontal distance for a swipe.
const DefaultThreshold = 30

// ErrNegativeThreshold is returned by New for a threshold below zero.
var ErrNegativeThreshold = errors.New("swipe threshold must be non-negative")

// Point is a pointer position in the host's coordinate units.
type Point struct {
	X, Y float64
}

// Direction is the outcome of a finished gesture.
type Direction int

const (
	None Direction = iota
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "none"
	}
}

// Options configures a Recognizer. Nil callbacks are treated as no-ops.
type Options struct {
	OnLeft    func()
	OnRight   func()
	Threshold float64
}

// DefaultOptions returns Options with the default threshold and no callbacks.
func DefaultOptions() Options {
	return Options{Threshold: DefaultThreshold}
}

// Recognizer holds the state of the gesture in progress. It is not safe for
// concurrent use; pointer events are expected from a single event loop.
type Recognizer struct {
	onLeft    func()
	onRight   func()
	threshold float64

	origin *Point
	moved  bool
}

// New returns a Recognizer for opts.
func New(opts Options) (*Recognizer, error) {
	if opts.Threshold < 0 || math.IsNaN(opts.Threshold) {
		return nil, ErrNegativeThreshold
	}
	r := &Recognizer{
		onLeft:    opts.OnLeft,
		onRight:   opts.OnRight,
		threshold: opts.Threshold,
	}
	if r.onLeft == nil {
		r.onLeft = func() {}
	}
	if r.onRight == nil {
		r.onRight = func() {}
	}
	return r, nil
}

// Threshold returns the configured minimum horizontal distance.
func (r *Recognizer) Threshold() float64 { return r.threshold }

// TouchStart records p as the gesture origin, replacing any earlier one.
func (r *Recognizer) TouchStart(p Point) {
	r.origin = &p
	r.moved = false
}

// TouchMove marks the gesture as moved. The position is not used.
func (r *Recognizer) TouchMove(Point) {
	r.moved = true
}

// TouchEnd finishes the gesture at p, invokes at most one callback and clears
// the origin. Without a recorded origin it does nothing and returns None.
func (r *Recognizer) TouchEnd(p Point) Direction {
	if r.origin == nil {
		return None
	}
	start := *r.origin
	r.origin = nil

	dir := Classify(start, p, r.threshold)
	switch dir {
	case Right:
		r.onRight()
	case Left:
		r.onLeft()
	case None:
	}
	return dir
}

// Moved reports whether TouchMove was seen since the last TouchStart.
func (r *Recognizer) Moved() bool { return r.moved }

// Active reports whether a gesture origin is recorded.
func (r *Recognizer) Active() bool { return r.origin != nil }

// Classify maps a start and end point to a Direction.
// |dy| == |dx| counts as horizontal. A zero dx never yields a swipe.
func Classify(start, end Point, threshold float64) Direction {
	dx := end.X - start.X
	dy := end.Y - start.Y

	if math.Abs(dy) > math.Abs(dx) {
		return None
	}
	if math.Abs(dx) < threshold {
		return None
	}
	switch {
	case dx > 0:
		return Right
	case dx < 0:
		return Left
	default:
		return None
	}
}
