// Package audio turns visualization events into short synthesized sounds.
//
// SoundManager is the only entry point the rest of the program uses. It is a
// gate plus a fixed mapping from events to voices; what a voice does with the
// request (render, log, drop) is not its concern.
package audio

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Event is a visualization moment that can produce a sound.
type Event int

const (
	EventCompare Event = iota
	EventSwap
	EventPivot
	EventSorted
	EventNodeVisit
	EventPathFound
	EventUIClick
	EventArrayGenerated
)

func (e Event) String() string {
	switch e {
	case EventCompare:
		return "compare"
	case EventSwap:
		return "swap"
	case EventPivot:
		return "pivot"
	case EventSorted:
		return "sorted"
	case EventNodeVisit:
		return "node-visit"
	case EventPathFound:
		return "path-found"
	case EventUIClick:
		return "ui-click"
	case EventArrayGenerated:
		return "array-generated"
	default:
		return "unknown"
	}
}

// Voice plays one or more pitches for a held duration. An empty freqs slice
// asks the voice to use its own base pitch.
type Voice interface {
	TriggerAttackRelease(freqs []float64, held time.Duration)
}

// Voices is the set of pre-built instruments a SoundManager drives.
type Voices struct {
	Soft  Voice
	Pluck Voice
	Metal Voice
	Poly  Voice
}

// CompareFrequency maps an array value to the compare pitch (150 Hz at 5, 350 Hz at 100).
func CompareFrequency(value float64) float64 {
	return 150 + ((value-5)/95)*200
}

// PivotFrequency maps an array value to the pivot pitch (100 Hz at 5, 200 Hz at 100).
func PivotFrequency(value float64) float64 {
	return 100 + ((value-5)/95)*100
}

// Note values and pitches for the fixed cues.
//
//nolint:gochecknoglobals // constant tables built from note names.
var (
	sortedChord    = []float64{MustNote("C4"), MustNote("E4"), MustNote("G4")}
	pathFoundChord = []float64{MustNote("C3"), MustNote("E3"), MustNote("G3"), MustNote("C4")}
	uiClickPitch   = MustNote("G4")
	generatePitch  = MustNote("C4")
)

const nodeVisitPitch = 220.0

// SoundManager gates and dispatches audio cues. It starts disabled.
type SoundManager struct {
	enabled bool
	voices  Voices
}

// NewSoundManager returns a disabled manager over voices. Nil voices are skipped.
func NewSoundManager(voices Voices) *SoundManager {
	return &SoundManager{voices: voices}
}

func (m *SoundManager) Enable()       { m.enabled = true }
func (m *SoundManager) Disable()      { m.enabled = false }
func (m *SoundManager) Enabled() bool { return m.enabled }

// SetEnabled enables or disables the gate.
func (m *SoundManager) SetEnabled(on bool) { m.enabled = on }

// Cue dispatches ev. value is only read for compare and pivot.
func (m *SoundManager) Cue(ev Event, value float64) {
	switch ev {
	case EventCompare:
		m.PlayCompare(value)
	case EventSwap:
		m.PlaySwap()
	case EventPivot:
		m.PlayPivot(value)
	case EventSorted:
		m.PlaySorted()
	case EventNodeVisit:
		m.PlayNodeVisit()
	case EventPathFound:
		m.PlayPathFound()
	case EventUIClick:
		m.PlayUIClick()
	case EventArrayGenerated:
		m.PlayArrayGenerate()
	default:
		logrus.Debugf("audio: ignoring unknown event %d", ev)
	}
}

func (m *SoundManager) PlayCompare(value float64) {
	m.trigger(m.voices.Pluck, "16n", CompareFrequency(value))
}

func (m *SoundManager) PlaySwap() {
	m.trigger(m.voices.Metal, "32n")
}

func (m *SoundManager) PlayPivot(value float64) {
	m.trigger(m.voices.Soft, "8n", PivotFrequency(value))
}

func (m *SoundManager) PlaySorted() {
	m.trigger(m.voices.Poly, "2n", sortedChord...)
}

func (m *SoundManager) PlayNodeVisit() {
	m.trigger(m.voices.Soft, "64n", nodeVisitPitch)
}

func (m *SoundManager) PlayPathFound() {
	m.trigger(m.voices.Poly, "1n", pathFoundChord...)
}

func (m *SoundManager) PlayUIClick() {
	m.trigger(m.voices.Soft, "64n", uiClickPitch)
}

func (m *SoundManager) PlayArrayGenerate() {
	m.trigger(m.voices.Soft, "8n", generatePitch)
}

func (m *SoundManager) trigger(v Voice, value string, freqs ...float64) {
	if !m.enabled || v == nil {
		return
	}
	v.TriggerAttackRelease(freqs, MustDuration(value))
}
