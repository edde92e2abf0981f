package audio

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Tempo used to turn note values ("8n") into wall-clock durations.
const (
	defaultBPM   = 120
	concertPitch = 440.0
	a4MIDI       = 69
)

var (
	ErrBadNote     = errors.New("invalid note name")
	ErrBadDuration = errors.New("invalid note value")
)

//nolint:gochecknoglobals // fixed lookup table.
var semitones = map[byte]int{'C': 0, 'D': 2, 'E': 4, 'F': 5, 'G': 7, 'A': 9, 'B': 11}

// NoteFrequency converts scientific pitch notation ("C4", "G#3", "Bb2") to Hz.
func NoteFrequency(name string) (float64, error) {
	s := strings.TrimSpace(name)
	if len(s) < 2 {
		return 0, fmt.Errorf("%w: %q", ErrBadNote, name)
	}
	base, ok := semitones[strings.ToUpper(s[:1])[0]]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrBadNote, name)
	}
	rest := s[1:]
	switch rest[0] {
	case '#':
		base++
		rest = rest[1:]
	case 'b':
		base--
		rest = rest[1:]
	}
	octave, err := strconv.Atoi(rest)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadNote, name)
	}
	midi := (octave+1)*12 + base
	return concertPitch * math.Pow(2, float64(midi-a4MIDI)/12), nil
}

// MustNote is NoteFrequency for constant note names.
func MustNote(name string) float64 {
	f, err := NoteFrequency(name)
	if err != nil {
		panic(err)
	}
	return f
}

// NoteDuration converts a note value ("4n", "8n.", "16t") to a duration at 120 BPM.
// A trailing "." is dotted (×1.5), "t" is a triplet (×2/3).
func NoteDuration(value string) (time.Duration, error) {
	s := strings.TrimSpace(value)
	mult := 1.0
	switch {
	case strings.HasSuffix(s, "n."):
		mult = 1.5
		s = strings.TrimSuffix(s, "n.")
	case strings.HasSuffix(s, "n"):
		s = strings.TrimSuffix(s, "n")
	case strings.HasSuffix(s, "t"):
		mult = 2.0 / 3.0
		s = strings.TrimSuffix(s, "t")
	default:
		return 0, fmt.Errorf("%w: %q", ErrBadDuration, value)
	}
	div, err := strconv.Atoi(s)
	if err != nil || div <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrBadDuration, value)
	}
	quarter := time.Minute / defaultBPM
	whole := 4 * quarter
	return time.Duration(float64(whole) / float64(div) * mult), nil
}

// MustDuration is NoteDuration for constant note values.
func MustDuration(value string) time.Duration {
	d, err := NoteDuration(value)
	if err != nil {
		panic(err)
	}
	return d
}
