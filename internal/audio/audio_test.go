package audio

import (
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	freqs []float64
	held  time.Duration
}

type recordingVoice struct {
	calls []call
}

func (v *recordingVoice) TriggerAttackRelease(freqs []float64, held time.Duration) {
	v.calls = append(v.calls, call{freqs: freqs, held: held})
}

type rig struct {
	soft, pluck, metal, poly *recordingVoice
	m                        *SoundManager
}

func newRig() *rig {
	r := &rig{soft: &recordingVoice{}, pluck: &recordingVoice{}, metal: &recordingVoice{}, poly: &recordingVoice{}}
	r.m = NewSoundManager(Voices{Soft: r.soft, Pluck: r.pluck, Metal: r.metal, Poly: r.poly})
	return r
}

func (r *rig) total() int {
	return len(r.soft.calls) + len(r.pluck.calls) + len(r.metal.calls) + len(r.poly.calls)
}

func TestFrequencyMapping(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 150, CompareFrequency(5), 1e-9)
	assert.InDelta(t, 350, CompareFrequency(100), 1e-9)
	assert.InDelta(t, 250, CompareFrequency(52.5), 1e-9)
	assert.InDelta(t, 100, PivotFrequency(5), 1e-9)
	assert.InDelta(t, 200, PivotFrequency(100), 1e-9)
	assert.InDelta(t, 150, PivotFrequency(52.5), 1e-9)
}

func TestSoundManager_DisabledIsSilent(t *testing.T) {
	t.Parallel()

	r := newRig()
	assert.False(t, r.m.Enabled())
	for ev := EventCompare; ev <= EventArrayGenerated; ev++ {
		r.m.Cue(ev, 50)
	}
	assert.Zero(t, r.total())

	r.m.Enable()
	r.m.Disable()
	r.m.PlayCompare(10)
	assert.Zero(t, r.total())
}

func TestSoundManager_EventMapping(t *testing.T) {
	t.Parallel()

	r := newRig()
	r.m.Enable()

	r.m.Cue(EventCompare, 100)
	require.Len(t, r.pluck.calls, 1)
	assert.InDelta(t, 350, r.pluck.calls[0].freqs[0], 1e-9)
	assert.Equal(t, 125*time.Millisecond, r.pluck.calls[0].held)

	r.m.Cue(EventPivot, 5)
	require.Len(t, r.soft.calls, 1)
	assert.InDelta(t, 100, r.soft.calls[0].freqs[0], 1e-9)
	assert.Equal(t, 250*time.Millisecond, r.soft.calls[0].held)

	r.m.Cue(EventSwap, 0)
	require.Len(t, r.metal.calls, 1)
	assert.Empty(t, r.metal.calls[0].freqs, "metal voice uses its own pitch")
	assert.Equal(t, 62500*time.Microsecond, r.metal.calls[0].held)

	r.m.Cue(EventSorted, 0)
	require.Len(t, r.poly.calls, 1)
	assert.Len(t, r.poly.calls[0].freqs, 3)
	assert.Equal(t, time.Second, r.poly.calls[0].held)

	r.m.Cue(EventPathFound, 0)
	require.Len(t, r.poly.calls, 2)
	assert.Len(t, r.poly.calls[1].freqs, 4)
	assert.Equal(t, 2*time.Second, r.poly.calls[1].held)

	r.m.Cue(EventNodeVisit, 0)
	r.m.Cue(EventUIClick, 0)
	r.m.Cue(EventArrayGenerated, 0)
	require.Len(t, r.soft.calls, 4)
	assert.InDelta(t, 220, r.soft.calls[1].freqs[0], 1e-9)
	assert.InDelta(t, MustNote("G4"), r.soft.calls[2].freqs[0], 1e-9)
	assert.InDelta(t, MustNote("C4"), r.soft.calls[3].freqs[0], 1e-9)
}

func TestSoundManager_NilVoices(t *testing.T) {
	t.Parallel()

	m := NewSoundManager(Voices{})
	m.Enable()
	assert.NotPanics(t, func() {
		for ev := EventCompare; ev <= EventArrayGenerated; ev++ {
			m.Cue(ev, 42)
		}
		m.Cue(Event(99), 0)
	})
}

func TestNoteFrequency(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want float64
	}{
		{"A4", 440},
		{"A3", 220},
		{"C4", 261.6255653},
		{"G4", 391.9954360},
		{"C#4", 277.1826310},
		{"Db4", 277.1826310},
		{"a4", 440},
	}
	for _, tt := range tests {
		got, err := NoteFrequency(tt.name)
		require.NoError(t, err, tt.name)
		assert.InDelta(t, tt.want, got, 1e-6, tt.name)
	}

	for _, bad := range []string{"", "H4", "C", "C#x"} {
		_, err := NoteFrequency(bad)
		require.ErrorIs(t, err, ErrBadNote, bad)
	}
}

func TestNoteDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want time.Duration
	}{
		{"1n", 2 * time.Second},
		{"4n", 500 * time.Millisecond},
		{"8n", 250 * time.Millisecond},
		{"64n", 31250 * time.Microsecond},
		{"8n.", 375 * time.Millisecond},
		{"8t", 166666666 * time.Nanosecond},
	}
	for _, tt := range tests {
		got, err := NoteDuration(tt.in)
		require.NoError(t, err, tt.in)
		assert.InDelta(t, float64(tt.want), float64(got), float64(time.Microsecond), tt.in)
	}

	for _, bad := range []string{"", "n", "0n", "4x", "-2n"} {
		_, err := NoteDuration(bad)
		require.ErrorIs(t, err, ErrBadDuration, bad)
	}
}

func TestSynth_RenderLengthAndRange(t *testing.T) {
	t.Parallel()

	for _, wave := range []Waveform{Triangle, Sine, Pluck, Metal} {
		s := NewSynth("test", wave, Envelope{Attack: 0.01, Decay: 0.05, Sustain: 0.5, Release: 0.1}, nil)
		s.Harmonicity, s.ModIndex = 2, 3
		out := s.Render([]float64{220, 330}, 100*time.Millisecond)
		require.Len(t, out, int(0.2*float64(DefaultSampleRate)))
		for _, v := range out {
			require.LessOrEqual(t, v, float32(1))
			require.GreaterOrEqual(t, v, float32(-1))
		}
	}
}

func TestEnvelope_Level(t *testing.T) {
	t.Parallel()

	e := Envelope{Attack: 0.1, Decay: 0.1, Sustain: 0.5, Release: 0.2}
	assert.InDelta(t, 0.5, e.level(0.05, 1), 1e-9)
	assert.InDelta(t, 1, e.level(0.1, 1), 1e-9)
	assert.InDelta(t, 0.75, e.level(0.15, 1), 1e-9)
	assert.InDelta(t, 0.5, e.level(0.5, 1), 1e-9)
	assert.InDelta(t, 0.25, e.level(1.1, 1), 1e-9)
	assert.InDelta(t, 0, e.level(2, 1), 1e-9)
}

func TestWAVSink_WritesValidHeader(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cues.wav")
	sink, err := CreateWAVFile(path, 8000)
	require.NoError(t, err)

	m := NewSoundManager(DefaultVoices(sink))
	m.Enable()
	m.PlayUIClick()
	m.PlaySwap()
	require.Positive(t, sink.Bytes())
	require.NoError(t, sink.Close())
	require.NoError(t, sink.Close(), "second close is a no-op")
	require.ErrorIs(t, sink.Play("late", []float32{0}), ErrSinkClosed)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(b), wavHeaderSize)
	assert.Equal(t, "RIFF", string(b[0:4]))
	assert.Equal(t, "WAVE", string(b[8:12]))
	assert.Equal(t, uint32(8000), binary.LittleEndian.Uint32(b[24:28]))
	dataLen := binary.LittleEndian.Uint32(b[40:44])
	assert.Equal(t, uint32(len(b)-wavHeaderSize), dataLen)
	assert.Equal(t, 36+dataLen, binary.LittleEndian.Uint32(b[4:8]))
}

type brokenFile struct {
	*os.File
	seekErr error
}

func (f *brokenFile) Seek(offset int64, whence int) (int64, error) {
	if f.seekErr != nil {
		return 0, f.seekErr
	}
	return f.File.Seek(offset, whence)
}

func TestWAVSink_CloseReleasesFileOnHeaderFailure(t *testing.T) {
	t.Parallel()

	f, err := os.Create(filepath.Join(t.TempDir(), "cues.wav"))
	require.NoError(t, err)
	bf := &brokenFile{File: f}
	sink, err := NewWAVSink(bf, 8000)
	require.NoError(t, err)
	sink.closer = bf

	bf.seekErr = errors.New("seek failed")
	require.ErrorIs(t, sink.Close(), bf.seekErr)
	require.ErrorIs(t, f.Close(), os.ErrClosed, "file closed despite the failed rewind")
}

func TestLogSink(t *testing.T) {
	t.Parallel()

	assert.NoError(t, LogSink{}.Play("soft", make([]float32, 10)))
}

func TestEvent_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "compare", EventCompare.String())
	assert.Equal(t, "array-generated", EventArrayGenerated.String())
	assert.Equal(t, "unknown", Event(-1).String())
}
