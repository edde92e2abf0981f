package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// ErrSinkClosed is returned when writing to a closed sink.
var ErrSinkClosed = errors.New("audio sink closed")

// Sink receives rendered voices.
type Sink interface {
	Play(voice string, samples []float32) error
}

// LogSink records every cue at debug level and discards the audio.
type LogSink struct {
	Logger logrus.FieldLogger
}

func (s LogSink) Play(voice string, samples []float32) error {
	l := s.Logger
	if l == nil {
		l = logrus.StandardLogger()
	}
	l.WithFields(logrus.Fields{"voice": voice, "samples": len(samples)}).Debug("audio cue")
	return nil
}

const (
	wavHeaderSize    = 44
	wavBitsPerSample = 16
	wavChannels      = 1
	wavPCMFormat     = 1
	wavFmtChunkSize  = 16
)

// WAVSink appends every cue to a mono 16-bit PCM WAV stream. Close rewrites
// the header sizes, so the writer must support seeking.
type WAVSink struct {
	mu         sync.Mutex
	w          io.WriteSeeker
	closer     io.Closer
	sampleRate int
	dataBytes  uint32
	closed     bool
}

// NewWAVSink writes a placeholder header to w and returns the sink.
func NewWAVSink(w io.WriteSeeker, sampleRate int) (*WAVSink, error) {
	s := &WAVSink{w: w, sampleRate: sampleRate}
	if err := s.writeHeader(); err != nil {
		return nil, err
	}
	return s, nil
}

// CreateWAVFile creates path and returns a sink writing to it.
func CreateWAVFile(path string, sampleRate int) (*WAVSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	s, err := NewWAVSink(f, sampleRate)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	s.closer = f
	return s, nil
}

func (s *WAVSink) Play(_ string, samples []float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSinkClosed
	}
	buf := make([]byte, 2*len(samples))
	for i, v := range samples {
		c := math.Max(-1, math.Min(1, float64(v)))
		binary.LittleEndian.PutUint16(buf[2*i:], uint16(int16(c*math.MaxInt16)))
	}
	n, err := s.w.Write(buf)
	s.dataBytes += uint32(n) //nolint:gosec // bounded by buffer size
	return err
}

// Bytes returns the number of PCM bytes written so far.
func (s *WAVSink) Bytes() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dataBytes
}

// Close finalizes the header and closes the underlying file when owned.
func (s *WAVSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	err := s.finalize()
	if s.closer != nil {
		err = errors.Join(err, s.closer.Close())
	}
	return err
}

func (s *WAVSink) finalize() error {
	if _, err := s.w.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewinding wav: %w", err)
	}
	return s.writeHeader()
}

func (s *WAVSink) writeHeader() error {
	blockAlign := wavChannels * wavBitsPerSample / 8
	byteRate := s.sampleRate * blockAlign
	h := make([]byte, wavHeaderSize)
	copy(h[0:], "RIFF")
	binary.LittleEndian.PutUint32(h[4:], 36+s.dataBytes)
	copy(h[8:], "WAVE")
	copy(h[12:], "fmt ")
	binary.LittleEndian.PutUint32(h[16:], wavFmtChunkSize)
	binary.LittleEndian.PutUint16(h[20:], wavPCMFormat)
	binary.LittleEndian.PutUint16(h[22:], wavChannels)
	binary.LittleEndian.PutUint32(h[24:], uint32(s.sampleRate))   //nolint:gosec // sample rates are small
	binary.LittleEndian.PutUint32(h[28:], uint32(byteRate))       //nolint:gosec // derived from sample rate
	binary.LittleEndian.PutUint16(h[32:], uint16(blockAlign))     //nolint:gosec // constant
	binary.LittleEndian.PutUint16(h[34:], wavBitsPerSample)
	copy(h[36:], "data")
	binary.LittleEndian.PutUint32(h[40:], s.dataBytes)
	_, err := s.w.Write(h)
	return err
}
