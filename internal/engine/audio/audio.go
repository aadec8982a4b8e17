// Package audio plays short sound effects through the system speaker.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
)

// DefaultSampleRate is the speaker sample rate; sounds are resampled to it.
const DefaultSampleRate = beep.SampleRate(44100)

var errNotInitialized = errors.New("audio not initialized")

// Sound is a decoded clip held in memory so it can be replayed.
type Sound struct {
	buf *beep.Buffer
}

// Duration returns the playing time of the sound.
func (s *Sound) Duration() time.Duration {
	return DefaultSampleRate.D(s.buf.Len())
}

// DecodeWAV reads a whole WAV stream into memory at DefaultSampleRate.
func DecodeWAV(r io.Reader) (*Sound, error) {
	streamer, format, err := wav.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode wav: %w", err)
	}
	defer streamer.Close()

	var s beep.Streamer = streamer
	if format.SampleRate != DefaultSampleRate {
		s = beep.Resample(4, format.SampleRate, DefaultSampleRate, streamer)
	}

	format.SampleRate = DefaultSampleRate
	buf := beep.NewBuffer(format)
	buf.Append(s)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("read wav: %w", err)
	}
	return &Sound{buf: buf}, nil
}

// LoadWAV decodes the WAV file at path.
func LoadWAV(path string) (*Sound, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sound: %w", err)
	}
	return DecodeWAV(bytes.NewReader(data))
}

// Manager mixes concurrently playing sounds into the speaker.
type Manager struct {
	mu sync.RWMutex

	initialized bool
	volume      float64 // 0.0 to 1.0

	mixer *beep.Mixer
}

// New creates a new audio manager at full volume.
func New() *Manager {
	return &Manager{
		volume: 1.0,
		mixer:  &beep.Mixer{},
	}
}

// Init opens the speaker.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	if err := speaker.Init(DefaultSampleRate, DefaultSampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(m.mixer)

	m.initialized = true
	return nil
}

// Close stops playback and releases the speaker.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	m.initialized = false
}

// IsInitialized returns whether the speaker is open.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// SetVolume sets the volume (0.0 to 1.0).
func (m *Manager) SetVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volume = clamp(vol, 0, 1)
}

// Volume returns the volume.
func (m *Manager) Volume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.volume
}

// Play starts s from the beginning, mixed with anything already playing.
func (m *Manager) Play(s *Sound) error {
	m.mu.RLock()
	initialized := m.initialized
	vol := m.volume
	m.mu.RUnlock()

	if !initialized {
		return errNotInitialized
	}

	speaker.Lock()
	m.mixer.Add(withVolume(s.buf.Streamer(0, s.buf.Len()), vol))
	speaker.Unlock()
	return nil
}

func withVolume(s beep.Streamer, vol float64) *effects.Volume {
	return &effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   volumeExponent(vol),
		Silent:   vol <= 0,
	}
}

// volumeExponent maps a linear 0-1 volume to a base-2 gain exponent.
func volumeExponent(vol float64) float64 {
	if vol <= 0 {
		return -16
	}
	return math.Log2(vol)
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}
