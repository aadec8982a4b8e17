package audio

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeWAV(t *testing.T, rate beep.SampleRate, d time.Duration) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "click.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	format := beep.Format{SampleRate: rate, NumChannels: 1, Precision: 2}
	require.NoError(t, wav.Encode(f, beep.Take(rate.N(d), beep.Silence(-1)), format))
	return path
}

func TestVolumeExponent(t *testing.T) {
	tests := []struct {
		vol  float64
		want float64
	}{
		{1.0, 0},
		{0.5, -1},
		{0.25, -2},
	}
	for _, tt := range tests {
		if got := volumeExponent(tt.vol); got != tt.want {
			t.Errorf("volumeExponent(%f) = %f, want %f", tt.vol, got, tt.want)
		}
	}
	if volumeExponent(0) > -10 {
		t.Errorf("zero volume should be effectively silent")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-1, 0, 1, 0},
		{2, 0, 1, 1},
		{0, 0, 1, 0},
		{1, 0, 1, 1},
	}

	for _, tt := range tests {
		got := clamp(tt.v, tt.lo, tt.hi)
		if got != tt.want {
			t.Errorf("clamp(%f, %f, %f) = %f, want %f", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestSetVolume(t *testing.T) {
	m := New()
	assert.Equal(t, 1.0, m.Volume())

	m.SetVolume(0.5)
	assert.Equal(t, 0.5, m.Volume())
	m.SetVolume(2)
	assert.Equal(t, 1.0, m.Volume())
	m.SetVolume(-1)
	assert.Equal(t, 0.0, m.Volume())
}

func TestPlayBeforeInit(t *testing.T) {
	m := New()
	assert.False(t, m.IsInitialized())
	assert.ErrorIs(t, m.Play(&Sound{buf: beep.NewBuffer(beep.Format{SampleRate: DefaultSampleRate, NumChannels: 2, Precision: 2})}), errNotInitialized)
}

func TestLoadWAVResamples(t *testing.T) {
	s, err := LoadWAV(writeWAV(t, 22050, 200*time.Millisecond))
	require.NoError(t, err)
	assert.InDelta(t, float64(200*time.Millisecond), float64(s.Duration()), float64(5*time.Millisecond))
}

func TestDecodeWAVRejectsGarbage(t *testing.T) {
	_, err := DecodeWAV(bytes.NewReader([]byte("RIFF but not really")))
	assert.Error(t, err)

	_, err = LoadWAV(filepath.Join(t.TempDir(), "missing.wav"))
	assert.Error(t, err)
}
