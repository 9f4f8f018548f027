package notify

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"github.com/ncruces/zenity"
	"github.com/pkg/errors"
)

const (
	sampleRate = beep.SampleRate(44100)
	chimeGain  = 0.3
)

var (
	speakerOnce sync.Once
	speakerErr  error
)

func initSpeaker() error {
	speakerOnce.Do(func() {
		speakerErr = speaker.Init(sampleRate, sampleRate.N(time.Second/20))
	})
	return errors.Wrap(speakerErr, "init speaker")
}

// Chime plays a short sound on reload.
type Chime struct {
	mu  sync.Mutex
	buf *beep.Buffer
}

// NewChime loads the sound at path, or a synthesized two-note chime when
// path is empty, and opens the speaker.
func NewChime(path string) (*Chime, error) {
	buf, err := loadSound(path)
	if err != nil {
		return nil, err
	}
	if err := initSpeaker(); err != nil {
		return nil, err
	}
	return &Chime{buf: buf}, nil
}

func (c *Chime) Reload(Event) error {
	c.mu.Lock()
	buf := c.buf
	c.mu.Unlock()
	speaker.Play(buf.Streamer(0, buf.Len()))
	return nil
}

// SetSound swaps in the sound at path. On error the old sound stays.
func (c *Chime) SetSound(path string) error {
	buf, err := loadSound(path)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.buf = buf
	c.mu.Unlock()
	return nil
}

// Close silences anything still playing.
func (c *Chime) Close() {
	speaker.Lock()
	speaker.Clear()
	speaker.Unlock()
}

// loadSound decodes path into a buffer at the speaker sample rate.
func loadSound(path string) (*beep.Buffer, error) {
	format := beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2}
	buf := beep.NewBuffer(format)
	if path == "" {
		buf.Append(beep.Seq(tone(660, 90*time.Millisecond), tone(880, 140*time.Millisecond)))
		return buf, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open sound")
	}
	defer f.Close()

	var (
		streamer beep.StreamSeekCloser
		sf       beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		streamer, sf, err = wav.Decode(f)
	case ".mp3":
		streamer, sf, err = mp3.Decode(f)
	case ".flac":
		streamer, sf, err = flac.Decode(f)
	default:
		return nil, errors.Errorf("unsupported sound type: %s", filepath.Ext(path))
	}
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	defer streamer.Close()

	var s beep.Streamer = streamer
	if sf.SampleRate != sampleRate {
		s = beep.Resample(4, sf.SampleRate, sampleRate, s)
	}
	buf.Append(s)
	if err := streamer.Err(); err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	return buf, nil
}

// tone is a sine at freq that fades out linearly over d.
func tone(freq float64, d time.Duration) beep.Streamer {
	n := sampleRate.N(d)
	i := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if i >= n {
			return 0, false
		}
		for j := range samples {
			if i >= n {
				return j, true
			}
			t := float64(i) / float64(sampleRate)
			env := 1 - float64(i)/float64(n)
			v := math.Sin(2*math.Pi*freq*t) * env * chimeGain
			samples[j] = [2]float64{v, v}
			i++
		}
		return len(samples), true
	})
}

// PickSound asks the user for a sound file. A cancelled dialog returns "".
func PickSound() (string, error) {
	filename, err := zenity.SelectFile(
		zenity.Title("Reload sound"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: []string{"*.wav", "*.mp3", "*.flac"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", nil
		}
		return "", errors.Wrap(err, "select sound")
	}
	return filename, nil
}
