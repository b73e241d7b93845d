package alert

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

var toneFormat = beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2}

type note struct {
	frequency float64
	length    time.Duration
}

// chimeNotes is a rising fifth.
var chimeNotes = []note{
	{frequency: 880, length: 180 * time.Millisecond},
	{frequency: 1318.5, length: 260 * time.Millisecond},
}

// Player plays the alert chime.
type Player interface {
	Play(volume float64) error
}

// SpeakerPlayer plays the chime through the default audio device. The device
// is opened on first use.
type SpeakerPlayer struct {
	once    sync.Once
	initErr error
	buffer  *beep.Buffer
}

// NewSpeakerPlayer returns a player that has not touched the audio device yet.
func NewSpeakerPlayer() *SpeakerPlayer {
	return &SpeakerPlayer{}
}

// Play starts the chime at volume in [0, 1] and returns without waiting.
func (player *SpeakerPlayer) Play(volume float64) error {
	player.once.Do(func() {
		if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
			player.initErr = fmt.Errorf("init speaker: %w", err)
			return
		}
		player.buffer = beep.NewBuffer(toneFormat)
		player.buffer.Append(chime(sampleRate, chimeNotes))
	})
	if player.initErr != nil {
		return player.initErr
	}
	speaker.Play(withVolume(player.buffer.Streamer(0, player.buffer.Len()), volume))
	return nil
}

// withVolume maps a linear [0, 1] setting onto a base-2 gain of -6..0.
func withVolume(streamer beep.Streamer, volume float64) *effects.Volume {
	if volume > 1 {
		volume = 1
	}
	return &effects.Volume{
		Streamer: streamer,
		Base:     2,
		Volume:   (volume - 1) * 6,
		Silent:   volume <= 0,
	}
}

func chime(rate beep.SampleRate, notes []note) beep.Streamer {
	streamers := make([]beep.Streamer, 0, len(notes))
	for _, current := range notes {
		samples := rate.N(current.length)
		streamers = append(streamers, beep.Take(samples, decayingSine(rate, current.frequency, samples)))
	}
	return beep.Seq(streamers...)
}

// decayingSine produces a sine wave whose amplitude falls from 0.5 towards
// zero over length samples.
func decayingSine(rate beep.SampleRate, frequency float64, length int) beep.Streamer {
	position := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for index := range samples {
			elapsed := float64(position) / float64(rate)
			envelope := 0.5 * math.Exp(-4*float64(position)/float64(length))
			value := envelope * math.Sin(2*math.Pi*frequency*elapsed)
			samples[index][0] = value
			samples[index][1] = value
			position++
		}
		return len(samples), true
	})
}
