package audio

import (
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"
)

const framesPerBuf = 512

// Init initializes PortAudio.
func Init() error {
	return portaudio.Initialize()
}

// Terminate cleans up PortAudio.
func Terminate() error {
	return portaudio.Terminate()
}

// Player writes synthesized waveforms to the default output device.
// One stream plays at a time; concurrent calls queue on the mutex.
type Player struct {
	mu sync.Mutex
}

// NewPlayer creates a Player. PortAudio must be initialized first.
func NewPlayer() *Player {
	return &Player{}
}

// Play blocks until the samples have been written to the output stream.
// The stream is opened at the waveform's own sample rate; the device may
// reject rates it cannot run at, which surfaces as an open error.
// Samples are peak-normalized so large amplitudes do not clip.
func (p *Player) Play(samples []float64, sampleRate float64) error {
	if len(samples) == 0 {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	buf := make([]float32, framesPerBuf)
	stream, err := portaudio.OpenDefaultStream(0, 1, sampleRate, framesPerBuf, buf)
	if err != nil {
		return fmt.Errorf("open output stream: %w", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return fmt.Errorf("start output stream: %w", err)
	}
	defer stream.Stop()

	gain := 1.0
	if peak := peakAmplitude(samples); peak > 1 {
		gain = 1 / peak
	}

	for i := 0; i < len(samples); i += framesPerBuf {
		for j := range buf {
			buf[j] = 0 // zero-pad the final chunk
		}
		for j := 0; j < framesPerBuf && i+j < len(samples); j++ {
			buf[j] = float32(samples[i+j] * gain)
		}
		if err := stream.Write(); err != nil {
			return fmt.Errorf("write samples: %w", err)
		}
	}
	return nil
}

func peakAmplitude(samples []float64) float64 {
	peak := 0.0
	for _, s := range samples {
		if s > peak {
			peak = s
		} else if -s > peak {
			peak = -s
		}
	}
	return peak
}
