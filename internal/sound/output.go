package sound

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Stream is an opened playback of one reader.
type Stream interface {
	Play()
	Pause()
	Close() error
}

// Output opens streams of mono signed 16-bit little-endian PCM.
type Output interface {
	Open(r io.Reader) (Stream, error)
}

// otoBufferSize keeps stop and pause responsive.
const otoBufferSize = 100 * time.Millisecond

// OtoOutput plays through the system audio device. The oto context is
// created on first use and shared by every stream; oto allows only one
// context per process.
type OtoOutput struct {
	sampleRate int
	once       sync.Once
	ctx        *oto.Context
	err        error
}

// NewOtoOutput creates an output for the given sample rate.
func NewOtoOutput(sampleRate int) *OtoOutput {
	return &OtoOutput{sampleRate: sampleRate}
}

// Open creates a player for r. The first call waits until the audio device
// is ready.
func (o *OtoOutput) Open(r io.Reader) (Stream, error) {
	o.once.Do(o.init)

	if o.err != nil {
		return nil, o.err
	}

	return o.ctx.NewPlayer(r), nil
}

func (o *OtoOutput) init() {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   o.sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   otoBufferSize,
	})
	if err != nil {
		o.err = fmt.Errorf("create audio context: %w", err)

		return
	}

	<-ready

	o.ctx = ctx
}

// SilentOutput accepts streams and discards them. It backs daemons started
// without an audio device.
type SilentOutput struct{}

// Open returns a stream that does nothing.
func (SilentOutput) Open(io.Reader) (Stream, error) {
	return silentStream{}, nil
}

type silentStream struct{}

func (silentStream) Play()        {}
func (silentStream) Pause()       {}
func (silentStream) Close() error { return nil }
