package sound

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
	"github.com/oshokin/alarm-clock/internal/logger"
)

// DefaultSampleRate is the engine output rate unless configured otherwise.
const DefaultSampleRate = 44100

// State is the playback state of the engine.
type State int

const (
	// Stopped means no session exists.
	Stopped State = iota
	// Playing means a session is audible.
	Playing
	// Paused means a session exists but is suspended.
	Paused
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return "stopped"
	}
}

// errUnknownSound is returned by load for ids missing from the sound table.
var errUnknownSound = errors.New("unknown sound")

// Engine plays at most one sound at a time.
type Engine struct {
	output     Output
	sampleRate int

	mu sync.Mutex
	// state is the playback state of the current session.
	state State
	// session increments whenever a session starts or ends; timers carry the
	// value they were created for and do nothing once it has moved on.
	session uint64
	stream  Stream
	timer   *time.Timer
	// current is the sound id of the active session.
	current string
	// tone caches the rendered default tone.
	tone []int16
}

// NewEngine creates an engine writing to output at sampleRate.
func NewEngine(output Output, sampleRate int) *Engine {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}

	return &Engine{
		output:     output,
		sampleRate: sampleRate,
	}
}

// Play stops any active session and loops soundID until stopped.
// DefaultSoundID plays the synthesized tone; other ids are looked up in
// sounds. A positive autoStop stops this session after the delay.
// It reports whether playback started; failures are logged, never returned.
func (e *Engine) Play(ctx context.Context, soundID string, sounds map[string]domain.Sound, autoStop time.Duration) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.stopLocked()

	ctx = logger.WithKV(ctx, "sound_id", soundID)

	samples, err := e.load(soundID, sounds)
	if err != nil {
		logger.WarnKV(ctx, "Failed to load sound", "error", err)

		return false
	}

	stream, err := e.output.Open(newLoopReader(samples))
	if err != nil {
		logger.ErrorKV(ctx, "Failed to open audio output", "error", err)

		return false
	}

	stream.Play()

	e.session++
	e.stream = stream
	e.state = Playing
	e.current = soundID

	if autoStop > 0 {
		session := e.session
		e.timer = time.AfterFunc(autoStop, func() {
			e.expire(ctx, session)
		})
	}

	logger.DebugKV(ctx, "Playback started", "auto_stop", autoStop)

	return true
}

// Stop ends the active session. Calling it without a session is a no-op.
func (e *Engine) Stop(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == Stopped {
		return
	}

	logger.DebugKV(ctx, "Playback stopped", "sound_id", e.current)

	e.stopLocked()
}

// Pause suspends the active session.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != Playing {
		return
	}

	e.stream.Pause()
	e.state = Paused
}

// Resume continues a paused session.
func (e *Engine) Resume() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != Paused {
		return
	}

	e.stream.Play()
	e.state = Playing
}

// State returns the playback state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.state
}

// IsPlaying reports whether a session is audible.
func (e *Engine) IsPlaying() bool {
	return e.State() == Playing
}

// Current returns the sound id of the active session, or "" when stopped.
func (e *Engine) Current() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.current
}

// expire is the auto-stop callback of one session.
func (e *Engine) expire(ctx context.Context, session uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.session != session || e.state == Stopped {
		return
	}

	logger.DebugKV(ctx, "Playback auto-stopped")

	e.stopLocked()
}

// stopLocked releases the session; mu must be held.
func (e *Engine) stopLocked() {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}

	if e.stream != nil {
		e.stream.Pause()

		if err := e.stream.Close(); err != nil {
			logger.WarnKV(context.Background(), "Failed to close audio stream", "error", err)
		}

		e.stream = nil
	}

	if e.state != Stopped {
		e.session++
	}

	e.state = Stopped
	e.current = ""
}

// load returns the samples for soundID; mu must be held.
func (e *Engine) load(soundID string, sounds map[string]domain.Sound) ([]int16, error) {
	if soundID == domain.DefaultSoundID {
		if e.tone == nil {
			e.tone = Render(NewToneVoice(e.sampleRate))
		}

		return e.tone, nil
	}

	sound, ok := sounds[soundID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errUnknownSound, soundID)
	}

	samples, err := DecodeDataURI(sound.Data, e.sampleRate)
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", sound.Name, err)
	}

	return samples, nil
}
