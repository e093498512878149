package sound

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/require"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
)

var errTestOutput = errors.New("no audio device")

// fakeStream records how the engine drives a stream.
type fakeStream struct {
	reader  io.Reader
	playing bool
	closed  bool
}

func (s *fakeStream) Play()  { s.playing = true }
func (s *fakeStream) Pause() { s.playing = false }

func (s *fakeStream) Close() error {
	s.closed = true

	return nil
}

// fakeOutput hands out fakeStreams and remembers them.
type fakeOutput struct {
	mu      sync.Mutex
	streams []*fakeStream
	err     error
}

func (o *fakeOutput) Open(r io.Reader) (Stream, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.err != nil {
		return nil, o.err
	}

	s := &fakeStream{reader: r}
	o.streams = append(o.streams, s)

	return s, nil
}

// audible returns the streams currently playing.
func (o *fakeOutput) audible() []*fakeStream {
	o.mu.Lock()
	defer o.mu.Unlock()

	var out []*fakeStream

	for _, s := range o.streams {
		if s.playing && !s.closed {
			out = append(out, s)
		}
	}

	return out
}

func testSounds(t *testing.T) map[string]domain.Sound {
	t.Helper()

	wav := buildWAV(t, 8000, 1, 16, []int{1000, -1000, 2000, -2000})

	return map[string]domain.Sound{
		"sound_a": {Name: "a", Data: EncodeDataURI("audio/wav", wav)},
		"sound_b": {Name: "b", Data: EncodeDataURI("audio/wav", wav)},
		"sound_x": {Name: "broken", Data: "data:audio/wav;base64,AAAA"},
	}
}

// TestEngine_PlayDefaultTone synthesizes and loops the built-in tone.
func TestEngine_PlayDefaultTone(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	out := new(fakeOutput)
	e := NewEngine(out, 8000)

	require.Equal(t, Stopped, e.State())
	require.True(t, e.Play(ctx, domain.DefaultSoundID, nil, 0))
	require.Equal(t, Playing, e.State())
	require.True(t, e.IsPlaying())
	require.Equal(t, domain.DefaultSoundID, e.Current())
	require.Len(t, out.audible(), 1)

	// The stream loops past the clip length.
	buf := make([]byte, 8000*2*2)
	n, err := out.streams[0].reader.Read(buf)
	require.NoError(t, err)
	require.Equal(t, len(buf), n)
}

// TestEngine_SingleSession keeps only the latest session audible.
func TestEngine_SingleSession(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	out := new(fakeOutput)
	e := NewEngine(out, 8000)
	sounds := testSounds(t)

	require.True(t, e.Play(ctx, "sound_a", sounds, 0))
	require.True(t, e.Play(ctx, "sound_b", sounds, 0))

	require.Len(t, out.streams, 2)
	require.True(t, out.streams[0].closed)
	require.Equal(t, []*fakeStream{out.streams[1]}, out.audible())
	require.Equal(t, "sound_b", e.Current())
}

// TestEngine_PlayFailures leaves the engine stopped.
func TestEngine_PlayFailures(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	sounds := testSounds(t)

	out := new(fakeOutput)
	e := NewEngine(out, 8000)

	require.True(t, e.Play(ctx, "sound_a", sounds, 0))

	// Unknown id stops the previous session too.
	require.False(t, e.Play(ctx, "sound_missing", sounds, 0))
	require.Equal(t, Stopped, e.State())
	require.Empty(t, out.audible())
	require.Empty(t, e.Current())

	// Undecodable payload.
	require.False(t, e.Play(ctx, "sound_x", sounds, 0))
	require.Equal(t, Stopped, e.State())

	// Output failure.
	e = NewEngine(&fakeOutput{err: errTestOutput}, 8000)
	require.False(t, e.Play(ctx, domain.DefaultSoundID, nil, 0))
	require.Equal(t, Stopped, e.State())
}

// TestEngine_StopIsIdempotent allows repeated stops.
func TestEngine_StopIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	out := new(fakeOutput)
	e := NewEngine(out, 8000)

	e.Stop(ctx)
	require.Equal(t, Stopped, e.State())

	require.True(t, e.Play(ctx, domain.DefaultSoundID, nil, 0))
	e.Stop(ctx)
	e.Stop(ctx)

	require.False(t, e.IsPlaying())
	require.Equal(t, Stopped, e.State())
	require.True(t, out.streams[0].closed)
}

// TestEngine_PauseResume suspends without releasing the session.
func TestEngine_PauseResume(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	out := new(fakeOutput)
	e := NewEngine(out, 8000)

	// No session: no-ops.
	e.Pause()
	e.Resume()
	require.Equal(t, Stopped, e.State())

	require.True(t, e.Play(ctx, domain.DefaultSoundID, nil, 0))

	e.Pause()
	require.Equal(t, Paused, e.State())
	require.Empty(t, out.audible())
	require.False(t, out.streams[0].closed)

	e.Pause()
	require.Equal(t, Paused, e.State())

	e.Resume()
	require.Equal(t, Playing, e.State())
	require.Len(t, out.audible(), 1)

	// Stopping a paused session releases it.
	e.Pause()
	e.Stop(ctx)
	require.Equal(t, Stopped, e.State())
	require.True(t, out.streams[0].closed)
}

// TestEngine_AutoStop stops the session after the delay.
func TestEngine_AutoStop(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		ctx := context.Background()
		out := new(fakeOutput)
		e := NewEngine(out, 8000)

		require.True(t, e.Play(ctx, domain.DefaultSoundID, nil, 5*time.Second))

		time.Sleep(4 * time.Second)
		synctest.Wait()
		require.Equal(t, Playing, e.State())

		time.Sleep(time.Second)
		synctest.Wait()
		require.Equal(t, Stopped, e.State())
		require.True(t, out.streams[0].closed)
	})
}

// TestEngine_StaleAutoStop ignores timers of superseded sessions.
func TestEngine_StaleAutoStop(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		ctx := context.Background()
		out := new(fakeOutput)
		e := NewEngine(out, 8000)
		sounds := testSounds(t)

		require.True(t, e.Play(ctx, "sound_a", sounds, 5*time.Second))

		time.Sleep(3 * time.Second)
		require.True(t, e.Play(ctx, "sound_b", sounds, 0))

		time.Sleep(10 * time.Second)
		synctest.Wait()

		require.Equal(t, Playing, e.State())
		require.Equal(t, "sound_b", e.Current())

		// An explicit stop cancels the pending auto-stop of the new session.
		require.True(t, e.Play(ctx, "sound_a", sounds, 5*time.Second))
		e.Stop(ctx)
		require.True(t, e.Play(ctx, "sound_b", sounds, 0))

		time.Sleep(10 * time.Second)
		synctest.Wait()

		require.Equal(t, Playing, e.State())
	})
}

// TestState_String names every state.
func TestState_String(t *testing.T) {
	t.Parallel()

	require.Equal(t, "stopped", Stopped.String())
	require.Equal(t, "playing", Playing.String())
	require.Equal(t, "paused", Paused.String())
}
