package player

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeElement struct {
	playErr     error
	playCalls   int
	pauseCalls  int
	currentTime float64
	volume      float64
	muted       bool
	mutedAtPlay []bool
}

func (f *fakeElement) Play(ctx context.Context) error {
	_ = ctx
	f.playCalls++
	f.mutedAtPlay = append(f.mutedAtPlay, f.muted)
	return f.playErr
}

func (f *fakeElement) Pause()                   { f.pauseCalls++ }
func (f *fakeElement) SetCurrentTime(s float64) { f.currentTime = s }
func (f *fakeElement) SetVolume(v float64)      { f.volume = v }
func (f *fakeElement) SetMuted(m bool)          { f.muted = m }

// stubTimers replaces the controller's timer source and returns the captured
// callbacks so tests can fire them deterministically.
func stubTimers(c *Controller) *[]func() {
	callbacks := &[]func(){}
	c.afterFunc = func(d time.Duration, f func()) *time.Timer {
		_ = d
		*callbacks = append(*callbacks, f)
		return time.NewTimer(time.Hour)
	}
	return callbacks
}

func readyController(t *testing.T, el Element, duration float64) *Controller {
	t.Helper()
	c := NewController(Config{Kind: "audio"})
	stubTimers(c)
	c.Mount(el, duration)
	c.OnLoaded(duration)
	if c.State() != StateReady {
		t.Fatalf("setup: state %s", c.State())
	}
	return c
}

func TestTogglePlayPauseWhileLoadingIsNoOp(t *testing.T) {
	el := &fakeElement{}
	c := NewController(Config{})
	stubTimers(c)
	c.Mount(el, 0)

	c.TogglePlayPause(context.Background())

	if c.State() != StateLoading {
		t.Fatalf("state changed to %s", c.State())
	}
	if el.playCalls != 0 {
		t.Fatal("element must not be touched while loading")
	}
}

func TestTogglePlayPauseFlips(t *testing.T) {
	el := &fakeElement{}
	c := readyController(t, el, 120)

	c.TogglePlayPause(context.Background())
	if c.State() != StatePlaying {
		t.Fatalf("expected playing, got %s", c.State())
	}

	c.TogglePlayPause(context.Background())
	if c.State() != StatePaused {
		t.Fatalf("expected paused, got %s", c.State())
	}
	if el.playCalls != 1 || el.pauseCalls != 1 {
		t.Fatalf("unexpected element calls: play=%d pause=%d", el.playCalls, el.pauseCalls)
	}
}

func TestTogglePlayPauseWhileBufferingIsNoOp(t *testing.T) {
	el := &fakeElement{}
	c := readyController(t, el, 120)
	c.TogglePlayPause(context.Background())
	c.OnWaiting()
	if c.State() != StateBuffering {
		t.Fatalf("setup: %s", c.State())
	}

	c.TogglePlayPause(context.Background())
	if c.State() != StateBuffering {
		t.Fatalf("state changed to %s", c.State())
	}

	c.OnPlaying()
	if c.State() != StatePlaying {
		t.Fatalf("expected playing after resume, got %s", c.State())
	}
}

func TestPlayFailureRecordsError(t *testing.T) {
	el := &fakeElement{playErr: errors.New("NotAllowedError")}
	c := readyController(t, el, 60)

	c.TogglePlayPause(context.Background())

	if c.State() != StateError {
		t.Fatalf("expected error state, got %s", c.State())
	}
	if c.Err() != "Failed to play audio" {
		t.Fatalf("unexpected message: %q", c.Err())
	}
}

func TestSeekClamps(t *testing.T) {
	el := &fakeElement{}
	c := readyController(t, el, 120)

	c.Seek(-5)
	if c.Position() != 0 || el.currentTime != 0 {
		t.Fatalf("seek below zero: position=%v element=%v", c.Position(), el.currentTime)
	}

	c.Seek(500)
	if c.Position() != 120 || el.currentTime != 120 {
		t.Fatalf("seek past end: position=%v element=%v", c.Position(), el.currentTime)
	}

	c.Seek(42.5)
	if c.Position() != 42.5 {
		t.Fatalf("plain seek: %v", c.Position())
	}
}

func TestVolumeClearsMute(t *testing.T) {
	el := &fakeElement{}
	c := readyController(t, el, 60)

	c.ToggleMute()
	if !c.Muted() {
		t.Fatal("expected muted")
	}

	c.SetVolume(0.6)
	if c.Muted() {
		t.Fatal("setting volume above zero must clear mute")
	}
	if c.Volume() != 0.6 || el.volume != 0.6 || el.muted {
		t.Fatalf("unexpected volume state: %v / element %v muted=%v", c.Volume(), el.volume, el.muted)
	}
}

func TestToggleMuteRestoresLastVolume(t *testing.T) {
	el := &fakeElement{}
	c := readyController(t, el, 60)

	c.SetVolume(0.35)
	c.ToggleMute()
	if !c.Muted() {
		t.Fatal("expected muted")
	}

	c.ToggleMute()
	if c.Muted() {
		t.Fatal("expected unmuted")
	}
	if c.Volume() != 0.35 {
		t.Fatalf("volume not restored: %v", c.Volume())
	}
}

func TestRestartKeepsState(t *testing.T) {
	el := &fakeElement{}
	c := readyController(t, el, 60)
	c.TogglePlayPause(context.Background())
	c.OnTimeUpdate(33)

	c.Restart()

	if c.Position() != 0 || el.currentTime != 0 {
		t.Fatalf("restart position: %v / %v", c.Position(), el.currentTime)
	}
	if c.State() != StatePlaying {
		t.Fatalf("restart must not change play state, got %s", c.State())
	}
}

func TestReadyFallbackTimer(t *testing.T) {
	el := &fakeElement{}
	c := NewController(Config{})
	callbacks := stubTimers(c)
	c.Mount(el, 0)

	if c.State() != StateLoading {
		t.Fatalf("setup: %s", c.State())
	}
	if len(*callbacks) != 1 {
		t.Fatalf("expected one scheduled timer, got %d", len(*callbacks))
	}

	(*callbacks)[0]()

	if c.State() != StateReady {
		t.Fatalf("fallback timer must force ready, got %s", c.State())
	}
}

func TestEndedLeavesPositionAtEnd(t *testing.T) {
	el := &fakeElement{}
	c := readyController(t, el, 90)
	c.TogglePlayPause(context.Background())

	c.OnEnded()

	if c.State() != StateEnded {
		t.Fatalf("expected ended, got %s", c.State())
	}
	if c.Position() != 90 {
		t.Fatalf("position must stay at the end, got %v", c.Position())
	}

	c.TogglePlayPause(context.Background())
	if c.State() != StatePlaying {
		t.Fatalf("explicit play after ended: %s", c.State())
	}
}

func TestEventsAfterCloseAreIgnored(t *testing.T) {
	el := &fakeElement{}
	c := readyController(t, el, 60)
	c.Close()

	c.OnError("boom")
	c.OnTimeUpdate(10)

	if c.State() == StateError {
		t.Fatal("events after close must be dropped")
	}
	if c.Position() != 0 {
		t.Fatalf("position updated after close: %v", c.Position())
	}
}
