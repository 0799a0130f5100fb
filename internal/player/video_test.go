package player

import (
	"context"
	"errors"
	"testing"
)

func readyVideo(t *testing.T, el Element, cfg VideoConfig) (*VideoController, *[]func()) {
	t.Helper()
	v := NewVideoController(cfg)
	callbacks := stubTimers(v.Controller)
	v.Mount(el, 120)
	v.OnLoaded(120)
	if v.State() != StateReady {
		t.Fatalf("setup: state %s", v.State())
	}
	return v, callbacks
}

func TestAutoplayOnMobileStartsMuted(t *testing.T) {
	el := &fakeElement{}
	v, _ := readyVideo(t, el, VideoConfig{Mobile: true})

	v.Autoplay(context.Background())

	if v.State() != StatePlaying {
		t.Fatalf("expected playing, got %s", v.State())
	}
	if len(el.mutedAtPlay) != 1 || !el.mutedAtPlay[0] {
		t.Fatalf("autoplay must mute before playing on mobile: %v", el.mutedAtPlay)
	}
	if !v.Muted() {
		t.Fatal("controller must reflect the muted start")
	}
}

func TestAutoplayOnDesktopStartsUnmuted(t *testing.T) {
	el := &fakeElement{}
	v, _ := readyVideo(t, el, VideoConfig{Mobile: false})

	v.Autoplay(context.Background())

	if len(el.mutedAtPlay) != 1 || el.mutedAtPlay[0] {
		t.Fatalf("desktop autoplay should not force mute: %v", el.mutedAtPlay)
	}
}

func TestBlockedAutoplayShowsTapToPlay(t *testing.T) {
	el := &fakeElement{playErr: errors.New("NotAllowedError")}
	v, _ := readyVideo(t, el, VideoConfig{Mobile: true})

	v.Autoplay(context.Background())

	if v.Overlay() != OverlayTapToPlay {
		t.Fatalf("expected tap-to-play overlay, got %d", v.Overlay())
	}
	if v.State() == StateError {
		t.Fatal("blocked autoplay is a recovery path, not an error")
	}
	if v.Err() != "" {
		t.Fatalf("no error message expected, got %q", v.Err())
	}
}

func TestTapToPlayClearsOverlayAndPlays(t *testing.T) {
	el := &fakeElement{playErr: errors.New("NotAllowedError")}
	v, _ := readyVideo(t, el, VideoConfig{Mobile: true})
	v.Autoplay(context.Background())

	el.playErr = nil
	v.TapToPlay(context.Background())

	if v.Overlay() != OverlayNone {
		t.Fatalf("overlay not cleared: %d", v.Overlay())
	}
	if v.State() != StatePlaying {
		t.Fatalf("expected playing, got %s", v.State())
	}
}

func TestGreetingDismissedWhenPlaybackStarts(t *testing.T) {
	el := &fakeElement{}
	v, _ := readyVideo(t, el, VideoConfig{})
	v.ShowGreeting()

	if v.Overlay() != OverlayGreeting {
		t.Fatalf("setup: overlay %d", v.Overlay())
	}

	v.OnPlay()

	if v.Overlay() != OverlayNone {
		t.Fatalf("greeting must drop when playback starts, got %d", v.Overlay())
	}
}

func TestGreetingDismissedByTimer(t *testing.T) {
	el := &fakeElement{}
	v, callbacks := readyVideo(t, el, VideoConfig{})
	before := len(*callbacks)
	v.ShowGreeting()

	if len(*callbacks) != before+1 {
		t.Fatalf("greeting timer not scheduled")
	}

	(*callbacks)[len(*callbacks)-1]()

	if v.Overlay() != OverlayNone {
		t.Fatalf("greeting must drop after the timer, got %d", v.Overlay())
	}
}

func TestAutoUnmuteAfterMutedAutoplay(t *testing.T) {
	el := &fakeElement{}
	// A conservative desktop embed: start muted, restore sound shortly after.
	v, callbacks := readyVideo(t, el, VideoConfig{StartMuted: true, AutoUnmute: true})
	v.Autoplay(context.Background())

	if !v.Muted() {
		t.Fatal("setup: expected muted start")
	}

	(*callbacks)[len(*callbacks)-1]()

	if v.Muted() {
		t.Fatal("auto-unmute timer must clear mute")
	}
	if el.muted {
		t.Fatal("element must be unmuted")
	}
}

func TestMobileNeverAutoUnmutes(t *testing.T) {
	v := NewVideoController(VideoConfig{Mobile: true, AutoUnmute: true})
	if v.autoUnmute {
		t.Fatal("auto-unmute must be disabled on mobile")
	}
}

func TestStopResetsToPaused(t *testing.T) {
	el := &fakeElement{}
	v, _ := readyVideo(t, el, VideoConfig{})
	v.TogglePlayPause(context.Background())
	v.OnTimeUpdate(17)

	v.Stop()

	if v.State() != StatePaused {
		t.Fatalf("expected paused, got %s", v.State())
	}
	if v.Position() != 0 || el.currentTime != 0 {
		t.Fatalf("stop must reset position: %v / %v", v.Position(), el.currentTime)
	}
	if el.pauseCalls != 1 {
		t.Fatalf("element not paused: %d", el.pauseCalls)
	}
}

func TestIsMobileUserAgent(t *testing.T) {
	cases := []struct {
		ua   string
		want bool
	}{
		{"Mozilla/5.0 (iPhone; CPU iPhone OS 16_0 like Mac OS X)", true},
		{"Mozilla/5.0 (Linux; Android 13; Pixel 7) Mobile Safari", true},
		{"Mozilla/5.0 (Windows NT 10.0; Win64; x64)", false},
		{"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := IsMobileUserAgent(tc.ua); got != tc.want {
			t.Errorf("IsMobileUserAgent(%q) = %v, want %v", tc.ua, got, tc.want)
		}
	}
}

func TestForViewportBreakpoints(t *testing.T) {
	full := ForViewport(1280)
	if !full.ShowVolumeSlider {
		t.Fatal("desktop viewport should keep the volume slider")
	}

	compact := ForViewport(390)
	if compact.ShowVolumeSlider {
		t.Fatal("compact viewport should hide the volume slider")
	}
	if compact.ControlSizePx >= full.ControlSizePx {
		t.Fatalf("compact controls should shrink: %d vs %d", compact.ControlSizePx, full.ControlSizePx)
	}
}
