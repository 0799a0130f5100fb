package player

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/playslug/backend/internal/metrics"
)

// Overlay identifies what the video surface is currently showing on top of
// the picture.
type Overlay int

const (
	OverlayNone Overlay = iota
	// OverlayGreeting is the transient sender greeting card.
	OverlayGreeting
	// OverlayTapToPlay is the recovery surface shown when the platform
	// rejects an autoplay attempt. It is not an error state.
	OverlayTapToPlay
)

// DefaultGreetingDuration bounds how long the sender greeting stays up when
// playback does not start earlier.
const DefaultGreetingDuration = 4 * time.Second

// DefaultAutoUnmuteDelay is how long a successful muted autoplay stays muted
// on desktop before the controller restores sound.
const DefaultAutoUnmuteDelay = time.Second

// VideoConfig tunes the video controller on top of the shared Config.
type VideoConfig struct {
	ReadyTimeout     time.Duration
	GreetingDuration time.Duration
	AutoUnmuteDelay  time.Duration
	// Mobile is computed once per mount from the hosting environment's
	// user-agent string. It routes presentation decisions only.
	Mobile bool
	// StartMuted forces muted autoplay even off mobile.
	StartMuted   bool
	AutoUnmute   bool
	Presentation Presentation
	Logger       *slog.Logger
}

// VideoController adds buffering-aware autoplay handling and overlay timing
// on top of the shared transport controls.
type VideoController struct {
	*Controller

	mu sync.Mutex

	mobile       bool
	startMuted   bool
	autoUnmute   bool
	unmuteDelay  time.Duration
	greetingFor  time.Duration
	presentation Presentation

	overlay       Overlay
	greetingTimer *time.Timer
	unmuteTimer   *time.Timer
}

// NewVideoController constructs an unmounted video controller.
func NewVideoController(cfg VideoConfig) *VideoController {
	if cfg.GreetingDuration <= 0 {
		cfg.GreetingDuration = DefaultGreetingDuration
	}
	if cfg.AutoUnmuteDelay <= 0 {
		cfg.AutoUnmuteDelay = DefaultAutoUnmuteDelay
	}
	if cfg.Presentation == (Presentation{}) {
		cfg.Presentation = DefaultPresentation()
	}

	return &VideoController{
		Controller: NewController(Config{
			Kind:         "video",
			ReadyTimeout: cfg.ReadyTimeout,
			Logger:       cfg.Logger,
		}),
		mobile:       cfg.Mobile,
		startMuted:   cfg.StartMuted,
		autoUnmute:   cfg.AutoUnmute && !cfg.Mobile,
		unmuteDelay:  cfg.AutoUnmuteDelay,
		greetingFor:  cfg.GreetingDuration,
		presentation: cfg.Presentation,
	}
}

// Mobile reports the per-mount mobile decision.
func (v *VideoController) Mobile() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.mobile
}

// Presentation returns the breakpoint-driven sizing for this mount.
func (v *VideoController) Presentation() Presentation {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.presentation
}

// Overlay returns what is currently layered over the picture.
func (v *VideoController) Overlay() Overlay {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.overlay
}

// ShowGreeting raises the sender greeting overlay. It is dismissed after the
// configured duration or as soon as playback starts, whichever comes first.
func (v *VideoController) ShowGreeting() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.overlay = OverlayGreeting
	if v.greetingTimer != nil {
		v.greetingTimer.Stop()
	}
	v.greetingTimer = v.afterFunc(v.greetingFor, func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		if v.overlay == OverlayGreeting {
			v.overlay = OverlayNone
		}
	})
}

// Autoplay attempts to start playback without a user gesture. On mobile the
// attempt always starts muted, since unmuted autoplay is blocked there. A
// platform rejection surfaces the tap-to-play overlay instead of an error.
func (v *VideoController) Autoplay(ctx context.Context) {
	v.Controller.mu.Lock()
	el := v.Controller.el
	v.Controller.mu.Unlock()
	if el == nil {
		return
	}

	v.mu.Lock()
	startMuted := v.mobile || v.startMuted
	v.mu.Unlock()
	if startMuted {
		v.Controller.mu.Lock()
		v.Controller.muted = true
		v.Controller.mu.Unlock()
		el.SetMuted(true)
	}

	if err := el.Play(ctx); err != nil {
		metrics.AutoplayAttemptsTotal.WithLabelValues("blocked").Inc()
		v.logger.Info("autoplay rejected by platform, showing tap-to-play", "error", err)
		v.mu.Lock()
		v.overlay = OverlayTapToPlay
		v.mu.Unlock()
		return
	}

	if startMuted {
		metrics.AutoplayAttemptsTotal.WithLabelValues("muted").Inc()
	} else {
		metrics.AutoplayAttemptsTotal.WithLabelValues("started").Inc()
	}

	v.Controller.mu.Lock()
	v.Controller.transitionLocked(EventPlay)
	v.Controller.mu.Unlock()
	v.onPlaybackStarted()

	v.mu.Lock()
	autoUnmute := v.autoUnmute && startMuted
	delay := v.unmuteDelay
	v.mu.Unlock()

	if autoUnmute {
		v.mu.Lock()
		v.unmuteTimer = v.afterFunc(delay, func() {
			v.Controller.mu.Lock()
			v.Controller.muted = false
			volume := v.Controller.volume
			el := v.Controller.el
			v.Controller.mu.Unlock()
			if el != nil {
				el.SetMuted(false)
				el.SetVolume(volume)
			}
		})
		v.mu.Unlock()
	}
}

// TapToPlay is the user gesture handler for the blocked-autoplay overlay.
func (v *VideoController) TapToPlay(ctx context.Context) {
	v.mu.Lock()
	if v.overlay == OverlayTapToPlay {
		v.overlay = OverlayNone
	}
	v.mu.Unlock()

	v.TogglePlayPause(ctx)
	if v.State() == StatePlaying {
		v.onPlaybackStarted()
	}
}

// Stop pauses and resets the position to zero, landing in Paused.
func (v *VideoController) Stop() {
	v.Controller.mu.Lock()
	el := v.Controller.el
	v.Controller.position = 0
	v.Controller.transitionLocked(EventPause)
	v.Controller.mu.Unlock()

	if el != nil {
		el.Pause()
		el.SetCurrentTime(0)
	}
}

// OnPlay dismisses pending overlays in addition to the base bookkeeping.
func (v *VideoController) OnPlay() {
	v.Controller.OnPlay()
	v.onPlaybackStarted()
}

// Close stops video timers before releasing the element.
func (v *VideoController) Close() {
	v.mu.Lock()
	if v.greetingTimer != nil {
		v.greetingTimer.Stop()
		v.greetingTimer = nil
	}
	if v.unmuteTimer != nil {
		v.unmuteTimer.Stop()
		v.unmuteTimer = nil
	}
	v.mu.Unlock()

	v.Controller.Close()
}

func (v *VideoController) onPlaybackStarted() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.overlay == OverlayGreeting {
		v.overlay = OverlayNone
	}
	if v.greetingTimer != nil {
		v.greetingTimer.Stop()
		v.greetingTimer = nil
	}
}
