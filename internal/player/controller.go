package player

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/playslug/backend/internal/metrics"
)

// Element is the slice of a native media element the controller drives.
// A thin adapter binds a real element's callbacks to the On* methods below.
type Element interface {
	Play(ctx context.Context) error
	Pause()
	SetCurrentTime(seconds float64)
	SetVolume(v float64)
	SetMuted(muted bool)
}

// DefaultReadyTimeout bounds how long the controller waits for the element
// to confirm readiness before assuming it. Some backends never fire a
// definitive ready signal and would otherwise leave the spinner up forever.
const DefaultReadyTimeout = 3 * time.Second

// Config tunes a controller. Zero values fall back to sane defaults.
type Config struct {
	Kind         string // "audio" or "video", used in error messages
	ReadyTimeout time.Duration
	Logger       *slog.Logger
}

// Controller owns a single media element for its lifetime and tracks
// position, volume, mute and loading state around it. All methods are safe
// for concurrent use; state updates go through the pure Transition function.
type Controller struct {
	mu sync.Mutex

	el     Element
	kind   string
	logger *slog.Logger

	state      State
	position   float64
	duration   float64
	volume     float64
	lastVolume float64
	muted      bool
	errMsg     string

	readyTimeout time.Duration
	readyTimer   *time.Timer
	afterFunc    func(time.Duration, func()) *time.Timer

	closed bool
}

// NewController constructs an unmounted controller.
func NewController(cfg Config) *Controller {
	if cfg.Kind == "" {
		cfg.Kind = "audio"
	}
	if cfg.ReadyTimeout <= 0 {
		cfg.ReadyTimeout = DefaultReadyTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &Controller{
		kind:         cfg.Kind,
		logger:       cfg.Logger,
		state:        StateIdle,
		volume:       1,
		lastVolume:   1,
		readyTimeout: cfg.ReadyTimeout,
		afterFunc:    time.AfterFunc,
	}
}

// Mount binds the controller to its element and a source, entering Loading.
// The ready fallback timer starts here.
func (c *Controller) Mount(el Element, duration float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.el = el
	if duration > 0 {
		c.duration = duration
	}
	c.transitionLocked(EventLoad)

	c.readyTimer = c.afterFunc(c.readyTimeout, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.state == StateLoading {
			c.logger.Warn("media never confirmed readiness, assuming ready", "kind", c.kind)
			c.transitionLocked(EventLoaded)
		}
	})
}

// Close unbinds the element and stops all timers. The adapter must also
// remove its element listeners; after Close the controller ignores events.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.stopTimersLocked()
	c.el = nil
}

func (c *Controller) stopTimersLocked() {
	if c.readyTimer != nil {
		c.readyTimer.Stop()
		c.readyTimer = nil
	}
}

// State returns the current playback state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Position returns the current playback position in seconds.
func (c *Controller) Position() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

// Duration returns the known media duration in seconds, 0 when unknown.
func (c *Controller) Duration() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.duration
}

// Volume returns the current volume in [0,1].
func (c *Controller) Volume() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.volume
}

// Muted reports whether the controller is muted.
func (c *Controller) Muted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.muted
}

// Err returns the recorded human-readable error message, if any.
func (c *Controller) Err() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

// TogglePlayPause flips between Playing and Paused. It is a no-op while a
// load or rebuffer is in flight.
func (c *Controller) TogglePlayPause(ctx context.Context) {
	c.mu.Lock()

	switch c.state {
	case StateLoading, StateBuffering:
		c.mu.Unlock()
		return
	case StatePlaying:
		el := c.el
		c.transitionLocked(EventPause)
		c.mu.Unlock()
		if el != nil {
			el.Pause()
		}
		return
	case StateReady, StatePaused, StateEnded:
		el := c.el
		c.mu.Unlock()
		if el == nil {
			return
		}
		if err := el.Play(ctx); err != nil {
			c.fail("Failed to play "+c.kind, err)
			return
		}
		c.mu.Lock()
		c.transitionLocked(EventPlay)
		c.mu.Unlock()
		return
	default:
		c.mu.Unlock()
	}
}

// Seek moves the playback position, clamped to [0, duration]. The displayed
// position updates immediately while the element catches up.
func (c *Controller) Seek(seconds float64) {
	c.mu.Lock()
	if seconds < 0 {
		seconds = 0
	}
	if c.duration > 0 && seconds > c.duration {
		seconds = c.duration
	}
	c.position = seconds
	el := c.el
	c.mu.Unlock()

	if el != nil {
		el.SetCurrentTime(seconds)
	}
}

// SetVolume sets the volume in [0,1]. Raising it above zero clears mute.
func (c *Controller) SetVolume(v float64) {
	c.mu.Lock()
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	c.volume = v
	if v > 0 {
		c.lastVolume = v
		c.muted = false
	}
	el := c.el
	muted := c.muted
	c.mu.Unlock()

	if el != nil {
		el.SetVolume(v)
		el.SetMuted(muted)
	}
}

// ToggleMute mutes, or restores the last non-zero volume.
func (c *Controller) ToggleMute() {
	c.mu.Lock()
	if c.muted {
		c.muted = false
		c.volume = c.lastVolume
	} else {
		if c.volume > 0 {
			c.lastVolume = c.volume
		}
		c.muted = true
	}
	el := c.el
	muted := c.muted
	volume := c.volume
	c.mu.Unlock()

	if el != nil {
		el.SetMuted(muted)
		el.SetVolume(volume)
	}
}

// Restart resets the position to zero without changing play/pause state.
func (c *Controller) Restart() {
	c.mu.Lock()
	c.position = 0
	el := c.el
	c.mu.Unlock()

	if el != nil {
		el.SetCurrentTime(0)
	}
}

// --- element event callbacks (driven by the adapter layer) ---

// OnLoaded records the element's reported duration and enters Ready.
func (c *Controller) OnLoaded(duration float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if duration > 0 {
		c.duration = duration
	}
	c.stopTimersLocked()
	c.transitionLocked(EventLoaded)
}

// OnTimeUpdate tracks the element's playback position.
func (c *Controller) OnTimeUpdate(position float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.position = position
}

// OnPlay reflects playback started by the element.
func (c *Controller) OnPlay() { c.dispatch(EventPlay) }

// OnPause reflects a pause raised by the element, including external ones.
func (c *Controller) OnPause() { c.dispatch(EventPause) }

// OnWaiting reflects buffer starvation.
func (c *Controller) OnWaiting() { c.dispatch(EventWaiting) }

// OnPlaying reflects resumption after starvation.
func (c *Controller) OnPlaying() { c.dispatch(EventPlaying) }

// OnEnded reflects natural end of playback. The position stays at the end
// until an explicit restart or seek.
func (c *Controller) OnEnded() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if c.duration > 0 {
		c.position = c.duration
	}
	c.transitionLocked(EventEnded)
}

// OnError records a fatal element failure.
func (c *Controller) OnError(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	if message == "" {
		message = "Failed to load " + c.kind
	}
	c.errMsg = message
	c.stopTimersLocked()
	c.transitionLocked(EventError)
}

func (c *Controller) dispatch(e Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.transitionLocked(e)
}

func (c *Controller) fail(message string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errMsg = message
	c.logger.Error("playback failure", "kind", c.kind, "message", message, "error", err)
	c.transitionLocked(EventError)
}

func (c *Controller) transitionLocked(e Event) {
	next := Transition(c.state, e)
	if next == c.state {
		return
	}
	metrics.PlayerStateTransitionsTotal.WithLabelValues(c.state.String(), next.String()).Inc()
	c.logger.Debug("player state transition",
		"kind", c.kind,
		"from", c.state.String(),
		"to", next.String(),
		"event", e.String(),
	)
	c.state = next
}
