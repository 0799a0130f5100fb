package player

import "fmt"

// State is the playback state of a media controller.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StatePlaying
	StatePaused
	StateBuffering
	StateEnded
	StateError
)

var stateNames = [...]string{
	"idle", "loading", "ready", "playing",
	"paused", "buffering", "ended", "error",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("unknown(%d)", int(s))
}

// Event is an abstract media event. The adapter layer translates real media
// element callbacks into these values.
type Event int

const (
	// EventLoad fires when the controller binds to a source URL.
	EventLoad Event = iota
	// EventLoaded fires when enough data is available to play, or when the
	// ready fallback timer gives up waiting for a definitive signal.
	EventLoaded
	// EventPlay fires when playback starts (user action or autoplay).
	EventPlay
	// EventPause fires when playback is paused, by the user or externally.
	EventPause
	// EventWaiting fires when the element signals buffer starvation.
	EventWaiting
	// EventPlaying fires when the element resumes after starvation.
	EventPlaying
	// EventEnded fires when the position reaches the end naturally.
	EventEnded
	// EventError fires on a fatal load or playback failure.
	EventError
)

var eventNames = [...]string{
	"load", "loaded", "play", "pause",
	"waiting", "playing", "ended", "error",
}

func (e Event) String() string {
	if int(e) < len(eventNames) {
		return eventNames[e]
	}
	return fmt.Sprintf("unknown(%d)", int(e))
}

// Transition is the pure state transition function. Unknown combinations
// leave the state unchanged, which keeps updates idempotent when element
// events and user operations arrive out of order.
func Transition(s State, e Event) State {
	if e == EventError {
		return StateError
	}

	switch s {
	case StateIdle:
		if e == EventLoad {
			return StateLoading
		}
	case StateLoading:
		if e == EventLoaded {
			return StateReady
		}
	case StateReady:
		if e == EventPlay || e == EventPlaying {
			return StatePlaying
		}
	case StatePlaying:
		switch e {
		case EventPause:
			return StatePaused
		case EventWaiting:
			return StateBuffering
		case EventEnded:
			return StateEnded
		}
	case StatePaused:
		if e == EventPlay || e == EventPlaying {
			return StatePlaying
		}
	case StateBuffering:
		switch e {
		case EventPlaying:
			return StatePlaying
		case EventPause:
			return StatePaused
		}
	case StateEnded:
		if e == EventPlay {
			return StatePlaying
		}
	case StateError:
		// A fresh source is the only way out.
		if e == EventLoad {
			return StateLoading
		}
	}

	return s
}
