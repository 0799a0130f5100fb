package player

import "testing"

func TestTransitionTable(t *testing.T) {
	cases := []struct {
		from  State
		event Event
		want  State
	}{
		{StateIdle, EventLoad, StateLoading},
		{StateLoading, EventLoaded, StateReady},
		{StateReady, EventPlay, StatePlaying},
		{StatePlaying, EventPause, StatePaused},
		{StatePaused, EventPlay, StatePlaying},
		{StatePlaying, EventWaiting, StateBuffering},
		{StateBuffering, EventPlaying, StatePlaying},
		{StateBuffering, EventPause, StatePaused},
		{StatePlaying, EventEnded, StateEnded},
		{StateEnded, EventPlay, StatePlaying},
		{StateError, EventLoad, StateLoading},

		// Out-of-order or irrelevant events leave the state unchanged.
		{StateIdle, EventPlay, StateIdle},
		{StateLoading, EventPlay, StateLoading},
		{StateLoading, EventPause, StateLoading},
		{StateReady, EventPause, StateReady},
		{StateReady, EventWaiting, StateReady},
		{StatePaused, EventWaiting, StatePaused},
		{StateEnded, EventEnded, StateEnded},
		{StateError, EventPlay, StateError},
	}

	for _, tc := range cases {
		if got := Transition(tc.from, tc.event); got != tc.want {
			t.Errorf("Transition(%s, %s) = %s, want %s", tc.from, tc.event, got, tc.want)
		}
	}
}

func TestTransitionErrorReachableFromAnywhere(t *testing.T) {
	for _, from := range []State{StateIdle, StateLoading, StateReady, StatePlaying, StatePaused, StateBuffering, StateEnded} {
		if got := Transition(from, EventError); got != StateError {
			t.Errorf("Transition(%s, error) = %s, want error", from, got)
		}
	}
}

func TestTransitionIsIdempotentUnderReplay(t *testing.T) {
	// Replaying the event that produced a state must not move it again.
	s := Transition(StateReady, EventPlay)
	if s != StatePlaying {
		t.Fatalf("setup: %s", s)
	}
	if got := Transition(s, EventPlay); got != StatePlaying {
		t.Fatalf("replayed play event moved state to %s", got)
	}
}
