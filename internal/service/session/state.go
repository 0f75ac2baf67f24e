package session

import (
	"errors"
	"fmt"
)

// State is the onboarding state of an installation.
type State string

const (
	NotOnboarded State = "NOT_ONBOARDED"
	Onboarded    State = "ONBOARDED"
)

// Event triggers a state change.
type Event string

const (
	EventCompleteOnboarding Event = "complete_onboarding"
	EventLogout             Event = "logout"
)

// ErrInvalidTransition is returned when an event is not allowed in the current state.
var ErrInvalidTransition = errors.New("invalid session transition")

// transition is a single allowed edge of the state machine.
type transition struct {
	From  State
	Event Event
	To    State
}

// transitions is the complete state machine. There is no terminal state;
// an installation cycles between the two states.
var transitions = []transition{
	{From: NotOnboarded, Event: EventCompleteOnboarding, To: Onboarded},
	{From: Onboarded, Event: EventLogout, To: NotOnboarded},
}

type transitionKey struct {
	From  State
	Event Event
}

var transitionMap = func() map[transitionKey]State {
	m := make(map[transitionKey]State, len(transitions))
	for _, t := range transitions {
		m[transitionKey{t.From, t.Event}] = t.To
	}
	return m
}()

// Next returns the state reached from `from` on event.
func Next(from State, event Event) (State, error) {
	to, ok := transitionMap[transitionKey{from, event}]
	if !ok {
		return from, fmt.Errorf("%w: %s does not accept %s", ErrInvalidTransition, from, event)
	}
	return to, nil
}

// Events lists the events accepted in state s, in table order.
func Events(s State) []Event {
	var events []Event
	for _, t := range transitions {
		if t.From == s {
			events = append(events, t.Event)
		}
	}
	return events
}
