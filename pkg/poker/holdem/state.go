package holdem

import (
	"encoding/json"
	"fmt"
)

// State represents the stage of the current hand
type State int

// constants for State
const (
	StateWaiting State = iota
	StatePreflop
	StateFlop
	StateTurn
	StateRiver
	StateShowdown
)

func (s State) String() string {
	switch s {
	case StateWaiting:
		return "waiting"
	case StatePreflop:
		return "preflop"
	case StateFlop:
		return "flop"
	case StateTurn:
		return "turn"
	case StateRiver:
		return "river"
	case StateShowdown:
		return "showdown"
	}

	panic(fmt.Sprintf("unknown state: %d", int(s)))
}

// IsBettingRound returns true if players act during the state
func (s State) IsBettingRound() bool {
	switch s {
	case StatePreflop, StateFlop, StateTurn, StateRiver:
		return true
	}

	return false
}

// next returns the state that follows in a hand
func (s State) next() State {
	switch s {
	case StatePreflop:
		return StateFlop
	case StateFlop:
		return StateTurn
	case StateTurn:
		return StateRiver
	case StateRiver:
		return StateShowdown
	}

	panic(fmt.Sprintf("no next state from %s", s))
}

// visibleCommunityCards is how many community cards are face-up in the state
func (s State) visibleCommunityCards() int {
	switch s {
	case StateFlop:
		return 3
	case StateTurn:
		return 4
	case StateRiver, StateShowdown:
		return 5
	}

	return 0
}

// MarshalJSON encodes JSON
func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}{
		ID:   int(s),
		Name: s.String(),
	})
}
