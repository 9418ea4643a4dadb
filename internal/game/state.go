// Package game runs the terminal explorer: input, view mode and rendering.
package game

// State is the current view mode.
type State int

const (
	// StateFirstPerson shows the ray-cast view through the viewer's eyes.
	StateFirstPerson State = iota
	// StateOverhead shows a map of the current room.
	StateOverhead
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateFirstPerson:
		return "first_person"
	case StateOverhead:
		return "overhead"
	default:
		return "unknown"
	}
}

// Toggle switches between the two view modes.
func (s State) Toggle() State {
	if s == StateFirstPerson {
		return StateOverhead
	}
	return StateFirstPerson
}
