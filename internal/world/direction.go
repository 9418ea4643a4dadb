// Package world provides the room graph: rooms, their sides and portals,
// interior walls, and the factory that instantiates rooms from templates.
package world

import "fmt"

// Direction names one side of a room.
type Direction int

const (
	// North is the side at y == height.
	North Direction = iota
	// East is the side at x == width.
	East
	// South is the side at y == 0.
	South
	// West is the side at x == 0.
	West
)

// Directions lists every side clockwise from North.
var Directions = [4]Direction{North, East, South, West}

// Opposite returns the side facing d.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Valid returns true if d is one of the four sides.
func (d Direction) Valid() bool {
	return d >= North && d <= West
}

// String returns the lowercase side name.
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}
