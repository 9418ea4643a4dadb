// Package entity provides the viewer that moves through the room graph.
package entity

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/samdwyer/portalrooms/internal/geom"
	"github.com/samdwyer/portalrooms/internal/world"
)

// Viewer is a point of view inside one room of the graph.
type Viewer struct {
	Room     world.RoomID
	Position mgl32.Vec2 // in the coordinates of Room
	Facing   mgl32.Vec2 // unit length
}

// NewViewer creates a viewer in room facing east.
func NewViewer(room world.RoomID, pos mgl32.Vec2) *Viewer {
	return &Viewer{
		Room:     room,
		Position: pos,
		Facing:   mgl32.Vec2{1, 0},
	}
}

// Move translates the viewer by delta without changing rooms.
func (v *Viewer) Move(delta mgl32.Vec2) {
	v.Position = v.Position.Add(delta)
}

// Rotate turns the viewer by the angle with the given cosine and sine.
// A positive sine turns clockwise.
func (v *Viewer) Rotate(cos, sin float32) {
	v.Facing = geom.FastRotate(v.Facing, cos, sin)
	if !geom.IsUnitVector(v.Facing) && !geom.IsZero(v.Facing) {
		v.Facing = v.Facing.Normalize()
	}
}

// Enter moves the viewer into room at pos.
func (v *Viewer) Enter(room world.RoomID, pos mgl32.Vec2) {
	v.Room = room
	v.Position = pos
}
