// Package hit holds ray intersection records and the distance-ordered
// packages that collect them along a single ray.
package hit

import (
	"github.com/samdwyer/portalrooms/internal/geom"
)

// Kind is the surface a ray intersected.
// Larger values win when two hits share a distance.
type Kind int

const (
	// Invalid represents no hit. It is the zero value and never stored.
	Invalid Kind = iota
	// Void is empty space beyond the reach of the ray.
	Void
	// Portal is the pass-through part of a room side.
	Portal
	// Wall is an interior wall segment.
	Wall
	// RoomWall is the solid part of a room side.
	RoomWall
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case Invalid:
		return "invalid"
	case Void:
		return "void"
	case Portal:
		return "portal"
	case Wall:
		return "wall"
	case RoomWall:
		return "room_wall"
	default:
		return "unknown"
	}
}

// Outranks reports whether k has strictly higher priority than other.
func (k Kind) Outranks(other Kind) bool {
	return k > other
}

// Hit is a single ray/surface intersection.
// The zero Hit is the "no hit" value.
type Hit struct {
	Distance      float32
	Kind          Kind
	TextureOffset float32 // distance from the surface head to the intersection
}

// New creates a hit of the given kind.
func New(distance float32, kind Kind, textureOffset float32) Hit {
	return Hit{Distance: distance, Kind: kind, TextureOffset: textureOffset}
}

// IsNoHit returns true for the Invalid hit.
func (h Hit) IsNoHit() bool {
	return h.Kind == Invalid
}

// WithinDistance returns true if the hit lies in [0, max].
func (h Hit) WithinDistance(max float32) bool {
	return h.Distance >= 0 && h.Distance <= max
}

// Shifted returns a copy of h moved delta further along the ray.
func (h Hit) Shifted(delta float32) Hit {
	h.Distance += delta
	return h
}

// Scaled returns a copy of h with its distance multiplied by factor.
func (h Hit) Scaled(factor float32) Hit {
	h.Distance *= factor
	return h
}

// Equal compares kinds exactly and distances and offsets approximately.
func (h Hit) Equal(other Hit) bool {
	if h.Kind != other.Kind {
		return false
	}
	return geom.FloatApprox(h.Distance, other.Distance) &&
		geom.FloatApprox(h.TextureOffset, other.TextureOffset)
}
