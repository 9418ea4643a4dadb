package world

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/samdwyer/portalrooms/internal/geom"
	"github.com/samdwyer/portalrooms/internal/hit"
)

// Wall is an interior wall segment in room coordinates.
// Walls compare by value, head and tail in order.
type Wall struct {
	Head mgl32.Vec2
	Tail mgl32.Vec2
}

// NewWall creates a wall from its endpoint coordinates.
func NewWall(headX, headY, tailX, tailY float32) Wall {
	return Wall{
		Head: mgl32.Vec2{headX, headY},
		Tail: mgl32.Vec2{tailX, tailY},
	}
}

// Less orders walls lexicographically on head then tail.
func (w Wall) Less(other Wall) bool {
	a := [4]float32{w.Head.X(), w.Head.Y(), w.Tail.X(), w.Tail.Y()}
	b := [4]float32{other.Head.X(), other.Head.Y(), other.Tail.X(), other.Tail.Y()}
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// Intersects returns true if a ray from pos along dir reaches the wall.
func (w Wall) Intersects(pos, dir mgl32.Vec2) bool {
	return geom.RayIntersectsSegment(w.Head, w.Tail, pos, dir, true)
}

// Distance returns how far the ray travels before touching the wall.
// When pos lies on the wall's line the nearer endpoint counts, or zero if pos
// is between the endpoints.
func (w Wall) Distance(pos, dir mgl32.Vec2) float32 {
	if !geom.AreCollinear(pos, w.Head, w.Tail) {
		return geom.RayToLineDistance(w.Head, w.Tail, pos, dir)
	}

	toHead := w.Head.Sub(pos)
	toTail := w.Tail.Sub(pos)
	if toHead.Dot(toTail) <= 0 {
		return 0
	}
	return min(toHead.Len(), toTail.Len())
}

// TextureIndex returns the distance from head to the point the ray meets.
func (w Wall) TextureIndex(pos, dir mgl32.Vec2) float32 {
	return geom.TextureIndexOnLine(w.Head, w.Tail, pos, dir)
}

// Hit intersects the ray with the wall. It returns the Invalid hit when the
// ray misses or the wall lies behind it.
func (w Wall) Hit(pos, dir mgl32.Vec2) hit.Hit {
	if !w.Intersects(pos, dir) {
		return hit.Hit{}
	}

	distance := w.Distance(pos, dir)
	if distance < 0 || distance == geom.Inf {
		return hit.Hit{}
	}
	return hit.New(distance, hit.Wall, w.TextureIndex(pos, dir))
}
