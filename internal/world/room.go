package world

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/samdwyer/portalrooms/internal/geom"
	"github.com/samdwyer/portalrooms/internal/hit"
)

// RoomID indexes a room inside a Graph.
type RoomID int32

// NoRoom marks a side without a linked neighbor.
const NoRoom RoomID = -1

// RoomConfig holds everything a room is built from.
type RoomConfig struct {
	TemplateID     string
	Width          float32
	Height         float32
	NSPortalWidth  float32
	EWPortalWidth  float32
	NSPortalOffset float32 // distance of the north/south portals from x == 0
	EWPortalOffset float32 // distance of the east/west portals from y == 0
	Walls          []Wall
}

// Room is a rectangular cell with one portal per side.
//
// The origin is the south-west corner and y grows northward. Every side runs
// clockwise from its head corner to its tail corner; the head owns the corner.
// Rooms built from the same template share the template's wall slice.
type Room struct {
	templateID     string
	width          float32
	height         float32
	nsPortalWidth  float32
	ewPortalWidth  float32
	nsPortalOffset float32
	ewPortalOffset float32
	walls          []Wall
	links          [4]RoomID
}

// NewRoom creates an unlinked room.
func NewRoom(cfg RoomConfig) Room {
	return Room{
		templateID:     cfg.TemplateID,
		width:          cfg.Width,
		height:         cfg.Height,
		nsPortalWidth:  cfg.NSPortalWidth,
		ewPortalWidth:  cfg.EWPortalWidth,
		nsPortalOffset: cfg.NSPortalOffset,
		ewPortalOffset: cfg.EWPortalOffset,
		walls:          cfg.Walls,
		links:          [4]RoomID{NoRoom, NoRoom, NoRoom, NoRoom},
	}
}

// TemplateID returns the id of the template the room was built from.
func (r *Room) TemplateID() string { return r.templateID }

// Width returns the room extent along x.
func (r *Room) Width() float32 { return r.width }

// Height returns the room extent along y.
func (r *Room) Height() float32 { return r.height }

// NSPortalWidth returns the width of the north and south portals.
func (r *Room) NSPortalWidth() float32 { return r.nsPortalWidth }

// EWPortalWidth returns the width of the east and west portals.
func (r *Room) EWPortalWidth() float32 { return r.ewPortalWidth }

// NSPortalBegin returns the x coordinate where the north and south portals start.
func (r *Room) NSPortalBegin() float32 { return r.nsPortalOffset }

// NSPortalEnd returns the x coordinate where the north and south portals end.
func (r *Room) NSPortalEnd() float32 { return r.nsPortalOffset + r.nsPortalWidth }

// EWPortalBegin returns the y coordinate where the east and west portals start.
func (r *Room) EWPortalBegin() float32 { return r.ewPortalOffset }

// EWPortalEnd returns the y coordinate where the east and west portals end.
func (r *Room) EWPortalEnd() float32 { return r.ewPortalOffset + r.ewPortalWidth }

// Walls returns the interior walls. The slice is shared and must not be modified.
func (r *Room) Walls() []Wall { return r.walls }

// WallCount returns the number of interior walls.
func (r *Room) WallCount() int { return len(r.walls) }

// Link returns the neighbor on side d, or NoRoom.
func (r *Room) Link(d Direction) RoomID {
	if !d.Valid() {
		return NoRoom
	}
	return r.links[d]
}

// Contains returns true if pos lies inside the room or on its boundary.
func (r *Room) Contains(pos mgl32.Vec2) bool {
	inX := (pos.X() >= 0 || geom.FloatApprox(pos.X(), 0)) &&
		(pos.X() <= r.width || geom.FloatApprox(pos.X(), r.width))
	inY := (pos.Y() >= 0 || geom.FloatApprox(pos.Y(), 0)) &&
		(pos.Y() <= r.height || geom.FloatApprox(pos.Y(), r.height))
	return inX && inY
}

// SideSegment returns the head and tail of side d.
func (r *Room) SideSegment(d Direction) (head, tail mgl32.Vec2) {
	w, h := r.width, r.height
	switch d {
	case North:
		return mgl32.Vec2{w, h}, mgl32.Vec2{0, h}
	case East:
		return mgl32.Vec2{w, 0}, mgl32.Vec2{w, h}
	case South:
		return mgl32.Vec2{0, 0}, mgl32.Vec2{w, 0}
	default:
		return mgl32.Vec2{0, h}, mgl32.Vec2{0, 0}
	}
}

// PortalSegment returns the head and tail of the portal on side d, oriented
// the same way as the side.
func (r *Room) PortalSegment(d Direction) (head, tail mgl32.Vec2) {
	w, h := r.width, r.height
	switch d {
	case North:
		return mgl32.Vec2{r.NSPortalEnd(), h}, mgl32.Vec2{r.NSPortalBegin(), h}
	case East:
		return mgl32.Vec2{w, r.EWPortalBegin()}, mgl32.Vec2{w, r.EWPortalEnd()}
	case South:
		return mgl32.Vec2{r.NSPortalBegin(), 0}, mgl32.Vec2{r.NSPortalEnd(), 0}
	default:
		return mgl32.Vec2{0, r.EWPortalEnd()}, mgl32.Vec2{0, r.EWPortalBegin()}
	}
}

// SideHit returns the side a ray from pos along dir leaves the room through.
//
// It returns false for a zero dir, a pos outside the room, and, unless
// pointInclusive is set, a ray leaving straight through the boundary it starts
// on. With pointInclusive a pos on the boundary resolves to the side it
// touches; at a corner the side whose head is that corner wins.
func (r *Room) SideHit(pos, dir mgl32.Vec2, pointInclusive bool) (Direction, bool) {
	if geom.IsZero(dir) || !r.Contains(pos) {
		return North, false
	}

	onWest := geom.FloatApprox(pos.X(), 0)
	onEast := geom.FloatApprox(pos.X(), r.width)
	onSouth := geom.FloatApprox(pos.Y(), 0)
	onNorth := geom.FloatApprox(pos.Y(), r.height)

	if onWest || onEast || onSouth || onNorth {
		if pointInclusive {
			return touchedSide(onNorth, onEast, onSouth, onWest), true
		}

		flatX := geom.FloatApprox(dir.X(), 0)
		flatY := geom.FloatApprox(dir.Y(), 0)
		if (onNorth && !flatY && dir.Y() > 0) ||
			(onSouth && !flatY && dir.Y() < 0) ||
			(onEast && !flatX && dir.X() > 0) ||
			(onWest && !flatX && dir.X() < 0) {
			return North, false
		}

		switch {
		case onNorth && flatY:
			return North, true
		case onSouth && flatY:
			return South, true
		case onEast && flatX:
			return East, true
		case onWest && flatX:
			return West, true
		}
	}

	return r.slopeSide(pos, dir), true
}

// touchedSide picks the side for a boundary point, giving corners to the side
// whose head they are.
func touchedSide(onNorth, onEast, onSouth, onWest bool) Direction {
	switch {
	case onNorth && onEast:
		return North
	case onSouth && onEast:
		return East
	case onSouth && onWest:
		return South
	case onNorth && onWest:
		return West
	case onNorth:
		return North
	case onEast:
		return East
	case onSouth:
		return South
	default:
		return West
	}
}

// slopeSide resolves the exit side by comparing dir with the vector from pos
// to the corner of dir's quadrant. A ray aimed exactly at a corner exits
// through the side whose head is that corner.
func (r *Room) slopeSide(pos, dir mgl32.Vec2) Direction {
	dx, dy := dir.X(), dir.Y()
	flatX := geom.FloatApprox(dx, 0)
	flatY := geom.FloatApprox(dy, 0)

	switch {
	case flatX && dy > 0:
		return North
	case flatX:
		return South
	case flatY && dx > 0:
		return East
	case flatY:
		return West
	}

	var corner mgl32.Vec2
	var ccw, cw Direction // ccw wins when the corner lies counter-clockwise of dir
	switch {
	case dx > 0 && dy > 0:
		corner, ccw, cw = mgl32.Vec2{r.width, r.height}, East, North
	case dx < 0 && dy > 0:
		corner, ccw, cw = mgl32.Vec2{0, r.height}, North, West
	case dx < 0 && dy < 0:
		corner, ccw, cw = mgl32.Vec2{0, 0}, West, South
	default:
		corner, ccw, cw = mgl32.Vec2{r.width, 0}, South, East
	}

	c := geom.Cross(dir, corner.Sub(pos))
	if c > 0 && !geom.FloatApprox(c, 0) {
		return ccw
	}
	return cw
}

// RoomWallHitDistance returns the distance along the ray to the line of side d.
func (r *Room) RoomWallHitDistance(d Direction, pos, dir mgl32.Vec2) float32 {
	head, tail := r.SideSegment(d)
	return geom.RayToLineDistance(head, tail, pos, dir)
}

// RayHitsPortal returns true if the ray passes through the portal on side d.
func (r *Room) RayHitsPortal(d Direction, pos, dir mgl32.Vec2) bool {
	head, tail := r.PortalSegment(d)
	return geom.RayIntersectsSegment(head, tail, pos, dir, false)
}

// WallTextureIndex returns the texture offset of the ray on side d, measured
// from the head of the portal when ofPortal is set and of the full side
// otherwise.
func (r *Room) WallTextureIndex(d Direction, ofPortal bool, pos, dir mgl32.Vec2) float32 {
	head, tail := r.SideSegment(d)
	if ofPortal {
		head, tail = r.PortalSegment(d)
	}
	return geom.TextureIndexOnLine(head, tail, pos, dir)
}

// PrimaryWallHit returns where the ray leaves the room, as either a Portal
// or a RoomWall hit. Rays whose exit side cannot be resolved give the Invalid
// hit.
func (r *Room) PrimaryWallHit(pos, dir mgl32.Vec2, pointInclusive bool) hit.Hit {
	_, h := r.primaryWallHit(pos, dir, pointInclusive)
	return h
}

func (r *Room) primaryWallHit(pos, dir mgl32.Vec2, pointInclusive bool) (Direction, hit.Hit) {
	side, ok := r.SideHit(pos, dir, pointInclusive)
	if !ok {
		return side, hit.Hit{}
	}

	distance := r.RoomWallHitDistance(side, pos, dir)
	if distance < 0 || distance == geom.Inf {
		return side, hit.Hit{}
	}

	if r.RayHitsPortal(side, pos, dir) {
		return side, hit.New(distance, hit.Portal, r.WallTextureIndex(side, true, pos, dir))
	}
	return side, hit.New(distance, hit.RoomWall, r.WallTextureIndex(side, false, pos, dir))
}

// PortalEntry maps a point on the portal of side d, given by its texture
// offset, onto the matching portal of neighbor, expressed in the neighbor's
// coordinates.
func (r *Room) PortalEntry(d Direction, texture float32, neighbor *Room) mgl32.Vec2 {
	switch d {
	case North:
		return mgl32.Vec2{neighbor.NSPortalEnd() - texture, 0}
	case South:
		return mgl32.Vec2{neighbor.NSPortalBegin() + texture, neighbor.height}
	case East:
		return mgl32.Vec2{0, neighbor.EWPortalBegin() + texture}
	default:
		return mgl32.Vec2{neighbor.width, neighbor.EWPortalEnd() - texture}
	}
}

// Rebase converts pos, which has crossed side d, into the coordinates of the
// neighbor on that side.
func (r *Room) Rebase(d Direction, pos mgl32.Vec2, neighbor *Room) mgl32.Vec2 {
	switch d {
	case North:
		return mgl32.Vec2{pos.X(), pos.Y() - neighbor.height}
	case South:
		return mgl32.Vec2{pos.X(), pos.Y() + neighbor.height}
	case East:
		return mgl32.Vec2{pos.X() - neighbor.width, pos.Y()}
	default:
		return mgl32.Vec2{pos.X() + neighbor.width, pos.Y()}
	}
}
