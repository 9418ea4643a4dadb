package world

import (
	"fmt"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"

	"github.com/samdwyer/portalrooms/internal/hit"
	"github.com/samdwyer/portalrooms/internal/logger"
)

// MaxPortalDepth bounds how many portals a single ray may pass through.
const MaxPortalDepth = 256

// Graph owns every room of a session and the links between them.
//
// Rooms are addressed by RoomID and never removed. Neighbors are generated
// lazily from the factory by EnsureNeighbor. A Graph is not safe for
// concurrent use.
type Graph struct {
	rooms   []Room
	factory *Factory
	rng     *rand.Rand
	log     *logrus.Entry
}

// NewGraph creates an empty graph that generates rooms with factory, picking
// templates with rng.
func NewGraph(factory *Factory, rng *rand.Rand) *Graph {
	return &Graph{
		rooms:   make([]Room, 0, 16),
		factory: factory,
		rng:     rng,
		log:     logger.Log.WithFields(logrus.Fields{"component": "room_graph"}),
	}
}

// Factory returns the factory used for new rooms.
func (g *Graph) Factory() *Factory { return g.factory }

// Len returns the number of rooms.
func (g *Graph) Len() int { return len(g.rooms) }

// Room returns the room with the given id, or nil if there is none.
// The pointer is invalidated when the graph grows.
func (g *Graph) Room(id RoomID) *Room {
	if id < 0 || int(id) >= len(g.rooms) {
		return nil
	}
	return &g.rooms[id]
}

// Add appends an unlinked room and returns its id.
func (g *Graph) Add(room Room) RoomID {
	room.links = [4]RoomID{NoRoom, NoRoom, NoRoom, NoRoom}
	g.rooms = append(g.rooms, room)
	return RoomID(len(g.rooms) - 1)
}

// Spawn adds a room built from template id.
func (g *Graph) Spawn(templateID string) (RoomID, error) {
	room, ok := g.factory.GenerateRoom(templateID)
	if !ok {
		return NoRoom, fmt.Errorf("%w: %q", ErrUnknownTemplate, templateID)
	}
	id := g.Add(room)
	g.log.WithFields(logrus.Fields{"room": id, "template": templateID}).Debug("room spawned")
	return id, nil
}

// Neighbor returns the room linked to id on side d without generating one.
func (g *Graph) Neighbor(id RoomID, d Direction) (RoomID, bool) {
	room := g.Room(id)
	if room == nil {
		return NoRoom, false
	}
	next := room.Link(d)
	return next, next != NoRoom
}

// EnsureNeighbor returns the room linked to id on side d, generating a random
// room and linking it both ways if the side is still open.
func (g *Graph) EnsureNeighbor(id RoomID, d Direction) (RoomID, error) {
	if g.Room(id) == nil {
		return NoRoom, fmt.Errorf("%w: %d", ErrUnknownRoom, id)
	}
	if !d.Valid() {
		return NoRoom, fmt.Errorf("%w: %v", ErrInvalidDirection, d)
	}
	if next, ok := g.Neighbor(id, d); ok {
		return next, nil
	}

	room, err := g.factory.GenerateRandomRoom(g.rng)
	if err != nil {
		return NoRoom, fmt.Errorf("generate neighbor: %w", err)
	}
	next := g.Add(room)
	g.Link(id, d, next)

	g.log.WithFields(logrus.Fields{
		"room":     id,
		"side":     d,
		"neighbor": next,
		"template": room.templateID,
	}).Debug("neighbor generated")
	return next, nil
}

// Link connects side d of a to the opposite side of b. It refuses, returning
// false, when either side is already linked.
func (g *Graph) Link(a RoomID, d Direction, b RoomID) bool {
	ra, rb := g.Room(a), g.Room(b)
	if ra == nil || rb == nil || !d.Valid() {
		return false
	}
	back := d.Opposite()
	if ra.links[d] != NoRoom || rb.links[back] != NoRoom {
		return false
	}
	ra.links[d] = b
	rb.links[back] = a
	return true
}

// ConnectedWith returns true if b is linked to side d of a.
func (g *Graph) ConnectedWith(a, b RoomID, d Direction) bool {
	next, ok := g.Neighbor(a, d)
	return ok && next == b
}

// CheckReciprocity verifies that every link has a matching link back.
func (g *Graph) CheckReciprocity() error {
	for i := range g.rooms {
		id := RoomID(i)
		for _, d := range Directions {
			next := g.rooms[i].links[d]
			if next == NoRoom {
				continue
			}
			if !g.ConnectedWith(next, id, d.Opposite()) {
				return fmt.Errorf("room %d links %v to room %d, which does not link back", id, d, next)
			}
		}
	}
	return nil
}

// Visible casts a ray from pos along dir in room id and collects every hit
// within maxDistance, following portals into neighboring rooms.
//
// With pointInclusive set, a ray starting on the room boundary also reports
// the side it starts on.
func (g *Graph) Visible(id RoomID, pos, dir mgl32.Vec2, maxDistance float32, pointInclusive bool) *hit.Package {
	return g.visible(id, pos, dir, maxDistance, pointInclusive, 0)
}

func (g *Graph) visible(id RoomID, pos, dir mgl32.Vec2, maxDistance float32, pointInclusive bool, depth int) *hit.Package {
	pkg := hit.NewPackage()
	if g.Room(id) == nil {
		return pkg
	}
	// copy: EnsureNeighbor may grow the arena
	room := g.rooms[id]

	side, primary := room.primaryWallHit(pos, dir, false)
	if sideHitInRange(primary, maxDistance) {
		pkg.AddHit(primary)
		if primary.Kind == hit.Portal && primary.Distance > 0 && depth < MaxPortalDepth {
			g.throughPortal(pkg, id, &room, side, primary, dir, maxDistance, depth)
		}
	}

	if pointInclusive {
		if _, inclusive := room.primaryWallHit(pos, dir, true); sideHitInRange(inclusive, maxDistance) &&
			!inclusive.Equal(primary) {
			pkg.AddHit(inclusive)
		}
	}

	for _, wall := range room.walls {
		if h := wall.Hit(pos, dir); !h.IsNoHit() && h.WithinDistance(maxDistance) {
			pkg.AddHit(h)
		}
	}
	return pkg
}

// sideHitInRange reports whether a room side hit lies within maxDistance.
// A portal must lie strictly inside so the range left beyond it is positive.
func sideHitInRange(h hit.Hit, maxDistance float32) bool {
	if h.IsNoHit() || !h.WithinDistance(maxDistance) {
		return false
	}
	return h.Kind != hit.Portal || h.Distance < maxDistance
}

// throughPortal continues the ray into the neighbor behind a portal hit and
// merges what it finds, shifted to this room's distances.
func (g *Graph) throughPortal(pkg *hit.Package, id RoomID, room *Room, side Direction, portal hit.Hit, dir mgl32.Vec2, maxDistance float32, depth int) {
	next, err := g.EnsureNeighbor(id, side)
	if err != nil {
		g.log.WithError(err).Warn("portal leads nowhere")
		return
	}

	entry := room.PortalEntry(side, portal.TextureOffset, g.Room(next))
	beyond := g.visible(next, entry, dir, maxDistance-portal.Distance, false, depth+1)
	beyond.ShiftHits(portal.Distance)
	pkg.Merge(beyond)
}
