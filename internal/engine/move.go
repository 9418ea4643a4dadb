package engine

import (
	"context"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/portalrooms/internal/geom"
	"github.com/samdwyer/portalrooms/internal/hit"
	"github.com/samdwyer/portalrooms/internal/world"
)

// Step describes the outcome of one MoveForward call.
type Step struct {
	Requested float32         // speed asked for
	Travelled float32         // signed distance actually moved along the view
	Nearest   hit.Kind        // nearest surface within reach, Invalid if none
	Crossed   bool            // a portal was passed
	Side      world.Direction // side crossed, valid when Crossed
	Room      world.RoomID    // room after the move
}

// MoveForward moves the viewer speed units along its view direction; a
// negative speed walks backwards.
//
// Walls stop the viewer WallMargin short. Crossing a portal moves the viewer
// into the neighbor room, generating it if needed.
func (e *Engine) MoveForward(ctx context.Context, speed float32) Step {
	_, span := e.tracer.Start(ctx, "engine.move")
	defer span.End()

	step := Step{Requested: speed, Room: e.viewer.Room}
	if speed == 0 {
		return step
	}

	v := e.viewer
	delta := v.Facing.Mul(speed)
	// the margin keeps the viewer from stopping exactly on a side or wall
	probe := e.graph.Visible(v.Room, v.Position, delta, mgl32.Abs(speed)+WallMargin, true)
	room := e.graph.Room(v.Room)

	if nearest, side, ok := blockingHit(room, v.Position, delta, probe); ok {
		step.Nearest = nearest.Kind
		switch nearest.Kind {
		case hit.Wall, hit.RoomWall:
			speed = geom.AbsoluteClamp(speed, nearest.Distance-WallMargin)
		case hit.Portal:
			if err := e.TraverseRoom(side, delta); err != nil {
				e.log.WithError(err).Warn("portal traversal failed")
				speed = geom.AbsoluteClamp(speed, nearest.Distance-WallMargin)
				break
			}
			step.Crossed = true
			step.Side = side
		}
	}

	if !step.Crossed {
		v.Move(v.Facing.Mul(speed))
	}
	step.Travelled = speed
	step.Room = v.Room

	span.SetAttributes(
		attribute.Float64("move.speed", float64(step.Requested)),
		attribute.Float64("move.travelled", float64(step.Travelled)),
		attribute.String("move.nearest", step.Nearest.String()),
		attribute.Bool("move.crossed", step.Crossed),
		attribute.Int("move.room", int(step.Room)),
	)
	if step.Crossed {
		span.SetAttributes(attribute.String("move.side", step.Side.String()))
	}
	return step
}

// blockingHit returns the nearest hit of probe that a move along delta from
// pos runs into, and for room sides the side it belongs to.
//
// A side touched at distance zero only counts when delta leaves the room
// through it; a viewer standing on a side may always step back inside.
func blockingHit(room *world.Room, pos, delta mgl32.Vec2, probe *hit.Package) (hit.Hit, world.Direction, bool) {
	for _, h := range probe.Hits() {
		if h.Kind != hit.Portal && h.Kind != hit.RoomWall {
			return h, 0, true
		}
		if !geom.FloatApprox(h.Distance, 0) {
			side, ok := room.SideHit(pos, delta, false)
			if !ok {
				continue
			}
			return h, side, true
		}
		if _, inward := room.SideHit(pos, delta, false); inward {
			continue
		}
		side, ok := room.SideHit(pos, delta, true)
		if !ok {
			continue
		}
		return h, side, true
	}
	return hit.Hit{}, 0, false
}

// TraverseRoom moves the viewer through side d of its room by delta and
// re-expresses the position in the neighbor's coordinates.
func (e *Engine) TraverseRoom(d world.Direction, delta mgl32.Vec2) error {
	from := e.viewer.Room
	next, err := e.graph.EnsureNeighbor(from, d)
	if err != nil {
		return err
	}

	room, neighbor := e.graph.Room(from), e.graph.Room(next)
	pos := room.Rebase(d, e.viewer.Position.Add(delta), neighbor)
	e.viewer.Enter(next, clampWithinRoom(pos, neighbor))

	e.log.WithFields(logrus.Fields{
		"from":     from,
		"to":       next,
		"side":     d,
		"template": neighbor.TemplateID(),
	}).Info("entered room")
	return nil
}

// clampWithinRoom keeps pos WallMargin inside the sides of room.
func clampWithinRoom(pos mgl32.Vec2, room *world.Room) mgl32.Vec2 {
	return mgl32.Vec2{
		mgl32.Clamp(pos.X(), WallMargin, room.Width()-WallMargin),
		mgl32.Clamp(pos.Y(), WallMargin, room.Height()-WallMargin),
	}
}
