// Package engine drives a viewer through the room graph: it casts the vision
// fan, turns the viewer and moves it through walls and portals.
package engine

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/portalrooms/internal/entity"
	"github.com/samdwyer/portalrooms/internal/geom"
	"github.com/samdwyer/portalrooms/internal/hit"
	"github.com/samdwyer/portalrooms/internal/logger"
	"github.com/samdwyer/portalrooms/internal/telemetry"
	"github.com/samdwyer/portalrooms/internal/world"
)

const (
	// StartTemplate is the template of the first room.
	StartTemplate = "entry"
	// WallMargin is the closest a viewer may get to a wall or room side.
	WallMargin float32 = 0.01
)

// Engine is one viewer session: the room graph it explores and where it
// stands. An Engine is not safe for concurrent use.
type Engine struct {
	id     uuid.UUID
	graph  *world.Graph
	viewer *entity.Viewer
	tracer trace.Tracer
	log    *logrus.Entry
}

// New starts a session in a fresh StartTemplate room at the factory entry
// position, facing east. rng drives room generation.
func New(ctx context.Context, factory *world.Factory, rng *rand.Rand) (*Engine, error) {
	tracer := telemetry.Tracer("engine")
	_, span := tracer.Start(ctx, "engine.new")
	defer span.End()

	graph := world.NewGraph(factory, rng)
	start, err := graph.Spawn(StartTemplate)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("spawn start room: %w", err)
	}

	id := uuid.New()
	e := &Engine{
		id:     id,
		graph:  graph,
		viewer: entity.NewViewer(start, factory.EntryPosition()),
		tracer: tracer,
		log:    logger.Log.WithFields(logrus.Fields{"component": "engine", "session": id.String()}),
	}

	span.SetAttributes(
		attribute.String("session.id", id.String()),
		attribute.Int("factory.templates", factory.TemplateCount()),
	)
	return e, nil
}

// SessionID identifies the session.
func (e *Engine) SessionID() uuid.UUID { return e.id }

// Graph returns the rooms explored so far.
func (e *Engine) Graph() *world.Graph { return e.graph }

// CurrentRoom returns the id of the room the viewer stands in.
func (e *Engine) CurrentRoom() world.RoomID { return e.viewer.Room }

// Position returns the viewer position in current room coordinates.
func (e *Engine) Position() mgl32.Vec2 { return e.viewer.Position }

// ViewDirection returns the unit facing of the viewer.
func (e *Engine) ViewDirection() mgl32.Vec2 { return e.viewer.Facing }

// Vision casts 2*halfResolution+1 rays fanned around the view direction,
// each turned from its neighbor by the angle with the given cosine and sine.
//
// Packages are ordered left to right on screen. Distances are projected onto
// the view direction so walls do not bow.
func (e *Engine) Vision(cos, sin float32, halfResolution int, maxDistance float32) []*hit.Package {
	if halfResolution < 0 {
		halfResolution = 0
	}
	view := e.viewer.Facing
	packages := make([]*hit.Package, 2*halfResolution+1)
	packages[halfResolution] = e.cast(view, maxDistance)

	left, right := view, view
	for i := 1; i <= halfResolution; i++ {
		left = geom.FastRotate(left, cos, -sin)
		right = geom.FastRotate(right, cos, sin)

		l := e.cast(left, maxDistance)
		l.ScaleDistances(mgl32.Abs(view.Dot(left)))
		packages[halfResolution-i] = l

		r := e.cast(right, maxDistance)
		r.ScaleDistances(mgl32.Abs(view.Dot(right)))
		packages[halfResolution+i] = r
	}
	return packages
}

func (e *Engine) cast(dir mgl32.Vec2, maxDistance float32) *hit.Package {
	return e.graph.Visible(e.viewer.Room, e.viewer.Position, dir, maxDistance, true)
}

// RotateDirection turns the viewer by the angle with the given cosine and
// sine. A positive sine turns clockwise.
func (e *Engine) RotateDirection(cos, sin float32) {
	e.viewer.Rotate(cos, sin)
}
