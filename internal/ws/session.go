package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/samdwyer/portalrooms/internal/engine"
	"github.com/samdwyer/portalrooms/internal/hit"
	"github.com/samdwyer/portalrooms/internal/protocol"
)

// Limits on what a single look may request.
const (
	maxHalfResolution         = 512
	maxRange          float32 = 20000
)

// ViewDefaults fills look requests that leave fields unset.
type ViewDefaults struct {
	HalfResolution int
	FOV            float64
	Range          float32
}

// Session applies one client's intents to its own engine.
type Session struct {
	engine   *engine.Engine
	defaults ViewDefaults
	sequence uint64
	log      *logrus.Entry
}

// NewSession wraps eng for a client.
func NewSession(eng *engine.Engine, defaults ViewDefaults, log *logrus.Entry) *Session {
	return &Session{
		engine:   eng,
		defaults: defaults,
		log:      log.WithField("session", eng.SessionID().String()),
	}
}

// Hello returns the greeting sent when a client connects.
func (s *Session) Hello() protocol.PatchEnvelope {
	return s.envelope(protocol.TypeState, s.state())
}

// Handle applies one intent and returns the reply.
func (s *Session) Handle(ctx context.Context, env protocol.IntentEnvelope) protocol.PatchEnvelope {
	switch env.Type {
	case protocol.IntentLook:
		var req protocol.RequestLook
		if err := decodePayload(env.Payload, &req); err != nil {
			return s.fail(err)
		}
		return s.envelope(protocol.TypeVision, s.look(req))

	case protocol.IntentRotate:
		var req protocol.RequestRotate
		if err := decodePayload(env.Payload, &req); err != nil {
			return s.fail(err)
		}
		rad := req.Degrees * math.Pi / 180
		s.engine.RotateDirection(float32(math.Cos(rad)), float32(math.Sin(rad)))
		return s.envelope(protocol.TypeState, s.state())

	case protocol.IntentMove:
		var req protocol.RequestMove
		if err := decodePayload(env.Payload, &req); err != nil {
			return s.fail(err)
		}
		step := s.engine.MoveForward(ctx, req.Speed)
		moved := protocol.Moved{
			Travelled: step.Travelled,
			Nearest:   step.Nearest.String(),
			Crossed:   step.Crossed,
			State:     s.state(),
		}
		if step.Crossed {
			moved.Side = step.Side.String()
		}
		return s.envelope(protocol.TypeMoved, moved)
	}
	return s.fail(fmt.Errorf("unknown intent %q", env.Type))
}

func (s *Session) look(req protocol.RequestLook) protocol.VisionSnapshot {
	half := req.HalfResolution
	if half <= 0 {
		half = s.defaults.HalfResolution
	}
	half = min(half, maxHalfResolution)
	fov := req.FOV
	if fov <= 0 || fov >= 180 {
		fov = s.defaults.FOV
	}
	maxDistance := req.Range
	if maxDistance <= 0 {
		maxDistance = s.defaults.Range
	}
	maxDistance = min(maxDistance, maxRange)

	cos, sin := float32(1), float32(0)
	if half > 0 {
		step := fov / 2 / float64(half) * math.Pi / 180
		cos, sin = float32(math.Cos(step)), float32(math.Sin(step))
	}

	packages := s.engine.Vision(cos, sin, half, maxDistance)
	snapshot := protocol.VisionSnapshot{
		Range: maxDistance,
		Rays:  make([][]protocol.HitLite, len(packages)),
	}
	for i, pkg := range packages {
		snapshot.Rays[i] = liteHits(pkg)
	}
	return snapshot
}

func liteHits(pkg *hit.Package) []protocol.HitLite {
	hits := pkg.FarToNear()
	out := make([]protocol.HitLite, len(hits))
	for i, h := range hits {
		out[i] = protocol.HitLite{
			Distance: protocol.Finite(h.Distance),
			Kind:     h.Kind.String(),
			Texture:  protocol.Finite(h.TextureOffset),
		}
	}
	return out
}

func (s *Session) state() protocol.StateSnapshot {
	pos, facing := s.engine.Position(), s.engine.ViewDirection()
	graph := s.engine.Graph()
	room := graph.Room(s.engine.CurrentRoom())
	return protocol.StateSnapshot{
		Session:  s.engine.SessionID().String(),
		Room:     int(s.engine.CurrentRoom()),
		Template: room.TemplateID(),
		X:        pos.X(),
		Y:        pos.Y(),
		FacingX:  facing.X(),
		FacingY:  facing.Y(),
		Rooms:    graph.Len(),
	}
}

func (s *Session) envelope(typ string, payload any) protocol.PatchEnvelope {
	s.sequence++
	return protocol.PatchEnvelope{Sequence: s.sequence, Type: typ, Payload: payload}
}

func (s *Session) fail(err error) protocol.PatchEnvelope {
	s.log.WithError(err).Debug("intent rejected")
	return s.envelope(protocol.TypeError, protocol.ErrorMessage{Message: err.Error()})
}

func decodePayload(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	return nil
}
