package ws

import (
	"context"
	"math/rand"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/portalrooms/internal/engine"
	"github.com/samdwyer/portalrooms/internal/logger"
	"github.com/samdwyer/portalrooms/internal/protocol"
	"github.com/samdwyer/portalrooms/internal/telemetry"
	"github.com/samdwyer/portalrooms/internal/world"
)

// Server accepts websocket clients and gives each one its own engine over a
// shared room factory.
type Server struct {
	hub      *Hub
	factory  *world.Factory
	defaults ViewDefaults
	seed     int64
	sessions atomic.Int64
	log      *logrus.Entry
}

// NewServer creates a server. A seed of 0 seeds each session from the clock;
// otherwise session n uses seed+n so runs are reproducible.
func NewServer(factory *world.Factory, defaults ViewDefaults, seed int64) *Server {
	return &Server{
		hub:      NewHub(),
		factory:  factory,
		defaults: defaults,
		seed:     seed,
		log:      logger.Log.WithFields(logrus.Fields{"component": "ws"}),
	}
}

// Hub returns the set of connected clients.
func (s *Server) Hub() *Hub { return s.hub }

// Handler returns the HTTP routes of the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/vision", s.serveVision)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// Shutdown tells every client the server is going away, then disconnects
// them.
func (s *Server) Shutdown(reason string) {
	s.log.WithField("clients", s.hub.Len()).Info("disconnecting clients")
	s.hub.Broadcast(protocol.PatchEnvelope{
		Type:    protocol.TypeClosing,
		Payload: protocol.Notice{Message: reason},
	})
	s.hub.CloseAll(reason)
}

func (s *Server) serveVision(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		s.log.WithError(err).Warn("websocket accept failed")
		return
	}
	s.hub.Add(conn)
	defer s.hub.Remove(conn)
	defer conn.Close(websocket.StatusNormalClosure, "")

	if err := s.run(r.Context(), conn); err != nil {
		s.log.WithError(err).Debug("session ended")
	}
}

func (s *Server) run(ctx context.Context, conn *websocket.Conn) error {
	ctx, span := telemetry.Tracer("ws").Start(ctx, "ws.session")
	defer span.End()

	n := s.sessions.Add(1)
	seed := s.seed + n
	if s.seed == 0 {
		seed = time.Now().UnixNano()
	}
	eng, err := engine.New(ctx, s.factory, rand.New(rand.NewSource(seed)))
	if err != nil {
		_ = wsjson.Write(ctx, conn, protocol.PatchEnvelope{
			Type:    protocol.TypeError,
			Payload: protocol.ErrorMessage{Message: err.Error()},
		})
		return err
	}
	span.SetAttributes(
		attribute.String("session.id", eng.SessionID().String()),
		attribute.Int64("session.seed", seed),
	)

	session := NewSession(eng, s.defaults, s.log)
	session.log.WithField("seed", seed).Info("client connected")

	if err := wsjson.Write(ctx, conn, session.Hello()); err != nil {
		return err
	}
	for {
		var env protocol.IntentEnvelope
		if err := wsjson.Read(ctx, conn, &env); err != nil {
			return err
		}
		if err := wsjson.Write(ctx, conn, session.Handle(ctx, env)); err != nil {
			return err
		}
	}
}
