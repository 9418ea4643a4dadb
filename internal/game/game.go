package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/portalrooms/internal/engine"
	"github.com/samdwyer/portalrooms/internal/gamedata"
	"github.com/samdwyer/portalrooms/internal/logger"
	"github.com/samdwyer/portalrooms/internal/telemetry"
	"github.com/samdwyer/portalrooms/internal/ui"
)

// Game holds the explorer session and the terminal it draws on.
type Game struct {
	cfg      Config
	screen   *ui.Screen
	renderer *ui.Renderer
	engine   *engine.Engine
	state    State
	running  bool
}

// New loads the room templates, starts an engine session and opens the
// terminal.
func New(ctx context.Context, cfg Config) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}
	g, err := newGame(ctx, cfg, screen)
	if err != nil {
		screen.Close()
		return nil, err
	}
	return g, nil
}

func newGame(ctx context.Context, cfg Config, screen *ui.Screen) (*Game, error) {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "game.init")
	defer span.End()

	catalog, err := gamedata.LoadRooms(ctx, cfg.Templates)
	if err != nil {
		return nil, fmt.Errorf("load room templates: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	eng, err := engine.New(ctx, catalog.Factory, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, err
	}

	span.SetAttributes(
		attribute.Int64("game.seed", seed),
		attribute.String("game.session", eng.SessionID().String()),
	)
	logger.Log.WithFields(logrus.Fields{
		"component": "game",
		"seed":      seed,
		"session":   eng.SessionID().String(),
	}).Info("explorer started")

	return &Game{
		cfg:      cfg,
		screen:   screen,
		renderer: ui.NewRenderer(screen, catalog.Palette),
		engine:   eng,
		state:    StateFirstPerson,
		running:  true,
	}, nil
}

// Run executes the main loop until the player quits, then closes the screen.
func (g *Game) Run(ctx context.Context) error {
	defer g.Close()
	for g.running {
		g.render()
		g.handleInput(ctx)
	}
	return nil
}

func (g *Game) render() {
	switch g.state {
	case StateOverhead:
		room := g.engine.Graph().Room(g.engine.CurrentRoom())
		g.renderer.RenderOverhead(room, g.engine.Position(), g.engine.ViewDirection(), g.status())
	default:
		width, _ := g.screen.Size()
		half := width / 2
		cos, sin := g.cfg.RayStep(half)
		vision := g.engine.Vision(cos, sin, half, g.cfg.Range)
		g.renderer.RenderFirstPerson(vision, g.cfg.Range, g.status())
	}
}

func (g *Game) status() string {
	pos := g.engine.Position()
	room := g.engine.Graph().Room(g.engine.CurrentRoom())
	return fmt.Sprintf("room %d [%s] x=%.1f y=%.1f rooms=%d  arrows:move/turn m:map q:quit",
		g.engine.CurrentRoom(), room.TemplateID(), pos.X(), pos.Y(), g.engine.Graph().Len())
}

// handleInput processes a single input event.
func (g *Game) handleInput(ctx context.Context) {
	ev := g.screen.PollEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		g.screen.Sync()
	case nil:
		// screen finalized
		g.running = false
	}
}

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false

	case tcell.KeyUp:
		g.engine.MoveForward(ctx, g.cfg.MoveSpeed)
	case tcell.KeyDown:
		g.engine.MoveForward(ctx, -g.cfg.MoveSpeed)
	case tcell.KeyLeft:
		cos, sin := g.cfg.Turn()
		g.engine.RotateDirection(cos, -sin)
	case tcell.KeyRight:
		cos, sin := g.cfg.Turn()
		g.engine.RotateDirection(cos, sin)

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			g.running = false
		case 'm', 'M':
			g.state = g.state.Toggle()
		}
	}
}

// Close cleans up game resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
	}
}
