package game

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/portalrooms/internal/ui"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	screen, err := ui.NewSimulationScreen(40, 12)
	if err != nil {
		t.Fatalf("NewSimulationScreen() error = %v", err)
	}
	t.Cleanup(screen.Close)

	cfg := DefaultConfig()
	cfg.Seed = 99
	g, err := newGame(context.Background(), cfg, screen)
	if err != nil {
		t.Fatalf("newGame() error = %v", err)
	}
	return g
}

func key(k tcell.Key, r rune) *tcell.EventKey {
	return tcell.NewEventKey(k, r, tcell.ModNone)
}

func TestStateToggle(t *testing.T) {
	if StateFirstPerson.Toggle() != StateOverhead || StateOverhead.Toggle() != StateFirstPerson {
		t.Error("Toggle() should alternate view modes")
	}
	if StateOverhead.String() != "overhead" {
		t.Errorf("String() = %q", StateOverhead.String())
	}
}

func TestKeysDriveEngine(t *testing.T) {
	g := newTestGame(t)
	ctx := context.Background()
	start := g.engine.Position()

	g.handleKeyEvent(ctx, key(tcell.KeyDown, 0))
	if g.engine.Position().X() >= start.X() {
		t.Errorf("down arrow should step back, position %v from %v", g.engine.Position(), start)
	}

	g.handleKeyEvent(ctx, key(tcell.KeyLeft, 0))
	if g.engine.ViewDirection().Y() <= 0 {
		t.Errorf("left arrow should turn counter-clockwise, facing %v", g.engine.ViewDirection())
	}

	g.handleKeyEvent(ctx, key(tcell.KeyRune, 'm'))
	if g.state != StateOverhead {
		t.Errorf("state = %v, want overhead", g.state)
	}
	g.render()

	g.handleKeyEvent(ctx, key(tcell.KeyRune, 'q'))
	if g.running {
		t.Error("q should stop the loop")
	}
}

func TestRenderFirstPerson(t *testing.T) {
	g := newTestGame(t)
	g.render()
	if g.engine.Graph().Len() < 2 {
		t.Errorf("casting the view should reach neighboring rooms, Len() = %d", g.engine.Graph().Len())
	}
}

func TestRunRestoresTerminalOnQuit(t *testing.T) {
	screen, err := ui.NewSimulationScreen(40, 12)
	if err != nil {
		t.Fatalf("NewSimulationScreen() error = %v", err)
	}
	t.Cleanup(screen.Close)

	cfg := DefaultConfig()
	cfg.Seed = 99
	g, err := newGame(context.Background(), cfg, screen)
	if err != nil {
		t.Fatalf("newGame() error = %v", err)
	}
	if err := screen.PostEvent(key(tcell.KeyRune, 'q')); err != nil {
		t.Fatalf("PostEvent() error = %v", err)
	}

	if err := g.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	// a finalized screen eventually reports nil instead of blocking
	done := make(chan struct{})
	go func() {
		for screen.PollEvent() != nil {
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("screen still live after Run returned")
	}
}
