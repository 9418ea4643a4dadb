package ui

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/samdwyer/portalrooms/internal/gamedata"
	"github.com/samdwyer/portalrooms/internal/hit"
	"github.com/samdwyer/portalrooms/internal/world"
)

func newTestRenderer(t *testing.T, width, height int) (*Renderer, *Screen) {
	t.Helper()
	screen, err := NewSimulationScreen(width, height)
	if err != nil {
		t.Fatalf("NewSimulationScreen() error = %v", err)
	}
	t.Cleanup(screen.Close)
	return NewRenderer(screen, gamedata.DefaultPalette), screen
}

func TestColumnSpan(t *testing.T) {
	tests := []struct {
		distance   float32
		rows       int
		wantTop    int
		wantBottom int
	}{
		{0, 20, 0, 19},
		{60, 20, 0, 19},
		{120, 20, 5, 15},
		{1e6, 20, 9, 10},
	}

	for _, tt := range tests {
		top, bottom := ColumnSpan(tt.distance, 60, tt.rows)
		if top != tt.wantTop || bottom != tt.wantBottom {
			t.Errorf("ColumnSpan(%v, 60, %d) = %d, %d, want %d, %d",
				tt.distance, tt.rows, top, bottom, tt.wantTop, tt.wantBottom)
		}
	}
}

func TestShade(t *testing.T) {
	tests := []struct {
		distance float32
		want     rune
	}{
		{0, '█'},
		{200, '▓'},
		{500, '▒'},
		{900, '░'},
	}
	for _, tt := range tests {
		if got := Shade(tt.distance, 1000); got != tt.want {
			t.Errorf("Shade(%v) = %q, want %q", tt.distance, got, tt.want)
		}
	}
}

func TestArrow(t *testing.T) {
	tests := []struct {
		facing mgl32.Vec2
		want   rune
	}{
		{mgl32.Vec2{1, 0}, '>'},
		{mgl32.Vec2{-1, 0.2}, '<'},
		{mgl32.Vec2{0.1, 1}, '^'},
		{mgl32.Vec2{0, -1}, 'v'},
	}
	for _, tt := range tests {
		if got := Arrow(tt.facing); got != tt.want {
			t.Errorf("Arrow(%v) = %q, want %q", tt.facing, got, tt.want)
		}
	}
}

func TestRenderFirstPersonWall(t *testing.T) {
	r, screen := newTestRenderer(t, 10, 11)

	pkg := hit.NewPackage()
	pkg.AddHit(hit.New(60, hit.RoomWall, 0))
	r.RenderFirstPerson([]*hit.Package{pkg}, 1000, "hi")

	for _, cell := range [][2]int{{0, 0}, {5, 5}, {9, 9}} {
		if got, _ := screen.Content(cell[0], cell[1]); got != '█' {
			t.Errorf("Content(%d, %d) = %q, want full block", cell[0], cell[1], got)
		}
	}
	if got, _ := screen.Content(0, 10); got != 'h' {
		t.Errorf("status row starts with %q, want 'h'", got)
	}
}

func TestRenderFirstPersonPortalFrame(t *testing.T) {
	r, screen := newTestRenderer(t, 4, 11)

	pkg := hit.NewPackage()
	pkg.AddHit(hit.New(120, hit.Portal, 0))
	r.RenderFirstPerson([]*hit.Package{pkg, pkg}, 1000, "")

	if got, _ := screen.Content(3, 2); got != '▀' {
		t.Errorf("portal top = %q, want upper half block", got)
	}
	if got, _ := screen.Content(3, 7); got != '▄' {
		t.Errorf("portal bottom = %q, want lower half block", got)
	}
	if got, _ := screen.Content(3, 4); got != ' ' {
		t.Errorf("inside portal = %q, want background", got)
	}
}

func TestRenderOverhead(t *testing.T) {
	r, screen := newTestRenderer(t, 51, 21)
	room := world.NewRoom(world.RoomConfig{
		Width:          500,
		Height:         200,
		NSPortalWidth:  300,
		EWPortalWidth:  100,
		NSPortalOffset: 100,
		EWPortalOffset: 50,
	})

	r.RenderOverhead(&room, mgl32.Vec2{250, 100}, mgl32.Vec2{1, 0}, "room 0")

	if got, _ := screen.Content(25, 9); got != '>' {
		t.Errorf("viewer cell = %q, want '>'", got)
	}
	if got, _ := screen.Content(0, 19); got != '#' {
		t.Errorf("south-west corner = %q, want '#'", got)
	}
	if got, _ := screen.Content(25, 0); got != ':' {
		t.Errorf("north portal cell = %q, want ':'", got)
	}
}
