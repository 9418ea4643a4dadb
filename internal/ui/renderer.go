package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/samdwyer/portalrooms/internal/gamedata"
	"github.com/samdwyer/portalrooms/internal/geom"
	"github.com/samdwyer/portalrooms/internal/hit"
	"github.com/samdwyer/portalrooms/internal/world"
)

const (
	// DefaultWallHeight is the world height of every wall.
	DefaultWallHeight float32 = 60
	// stripeWidth is the texture span of one stripe on a wall.
	stripeWidth float32 = 25
)

var (
	skyStyle   = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorDarkBlue)
	floorStyle = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorDarkGray)
	textStyle  = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
)

// Renderer draws vision packages and maps onto a Screen.
type Renderer struct {
	screen     *Screen
	palette    gamedata.Palette
	wallHeight float32
}

// NewRenderer creates a renderer for screen using palette colors.
func NewRenderer(screen *Screen, palette gamedata.Palette) *Renderer {
	return &Renderer{
		screen:     screen,
		palette:    palette,
		wallHeight: DefaultWallHeight,
	}
}

// RenderFirstPerson draws one screen column per vision package, stretching
// or sampling the packages to fill the screen width. The bottom row holds
// status.
func (r *Renderer) RenderFirstPerson(vision []*hit.Package, maxDistance float32, status string) {
	r.screen.Clear()
	width, height := r.screen.Size()
	viewHeight := height - 1
	if width <= 0 || viewHeight <= 0 || len(vision) == 0 {
		r.screen.Show()
		return
	}

	for x := 0; x < width; x++ {
		r.drawBackground(x, viewHeight)
		pkg := vision[x*len(vision)/width]
		// far surfaces first so portals and nearer walls overdraw them
		for _, h := range pkg.FarToNear() {
			r.drawHit(x, viewHeight, h, maxDistance)
		}
	}

	r.RenderMessage(status, height-1)
	r.screen.Show()
}

func (r *Renderer) drawBackground(x, viewHeight int) {
	for y := 0; y < viewHeight; y++ {
		if y < viewHeight/2 {
			r.screen.SetContent(x, y, ' ', skyStyle)
			continue
		}
		r.screen.SetContent(x, y, '.', floorStyle)
	}
}

func (r *Renderer) drawHit(x, viewHeight int, h hit.Hit, maxDistance float32) {
	top, bottom := ColumnSpan(h.Distance, r.wallHeight, viewHeight)

	switch h.Kind {
	case hit.Portal:
		// frame only, what lies beyond stays visible
		style := tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(r.palette.Portal)
		r.screen.SetContent(x, top, '▀', style)
		r.screen.SetContent(x, bottom, '▄', style)
	case hit.Wall, hit.RoomWall:
		color := r.palette.RoomWall
		if h.Kind == hit.Wall {
			color = r.palette.Wall
		}
		style := tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(color)
		if stripe(h.TextureOffset) {
			style = style.Dim(true)
		}
		shade := Shade(h.Distance, maxDistance)
		for y := top; y <= bottom; y++ {
			r.screen.SetContent(x, y, shade, style)
		}
	}
}

// ColumnSpan returns the first and last screen row covered by a wall of
// height wallHeight seen at distance, on a view viewHeight rows tall.
func ColumnSpan(distance, wallHeight float32, viewHeight int) (top, bottom int) {
	if viewHeight <= 0 {
		return 0, -1
	}
	rows := float32(viewHeight)
	projected := rows
	if distance > 0 {
		projected = mgl32.Clamp(rows*wallHeight/distance, 1, rows)
	}

	mid := rows / 2
	top = int(mid - projected/2)
	bottom = int(mid + projected/2)
	if bottom >= viewHeight {
		bottom = viewHeight - 1
	}
	if top < 0 {
		top = 0
	}
	return top, bottom
}

// Shade picks a block rune that fades with distance.
func Shade(distance, maxDistance float32) rune {
	if maxDistance <= 0 {
		return '█'
	}
	switch f := distance / maxDistance; {
	case f <= 0.15:
		return '█'
	case f <= 0.35:
		return '▓'
	case f <= 0.6:
		return '▒'
	default:
		return '░'
	}
}

func stripe(textureOffset float32) bool {
	if textureOffset < 0 || textureOffset == geom.Inf {
		return false
	}
	return int(textureOffset/stripeWidth)%2 == 1
}

// RenderOverhead draws room scaled to the screen with the viewer on top. The
// bottom row holds status.
func (r *Renderer) RenderOverhead(room *world.Room, pos, facing mgl32.Vec2, status string) {
	r.screen.Clear()
	width, height := r.screen.Size()
	mapHeight := height - 1
	if width < 2 || mapHeight < 2 || room == nil {
		r.screen.Show()
		return
	}

	m := overheadMap{
		width:  width,
		height: mapHeight,
		sx:     float32(width-1) / room.Width(),
		sy:     float32(mapHeight-1) / room.Height(),
	}

	roomWallStyle := tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(r.palette.RoomWall)
	portalStyle := tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(r.palette.Portal)
	wallStyle := tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(r.palette.Wall)

	for _, d := range world.Directions {
		head, tail := room.SideSegment(d)
		m.line(r.screen, head, tail, '#', roomWallStyle)
	}
	for _, d := range world.Directions {
		head, tail := room.PortalSegment(d)
		m.line(r.screen, head, tail, ':', portalStyle)
	}
	for _, w := range room.Walls() {
		m.line(r.screen, w.Head, w.Tail, '*', wallStyle)
	}

	x, y := m.cell(pos)
	viewerStyle := tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorYellow).Bold(true)
	r.screen.SetContent(x, y, Arrow(facing), viewerStyle)

	r.RenderMessage(status, height-1)
	r.screen.Show()
}

// Arrow returns the arrow rune closest to facing. North is up.
func Arrow(facing mgl32.Vec2) rune {
	if mgl32.Abs(facing.X()) >= mgl32.Abs(facing.Y()) {
		if facing.X() >= 0 {
			return '>'
		}
		return '<'
	}
	if facing.Y() > 0 {
		return '^'
	}
	return 'v'
}

type overheadMap struct {
	width, height int
	sx, sy        float32
}

// cell converts room coordinates to a screen cell, flipping y so north is up.
func (m overheadMap) cell(p mgl32.Vec2) (int, int) {
	x := int(p.X()*m.sx + 0.5)
	y := m.height - 1 - int(p.Y()*m.sy+0.5)
	return clampInt(x, 0, m.width-1), clampInt(y, 0, m.height-1)
}

func (m overheadMap) line(s *Screen, from, to mgl32.Vec2, ch rune, style tcell.Style) {
	x0, y0 := m.cell(from)
	x1, y1 := m.cell(to)
	steps := max(abs(x1-x0), abs(y1-y0))
	if steps == 0 {
		s.SetContent(x0, y0, ch, style)
		return
	}
	for i := 0; i <= steps; i++ {
		x := x0 + (x1-x0)*i/steps
		y := y0 + (y1-y0)*i/steps
		s.SetContent(x, y, ch, style)
	}
}

func clampInt(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// RenderMessage writes msg on row y from the left edge.
func (r *Renderer) RenderMessage(msg string, y int) {
	x := 0
	for _, ch := range msg {
		r.screen.SetContent(x, y, ch, textStyle)
		x++
	}
}
