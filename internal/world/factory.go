package world

import (
	"fmt"
	"math/rand"
	"slices"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/zyedidia/generic/mapset"
)

// FactoryConfig describes the shared room geometry and the template catalog.
type FactoryConfig struct {
	RoomWidth      float32
	RoomHeight     float32
	NSPortalWidth  float32
	EWPortalWidth  float32
	NSPortalOffset float32
	EWPortalOffset float32
	Entry          mgl32.Vec2
	Templates      map[string][]Wall
}

// CenteredConfig returns a config with centered portals and a centered entry
// position. Templates are left empty.
func CenteredConfig(width, height, nsPortalWidth, ewPortalWidth float32) FactoryConfig {
	return FactoryConfig{
		RoomWidth:      width,
		RoomHeight:     height,
		NSPortalWidth:  nsPortalWidth,
		EWPortalWidth:  ewPortalWidth,
		NSPortalOffset: (width - nsPortalWidth) / 2,
		EWPortalOffset: (height - ewPortalWidth) / 2,
		Entry:          mgl32.Vec2{width / 2, height / 2},
		Templates:      make(map[string][]Wall),
	}
}

// Template is the immutable wall set of one room kind.
type Template struct {
	ID    string
	walls []Wall
}

// Walls returns the template walls. The slice is shared and must not be modified.
func (t *Template) Walls() []Wall { return t.walls }

// Factory builds rooms from templates. It is immutable after NewFactory.
type Factory struct {
	width          float32
	height         float32
	nsPortalWidth  float32
	ewPortalWidth  float32
	nsPortalOffset float32
	ewPortalOffset float32
	entry          mgl32.Vec2
	templates      map[string]*Template
	ids            []string
}

// NewFactory validates cfg and builds the template catalog.
// Duplicate walls within a template are dropped and the rest are sorted so
// rooms are identical across runs.
func NewFactory(cfg FactoryConfig) (*Factory, error) {
	if cfg.RoomWidth <= 0 || cfg.RoomHeight <= 0 {
		return nil, fmt.Errorf("%w: room dimension %vx%v", ErrInvalidGeometry, cfg.RoomWidth, cfg.RoomHeight)
	}
	if err := checkPortal("north/south", cfg.NSPortalOffset, cfg.NSPortalWidth, cfg.RoomWidth); err != nil {
		return nil, err
	}
	if err := checkPortal("east/west", cfg.EWPortalOffset, cfg.EWPortalWidth, cfg.RoomHeight); err != nil {
		return nil, err
	}
	if cfg.Entry.X() <= 0 || cfg.Entry.X() >= cfg.RoomWidth || cfg.Entry.Y() <= 0 || cfg.Entry.Y() >= cfg.RoomHeight {
		return nil, fmt.Errorf("%w: entry position %v not strictly inside room", ErrInvalidGeometry, cfg.Entry)
	}

	f := &Factory{
		width:          cfg.RoomWidth,
		height:         cfg.RoomHeight,
		nsPortalWidth:  cfg.NSPortalWidth,
		ewPortalWidth:  cfg.EWPortalWidth,
		nsPortalOffset: cfg.NSPortalOffset,
		ewPortalOffset: cfg.EWPortalOffset,
		entry:          cfg.Entry,
		templates:      make(map[string]*Template, len(cfg.Templates)),
		ids:            make([]string, 0, len(cfg.Templates)),
	}

	for id, walls := range cfg.Templates {
		f.templates[id] = &Template{ID: id, walls: uniqueWalls(walls)}
		f.ids = append(f.ids, id)
	}
	sort.Strings(f.ids)

	return f, nil
}

func checkPortal(name string, offset, width, extent float32) error {
	if width <= 0 || width > extent {
		return fmt.Errorf("%w: %s portal width %v not in (0, %v]", ErrInvalidGeometry, name, width, extent)
	}
	if offset < 0 || offset+width > extent {
		return fmt.Errorf("%w: %s portal [%v, %v] outside side of length %v",
			ErrInvalidGeometry, name, offset, offset+width, extent)
	}
	return nil
}

func uniqueWalls(walls []Wall) []Wall {
	set := mapset.New[Wall]()
	for _, w := range walls {
		set.Put(w)
	}

	unique := make([]Wall, 0, set.Size())
	set.Each(func(w Wall) {
		unique = append(unique, w)
	})
	slices.SortFunc(unique, func(a, b Wall) int {
		switch {
		case a.Less(b):
			return -1
		case b.Less(a):
			return 1
		}
		return 0
	})
	return unique
}

// RoomWidth returns the width shared by every room.
func (f *Factory) RoomWidth() float32 { return f.width }

// RoomHeight returns the height shared by every room.
func (f *Factory) RoomHeight() float32 { return f.height }

// NSPortalWidth returns the north/south portal width.
func (f *Factory) NSPortalWidth() float32 { return f.nsPortalWidth }

// EWPortalWidth returns the east/west portal width.
func (f *Factory) EWPortalWidth() float32 { return f.ewPortalWidth }

// NSPortalBegin returns the x coordinate where north/south portals start.
func (f *Factory) NSPortalBegin() float32 { return f.nsPortalOffset }

// NSPortalEnd returns the x coordinate where north/south portals end.
func (f *Factory) NSPortalEnd() float32 { return f.nsPortalOffset + f.nsPortalWidth }

// EWPortalBegin returns the y coordinate where east/west portals start.
func (f *Factory) EWPortalBegin() float32 { return f.ewPortalOffset }

// EWPortalEnd returns the y coordinate where east/west portals end.
func (f *Factory) EWPortalEnd() float32 { return f.ewPortalOffset + f.ewPortalWidth }

// EntryPosition returns where a viewer starts in the first room.
func (f *Factory) EntryPosition() mgl32.Vec2 { return f.entry }

// TemplateCount returns the number of templates in the catalog.
func (f *Factory) TemplateCount() int { return len(f.ids) }

// AvailableIDs returns the sorted template ids.
func (f *Factory) AvailableIDs() []string {
	return slices.Clone(f.ids)
}

// ContainsRoomID returns true if id names a template.
func (f *Factory) ContainsRoomID(id string) bool {
	_, ok := f.templates[id]
	return ok
}

// Template returns the template with the given id.
func (f *Factory) Template(id string) (*Template, bool) {
	t, ok := f.templates[id]
	return t, ok
}

// RandomID picks a template id uniformly using rng.
func (f *Factory) RandomID(rng *rand.Rand) (string, error) {
	if len(f.ids) == 0 {
		return "", ErrNoRoomTemplate
	}
	return f.ids[rng.Intn(len(f.ids))], nil
}

// GenerateRoom builds an unlinked room from template id.
// It returns false if the id is unknown.
func (f *Factory) GenerateRoom(id string) (Room, bool) {
	t, ok := f.templates[id]
	if !ok {
		return Room{}, false
	}
	return NewRoom(RoomConfig{
		TemplateID:     id,
		Width:          f.width,
		Height:         f.height,
		NSPortalWidth:  f.nsPortalWidth,
		EWPortalWidth:  f.ewPortalWidth,
		NSPortalOffset: f.nsPortalOffset,
		EWPortalOffset: f.ewPortalOffset,
		Walls:          t.walls,
	}), true
}

// GenerateRandomRoom builds a room from a template picked using rng.
func (f *Factory) GenerateRandomRoom(rng *rand.Rand) (Room, error) {
	id, err := f.RandomID(rng)
	if err != nil {
		return Room{}, err
	}
	room, _ := f.GenerateRoom(id)
	return room, nil
}
