package world

import (
	"errors"
	"math/rand"
	"slices"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func testFactory(t *testing.T, templates map[string][]Wall) *Factory {
	t.Helper()
	cfg := CenteredConfig(500, 200, 300, 100)
	cfg.Templates = templates
	f, err := NewFactory(cfg)
	if err != nil {
		t.Fatalf("NewFactory() error = %v", err)
	}
	return f
}

func TestCenteredConfig(t *testing.T) {
	cfg := CenteredConfig(500, 200, 300, 100)
	if cfg.NSPortalOffset != 100 || cfg.EWPortalOffset != 50 {
		t.Errorf("offsets = %v, %v, want 100, 50", cfg.NSPortalOffset, cfg.EWPortalOffset)
	}
	if cfg.Entry != (mgl32.Vec2{250, 100}) {
		t.Errorf("entry = %v, want (250, 100)", cfg.Entry)
	}
}

func TestNewFactoryValidation(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*FactoryConfig)
	}{
		{"zero width", func(c *FactoryConfig) { c.RoomWidth = 0 }},
		{"negative height", func(c *FactoryConfig) { c.RoomHeight = -1 }},
		{"zero ns portal", func(c *FactoryConfig) { c.NSPortalWidth = 0 }},
		{"ew portal too wide", func(c *FactoryConfig) { c.EWPortalWidth = 201 }},
		{"portal past corner", func(c *FactoryConfig) { c.NSPortalOffset = 300 }},
		{"negative offset", func(c *FactoryConfig) { c.EWPortalOffset = -1 }},
		{"entry outside", func(c *FactoryConfig) { c.Entry = mgl32.Vec2{600, 10} }},
		{"entry on west side", func(c *FactoryConfig) { c.Entry = mgl32.Vec2{0, 100} }},
		{"entry on north side", func(c *FactoryConfig) { c.Entry = mgl32.Vec2{250, 200} }},
		{"entry on corner", func(c *FactoryConfig) { c.Entry = mgl32.Vec2{500, 0} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := CenteredConfig(500, 200, 300, 100)
			tt.modify(&cfg)
			if _, err := NewFactory(cfg); !errors.Is(err, ErrInvalidGeometry) {
				t.Errorf("NewFactory() error = %v, want ErrInvalidGeometry", err)
			}
		})
	}

	full := CenteredConfig(500, 200, 500, 200)
	if _, err := NewFactory(full); err != nil {
		t.Errorf("full-width portals should be accepted: %v", err)
	}
}

func TestFactoryDedupsWalls(t *testing.T) {
	a := NewWall(10, 10, 100, 100)
	b := NewWall(50, 0, 50, 200)
	f := testFactory(t, map[string][]Wall{
		"third": {b, a, b},
	})

	tmpl, ok := f.Template("third")
	if !ok {
		t.Fatal("template third missing")
	}
	want := []Wall{a, b}
	if !slices.Equal(tmpl.Walls(), want) {
		t.Errorf("walls = %v, want %v", tmpl.Walls(), want)
	}
}

func TestGenerateRoom(t *testing.T) {
	f := testFactory(t, map[string][]Wall{
		"entry":  nil,
		"pillar": {NewWall(200, 80, 300, 80), NewWall(300, 80, 300, 120)},
	})

	if _, ok := f.GenerateRoom("missing"); ok {
		t.Error("GenerateRoom(missing) should report false")
	}

	a, ok := f.GenerateRoom("pillar")
	if !ok {
		t.Fatal("GenerateRoom(pillar) failed")
	}
	b, _ := f.GenerateRoom("pillar")
	if a.WallCount() != 2 {
		t.Fatalf("WallCount() = %d, want 2", a.WallCount())
	}
	if &a.Walls()[0] != &b.Walls()[0] {
		t.Error("rooms from one template should share walls")
	}
	if a.Width() != 500 || a.Height() != 200 || a.NSPortalBegin() != 100 || a.EWPortalEnd() != 150 {
		t.Errorf("room geometry = %vx%v ns %v ew %v", a.Width(), a.Height(), a.NSPortalBegin(), a.EWPortalEnd())
	}
	if a.TemplateID() != "pillar" {
		t.Errorf("TemplateID() = %q, want pillar", a.TemplateID())
	}
}

func TestFactoryCatalog(t *testing.T) {
	f := testFactory(t, map[string][]Wall{"c": nil, "a": nil, "b": nil})

	ids := f.AvailableIDs()
	if !slices.Equal(ids, []string{"a", "b", "c"}) {
		t.Errorf("AvailableIDs() = %v, want sorted", ids)
	}
	ids[0] = "z"
	if f.AvailableIDs()[0] != "a" {
		t.Error("AvailableIDs() should return a copy")
	}
	if !f.ContainsRoomID("b") || f.ContainsRoomID("d") {
		t.Error("ContainsRoomID() mismatch")
	}
	if f.TemplateCount() != 3 {
		t.Errorf("TemplateCount() = %d, want 3", f.TemplateCount())
	}
}

func TestRandomIDReproducible(t *testing.T) {
	f := testFactory(t, map[string][]Wall{"a": nil, "b": nil, "c": nil, "d": nil})
	rng1 := rand.New(rand.NewSource(42))
	rng2 := rand.New(rand.NewSource(42))

	for i := 0; i < 20; i++ {
		id1, err1 := f.RandomID(rng1)
		id2, err2 := f.RandomID(rng2)
		if err1 != nil || err2 != nil {
			t.Fatalf("RandomID() errors %v, %v", err1, err2)
		}
		if id1 != id2 {
			t.Fatalf("draw %d: %q != %q", i, id1, id2)
		}
		if !f.ContainsRoomID(id1) {
			t.Fatalf("RandomID() = %q, not in catalog", id1)
		}
	}
}

func TestEmptyCatalog(t *testing.T) {
	f := testFactory(t, nil)
	rng := rand.New(rand.NewSource(1))

	if _, err := f.RandomID(rng); !errors.Is(err, ErrNoRoomTemplate) {
		t.Errorf("RandomID() error = %v, want ErrNoRoomTemplate", err)
	}
	if _, err := f.GenerateRandomRoom(rng); !errors.Is(err, ErrNoRoomTemplate) {
		t.Errorf("GenerateRandomRoom() error = %v, want ErrNoRoomTemplate", err)
	}
}
