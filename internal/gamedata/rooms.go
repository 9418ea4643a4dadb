package gamedata

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/portalrooms/internal/logger"
	"github.com/samdwyer/portalrooms/internal/telemetry"
	"github.com/samdwyer/portalrooms/internal/world"
)

// ErrMissingField is returned when a template document omits a required value.
var ErrMissingField = errors.New("missing required field")

// Document is a room template document.
type Document struct {
	RoomDimension Dimension          `json:"room_dimension"`
	NSDoorWidth   *float32           `json:"ns_door_width"`
	EWDoorWidth   *float32           `json:"ew_door_width"`
	EntryX        *float32           `json:"entry_x"`
	EntryY        *float32           `json:"entry_y"`
	Palette       PaletteDef         `json:"palette"`
	Rooms         map[string]RoomDef `json:"rooms"`
}

// Dimension is the size shared by every room.
type Dimension struct {
	Width  float32 `json:"width"`
	Height float32 `json:"height"`
}

// RoomDef lists the interior walls of one template.
type RoomDef struct {
	Walls []WallDef `json:"walls"`
}

// WallDef is one wall segment in room coordinates.
type WallDef struct {
	HeadX float32 `json:"head_x"`
	HeadY float32 `json:"head_y"`
	TailX float32 `json:"tail_x"`
	TailY float32 `json:"tail_y"`
}

// FactoryConfig converts the document into factory settings. Portals are
// centered on their sides and the entry defaults to the room center.
func (d *Document) FactoryConfig() (world.FactoryConfig, error) {
	if d.NSDoorWidth == nil {
		return world.FactoryConfig{}, fmt.Errorf("%w: ns_door_width", ErrMissingField)
	}
	if d.EWDoorWidth == nil {
		return world.FactoryConfig{}, fmt.Errorf("%w: ew_door_width", ErrMissingField)
	}

	cfg := world.CenteredConfig(d.RoomDimension.Width, d.RoomDimension.Height, *d.NSDoorWidth, *d.EWDoorWidth)
	if d.EntryX != nil {
		cfg.Entry = mgl32.Vec2{*d.EntryX, cfg.Entry.Y()}
	}
	if d.EntryY != nil {
		cfg.Entry = mgl32.Vec2{cfg.Entry.X(), *d.EntryY}
	}

	for id, room := range d.Rooms {
		walls := make([]world.Wall, 0, len(room.Walls))
		for _, w := range room.Walls {
			walls = append(walls, world.NewWall(w.HeadX, w.HeadY, w.TailX, w.TailY))
		}
		cfg.Templates[id] = walls
	}
	return cfg, nil
}

// Catalog is a loaded template document.
type Catalog struct {
	Factory *world.Factory
	Palette Palette
}

// LoadRooms reads the template document at path, or the embedded default
// when path is empty, and builds the room factory from it.
func LoadRooms(ctx context.Context, path string) (*Catalog, error) {
	_, span := telemetry.Tracer("gamedata").Start(ctx, "gamedata.load")
	defer span.End()

	source := path
	var doc Document
	var err error
	if path == "" {
		source = "embedded:" + DefaultRooms
		doc, err = Load[Document](DefaultRooms)
	} else {
		doc, err = LoadFile[Document](path)
	}
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	catalog, err := doc.Catalog()
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	span.SetAttributes(
		attribute.String("rooms.source", source),
		attribute.Int("rooms.templates", catalog.Factory.TemplateCount()),
	)
	logger.Log.WithFields(logrus.Fields{
		"component": "gamedata",
		"source":    source,
		"templates": catalog.Factory.TemplateCount(),
	}).Debug("room templates loaded")
	return catalog, nil
}

// Catalog validates the document and builds its factory and palette.
func (d *Document) Catalog() (*Catalog, error) {
	cfg, err := d.FactoryConfig()
	if err != nil {
		return nil, err
	}
	factory, err := world.NewFactory(cfg)
	if err != nil {
		return nil, err
	}
	palette, err := d.Palette.Resolve()
	if err != nil {
		return nil, err
	}
	return &Catalog{Factory: factory, Palette: palette}, nil
}
