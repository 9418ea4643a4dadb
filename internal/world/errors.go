package world

import "errors"

var (
	// ErrInvalidDirection is returned when a side cannot be determined.
	ErrInvalidDirection = errors.New("invalid direction")
	// ErrNoRoomTemplate is returned when a random room is requested from an
	// empty template catalog.
	ErrNoRoomTemplate = errors.New("no room template available")
	// ErrUnknownTemplate is returned when a template id is not in the catalog.
	ErrUnknownTemplate = errors.New("unknown room template")
	// ErrInvalidGeometry is returned for room dimensions or portals that
	// cannot form a room.
	ErrInvalidGeometry = errors.New("invalid room geometry")
	// ErrUnknownRoom is returned for a RoomID outside the graph.
	ErrUnknownRoom = errors.New("unknown room")
)
