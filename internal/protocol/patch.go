package protocol

import "math"

// Message types sent by the server.
const (
	TypeState  = "State"
	TypeVision = "Vision"
	TypeMoved  = "Moved"
	TypeError  = "Error"
	// TypeClosing is broadcast before the server disconnects its clients.
	TypeClosing = "Closing"
)

type PatchEnvelope struct {
	Sequence uint64 `json:"seq"`
	Type     string `json:"type"`
	Payload  any    `json:"payload"`
}

// StateSnapshot is where the viewer stands.
type StateSnapshot struct {
	Session  string  `json:"session"`
	Room     int     `json:"room"`
	Template string  `json:"template"`
	X        float32 `json:"x"`
	Y        float32 `json:"y"`
	FacingX  float32 `json:"facingX"`
	FacingY  float32 `json:"facingY"`
	Rooms    int     `json:"rooms"`
}

// HitLite is one surface along a ray.
type HitLite struct {
	Distance float32 `json:"d"`
	Kind     string  `json:"kind"`
	Texture  float32 `json:"tex"`
}

// VisionSnapshot holds one hit list per ray, left to right; each list runs
// furthest first, the order a client draws in.
type VisionSnapshot struct {
	Range float32     `json:"range"`
	Rays  [][]HitLite `json:"rays"`
}

// Moved reports the outcome of a move intent.
type Moved struct {
	Travelled float32       `json:"travelled"`
	Nearest   string        `json:"nearest"`
	Crossed   bool          `json:"crossed"`
	Side      string        `json:"side,omitempty"`
	State     StateSnapshot `json:"state"`
}

type ErrorMessage struct {
	Message string `json:"message"`
}

// Notice carries a server announcement.
type Notice struct {
	Message string `json:"message"`
}

// Finite replaces infinities and NaN, which JSON cannot carry, with -1.
func Finite(v float32) float32 {
	f := float64(v)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return -1
	}
	return v
}
