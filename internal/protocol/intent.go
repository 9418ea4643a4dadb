// Package protocol defines the JSON messages exchanged with vision clients.
package protocol

import "encoding/json"

// Intent types sent by clients.
const (
	IntentLook   = "Look"
	IntentRotate = "Rotate"
	IntentMove   = "Move"
)

type IntentEnvelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// RequestLook asks for a vision fan. Zero fields take the server defaults.
type RequestLook struct {
	HalfResolution int     `json:"halfResolution"`
	FOV            float64 `json:"fov"`
	Range          float32 `json:"range"`
}

// RequestRotate turns the viewer; positive degrees turn clockwise.
type RequestRotate struct {
	Degrees float64 `json:"degrees"`
}

// RequestMove walks the viewer along its facing; negative speed walks back.
type RequestMove struct {
	Speed float32 `json:"speed"`
}
