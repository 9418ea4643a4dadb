package protocol

import (
	"encoding/json"
	"math"
	"testing"
)

func TestFinite(t *testing.T) {
	tests := []struct {
		in   float32
		want float32
	}{
		{3, 3},
		{float32(math.Inf(1)), -1},
		{float32(math.Inf(-1)), -1},
		{float32(math.NaN()), -1},
	}
	for _, tt := range tests {
		if got := Finite(tt.in); got != tt.want {
			t.Errorf("Finite(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIntentEnvelopeDecode(t *testing.T) {
	raw := []byte(`{"type":"Move","payload":{"speed":-2.5}}`)

	var env IntentEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if env.Type != IntentMove {
		t.Fatalf("Type = %q, want %q", env.Type, IntentMove)
	}
	var req RequestMove
	if err := json.Unmarshal(env.Payload, &req); err != nil {
		t.Fatalf("payload error = %v", err)
	}
	if req.Speed != -2.5 {
		t.Errorf("Speed = %v, want -2.5", req.Speed)
	}
}
