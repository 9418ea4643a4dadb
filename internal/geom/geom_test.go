package geom

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

const equalityThreshold = 1e-4

func almostEqual(a, b float32) bool {
	return math.Abs(float64(a-b)) <= equalityThreshold
}

func TestFloatApprox(t *testing.T) {
	tests := []struct {
		name string
		a, b float32
		want bool
	}{
		{"equal", 3, 3, true},
		{"zero against tiny", 0, 1e-7, true},
		{"zero against small", 0, 1e-3, false},
		{"relative close", 1000000, 1000000.2, true},
		{"relative far", 1, 1.001, false},
		{"negative", -2, -2, true},
	}

	for _, tt := range tests {
		if got := FloatApprox(tt.a, tt.b); got != tt.want {
			t.Errorf("%s: FloatApprox(%v, %v) = %v, want %v", tt.name, tt.a, tt.b, got, tt.want)
		}
	}
}

func TestIsUnitVector(t *testing.T) {
	tests := []struct {
		v    mgl32.Vec2
		want bool
	}{
		{mgl32.Vec2{0, 0}, false},
		{mgl32.Vec2{1, 0}, true},
		{mgl32.Vec2{0.7071067812, 0.7071067812}, true},
		{mgl32.Vec2{2, 0.3}, false},
		{mgl32.Vec2{0.1, 0.3}, false},
	}

	for _, tt := range tests {
		if got := IsUnitVector(tt.v); got != tt.want {
			t.Errorf("IsUnitVector(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestAreCollinear(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c mgl32.Vec2
		want    bool
	}{
		{"distinct", mgl32.Vec2{1, 2}, mgl32.Vec2{2, 4}, mgl32.Vec2{3, 6}, true},
		{"a equals b", mgl32.Vec2{1, 2}, mgl32.Vec2{1, 2}, mgl32.Vec2{3, 6}, true},
		{"b equals c", mgl32.Vec2{1, 2}, mgl32.Vec2{2, 4}, mgl32.Vec2{2, 4}, true},
		{"a equals c", mgl32.Vec2{1, 2}, mgl32.Vec2{2, 4}, mgl32.Vec2{1, 2}, true},
		{"all same", mgl32.Vec2{5, 2}, mgl32.Vec2{5, 2}, mgl32.Vec2{5, 2}, true},
		{"a off line", mgl32.Vec2{4, 2}, mgl32.Vec2{2, 4}, mgl32.Vec2{3, 6}, false},
		{"b off line", mgl32.Vec2{1, 2}, mgl32.Vec2{2, 5}, mgl32.Vec2{3, 6}, false},
		{"c off line", mgl32.Vec2{1, 2}, mgl32.Vec2{2, 4}, mgl32.Vec2{9, 6}, false},
	}

	for _, tt := range tests {
		if got := AreCollinear(tt.a, tt.b, tt.c); got != tt.want {
			t.Errorf("%s: AreCollinear = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestAreParallel(t *testing.T) {
	if !AreParallel(mgl32.Vec2{1, 1}, mgl32.Vec2{-2, -2}) {
		t.Error("opposite vectors should be parallel")
	}
	if !AreParallel(mgl32.Vec2{0, 0}, mgl32.Vec2{3, 7}) {
		t.Error("zero vector should be parallel to everything")
	}
	if AreParallel(mgl32.Vec2{1, 0}, mgl32.Vec2{0, 1}) {
		t.Error("perpendicular vectors should not be parallel")
	}
}

func TestRayToLineDistance(t *testing.T) {
	head := mgl32.Vec2{0, 1}
	tail := mgl32.Vec2{1, 0}
	inf := Inf

	tests := []struct {
		name     string
		pos, dir mgl32.Vec2
		want     float32
	}{
		{"mid unit", mgl32.Vec2{0.5, -0.5}, mgl32.Vec2{0, 1}, 1},
		{"mid non-unit", mgl32.Vec2{0.5, -0.5}, mgl32.Vec2{0, 5}, 1},
		{"toward head", mgl32.Vec2{0.5, 0}, mgl32.Vec2{1, 0}, 0.5},
		{"toward head non-unit", mgl32.Vec2{0.5, 0}, mgl32.Vec2{0.1, 0}, 0.5},
		{"toward tail", mgl32.Vec2{0, 0.5}, mgl32.Vec2{0, 1}, 0.5},
		{"on head", mgl32.Vec2{0, 1}, mgl32.Vec2{0, 0.1}, 0},
		{"on tail", mgl32.Vec2{1, 0}, mgl32.Vec2{0, 0.1}, 0},
		{"on mid", mgl32.Vec2{0.5, 0.5}, mgl32.Vec2{0, 0.1}, 0},
		{"parallel", mgl32.Vec2{0, 0}, mgl32.Vec2{1, -1}, inf},
		{"parallel non-unit", mgl32.Vec2{0, 0}, mgl32.Vec2{-0.5, 0.5}, inf},
		{"negative mid", mgl32.Vec2{0.5, -0.5}, mgl32.Vec2{0, -1}, -1},
		{"negative head", mgl32.Vec2{0.5, 0}, mgl32.Vec2{-1, 0}, -0.5},
		{"negative tail", mgl32.Vec2{0, 0.5}, mgl32.Vec2{0, -0.1}, -0.5},
	}

	for _, tt := range tests {
		got := RayToLineDistance(head, tail, tt.pos, tt.dir)
		if tt.want == inf {
			if got != inf {
				t.Errorf("%s: got %v, want +Inf", tt.name, got)
			}
			continue
		}
		if !almostEqual(got, tt.want) {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestRayToLineDistanceInLine(t *testing.T) {
	if got := RayToLineDistance(mgl32.Vec2{1, 0}, mgl32.Vec2{2, 0}, mgl32.Vec2{0, 0}, mgl32.Vec2{1, 0}); got != 0 {
		t.Errorf("horizontal in-line distance = %v, want 0", got)
	}
	if got := RayToLineDistance(mgl32.Vec2{1, 1}, mgl32.Vec2{2, 2}, mgl32.Vec2{0, 0}, mgl32.Vec2{1, 1}); got != 0 {
		t.Errorf("diagonal in-line distance = %v, want 0", got)
	}
}

func TestRayToLineDistancePointLine(t *testing.T) {
	p := mgl32.Vec2{3, 3}
	if got := RayToLineDistance(p, p, mgl32.Vec2{0, 0}, mgl32.Vec2{1, 0}); got != 0 {
		t.Errorf("point line distance = %v, want 0", got)
	}
}

func TestRayIntersectsSegment(t *testing.T) {
	head := mgl32.Vec2{1, 0}
	tail := mgl32.Vec2{0, 1}

	tests := []struct {
		name     string
		pos, dir mgl32.Vec2
		want     bool
	}{
		{"miss", mgl32.Vec2{1, 1}, mgl32.Vec2{-1, 1}, false},
		{"wrong direction", mgl32.Vec2{0, 0}, mgl32.Vec2{-1, 0}, false},
		{"parallel off line", mgl32.Vec2{1, 1}, mgl32.Vec2{1, -1}, false},
		{"head hit", mgl32.Vec2{1, 1}, mgl32.Vec2{0, -1}, true},
		{"tail hit", mgl32.Vec2{-1, 1}, mgl32.Vec2{1, 0}, true},
		{"middle hit", mgl32.Vec2{0.5, 2.5}, mgl32.Vec2{0, -1}, true},
		{"from origin", mgl32.Vec2{0, 0}, mgl32.Vec2{1, 1}, true},
		{"start on head", mgl32.Vec2{1, 0}, mgl32.Vec2{1, 0}, true},
		{"start on tail", mgl32.Vec2{0, 1}, mgl32.Vec2{1, 0}, true},
		{"start on middle", mgl32.Vec2{0.5, 0.5}, mgl32.Vec2{1, 0}, true},
		{"collinear facing", mgl32.Vec2{2, -1}, mgl32.Vec2{-1, 1}, true},
		{"collinear away", mgl32.Vec2{2, -1}, mgl32.Vec2{1, -1}, false},
	}

	for _, tt := range tests {
		if got := RayIntersectsSegment(head, tail, tt.pos, tt.dir, true); got != tt.want {
			t.Errorf("%s: RayIntersectsSegment = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestRayIntersectsSegmentParallelHitInvalid(t *testing.T) {
	head := mgl32.Vec2{1, 0}
	tail := mgl32.Vec2{0, 1}
	if RayIntersectsSegment(head, tail, mgl32.Vec2{2, -1}, mgl32.Vec2{-1, 1}, false) {
		t.Error("collinear approach should not count when parallel hits are invalid")
	}
	if !RayIntersectsSegment(head, tail, mgl32.Vec2{0.5, 0.5}, mgl32.Vec2{-1, 1}, false) {
		t.Error("ray starting inside the segment always intersects")
	}
}

func TestRayIntersectsPointSegment(t *testing.T) {
	point := mgl32.Vec2{2, 2}
	if !RayIntersectsSegment(point, point, mgl32.Vec2{0, 0}, mgl32.Vec2{1, 1}, true) {
		t.Error("ray aimed at point segment should intersect")
	}
	if RayIntersectsSegment(point, point, mgl32.Vec2{0, 0}, mgl32.Vec2{1, 0.9}, true) {
		t.Error("ray missing point segment should not intersect")
	}
	if !RayIntersectsSegment(point, point, point, mgl32.Vec2{1, 0}, true) {
		t.Error("ray starting on point segment should intersect")
	}
}

func TestTextureIndexOnLine(t *testing.T) {
	head := mgl32.Vec2{0, 0}
	tail := mgl32.Vec2{10, 0}

	tests := []struct {
		name     string
		pos, dir mgl32.Vec2
		want     float32
	}{
		{"straight down", mgl32.Vec2{3, 5}, mgl32.Vec2{0, -1}, 3},
		{"behind head", mgl32.Vec2{-2, 5}, mgl32.Vec2{0, -1}, -2},
		{"diagonal", mgl32.Vec2{0, 4}, mgl32.Vec2{1, -1}, 4},
		{"collinear toward head", mgl32.Vec2{-5, 0}, mgl32.Vec2{1, 0}, 0},
		{"collinear away from head", mgl32.Vec2{4, 0}, mgl32.Vec2{1, 0}, 4},
	}

	for _, tt := range tests {
		got := TextureIndexOnLine(head, tail, tt.pos, tt.dir)
		if !almostEqual(got, tt.want) {
			t.Errorf("%s: TextureIndexOnLine = %v, want %v", tt.name, got, tt.want)
		}
	}

	if got := TextureIndexOnLine(head, tail, mgl32.Vec2{0, 1}, mgl32.Vec2{1, 0}); got != Inf {
		t.Errorf("parallel off-line texture = %v, want +Inf", got)
	}
}

func TestFastRotate(t *testing.T) {
	quarter := FastRotate(mgl32.Vec2{1, 0}, 0, 1)
	if !almostEqual(quarter.X(), 0) || !almostEqual(quarter.Y(), -1) {
		t.Errorf("positive sine should rotate clockwise, got %v", quarter)
	}

	back := FastRotate(quarter, 0, -1)
	if !almostEqual(back.X(), 1) || !almostEqual(back.Y(), 0) {
		t.Errorf("negative sine should undo rotation, got %v", back)
	}

	scaled := FastRotate(mgl32.Vec2{1, 0}, 2, 0)
	if !almostEqual(scaled.Len(), 1) {
		t.Errorf("improper cos/sin should keep length, got %v", scaled.Len())
	}
}

func TestAbsoluteClamp(t *testing.T) {
	tests := []struct {
		value, limit, want float32
	}{
		{10, 3, 3},
		{-10, 3, -3},
		{2, 3, 2},
		{-2, 3, -2},
		{5, -1, 0},
	}
	for _, tt := range tests {
		if got := AbsoluteClamp(tt.value, tt.limit); got != tt.want {
			t.Errorf("AbsoluteClamp(%v, %v) = %v, want %v", tt.value, tt.limit, got, tt.want)
		}
	}
}
