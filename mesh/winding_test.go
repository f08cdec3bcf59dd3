package mesh

import (
	"testing"

	"golang.org/x/image/math/f32"
)

func TestAdjustSpriteWinding(t *testing.T) {
	positions := []f32.Vec2{{0, 0}, {10, 0}, {0, 10}}
	tests := []struct {
		name    string
		indices []Index
		want    []Index
	}{
		{"clockwise unchanged", []Index{0, 1, 2}, []Index{0, 1, 2}},
		{"counter-clockwise flipped", []Index{0, 2, 1}, []Index{2, 0, 1}},
		{"mixed", []Index{0, 1, 2, 1, 0, 2}, []Index{0, 1, 2, 0, 1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := make([]Index, len(tt.indices))
			AdjustSpriteWinding(positions, tt.indices, out)
			for i := range out {
				if out[i] != tt.want[i] {
					t.Fatalf("AdjustSpriteWinding() = %v, want %v", out, tt.want)
				}
			}
			for i := 0; i < len(out); i += 3 {
				if !TriangleIsClockwise(positions[out[i]], positions[out[i+1]], positions[out[i+2]]) {
					t.Errorf("triangle %d not clockwise after adjustment", i/3)
				}
			}
		})
	}
}

func TestAdjustSpriteWindingDegenerate(t *testing.T) {
	positions := []f32.Vec2{{0, 0}, {5, 0}, {10, 0}}
	out := make([]Index, 3)
	AdjustSpriteWinding(positions, []Index{2, 1, 0}, out)
	if out[0] != 2 || out[1] != 1 || out[2] != 0 {
		t.Errorf("degenerate triangle changed: %v", out)
	}
}

func TestQuadIndicesClockwise(t *testing.T) {
	quad := []f32.Vec2{{0, 0}, {100, 0}, {100, 50}, {0, 50}}
	for i := 0; i < len(QuadIndices); i += 3 {
		a, b, c := quad[QuadIndices[i]], quad[QuadIndices[i+1]], quad[QuadIndices[i+2]]
		if !TriangleIsClockwise(a, b, c) {
			t.Errorf("quad triangle %d is not clockwise", i/3)
		}
	}
}

func TestShapeWindingIsClockwise(t *testing.T) {
	if !ShapeWindingIsClockwise(0, 0) {
		t.Error("equal depth and ref should be clockwise")
	}
	if ShapeWindingIsClockwise(1, 0) {
		t.Error("depth ahead of ref should be counter-clockwise")
	}
}
