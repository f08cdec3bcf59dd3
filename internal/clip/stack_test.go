package clip

import (
	"testing"

	"github.com/gogpu/uipaint/geom"
)

func TestNewClipStack(t *testing.T) {
	bounds := geom.R(0, 0, 100, 100)
	stack := NewClipStack(bounds)

	if stack.Depth() != 0 {
		t.Errorf("Depth() = %d, want 0", stack.Depth())
	}
	if stack.Bounds() != bounds {
		t.Errorf("Bounds() = %v, want %v", stack.Bounds(), bounds)
	}
}

func TestClipStack_PushRect(t *testing.T) {
	stack := NewClipStack(geom.R(0, 0, 100, 100))

	tests := []struct {
		name       string
		rect       geom.Rect
		wantBounds geom.Rect
		wantDepth  int
	}{
		{
			name:       "push smaller rect",
			rect:       geom.R(10, 10, 50, 50),
			wantBounds: geom.R(10, 10, 50, 50),
			wantDepth:  1,
		},
		{
			name:       "push overlapping rect",
			rect:       geom.R(30, 30, 50, 50),
			wantBounds: geom.R(30, 30, 30, 30),
			wantDepth:  2,
		},
		{
			name:       "push disjoint rect",
			rect:       geom.R(200, 200, 10, 10),
			wantBounds: geom.R(200, 200, 0, 0),
			wantDepth:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stack.PushRect(tt.rect)

			if stack.Depth() != tt.wantDepth {
				t.Errorf("Depth() = %d, want %d", stack.Depth(), tt.wantDepth)
			}
			if stack.Bounds() != tt.wantBounds {
				t.Errorf("Bounds() = %v, want %v", stack.Bounds(), tt.wantBounds)
			}
		})
	}
	if !stack.IsEmpty() {
		t.Error("disjoint clip not empty")
	}
}

func TestClipStack_Pop(t *testing.T) {
	root := geom.R(0, 0, 100, 100)
	stack := NewClipStack(root)
	stack.PushRect(geom.R(10, 10, 20, 20))
	stack.PushReplace(geom.R(0, 0, 64, 64))

	if got := stack.Bounds(); got != geom.R(0, 0, 64, 64) {
		t.Errorf("after replace Bounds() = %v", got)
	}
	if !stack.Pop() || stack.Bounds() != geom.R(10, 10, 20, 20) {
		t.Errorf("after first pop Bounds() = %v", stack.Bounds())
	}
	if !stack.Pop() || stack.Bounds() != root {
		t.Errorf("after second pop Bounds() = %v", stack.Bounds())
	}
	if stack.Pop() {
		t.Error("Pop on empty stack reported true")
	}
}

func TestClipStack_Reset(t *testing.T) {
	stack := NewClipStack(geom.R(0, 0, 100, 100))
	stack.PushRect(geom.R(10, 10, 20, 20))
	stack.Reset(geom.R(0, 0, 50, 50))

	if stack.Depth() != 0 || stack.Bounds() != geom.R(0, 0, 50, 50) {
		t.Errorf("after Reset depth=%d bounds=%v", stack.Depth(), stack.Bounds())
	}
}
