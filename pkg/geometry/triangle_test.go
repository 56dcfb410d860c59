package geometry

import (
	"math"
	"testing"

	"github.com/davfry/go-whitted-raytracer/pkg/core"
)

func defaultTriangle(t *testing.T) Triangle {
	t.Helper()
	tri, err := NewTriangle(
		core.NewPoint(0, 1, 0),
		core.NewPoint(-1, 0, 0),
		core.NewPoint(1, 0, 0),
	)
	if err != nil {
		t.Fatalf("NewTriangle: %v", err)
	}
	return tri
}

func TestNewTriangle(t *testing.T) {
	tri := defaultTriangle(t)

	if !tri.E1.Equals(core.NewVector(-1, -1, 0)) {
		t.Errorf("e1: got %v", tri.E1)
	}
	if !tri.E2.Equals(core.NewVector(1, -1, 0)) {
		t.Errorf("e2: got %v", tri.E2)
	}
	if !tri.Normal.Equals(core.NewVector(0, 0, -1)) {
		t.Errorf("normal: got %v", tri.Normal)
	}
}

func TestNewTriangle_Degenerate(t *testing.T) {
	// collinear vertices span no area
	_, err := NewTriangle(
		core.NewPoint(0, 0, 0),
		core.NewPoint(1, 1, 1),
		core.NewPoint(2, 2, 2),
	)
	if err == nil {
		t.Fatal("expected an error for a degenerate triangle")
	}

	_, err = NewTriangle(
		core.NewPoint(1, 2, 3),
		core.NewPoint(1, 2, 3),
		core.NewPoint(4, 5, 6),
	)
	if err == nil {
		t.Fatal("expected an error for duplicate vertices")
	}
}

func TestTriangleIntersect(t *testing.T) {
	tri := defaultTriangle(t)
	tests := []struct {
		name      string
		origin    core.Tuple
		direction core.Tuple
		hit       bool
		t         float64
	}{
		{"parallel ray", core.NewPoint(0, -1, -2), core.NewVector(0, 1, 0), false, 0},
		{"misses over p1-p3 edge", core.NewPoint(1, 1, -2), core.NewVector(0, 0, 1), false, 0},
		{"misses over p1-p2 edge", core.NewPoint(-1, 1, -2), core.NewVector(0, 0, 1), false, 0},
		{"misses under p2-p3 edge", core.NewPoint(0, -1, -2), core.NewVector(0, 0, 1), false, 0},
		{"strikes the interior", core.NewPoint(0, 0.5, -2), core.NewVector(0, 0, 1), true, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tHit, _, _, ok := tri.Intersect(core.NewRay(tt.origin, tt.direction))
			if ok != tt.hit {
				t.Fatalf("hit: expected %v, got %v", tt.hit, ok)
			}
			if ok && math.Abs(tHit-tt.t) > core.Epsilon {
				t.Errorf("t: expected %v, got %v", tt.t, tHit)
			}
		})
	}
}

func TestTriangleNormalAt(t *testing.T) {
	tri := defaultTriangle(t)
	for _, p := range []core.Tuple{
		core.NewPoint(0, 0.5, 0),
		core.NewPoint(-0.5, 0.75, 0),
		core.NewPoint(0.5, 0.25, 0),
	} {
		if n := tri.NormalAt(p); !n.Equals(tri.Normal) {
			t.Errorf("normal at %v: got %v", p, n)
		}
	}
}

func TestTriangleBounds(t *testing.T) {
	tri, err := NewTriangle(
		core.NewPoint(-3, 7, 2),
		core.NewPoint(6, 2, -4),
		core.NewPoint(2, -1, -1),
	)
	if err != nil {
		t.Fatalf("NewTriangle: %v", err)
	}

	b := tri.Bounds()
	if !b.Min.Equals(core.NewPoint(-3, -1, -4)) || !b.Max.Equals(core.NewPoint(6, 7, 2)) {
		t.Errorf("unexpected bounds %v", b)
	}
}

func defaultSmoothTriangle(t *testing.T) SmoothTriangle {
	t.Helper()
	tri, err := NewSmoothTriangle(
		core.NewPoint(0, 1, 0),
		core.NewPoint(-1, 0, 0),
		core.NewPoint(1, 0, 0),
		core.NewVector(0, 1, 0),
		core.NewVector(-1, 0, 0),
		core.NewVector(1, 0, 0),
	)
	if err != nil {
		t.Fatalf("NewSmoothTriangle: %v", err)
	}
	return tri
}

func TestSmoothTriangleIntersect_UV(t *testing.T) {
	tri := defaultSmoothTriangle(t)
	ray := core.NewRay(core.NewPoint(-0.2, 0.3, -2), core.NewVector(0, 0, 1))

	_, u, v, ok := tri.Intersect(ray)
	if !ok {
		t.Fatal("expected a hit")
	}
	if math.Abs(u-0.45) > core.Epsilon || math.Abs(v-0.25) > core.Epsilon {
		t.Errorf("expected u=0.45 v=0.25, got u=%v v=%v", u, v)
	}
}

func TestSmoothTriangleNormalAtUV(t *testing.T) {
	tri := defaultSmoothTriangle(t)

	n := tri.NormalAtUV(0.45, 0.25)
	expected := core.NewVector(-0.5547, 0.83205, 0)
	if !n.Normalize().Equals(expected) {
		t.Errorf("expected %v, got %v", expected, n.Normalize())
	}
}
