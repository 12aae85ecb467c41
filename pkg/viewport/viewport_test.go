package viewport

import (
	"math"
	"testing"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestNew(t *testing.T) {
	c := New()
	if c.Scale() != 1 {
		t.Errorf("Scale() = %v, want 1", c.Scale())
	}
	if c.Offset() != (Point{}) {
		t.Errorf("Offset() = %v, want zero", c.Offset())
	}
	if c.Dragging() {
		t.Error("Dragging() = true on a new controller")
	}
	if c.Transform() != Identity {
		t.Errorf("Transform() = %+v, want %+v", c.Transform(), Identity)
	}
}

func TestNewAt(t *testing.T) {
	tests := []struct {
		name string
		in   Transform
		want Transform
	}{
		{"identity", Identity, Identity},
		{"offset kept", Transform{X: 10, Y: -4, Scale: 1.4}, Transform{X: 10, Y: -4, Scale: 1.4}},
		{"scale clamped high", Transform{Scale: 9}, Transform{Scale: MaxScale}},
		{"scale clamped low", Transform{Scale: 0.1}, Transform{Scale: MinScale}},
		{"zero scale", Transform{X: 3}, Transform{X: 3, Scale: 1}},
		{"nan scale", Transform{Scale: math.NaN()}, Identity},
		{"inf offset", Transform{X: math.Inf(1), Y: 2, Scale: 1}, Identity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewAt(tt.in).Transform(); got != tt.want {
				t.Errorf("NewAt(%+v).Transform() = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestZoomIn(t *testing.T) {
	c := New()
	want := []float64{1.2, 1.4, 1.6, 1.8, 2.0, 2.0, 2.0}
	for i, w := range want {
		c.ZoomIn()
		if c.Scale() != w {
			t.Fatalf("after %d ZoomIn: scale = %v, want %v", i+1, c.Scale(), w)
		}
	}
	if c.CanZoomIn() {
		t.Error("CanZoomIn() = true at max scale")
	}
	if !c.CanZoomOut() {
		t.Error("CanZoomOut() = false at max scale")
	}
}

func TestZoomOut(t *testing.T) {
	c := New()
	want := []float64{0.8, 0.6, 0.5, 0.5}
	for i, w := range want {
		c.ZoomOut()
		if c.Scale() != w {
			t.Fatalf("after %d ZoomOut: scale = %v, want %v", i+1, c.Scale(), w)
		}
	}
	if c.CanZoomOut() {
		t.Error("CanZoomOut() = true at min scale")
	}
	if !c.CanZoomIn() {
		t.Error("CanZoomIn() = false at min scale")
	}
}

func TestZoomStaysInBounds(t *testing.T) {
	c := New()
	ops := []func(){c.ZoomIn, c.ZoomOut, c.ZoomIn, c.ZoomIn, c.ZoomIn, c.ZoomIn, c.ZoomIn,
		c.ZoomIn, c.ZoomOut, c.ZoomOut, c.ZoomOut, c.ZoomOut, c.ZoomOut, c.ZoomOut, c.ZoomOut, c.ZoomOut}
	for i, op := range ops {
		op()
		if s := c.Scale(); s < MinScale || s > MaxScale {
			t.Fatalf("op %d: scale %v out of [%v, %v]", i, s, MinScale, MaxScale)
		}
	}
}

func TestZoomKeepsOffset(t *testing.T) {
	c := New()
	c.PointerDown(ButtonPrimary, Point{0, 0})
	c.PointerMove(Point{30, 40})
	c.PointerUp()

	c.ZoomIn()
	if c.Offset() != (Point{30, 40}) {
		t.Errorf("Offset() = %v after ZoomIn, want {30 40}", c.Offset())
	}
}

func TestReset(t *testing.T) {
	c := New()
	c.ZoomIn()
	c.ZoomIn()
	c.PointerDown(ButtonPrimary, Point{5, 5})
	c.PointerMove(Point{105, 55})
	c.PointerUp()

	c.Reset()
	if c.Transform() != Identity {
		t.Errorf("Transform() after Reset = %+v, want %+v", c.Transform(), Identity)
	}
}

func TestPanBy(t *testing.T) {
	c := NewAt(Transform{X: 5, Y: 5, Scale: 1.4})
	c.PanBy(Point{-2, 3})
	c.PanBy(Point{math.NaN(), 1})
	if c.Offset() != (Point{3, 8}) {
		t.Errorf("Offset() = %v, want {3 8}", c.Offset())
	}
	if c.Scale() != 1.4 {
		t.Errorf("Scale() = %v, want 1.4", c.Scale())
	}
}

func TestTransformFormats(t *testing.T) {
	tr := Transform{X: 12.5, Y: -3, Scale: 1.2}

	if got, want := tr.CSS(), "translate(12.5px, -3px) scale(1.2)"; got != want {
		t.Errorf("CSS() = %q, want %q", got, want)
	}
	if got, want := tr.SVG(), "translate(12.5,-3) scale(1.2)"; got != want {
		t.Errorf("SVG() = %q, want %q", got, want)
	}
	if got, want := tr.Around(100, 50), "translate(112.5,47) scale(1.2) translate(-100,-50)"; got != want {
		t.Errorf("Around() = %q, want %q", got, want)
	}
	if got, want := Identity.CSS(), "translate(0px, 0px) scale(1)"; got != want {
		t.Errorf("Identity.CSS() = %q, want %q", got, want)
	}
}

func TestTransformApply(t *testing.T) {
	center := Point{100, 100}
	tests := []struct {
		name string
		tr   Transform
		in   Point
		want Point
	}{
		{"identity", Identity, Point{10, 20}, Point{10, 20}},
		{"center is fixed under scale", Transform{Scale: 2}, center, center},
		{"scale around center", Transform{Scale: 2}, Point{110, 100}, Point{120, 100}},
		{"translate after scale", Transform{X: 5, Y: -5, Scale: 0.5}, Point{0, 0}, Point{55, 45}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.tr.Apply(tt.in, center)
			if !approx(got.X, tt.want.X) || !approx(got.Y, tt.want.Y) {
				t.Errorf("Apply(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
