package viewport

import (
	"fmt"
	"math"
)

// Scale bounds and the discrete zoom step.
const (
	MinScale = 0.5
	MaxScale = 2.0
	ZoomStep = 0.2
)

// Point is a position or displacement in container coordinates.
type Point struct {
	X, Y float64
}

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Dist returns the Euclidean distance between p and q.
func (p Point) Dist(q Point) float64 { return math.Hypot(q.X-p.X, q.Y-p.Y) }

// Transform is the composed translate-then-scale applied to the tree.
type Transform struct {
	X, Y  float64
	Scale float64
}

// Identity is the transform of a freshly mounted viewer.
var Identity = Transform{Scale: 1}

// CSS formats t as a CSS transform value. The element is expected to use a
// centered transform-origin.
func (t Transform) CSS() string {
	return fmt.Sprintf("translate(%spx, %spx) scale(%s)", num(t.X), num(t.Y), num(t.Scale))
}

// SVG formats t as an SVG transform attribute with the origin at (0,0).
func (t Transform) SVG() string {
	return fmt.Sprintf("translate(%s,%s) scale(%s)", num(t.X), num(t.Y), num(t.Scale))
}

// Around formats t as an SVG transform whose scale is applied around (cx, cy),
// matching a CSS transform with a centered origin.
func (t Transform) Around(cx, cy float64) string {
	return fmt.Sprintf("translate(%s,%s) scale(%s) translate(%s,%s)",
		num(t.X+cx), num(t.Y+cy), num(t.Scale), num(-cx), num(-cy))
}

// Apply maps a content point through t around the center (cx, cy).
func (t Transform) Apply(p, center Point) Point {
	return Point{
		X: (p.X-center.X)*t.Scale + center.X + t.X,
		Y: (p.Y-center.Y)*t.Scale + center.Y + t.Y,
	}
}

func num(v float64) string {
	return fmt.Sprintf("%g", math.Round(v*1000)/1000)
}

// Controller holds the viewer's scale and offset and the in-flight gesture.
type Controller struct {
	scale  float64
	offset Point

	dragging  bool
	dragStart Point

	// pinchDist is the finger distance seen on the previous pinch frame,
	// zero when no pinch frame has been recorded yet.
	pinchDist float64
}

// New returns a controller at scale 1 with no offset.
func New() *Controller {
	return &Controller{scale: 1}
}

// NewAt returns a controller initialised to t, with the scale clamped.
// Used to mount a viewer on a previously shared view.
func NewAt(t Transform) *Controller {
	c := New()
	if !math.IsNaN(t.Scale) && t.Scale != 0 {
		c.scale = clamp(t.Scale)
	}
	if finite(t.X) && finite(t.Y) {
		c.offset = Point{t.X, t.Y}
	}
	return c
}

// Scale returns the current zoom factor.
func (c *Controller) Scale() float64 { return c.scale }

// Offset returns the current pan offset.
func (c *Controller) Offset() Point { return c.offset }

// Dragging reports whether a pointer or single-touch pan is being tracked.
func (c *Controller) Dragging() bool { return c.dragging }

// Transform returns the current view transform.
func (c *Controller) Transform() Transform {
	return Transform{X: c.offset.X, Y: c.offset.Y, Scale: c.scale}
}

// CanZoomIn reports whether ZoomIn would change the scale.
func (c *Controller) CanZoomIn() bool { return c.scale < MaxScale }

// CanZoomOut reports whether ZoomOut would change the scale.
func (c *Controller) CanZoomOut() bool { return c.scale > MinScale }

// ZoomIn raises the scale by one step, stopping at MaxScale.
func (c *Controller) ZoomIn() {
	c.scale = math.Min(step(c.scale+ZoomStep), MaxScale)
}

// ZoomOut lowers the scale by one step, stopping at MinScale.
func (c *Controller) ZoomOut() {
	c.scale = math.Max(step(c.scale-ZoomStep), MinScale)
}

// Reset restores scale 1 and a zero offset. An in-flight gesture keeps
// running from the new state.
func (c *Controller) Reset() {
	c.scale = 1
	c.offset = Point{}
}

// PanBy moves the offset by d without touching the scale or any gesture in
// flight. Used for keyboard panning.
func (c *Controller) PanBy(d Point) {
	if finite(d.X) && finite(d.Y) {
		c.offset = c.offset.Add(d)
	}
}

// step snaps a discrete zoom result onto the hundredths grid when it is
// within float error of it, so repeated steps land exactly on 1.2 or the
// scale bounds. Off-grid scales left by a pinch move by exactly ZoomStep.
func step(v float64) float64 {
	r := math.Round(v*100) / 100
	if math.Abs(v-r) < 1e-9 {
		return r
	}
	return v
}

func clamp(v float64) float64 {
	return math.Max(MinScale, math.Min(MaxScale, v))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
