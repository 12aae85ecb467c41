package tree

import "math"

// Metrics are the fixed sizes used by [Measure]. Units are whatever the sink
// draws in: pixels for SVG, character cells for text.
type Metrics struct {
	CardWidth  float64
	CardHeight float64
	SiblingGap float64 // horizontal space between adjacent subtrees
	Connector  float64 // length of the vertical connector
	Padding    float64 // margin around the whole drawing
}

// DefaultMetrics sizes cards for the SVG sink.
var DefaultMetrics = Metrics{
	CardWidth:  180,
	CardHeight: 112,
	SiblingGap: 32,
	Connector:  32,
	Padding:    24,
}

// TextMetrics sizes cards in terminal cells.
var TextMetrics = Metrics{
	CardWidth:  22,
	CardHeight: 4,
	SiblingGap: 4,
	Connector:  2,
	Padding:    1,
}

// Scaled returns m with every length multiplied by s and rounded to whole
// units, keeping cards at least 3x3.
func (m Metrics) Scaled(s float64) Metrics {
	r := func(v, min float64) float64 { return math.Max(min, math.Round(v*s)) }
	return Metrics{
		CardWidth:  r(m.CardWidth, 3),
		CardHeight: r(m.CardHeight, 3),
		SiblingGap: r(m.SiblingGap, 1),
		Connector:  r(m.Connector, 1),
		Padding:    m.Padding,
	}
}

// Box is a placed card. X and Y are the top-left corner.
type Box struct {
	Card Card
	X, Y float64
	W, H float64
}

// CenterX returns the horizontal center of the box.
func (b Box) CenterX() float64 { return b.X + b.W/2 }

// CenterY returns the vertical center of the box.
func (b Box) CenterY() float64 { return b.Y + b.H/2 }

// Contains reports whether (x, y) lies inside the box.
func (b Box) Contains(x, y float64) bool {
	return x >= b.X && x < b.X+b.W && y >= b.Y && y < b.Y+b.H
}

// LineKind distinguishes the two connector types.
type LineKind int

const (
	// Vertical joins a card to its row of children.
	Vertical LineKind = iota
	// Sibling joins two adjacent cards in a row.
	Sibling
)

func (k LineKind) String() string {
	if k == Sibling {
		return "sibling"
	}
	return "vertical"
}

// Line is a connector segment.
type Line struct {
	Kind           LineKind
	X1, Y1, X2, Y2 float64
}

// Layout is a measured view.
type Layout struct {
	Boxes  []Box // pre-order
	Lines  []Line
	Width  float64
	Height float64
}

// Center returns the midpoint of the drawing.
func (l Layout) Center() (float64, float64) { return l.Width / 2, l.Height / 2 }

// BoxAt returns the box containing (x, y).
func (l Layout) BoxAt(x, y float64) (Box, bool) {
	for _, b := range l.Boxes {
		if b.Contains(x, y) {
			return b, true
		}
	}
	return Box{}, false
}

// Measure places v using m. Each card is centered above the row of its
// children; a row is as wide as its subtrees plus the sibling gaps.
func Measure(v *View, m Metrics) Layout {
	var l Layout
	if v == nil {
		return l
	}
	widths := make(map[*View]float64)
	subtreeWidth(v, m, widths)

	place(v, m, widths, m.Padding, m.Padding, &l)
	l.Width = widths[v] + 2*m.Padding
	l.Height = subtreeHeight(v, m) + 2*m.Padding
	return l
}

func subtreeWidth(v *View, m Metrics, memo map[*View]float64) float64 {
	if v.IsLeaf() {
		memo[v] = m.CardWidth
		return m.CardWidth
	}
	row := 0.0
	for i, s := range v.Children {
		if i > 0 {
			row += m.SiblingGap
		}
		row += subtreeWidth(s.View, m, memo)
	}
	w := math.Max(m.CardWidth, row)
	memo[v] = w
	return w
}

func subtreeHeight(v *View, m Metrics) float64 {
	h := 0.0
	for _, s := range v.Children {
		h = math.Max(h, subtreeHeight(s.View, m))
	}
	if v.IsLeaf() {
		return m.CardHeight
	}
	return m.CardHeight + m.Connector + h
}

func place(v *View, m Metrics, widths map[*View]float64, left, top float64, l *Layout) Box {
	w := widths[v]
	box := Box{
		Card: v.Card,
		X:    left + (w-m.CardWidth)/2,
		Y:    top,
		W:    m.CardWidth,
		H:    m.CardHeight,
	}
	l.Boxes = append(l.Boxes, box)
	if v.IsLeaf() {
		return box
	}

	cx := box.CenterX()
	rowTop := top + m.CardHeight + m.Connector
	l.Lines = append(l.Lines, Line{Kind: Vertical, X1: cx, Y1: top + m.CardHeight, X2: cx, Y2: rowTop})

	row := 0.0
	for i, s := range v.Children {
		if i > 0 {
			row += m.SiblingGap
		}
		row += widths[s.View]
	}
	x := left + (w-row)/2
	var prev *Box
	for _, s := range v.Children {
		child := place(s.View, m, widths, x, rowTop, l)
		if prev != nil {
			y := rowTop + m.CardHeight/2
			l.Lines = append(l.Lines, Line{Kind: Sibling, X1: prev.X + prev.W, Y1: y, X2: child.X, Y2: y})
		}
		if s.SiblingConnector {
			prev = &child
		} else {
			prev = nil
		}
		x += widths[s.View] + m.SiblingGap
	}
	return box
}
