package sink

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/branislavfamily/familysite/pkg/render/tree"
)

// TextOption configures [RenderText] and [NewCanvas].
type TextOption func(*textRenderer)

type textRenderer struct {
	border    lipgloss.Border
	cardStyle func(tree.Box) *lipgloss.Style
	lineStyle *lipgloss.Style
}

// WithBorder selects the card border characters.
func WithBorder(b lipgloss.Border) TextOption {
	return func(r *textRenderer) { r.border = b }
}

// WithCardStyle styles each card's cells. Returning nil leaves a card plain.
func WithCardStyle(fn func(tree.Box) *lipgloss.Style) TextOption {
	return func(r *textRenderer) { r.cardStyle = fn }
}

// WithLineStyle styles connector cells.
func WithLineStyle(s lipgloss.Style) TextOption {
	return func(r *textRenderer) { r.lineStyle = &s }
}

type cell struct {
	r     rune
	style *lipgloss.Style
}

// Canvas is a character grid holding a drawn layout.
type Canvas struct {
	w, h  int
	cells [][]cell
}

// NewCanvas draws l into a grid of l.Width by l.Height cells. Layout units
// are taken as cells; fractional positions are rounded.
func NewCanvas(l tree.Layout, opts ...TextOption) *Canvas {
	r := textRenderer{border: lipgloss.RoundedBorder()}
	for _, opt := range opts {
		opt(&r)
	}

	c := &Canvas{w: cells(l.Width), h: cells(l.Height)}
	c.cells = make([][]cell, c.h)
	for y := range c.cells {
		c.cells[y] = make([]cell, c.w)
		for x := range c.cells[y] {
			c.cells[y][x].r = ' '
		}
	}

	for _, ln := range l.Lines {
		c.line(ln, r.lineStyle)
	}
	for _, b := range l.Boxes {
		var st *lipgloss.Style
		if r.cardStyle != nil {
			st = r.cardStyle(b)
		}
		c.card(b, r.border, st)
	}
	return c
}

// Size returns the canvas width and height in cells.
func (c *Canvas) Size() (int, int) { return c.w, c.h }

// Lines renders the rectangle starting at (x0, y0) with the given size.
// Cells outside the canvas are blank, so the window may extend past any edge.
func (c *Canvas) Lines(x0, y0, w, h int) []string {
	out := make([]string, 0, h)
	for y := y0; y < y0+h; y++ {
		var b strings.Builder
		var run []rune
		var runStyle *lipgloss.Style
		flush := func() {
			if len(run) == 0 {
				return
			}
			if runStyle != nil {
				b.WriteString(runStyle.Render(string(run)))
			} else {
				b.WriteString(string(run))
			}
			run = run[:0]
		}
		for x := x0; x < x0+w; x++ {
			cl := cell{r: ' '}
			if y >= 0 && y < c.h && x >= 0 && x < c.w {
				cl = c.cells[y][x]
			}
			if cl.style != runStyle {
				flush()
				runStyle = cl.style
			}
			run = append(run, cl.r)
		}
		flush()
		out = append(out, b.String())
	}
	return out
}

// String renders the whole canvas with trailing spaces trimmed.
func (c *Canvas) String() string {
	lines := c.Lines(0, 0, c.w, c.h)
	for i, ln := range lines {
		lines[i] = strings.TrimRight(ln, " ")
	}
	return strings.Join(lines, "\n") + "\n"
}

// RenderText draws l as terminal text.
func RenderText(l tree.Layout, opts ...TextOption) []byte {
	return []byte(NewCanvas(l, opts...).String())
}

func (c *Canvas) set(x, y int, r rune, st *lipgloss.Style) {
	if y < 0 || y >= c.h || x < 0 || x >= c.w {
		return
	}
	c.cells[y][x] = cell{r: r, style: st}
}

func (c *Canvas) line(ln tree.Line, st *lipgloss.Style) {
	x1, y1, x2, y2 := cells(ln.X1), cells(ln.Y1), cells(ln.X2), cells(ln.Y2)
	if ln.Kind == tree.Vertical {
		for y := y1; y < y2; y++ {
			c.set(x1, y, '│', st)
		}
		return
	}
	for x := x1; x < x2; x++ {
		c.set(x, y1, '─', st)
	}
}

func (c *Canvas) card(b tree.Box, br lipgloss.Border, st *lipgloss.Style) {
	x0, y0 := cells(b.X), cells(b.Y)
	w, h := cells(b.W), cells(b.H)
	if w < 2 || h < 2 {
		return
	}
	x1, y1 := x0+w-1, y0+h-1

	c.set(x0, y0, first(br.TopLeft), st)
	c.set(x1, y0, first(br.TopRight), st)
	c.set(x0, y1, first(br.BottomLeft), st)
	c.set(x1, y1, first(br.BottomRight), st)
	for x := x0 + 1; x < x1; x++ {
		c.set(x, y0, first(br.Top), st)
		c.set(x, y1, first(br.Bottom), st)
	}
	for y := y0 + 1; y < y1; y++ {
		c.set(x0, y, first(br.Left), st)
		c.set(x1, y, first(br.Right), st)
		for x := x0 + 1; x < x1; x++ {
			c.set(x, y, ' ', st)
		}
	}

	inner := w - 2
	text := []string{b.Card.Name, b.Card.Role}
	for i := 0; i < len(text) && y0+1+i < y1; i++ {
		s := []rune(truncate(text[i], inner))
		left := x0 + 1 + (inner-len(s))/2
		for j, r := range s {
			c.set(left+j, y0+1+i, r, st)
		}
	}
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= n {
		return s
	}
	r := []rune(s)
	if n == 1 {
		return "…"
	}
	if len(r) > n-1 {
		r = r[:n-1]
	}
	return string(r) + "…"
}

func first(s string) rune {
	for _, r := range s {
		return r
	}
	return ' '
}

func cells(v float64) int { return int(math.Round(v)) }
