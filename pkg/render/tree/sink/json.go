package sink

import (
	"encoding/json"

	"github.com/branislavfamily/familysite/pkg/render/tree"
	"github.com/branislavfamily/familysite/pkg/viewport"
)

type jsonOutput struct {
	Width     float64       `json:"width"`
	Height    float64       `json:"height"`
	Transform jsonTransform `json:"transform"`
	Cards     []jsonCard    `json:"cards"`
	Lines     []jsonLine    `json:"lines,omitempty"`
	Tree      *tree.View    `json:"tree,omitempty"`
}

type jsonTransform struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Scale float64 `json:"scale"`
	CSS   string  `json:"css"`
}

type jsonCard struct {
	tree.Card
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type jsonLine struct {
	Kind string  `json:"kind"`
	X1   float64 `json:"x1"`
	Y1   float64 `json:"y1"`
	X2   float64 `json:"x2"`
	Y2   float64 `json:"y2"`
}

// RenderJSON exports the nested view, its measured layout and the transform
// as an indented JSON document. v may be nil to export only the layout.
func RenderJSON(v *tree.View, l tree.Layout, t viewport.Transform) ([]byte, error) {
	out := jsonOutput{
		Width:     l.Width,
		Height:    l.Height,
		Transform: jsonTransform{X: t.X, Y: t.Y, Scale: t.Scale, CSS: t.CSS()},
		Cards:     make([]jsonCard, 0, len(l.Boxes)),
		Tree:      v,
	}
	for _, b := range l.Boxes {
		out.Cards = append(out.Cards, jsonCard{Card: b.Card, X: b.X, Y: b.Y, Width: b.W, Height: b.H})
	}
	for _, ln := range l.Lines {
		out.Lines = append(out.Lines, jsonLine{Kind: ln.Kind.String(), X1: ln.X1, Y1: ln.Y1, X2: ln.X2, Y2: ln.Y2})
	}
	return json.MarshalIndent(out, "", "  ")
}
