// Package nodelink renders a family tree as a classic node-link diagram.
//
// # Overview
//
// Where the tree renderer draws nested cards, this package hands the tree to
// Graphviz: every person becomes a rounded box, every parent-child relation
// an edge, laid out top to bottom.
//
// # Usage
//
//	dot := nodelink.ToDOT(family.Sample(), nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [ToDOT] output can also be saved and processed with external Graphviz
// tools.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering; no Graphviz installation is needed.
package nodelink
