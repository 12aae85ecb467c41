// Package render holds the family tree renderers.
//
// # Overview
//
//   - [tree]: the nested card view, its fixed-metric layout, and
//     (in [tree/sink]) the HTML, SVG, JSON and terminal text outputs.
//   - [nodelink]: a Graphviz node-link diagram of the same tree.
//
// Both are pure functions of a [family.Person]; the pan and zoom state from
// [viewport] is passed in as a transform and never changes the layout.
//
//	v := tree.Build(root)
//	svg := sink.RenderSVG(tree.Measure(v, tree.DefaultMetrics))
//	dot := nodelink.ToDOT(root, nodelink.Options{})
//
// [tree]: github.com/branislavfamily/familysite/pkg/render/tree
// [tree/sink]: github.com/branislavfamily/familysite/pkg/render/tree/sink
// [nodelink]: github.com/branislavfamily/familysite/pkg/render/nodelink
// [family.Person]: github.com/branislavfamily/familysite/pkg/family.Person
// [viewport]: github.com/branislavfamily/familysite/pkg/viewport
package render
