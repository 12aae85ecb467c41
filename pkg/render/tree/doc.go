// Package tree lays out a family tree as nested cards and connectors.
//
// # Overview
//
// [Build] turns a [family.Person] into a [View]: for every person a [Card],
// and for every person with children a vertical connector followed by a row of
// child [Slot]s. Each slot but the last carries a horizontal connector to its
// next sibling. The recursion has no depth limit.
//
// Building is a pure function of the tree. The position metadata (depth and
// sibling index) only feeds the card keys, so a person whose name and role
// repeat elsewhere in the tree still gets a distinct key.
//
// # Layout
//
// [Measure] places the view on a fixed grid described by [Metrics] and
// returns a [Layout] of card boxes and connector lines. The SVG and text sinks
// draw from the layout; the HTML sink renders the view directly and leaves
// placement to the browser.
//
//	v := tree.Build(family.Sample())
//	l := tree.Measure(v, tree.DefaultMetrics)
//	svg := sink.RenderSVG(l, sink.WithTransform(t))
//
// [family.Person]: github.com/branislavfamily/familysite/pkg/family.Person
package tree
