// Package sink turns a family tree view into output formats.
//
// # Formats
//
//   - [RenderHTML]: nested flex markup for the site, one element per card
//     with a data-key attribute, wrapped in the viewport container.
//   - [RenderSVG]: cards and connector lines from a measured [tree.Layout],
//     grouped under a single transform with drag and wheel handlers.
//   - [RenderJSON]: the view tree and its layout for external tools.
//   - [RenderText]: cards drawn with lipgloss borders into a character canvas
//     for the terminal viewer.
//
// Every sink takes the current [viewport.Transform] so the same output can be
// reproduced from a shared view.
//
// [tree.Layout]: github.com/branislavfamily/familysite/pkg/render/tree.Layout
// [viewport.Transform]: github.com/branislavfamily/familysite/pkg/viewport.Transform
package sink
