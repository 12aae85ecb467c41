// Package pkg provides the libraries behind the Branislav family website.
//
// # Overview
//
// The site is a single page with an about section, blog excerpts, a
// filterable photo gallery, recipes, and a family tree the visitor can pan
// and zoom. The pkg directory is organized into three areas:
//
//  1. Domain: [family] (the tree model), [content] (static site content),
//     [viewport] (pan and zoom state), [reveal] (animate-once tracking)
//  2. Rendering: [render/tree] and [render/nodelink], orchestrated by
//     [pipeline]
//  3. Infrastructure: [cache], [store], [observability], [errors],
//     [buildinfo]
//
// # Architecture
//
// The data flow for a family tree request:
//
//	family.Source (built-in, file, MongoDB)
//	         ↓
//	    [pipeline] load (tree cache)
//	         ↓
//	    [render/tree] build view → measure layout
//	         ↓
//	    [render/tree/sink] SVG / HTML / JSON / text, or [render/nodelink] DOT / SVG
//	         ↓
//	    [cache] artifact keyed by tree hash and view transform
//
// The viewport transform never changes the layout. It is applied by the
// sink as a CSS or SVG transform, so each zoom level is a separate cache
// entry over one measured tree.
//
// # Quick Start
//
//	runner := pipeline.NewRunner(cache.NewMemoryCache(), nil, nil)
//	res, err := runner.Execute(ctx, family.NewSampleSource(), pipeline.Options{
//	    Formats:   []string{pipeline.FormatSVG, pipeline.FormatText},
//	    Transform: viewport.Transform{Scale: 1.4},
//	})
//	if err != nil {
//	    return err
//	}
//	os.Stdout.Write(res.Artifacts[pipeline.FormatText])
//
// Drive the viewer from pointer events:
//
//	ctrl := viewport.New()
//	ctrl.PointerDown(viewport.ButtonPrimary, viewport.Point{X: 10, Y: 10})
//	ctrl.PointerMove(viewport.Point{X: 40, Y: 25})
//	ctrl.PointerUp()
//	ctrl.ZoomIn()
//	fmt.Println(ctrl.Transform().CSS()) // translate(30px, 15px) scale(1.2)
//
// # Testing
//
//	go test ./pkg/...                          # All tests
//	FAMILYSITE_TEST_MONGO=mongodb://... go test ./pkg/store/
//
// [family]: https://pkg.go.dev/github.com/branislavfamily/familysite/pkg/family
// [content]: https://pkg.go.dev/github.com/branislavfamily/familysite/pkg/content
// [viewport]: https://pkg.go.dev/github.com/branislavfamily/familysite/pkg/viewport
// [reveal]: https://pkg.go.dev/github.com/branislavfamily/familysite/pkg/reveal
// [render/tree]: https://pkg.go.dev/github.com/branislavfamily/familysite/pkg/render/tree
// [render/tree/sink]: https://pkg.go.dev/github.com/branislavfamily/familysite/pkg/render/tree/sink
// [render/nodelink]: https://pkg.go.dev/github.com/branislavfamily/familysite/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/branislavfamily/familysite/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/branislavfamily/familysite/pkg/cache
// [store]: https://pkg.go.dev/github.com/branislavfamily/familysite/pkg/store
// [observability]: https://pkg.go.dev/github.com/branislavfamily/familysite/pkg/observability
// [errors]: https://pkg.go.dev/github.com/branislavfamily/familysite/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/branislavfamily/familysite/pkg/buildinfo
package pkg
