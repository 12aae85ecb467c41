package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/branislavfamily/familysite/pkg/family"
	"github.com/branislavfamily/familysite/pkg/observability"
	"github.com/branislavfamily/familysite/pkg/render/nodelink"
	"github.com/branislavfamily/familysite/pkg/render/tree"
	"github.com/branislavfamily/familysite/pkg/render/tree/sink"
)

// Render generates output artifacts in the requested formats. opts must have
// been through [Options.ValidateAndSetDefaults].
//
// The view tree is built once and shared by every format; the card layout is
// measured lazily because HTML and DOT do not need it.
func Render(ctx context.Context, root *family.Person, opts Options) (map[string][]byte, error) {
	r := &renderer{root: root, view: tree.Build(root), opts: opts}
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		start := time.Now()
		observability.Pipeline().OnRenderStart(ctx, format)
		data, err := r.render(ctx, format)
		observability.Pipeline().OnRenderComplete(ctx, format, time.Since(start), err)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

type renderer struct {
	root   *family.Person
	view   *tree.View
	opts   Options
	layout *tree.Layout
}

func (r *renderer) measure() tree.Layout {
	if r.layout == nil {
		l := tree.Measure(r.view, r.opts.Metrics)
		r.layout = &l
	}
	return *r.layout
}

func (r *renderer) render(ctx context.Context, format string) ([]byte, error) {
	switch format {
	case FormatSVG:
		svgOpts := []sink.SVGOption{
			sink.WithTransform(r.opts.Transform),
			sink.WithTitle(r.opts.Title),
		}
		if r.opts.Interactive {
			svgOpts = append(svgOpts, sink.WithInteraction())
		}
		return sink.RenderSVG(r.measure(), svgOpts...), nil
	case FormatHTML:
		return sink.RenderHTML(r.view, r.opts.Transform)
	case FormatJSON:
		return sink.RenderJSON(r.view, r.measure(), r.opts.Transform)
	case FormatText:
		// Text uses character cells, not the pixel metrics of the other sinks.
		return sink.RenderText(tree.Measure(r.view, tree.TextMetrics)), nil
	case FormatDOT:
		return []byte(nodelink.ToDOT(r.root, nodelink.Options{Detailed: r.opts.Detailed})), nil
	case FormatNodelink:
		return nodelink.RenderSVG(ctx, nodelink.ToDOT(r.root, nodelink.Options{Detailed: r.opts.Detailed}))
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
