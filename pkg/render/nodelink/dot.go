package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/branislavfamily/familysite/pkg/family"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the node id and generation to each label.
	// When false, labels show only the name and role.
	Detailed bool
}

// ToDOT converts a family tree to Graphviz DOT format.
// Nodes are named by their positional key, so people whose names repeat in
// different branches stay separate nodes.
func ToDOT(root *family.Person, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=\"#fffaf3\", color=\"#b08d57\", fontname=\"Georgia\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [color=\"#b08d57\", arrowhead=none];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	if root == nil {
		buf.WriteString("}\n")
		return buf.String()
	}

	var edges []string
	var visit func(p *family.Person, depth, index int) string
	visit = func(p *family.Person, depth, index int) string {
		key := family.Key(p.ID, depth, index)
		fmt.Fprintf(&buf, "  %q [label=%q];\n", key, fmtLabel(p, depth, opts.Detailed))
		for i, c := range p.Children {
			child := visit(c, depth+1, i)
			edges = append(edges, fmt.Sprintf("  %q -> %q;\n", key, child))
		}
		return key
	}
	visit(root, 0, 0)

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}
	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(p *family.Person, depth int, detailed bool) string {
	parts := []string{p.Name}
	if p.Role != "" {
		parts = append(parts, p.Role)
	}
	if detailed {
		parts = append(parts, fmt.Sprintf("id: %s", p.ID), fmt.Sprintf("generation: %d", depth+1))
	}
	return strings.Join(parts, "\n")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-sized root element with one whose
// viewBox starts at the origin and whose size matches it.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
