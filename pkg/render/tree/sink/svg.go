package sink

import (
	"bytes"
	"fmt"
	"html"

	"github.com/branislavfamily/familysite/pkg/render/tree"
	"github.com/branislavfamily/familysite/pkg/viewport"
)

const cardCSS = `
    .tree-card rect { fill: #fffaf3; stroke: #b08d57; stroke-width: 2; }
    .tree-card .avatar { fill: #e9dcc4; }
    .tree-card text { font-family: Georgia, serif; text-anchor: middle; fill: #3b2f22; }
    .tree-card .name { font-size: 16px; font-weight: bold; }
    .tree-card .role { font-size: 13px; fill: #7a6a55; }
    .connector { stroke: #b08d57; stroke-width: 2; }
    .tree-viewport { cursor: grab; }
    .tree-viewport.dragging { cursor: grabbing; }`

// viewportJS mirrors the pan and zoom rules of the viewport package so a
// standalone SVG stays interactive.
const viewportJS = `
    (function() {
      const svg = document.currentScript ? document.currentScript.ownerSVGElement : null;
      const root = svg || document.querySelector('svg');
      const g = root.querySelector('.tree-viewport');
      const cx = +g.dataset.cx, cy = +g.dataset.cy;
      let scale = +g.dataset.scale, x = +g.dataset.x, y = +g.dataset.y;
      let drag = null;
      const clamp = s => Math.min(2, Math.max(0.5, s));
      const apply = () => g.setAttribute('transform',
        'translate(' + (x + cx) + ',' + (y + cy) + ') scale(' + scale + ') translate(' + (-cx) + ',' + (-cy) + ')');
      root.addEventListener('mousedown', e => { if (e.button !== 0) return; drag = {x: e.clientX - x, y: e.clientY - y}; g.classList.add('dragging'); });
      root.addEventListener('mousemove', e => { if (!drag) return; x = e.clientX - drag.x; y = e.clientY - drag.y; apply(); });
      const stop = () => { drag = null; g.classList.remove('dragging'); };
      root.addEventListener('mouseup', stop);
      root.addEventListener('mouseleave', stop);
      root.addEventListener('wheel', e => { e.preventDefault(); scale = clamp(Math.round((scale + (e.deltaY < 0 ? 0.2 : -0.2)) * 100) / 100); apply(); }, {passive: false});
    })();`

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	transform   viewport.Transform
	interactive bool
	title       string
}

// WithTransform applies t to the tree group, around the drawing's center.
func WithTransform(t viewport.Transform) SVGOption {
	return func(r *svgRenderer) { r.transform = t }
}

// WithInteraction embeds the drag and wheel script.
func WithInteraction() SVGOption { return func(r *svgRenderer) { r.interactive = true } }

// WithTitle sets the SVG <title>.
func WithTitle(s string) SVGOption { return func(r *svgRenderer) { r.title = s } }

// RenderSVG draws l as a standalone SVG document.
func RenderSVG(l tree.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{transform: viewport.Identity}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		l.Width, l.Height, l.Width, l.Height)
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", html.EscapeString(r.title))
	}
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", cardCSS)

	cx, cy := l.Center()
	t := r.transform
	fmt.Fprintf(&buf, `  <g class="tree-viewport" transform="%s" data-scale="%g" data-x="%g" data-y="%g" data-cx="%g" data-cy="%g">`+"\n",
		t.Around(cx, cy), t.Scale, t.X, t.Y, cx, cy)
	for _, ln := range l.Lines {
		fmt.Fprintf(&buf, `    <line class="connector %s" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n",
			ln.Kind, ln.X1, ln.Y1, ln.X2, ln.Y2)
	}
	for _, b := range l.Boxes {
		renderCard(&buf, b)
	}
	buf.WriteString("  </g>\n")

	if r.interactive {
		fmt.Fprintf(&buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", viewportJS)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderCard(buf *bytes.Buffer, b tree.Box) {
	c := b.Card
	fmt.Fprintf(buf, `    <g class="tree-card" id="card-%s" data-key="%s">`+"\n", esc(c.Path), esc(c.Key))
	fmt.Fprintf(buf, `      <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="12"/>`+"\n", b.X, b.Y, b.W, b.H)

	r := b.H / 5
	ax, ay := b.CenterX(), b.Y+r+8
	if c.Image != "" {
		fmt.Fprintf(buf, `      <clipPath id="clip-%s"><circle cx="%.1f" cy="%.1f" r="%.1f"/></clipPath>`+"\n",
			esc(c.Path), ax, ay, r)
		fmt.Fprintf(buf, `      <image href="%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" clip-path="url(#clip-%s)" preserveAspectRatio="xMidYMid slice"/>`+"\n",
			esc(c.Image), ax-r, ay-r, 2*r, 2*r, esc(c.Path))
	} else {
		fmt.Fprintf(buf, `      <circle class="avatar" cx="%.1f" cy="%.1f" r="%.1f"/>`+"\n", ax, ay, r)
		fmt.Fprintf(buf, `      <text x="%.1f" y="%.1f" dominant-baseline="central">%s</text>`+"\n", ax, ay, esc(c.Initials()))
	}
	fmt.Fprintf(buf, `      <text class="name" x="%.1f" y="%.1f">%s</text>`+"\n", b.CenterX(), b.Y+b.H-30, esc(c.Name))
	fmt.Fprintf(buf, `      <text class="role" x="%.1f" y="%.1f">%s</text>`+"\n", b.CenterX(), b.Y+b.H-12, esc(c.Role))
	buf.WriteString("    </g>\n")
}

func esc(s string) string { return html.EscapeString(s) }
