package sink

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/branislavfamily/familysite/pkg/family"
	"github.com/branislavfamily/familysite/pkg/render/tree"
	"github.com/branislavfamily/familysite/pkg/viewport"
)

func sampleLayout() (*tree.View, tree.Layout) {
	v := tree.Build(family.Sample())
	return v, tree.Measure(v, tree.DefaultMetrics)
}

// attr returns the value of the named attribute.
func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func hasClass(n *html.Node, class string) bool {
	v, _ := attr(n, "class")
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func TestRenderHTML(t *testing.T) {
	v := tree.Build(family.Sample())
	out, err := RenderHTML(v, viewport.Transform{X: 10, Y: 20, Scale: 1.4})
	if err != nil {
		t.Fatalf("RenderHTML() error: %v", err)
	}
	doc, err := html.Parse(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("html.Parse() error: %v", err)
	}

	cards := findAll(doc, func(n *html.Node) bool { return hasClass(n, "tree-card") })
	if len(cards) != 9 {
		t.Fatalf("found %d cards, want 9", len(cards))
	}
	keys := make(map[string]bool)
	for _, c := range cards {
		k, ok := attr(c, "data-key")
		if !ok || k == "" {
			t.Fatal("card without data-key")
		}
		if keys[k] {
			t.Errorf("duplicate data-key %q", k)
		}
		keys[k] = true
	}

	if n := len(findAll(doc, func(n *html.Node) bool { return hasClass(n, "tree-connector-v") })); n != 5 {
		t.Errorf("vertical connectors = %d, want 5", n)
	}
	if n := len(findAll(doc, func(n *html.Node) bool { return hasClass(n, "tree-connector-h") })); n != 3 {
		t.Errorf("sibling connectors = %d, want 3", n)
	}

	canvas := findAll(doc, func(n *html.Node) bool { return hasClass(n, "tree-canvas") })
	if len(canvas) != 1 {
		t.Fatalf("found %d canvases, want 1", len(canvas))
	}
	style, _ := attr(canvas[0], "style")
	if !strings.Contains(style, "translate(10px, 20px) scale(1.4)") {
		t.Errorf("canvas style = %q, missing transform", style)
	}
}

func TestRenderHTMLEscapes(t *testing.T) {
	v := tree.Build(&family.Person{ID: "x", Name: "<b>Bold</b>", Role: "Role & Co"})
	out, err := RenderHTML(v, viewport.Identity)
	if err != nil {
		t.Fatalf("RenderHTML() error: %v", err)
	}
	if bytes.Contains(out, []byte("<b>Bold</b>")) {
		t.Error("name was not escaped")
	}
	if !bytes.Contains(out, []byte("Role &amp; Co")) {
		t.Error("role was not escaped")
	}
}

func TestRenderSVG(t *testing.T) {
	_, l := sampleLayout()
	tr := viewport.Transform{X: 5, Y: -5, Scale: 0.8}
	svg := string(RenderSVG(l, WithTransform(tr), WithTitle("Family Tree")))

	if !strings.HasPrefix(svg, "<svg ") {
		t.Errorf("output does not start with <svg: %.40q", svg)
	}
	cx, cy := l.Center()
	if !strings.Contains(svg, `transform="`+tr.Around(cx, cy)+`"`) {
		t.Error("tree group transform missing")
	}
	if got := strings.Count(svg, `class="tree-card"`); got != 9 {
		t.Errorf("cards = %d, want 9", got)
	}
	if got := strings.Count(svg, `class="connector vertical"`); got != 5 {
		t.Errorf("vertical connectors = %d, want 5", got)
	}
	if got := strings.Count(svg, `class="connector sibling"`); got != 3 {
		t.Errorf("sibling connectors = %d, want 3", got)
	}
	if !strings.Contains(svg, "<title>Family Tree</title>") {
		t.Error("title missing")
	}
	if strings.Contains(svg, "<script") {
		t.Error("script present without WithInteraction")
	}
}

func TestRenderSVGInteraction(t *testing.T) {
	_, l := sampleLayout()
	svg := string(RenderSVG(l, WithInteraction()))
	if !strings.Contains(svg, "<![CDATA[") {
		t.Error("interaction script missing")
	}
	if !strings.Contains(svg, `data-scale="1"`) {
		t.Error("default transform should have scale 1")
	}
}

func TestRenderSVGImage(t *testing.T) {
	v := tree.Build(&family.Person{ID: "x", Name: "Ana", Role: "Aunt", Image: "/images/ana.jpg"})
	svg := string(RenderSVG(tree.Measure(v, tree.DefaultMetrics)))
	if !strings.Contains(svg, `href="/images/ana.jpg"`) {
		t.Error("image href missing")
	}
	if strings.Contains(svg, `class="avatar"`) {
		t.Error("initials avatar drawn for a card with an image")
	}
}

func TestRenderJSON(t *testing.T) {
	v, l := sampleLayout()
	data, err := RenderJSON(v, l, viewport.Identity)
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if out.Width != l.Width || out.Height != l.Height {
		t.Errorf("size = %vx%v, want %vx%v", out.Width, out.Height, l.Width, l.Height)
	}
	if len(out.Cards) != 9 {
		t.Errorf("len(Cards) = %d, want 9", len(out.Cards))
	}
	if len(out.Lines) != 8 {
		t.Errorf("len(Lines) = %d, want 8", len(out.Lines))
	}
	if out.Transform.CSS != "translate(0px, 0px) scale(1)" {
		t.Errorf("Transform.CSS = %q", out.Transform.CSS)
	}
	if out.Tree == nil || out.Tree.Card.Name != "Branislav I" || len(out.Tree.Children) != 2 {
		t.Errorf("Tree = %+v, want sample root with two children", out.Tree)
	}
}

func TestRenderText(t *testing.T) {
	v := tree.Build(&family.Person{ID: "p", Name: "Parent", Role: "Father", Children: []*family.Person{
		{ID: "a", Name: "Ann", Role: "Daughter"},
		{ID: "b", Name: "Bob", Role: "Son"},
	}})
	m := tree.Metrics{CardWidth: 10, CardHeight: 4, SiblingGap: 2, Connector: 2}
	l := tree.Measure(v, m)

	c := NewCanvas(l)
	if w, h := c.Size(); w != 22 || h != 10 {
		t.Fatalf("Size() = %dx%d, want 22x10", w, h)
	}

	rows := strings.Split(strings.TrimSuffix(c.String(), "\n"), "\n")
	if len(rows) != 10 {
		t.Fatalf("got %d rows, want 10", len(rows))
	}
	at := func(x, y int) rune {
		r := []rune(rows[y])
		if x >= len(r) {
			return ' '
		}
		return r[x]
	}

	if at(6, 0) != '╭' || at(15, 0) != '╮' {
		t.Errorf("root card corners wrong: %q", rows[0])
	}
	if !strings.Contains(rows[1], "Parent") || !strings.Contains(rows[2], "Father") {
		t.Errorf("root card text missing: %q / %q", rows[1], rows[2])
	}
	for _, y := range []int{4, 5} {
		if at(11, y) != '│' {
			t.Errorf("row %d: no vertical connector at column 11: %q", y, rows[y])
		}
	}
	if at(10, 8) != '─' || at(11, 8) != '─' {
		t.Errorf("row 8: no sibling connector: %q", rows[8])
	}
	if !strings.Contains(rows[7], "Ann") || !strings.Contains(rows[7], "Bob") {
		t.Errorf("leaf names missing: %q", rows[7])
	}
}

func TestCanvasWindow(t *testing.T) {
	l := tree.Measure(tree.Build(&family.Person{ID: "x", Name: "X", Role: "Y"}), tree.TextMetrics)
	c := NewCanvas(l)
	lines := c.Lines(-5, -2, 8, 3)
	if len(lines) != 3 {
		t.Fatalf("len(Lines) = %d, want 3", len(lines))
	}
	for i, ln := range lines {
		if len([]rune(ln)) != 8 {
			t.Errorf("line %d width = %d, want 8", i, len([]rune(ln)))
		}
	}
	if strings.TrimSpace(lines[0]) != "" {
		t.Errorf("line above canvas not blank: %q", lines[0])
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"Sophia", 10, "Sophia"},
		{"Great Grandfather", 8, "Great G…"},
		{"abc", 1, "…"},
		{"abc", 0, ""},
	}
	for _, tt := range tests {
		if got := truncate(tt.in, tt.n); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
