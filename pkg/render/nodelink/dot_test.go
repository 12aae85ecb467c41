package nodelink

import (
	"context"
	"strings"
	"testing"

	"github.com/branislavfamily/familysite/pkg/family"
)

func TestToDOT(t *testing.T) {
	dot := ToDOT(family.Sample(), Options{})

	if !strings.HasPrefix(dot, "digraph G {") {
		t.Errorf("DOT does not start with digraph header")
	}
	if got := strings.Count(dot, " [label="); got != 9 {
		t.Errorf("node count = %d, want 9", got)
	}
	if got := strings.Count(dot, " -> "); got != 8 {
		t.Errorf("edge count = %d, want 8", got)
	}
	// Both fathers are separate nodes.
	for _, key := range []string{`"father-1-l2-i0"`, `"father-2-l2-i0"`} {
		if !strings.Contains(dot, key) {
			t.Errorf("DOT missing node %s", key)
		}
	}
	if !strings.Contains(dot, `"great-grandfather-l0-i0" -> "grandmother-l1-i1"`) {
		t.Error("DOT missing root -> grandmother edge")
	}
	if strings.Contains(dot, "generation:") {
		t.Error("non-detailed DOT contains details")
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(family.Sample(), Options{Detailed: true})
	if !strings.Contains(dot, `generation: 4`) {
		t.Error("detailed DOT missing generation of leaves")
	}
	if !strings.Contains(dot, `id: son-2`) {
		t.Error("detailed DOT missing ids")
	}
}

func TestToDOTNil(t *testing.T) {
	dot := ToDOT(nil, Options{})
	if strings.Contains(dot, "->") || strings.Contains(dot, "label=") {
		t.Errorf("DOT for nil tree has content: %s", dot)
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(family.Sample(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	s := string(svg)
	if !strings.Contains(s, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 `) {
		t.Errorf("SVG root not normalized: %.200s", s)
	}
	if !strings.Contains(s, "Maria") {
		t.Error("SVG missing node label")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<?xml?><svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50">`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}
	if got := normalizeViewBox([]byte("<svg/>")); string(got) != "<svg/>" {
		t.Errorf("normalizeViewBox() without viewBox changed input: %s", got)
	}
}
