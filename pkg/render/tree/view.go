package tree

import (
	"strconv"
	"strings"

	"github.com/branislavfamily/familysite/pkg/family"
)

// Card is the visual unit for one person.
type Card struct {
	Key   string `json:"key"`
	ID    string `json:"id"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	Image string `json:"image,omitempty"`
	Depth int    `json:"depth"`
	Index int    `json:"index"`

	// Path lists sibling indices from the root, e.g. "0/1/0". It is unique
	// across the whole tree even when Key is only unique among siblings.
	Path string `json:"path"`
}

// Initials returns up to two leading letters of the card's name, used when
// the card has no image.
func (c Card) Initials() string {
	var out []rune
	for _, f := range strings.Fields(c.Name) {
		out = append(out, []rune(f)[0])
		if len(out) == 2 {
			break
		}
	}
	return strings.ToUpper(string(out))
}

// View is the rendered subtree of one person.
type View struct {
	Card Card `json:"card"`

	// Connector is set when a vertical connector joins the card to the row
	// of children below it.
	Connector bool    `json:"connector,omitempty"`
	Children  []*Slot `json:"children,omitempty"`
}

// Slot is one child position in a row.
type Slot struct {
	*View

	// SiblingConnector is set on every slot except the last in its row.
	SiblingConnector bool `json:"sibling_connector,omitempty"`
}

// Build renders p and its descendants. A nil person yields a nil view.
func Build(p *family.Person) *View {
	if p == nil {
		return nil
	}
	return build(p, 0, 0, "0")
}

func build(p *family.Person, depth, index int, path string) *View {
	v := &View{Card: Card{
		Key:   family.Key(p.ID, depth, index),
		ID:    p.ID,
		Name:  p.Name,
		Role:  p.Role,
		Image: p.Image,
		Depth: depth,
		Index: index,
		Path:  path,
	}}
	if len(p.Children) == 0 {
		return v
	}
	v.Connector = true
	v.Children = make([]*Slot, len(p.Children))
	for i, c := range p.Children {
		v.Children[i] = &Slot{
			View:             build(c, depth+1, i, path+"/"+strconv.Itoa(i)),
			SiblingConnector: i < len(p.Children)-1,
		}
	}
	return v
}

// IsLeaf reports whether the view has no children row.
func (v *View) IsLeaf() bool { return len(v.Children) == 0 }

// Walk visits v and its descendants in pre-order.
func (v *View) Walk(fn func(*View)) {
	if v == nil {
		return
	}
	fn(v)
	for _, s := range v.Children {
		s.View.Walk(fn)
	}
}

// Cards returns every card in pre-order.
func (v *View) Cards() []Card {
	var out []Card
	v.Walk(func(n *View) { out = append(out, n.Card) })
	return out
}

// LeafCards returns the cards of views without children, left to right.
func (v *View) LeafCards() []Card {
	var out []Card
	v.Walk(func(n *View) {
		if n.IsLeaf() {
			out = append(out, n.Card)
		}
	})
	return out
}

// Find returns the view whose card has the given path.
func (v *View) Find(path string) (*View, bool) {
	var found *View
	v.Walk(func(n *View) {
		if found == nil && n.Card.Path == path {
			found = n
		}
	})
	return found, found != nil
}
