package family

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/branislavfamily/familysite/pkg/errors"
)

// Person is one node of the family tree.
type Person struct {
	ID       string    `json:"id" toml:"id" yaml:"id" bson:"id"`
	Name     string    `json:"name" toml:"name" yaml:"name" bson:"name"`
	Role     string    `json:"role" toml:"role" yaml:"role" bson:"role"`
	Image    string    `json:"image,omitempty" toml:"image,omitempty" yaml:"image,omitempty" bson:"image,omitempty"`
	Children []*Person `json:"children,omitempty" toml:"children,omitempty" yaml:"children,omitempty" bson:"children,omitempty"`
}

// HasChildren reports whether p has at least one child.
func (p *Person) HasChildren() bool { return len(p.Children) > 0 }

// Depth returns the number of levels in the subtree rooted at p.
// A single person has depth 1.
func (p *Person) Depth() int {
	if p == nil {
		return 0
	}
	deepest := 0
	for _, c := range p.Children {
		if d := c.Depth(); d > deepest {
			deepest = d
		}
	}
	return deepest + 1
}

// Count returns the number of people in the subtree rooted at p.
func (p *Person) Count() int {
	n := 0
	p.Walk(func(*Person, int, int) bool {
		n++
		return true
	})
	return n
}

// Leaves returns the people without children, in pre-order.
func (p *Person) Leaves() []*Person {
	var out []*Person
	p.Walk(func(q *Person, _, _ int) bool {
		if !q.HasChildren() {
			out = append(out, q)
		}
		return true
	})
	return out
}

// Walk visits the subtree in pre-order. depth is 0 for p itself and index is
// the position among its siblings (0 for the root). Returning false from fn
// skips the children of that node.
func (p *Person) Walk(fn func(q *Person, depth, index int) bool) {
	if p == nil {
		return
	}
	p.walk(fn, 0, 0)
}

func (p *Person) walk(fn func(*Person, int, int) bool, depth, index int) {
	if !fn(p, depth, index) {
		return
	}
	for i, c := range p.Children {
		c.walk(fn, depth+1, i)
	}
}

// Clone returns a deep copy of the subtree rooted at p.
func (p *Person) Clone() *Person {
	if p == nil {
		return nil
	}
	out := *p
	if p.Children != nil {
		out.Children = make([]*Person, len(p.Children))
		for i, c := range p.Children {
			out.Children[i] = c.Clone()
		}
	}
	return &out
}

// Key returns the positional render key for a node: its id combined with its
// depth and sibling index. Keys are unique among siblings even when ids or
// names repeat elsewhere in the tree.
func Key(id string, depth, index int) string {
	return fmt.Sprintf("%s-l%d-i%d", id, depth, index)
}

// Validate checks the structural invariants of a tree.
// Repeated (name, role) pairs are allowed; a node reachable twice is not.
func Validate(root *Person) error {
	if root == nil {
		return errors.New(errors.ErrCodeInvalidTree, "tree has no root")
	}
	seen := make(map[*Person]bool)
	var check func(p *Person, path string) error
	check = func(p *Person, path string) error {
		if p == nil {
			return errors.New(errors.ErrCodeInvalidTree, "nil child at %s", path)
		}
		if seen[p] {
			return errors.New(errors.ErrCodeInvalidTree, "person %q reachable twice (at %s)", p.Name, path)
		}
		seen[p] = true
		if err := errors.ValidateName(p.Name); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidTree, err, "person at %s", path)
		}
		if err := errors.ValidateImage(p.Image); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidTree, err, "image of %q", p.Name)
		}
		for i, c := range p.Children {
			if err := check(c, fmt.Sprintf("%s/%d", path, i)); err != nil {
				return err
			}
		}
		return nil
	}
	return check(root, "root")
}

// Hash returns a stable content hash of the tree, used in cache keys.
func Hash(root *Person) string {
	data, _ := json.Marshal(root)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
