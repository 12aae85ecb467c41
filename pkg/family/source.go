package family

import "context"

// Source loads a family tree. Implementations return a validated tree that
// callers treat as read-only.
type Source interface {
	Load(ctx context.Context) (*Person, error)
}

// StaticSource serves a tree held in memory.
type StaticSource struct {
	Root *Person
}

// NewSampleSource returns a source for the built-in [Sample] tree.
func NewSampleSource() *StaticSource {
	return &StaticSource{Root: Sample()}
}

// Load returns the held tree.
func (s *StaticSource) Load(ctx context.Context) (*Person, error) {
	if err := Validate(s.Root); err != nil {
		return nil, err
	}
	return s.Root, nil
}

// FileSource reads the tree from a TOML, YAML or JSON file on every Load.
type FileSource struct {
	Path string
}

// Load reads and validates the file.
func (s *FileSource) Load(ctx context.Context) (*Person, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ReadFile(s.Path)
}

var (
	_ Source = (*StaticSource)(nil)
	_ Source = (*FileSource)(nil)
)
