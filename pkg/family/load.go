package family

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/branislavfamily/familysite/pkg/errors"
)

// File formats accepted by [Decode].
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// FormatFromPath infers the file format from a path's extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported tree file %q (want .toml, .yaml or .json)", filepath.Base(path))
	}
}

// Decode parses a tree document in the given format, assigns ids to nodes
// that lack one and validates the result.
func Decode(data []byte, format string) (*Person, error) {
	var root Person
	var err error
	switch format {
	case FormatTOML:
		err = toml.Unmarshal(data, &root)
	case FormatYAML:
		err = yaml.Unmarshal(data, &root)
	case FormatJSON:
		err = json.Unmarshal(data, &root)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported tree format %q", format)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTree, err, "decode %s tree", format)
	}
	return Prepare(&root)
}

// Prepare fills in missing ids and validates a freshly decoded tree.
func Prepare(root *Person) (*Person, error) {
	if root == nil {
		return nil, errors.New(errors.ErrCodeInvalidTree, "tree has no root")
	}
	// Validate first so a nil child cannot reach the id pass.
	if err := Validate(root); err != nil {
		return nil, err
	}
	root.Walk(func(p *Person, _, _ int) bool {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		return true
	})
	return root, nil
}

// ReadFile loads a tree from a TOML, YAML or JSON file.
func ReadFile(path string) (*Person, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "tree file %s", path)
	}
	if err != nil {
		return nil, err
	}
	return Decode(data, format)
}
