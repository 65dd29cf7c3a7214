package banner

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/xtding233/gacha-server/internal/domain"
)

// Source supplies raw banner configuration.
type Source interface {
	Name() string
	Read() ([]byte, error)
}

// FileSource reads a YAML or JSON file from disk.
type FileSource struct {
	Path string
}

func (s FileSource) Name() string { return s.Path }

func (s FileSource) Read() ([]byte, error) {
	return os.ReadFile(s.Path)
}

// BytesSource serves configuration held in memory.
type BytesSource struct {
	Label string
	Data  []byte
}

func (s BytesSource) Name() string { return s.Label }

func (s BytesSource) Read() ([]byte, error) {
	if s.Data == nil {
		return nil, errors.New("no data")
	}
	return s.Data, nil
}

// LoadError reports why a source could not replace the registry contents. It matches both
// domain.ErrLoad and the underlying cause with errors.Is.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s from %s: %v", domain.ErrMsgLoad, e.Source, e.Err)
}

func (e *LoadError) Unwrap() []error {
	return []error{domain.ErrLoad, e.Err}
}

// decode parses either a File mapping or a bare list of records. JSON is valid YAML, so
// both formats go through yaml.v3.
func decode(data []byte) (File, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return File{}, fmt.Errorf("parse: %w", err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return File{}, errors.New("empty document")
	}

	var f File
	switch doc := root.Content[0]; doc.Kind {
	case yaml.SequenceNode:
		if err := doc.Decode(&f.Banners); err != nil {
			return File{}, fmt.Errorf("decode banner list: %w", err)
		}
	case yaml.MappingNode:
		if err := doc.Decode(&f); err != nil {
			return File{}, fmt.Errorf("decode banner file: %w", err)
		}
	default:
		return File{}, fmt.Errorf("unexpected document kind %d", doc.Kind)
	}
	return f, nil
}
