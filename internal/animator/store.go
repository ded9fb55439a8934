package animator

import (
	"errors"
	"os"
	"path/filepath"
)

// Store is the on-disk persistence layer: one file per animation,
// named by id, whose first byte is the Kind tag and whose remaining
// bytes are the kind-specific payload (spec.md §3, §4.5, §6).
type Store struct {
	dir string
}

// NewStore roots a Store at dir, creating it if necessary.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, NewSaveError("failed to create animations directory", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(id string) string { return filepath.Join(s.dir, id) }

// Save writes kind and payload to the file named id, overwriting any
// existing contents.
func (s *Store) Save(id string, kind Kind, payload []byte) error {
	data := make([]byte, 0, 1+len(payload))
	data = append(data, byte(kind))
	data = append(data, payload...)
	if err := os.WriteFile(s.path(id), data, 0o644); err != nil {
		return NewSaveError("failed to write to disk", err)
	}
	return nil
}

// Load reads the file named id and splits it into its Kind tag and
// payload. A missing file is NotFound; a tag byte outside the Kind
// enumeration is UnknownType.
func (s *Store) Load(id string) (Kind, []byte, error) {
	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil, NewLoadError("animation not found", err)
		}
		return 0, nil, NewLoadError("failed to read file", err)
	}
	if len(data) == 0 {
		return 0, nil, ErrUnknownType(0)
	}
	kind := Kind(data[0])
	if !kind.Valid() {
		return 0, nil, ErrUnknownType(data[0])
	}
	return kind, data[1:], nil
}

// Remove deletes the file named id. It is idempotent: a missing file
// is treated as success (spec.md §4.5).
func (s *Store) Remove(id string) error {
	if err := os.Remove(s.path(id)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return NewSaveError("failed to remove file", err)
	}
	return nil
}
