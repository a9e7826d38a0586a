package trail

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// MaxNameLength bounds record names, exclusive
const MaxNameLength = 64

var (
	ErrNameTooLong = errors.New("record name too long")
	ErrInvalidName = errors.New("invalid record name")
)

// ValidateName checks that a record name is usable as a file in the records directory
func ValidateName(name string) error {
	if len(name) >= MaxNameLength {
		return fmt.Errorf("%w (max. %d characters): %q", ErrNameTooLong, MaxNameLength-1, name)
	}
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// FileStore keeps one trail file per record name inside Dir
type FileStore struct {
	Dir string
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

// Load reads a stored trail. A missing file yields an empty trail and no error.
func (s *FileStore) Load(name string) (Trail, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(s.Dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return Trail{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load record %q: %w", name, err)
	}

	return Decode(data), nil
}

// Save replaces the stored trail atomically: the records are written to a
// temporary file in Dir which is then renamed over the target.
func (s *FileStore) Save(name string, t Trail) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("save record %q: %w", name, err)
	}

	tmp, err := os.CreateTemp(s.Dir, ".rec-*")
	if err != nil {
		return fmt.Errorf("save record %q: %w", name, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(t.Encode()); err != nil {
		tmp.Close()
		return fmt.Errorf("save record %q: %w", name, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("save record %q: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save record %q: %w", name, err)
	}

	if err := os.Rename(tmp.Name(), filepath.Join(s.Dir, name)); err != nil {
		return fmt.Errorf("save record %q: %w", name, err)
	}
	return nil
}
