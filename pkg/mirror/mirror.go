// Package mirror manages the local directory that holds the files of the open
// project.
package mirror

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/sidkik/editsync/pkg/errors"
)

// Store reads and writes files in the mirror directory.
type Store struct {
	fs  afero.Fs
	dir string
}

// New returns a Store rooted at `dir`.
func New(fs afero.Fs, dir string) *Store {
	return &Store{fs: fs, dir: dir}
}

// Dir returns the mirror directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the path to `name` within the mirror directory.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// Reset deletes the mirror directory and everything in it, and recreates it
// empty. Local changes that haven't been pushed are lost.
func (s *Store) Reset() error {
	if err := s.fs.RemoveAll(s.dir); err != nil {
		return errors.WithContext(err, "remove mirror")
	}
	if err := s.fs.MkdirAll(s.dir, 0755); err != nil {
		return errors.WithContext(err, "create mirror")
	}
	return nil
}

// Write replaces the contents of `name` with `contents`, creating it if
// necessary.
func (s *Store) Write(name, contents string) error {
	if err := afero.WriteFile(s.fs, s.Path(name), []byte(contents), 0644); err != nil {
		return errors.WithContext(err, "write "+name)
	}
	return nil
}

// Touch creates `name` as an empty file if it doesn't already exist.
func (s *Store) Touch(name string) error {
	f, err := s.fs.OpenFile(s.Path(name), os.O_RDONLY|os.O_CREATE, 0644)
	if err != nil {
		return errors.WithContext(err, "touch "+name)
	}
	return f.Close()
}

// Read returns the contents of `name`.
func (s *Store) Read(name string) (string, error) {
	path := s.Path(name)
	contents, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.FileNotFound{Path: path}
		}
		return "", errors.WithContext(err, "read "+name)
	}
	return string(contents), nil
}
