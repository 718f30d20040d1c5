package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

var (
	errSetUnavailable    = errors.New("storage: set unavailable")
	errDeleteUnavailable = errors.New("storage: delete unavailable")
)

// keyPattern restricts keys to names that map safely onto file names.
// Rejecting separators keeps keys from escaping the base directory.
var keyPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// File stores each key as a file named <key>.blob under the base directory.
// Writes go through a temp file and rename so a crashed write never leaves
// a half-written snapshot behind.
type File struct {
	baseDir string
}

// NewFile creates the base directory if needed and returns a file store.
func NewFile(baseDir string) (*File, error) {
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}
	_ = os.Chmod(baseDir, 0700)
	return &File{baseDir: baseDir}, nil
}

func (f *File) path(key string) (string, error) {
	if !keyPattern.MatchString(key) {
		return "", fmt.Errorf("invalid storage key: %q", key)
	}
	return filepath.Join(f.baseDir, key+".blob"), nil
}

// Get returns the value for key and whether the key exists.
func (f *File) Get(key string) (string, bool, error) {
	path, err := f.path(key)
	if err != nil {
		return "", false, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(data), true, nil
}

// Set writes the value for key atomically.
func (f *File) Set(key, value string) error {
	path, err := f.path(key)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(f.baseDir, key+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	_ = os.Chmod(tmpPath, 0600)
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}

// Delete removes the key's file.
func (f *File) Delete(key string) error {
	path, err := f.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Close is a no-op for the file driver.
func (f *File) Close() error { return nil }
