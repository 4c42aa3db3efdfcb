package storage

import (
	"errors"
	"io"
	"os"
	"path/filepath"
)

// FSStore writes artifacts under a base directory, created on demand.
type FSStore struct{ base string }

func NewFSStore(base string) (*FSStore, error) {
	if base == "" {
		base = "./exports"
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, err
	}
	return &FSStore{base: base}, nil
}

func (s *FSStore) Put(name string, r io.Reader) (string, error) {
	if name == "" {
		return "", errors.New("empty artifact name")
	}
	dst := filepath.Join(s.base, filepath.Base(name))
	f, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}
	return dst, nil
}

func (s *FSStore) Get(name string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(s.base, filepath.Base(name)))
}
