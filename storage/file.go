package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
)

// FileStore keeps objects as files under a root directory. Writes go through
// a temp file and rename so a crash never leaves a half-written object.
type FileStore struct {
	root string
}

func NewFileStore(root string) (*FileStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, &StoreError{Op: "init", Key: root, Err: err}
	}
	return &FileStore{root: root}, nil
}

func (f *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &StoreError{Op: "get", Key: key, Err: ErrNotExist}
		}
		return nil, &StoreError{Op: "get", Key: key, Err: err}
	}
	return data, nil
}

func (f *FileStore) Put(_ context.Context, key string, data []byte, _ string) error {
	target := f.path(key)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return &StoreError{Op: "put", Key: key, Err: err}
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".tmp-*")
	if err != nil {
		return &StoreError{Op: "put", Key: key, Err: err}
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return &StoreError{Op: "put", Key: key, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return &StoreError{Op: "put", Key: key, Err: err}
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return &StoreError{Op: "put", Key: key, Err: err}
	}

	return nil
}

func (f *FileStore) Head(_ context.Context, key string) error {
	if _, err := os.Stat(f.path(key)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &StoreError{Op: "head", Key: key, Err: ErrNotExist}
		}
		return &StoreError{Op: "head", Key: key, Err: err}
	}
	return nil
}

func (f *FileStore) path(key string) string {
	return filepath.Join(f.root, filepath.FromSlash(key))
}
