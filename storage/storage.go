package storage

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotExist is returned by Get and Head when no object lives under the key.
var ErrNotExist = errors.New("object does not exist")

// StoreError wraps a failed object store operation.
type StoreError struct {
	Op  string
	Key string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// ObjectStore is a flat keyed blob store. Keys use forward slashes. Put
// overwrites whole objects, there is no partial update.
type ObjectStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Head(ctx context.Context, key string) error
}
