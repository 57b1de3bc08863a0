package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreRoundtrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx := context.Background()

	key := "videos/abc123/metadata.json"
	if err := store.Put(ctx, key, []byte(`{"videoId":"abc123"}`), "application/json"); err != nil {
		t.Fatalf("put: %v", err)
	}

	data, err := store.Get(ctx, key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(data) != `{"videoId":"abc123"}` {
		t.Errorf("got %q", data)
	}

	if err := store.Head(ctx, key); err != nil {
		t.Errorf("head: %v", err)
	}
}

func TestFileStoreNotExist(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx := context.Background()

	if _, err := store.Get(ctx, "missing.json"); !errors.Is(err, ErrNotExist) {
		t.Errorf("get: expected ErrNotExist, got %v", err)
	}
	if err := store.Head(ctx, "missing.json"); !errors.Is(err, ErrNotExist) {
		t.Errorf("head: expected ErrNotExist, got %v", err)
	}
}

func TestFileStoreOverwrite(t *testing.T) {
	root := t.TempDir()
	store, err := NewFileStore(root)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ctx := context.Background()

	if err := store.Put(ctx, "doc.json", []byte("first"), "application/json"); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Put(ctx, "doc.json", []byte("second"), "application/json"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	data, err := store.Get(ctx, "doc.json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("got %q, want %q", data, "second")
	}

	// no temp files left behind
	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatal(err)
	}
	for _, entry := range entries {
		if filepath.Ext(entry.Name()) != ".json" {
			t.Errorf("leftover file %s", entry.Name())
		}
	}
}
