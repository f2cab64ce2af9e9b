package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"lawscape-backend/config"
)

func TestLocalSource_Open(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "laws"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "laws", "index.json"), []byte(`[]`), 0o644); err != nil {
		t.Fatal(err)
	}

	src, err := NewLocalSource(dir)
	if err != nil {
		t.Fatalf("NewLocalSource: %v", err)
	}

	rc, err := src.Open(context.Background(), "laws/index.json")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[]" {
		t.Errorf("unexpected content %q", data)
	}
}

func TestLocalSource_OpenMissing(t *testing.T) {
	src, err := NewLocalSource(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := src.Open(context.Background(), "missing.json"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLocalSource_KeysStayInsideRoot(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "root")
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(parent, "secret.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	src, err := NewLocalSource(root)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := src.Open(context.Background(), "../secret.txt"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected traversal to resolve inside root, got %v", err)
	}
	if _, err := src.Open(context.Background(), ""); err == nil {
		t.Error("expected error for empty key")
	}
}

func TestNewSource(t *testing.T) {
	if _, err := NewSource(context.Background(), config.StorageConfig{Type: "local", LocalPath: t.TempDir()}); err != nil {
		t.Errorf("local: unexpected error %v", err)
	}
	if _, err := NewSource(context.Background(), config.StorageConfig{Type: "s3"}); err == nil {
		t.Error("s3 without bucket: expected error")
	}
	if _, err := NewSource(context.Background(), config.StorageConfig{Type: "gcs"}); err == nil {
		t.Error("unknown type: expected error")
	}
}
