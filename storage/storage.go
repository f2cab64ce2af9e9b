package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"lawscape-backend/config"
)

var ErrNotFound = errors.New("source file not found")

// Source reads the raw law and precedent files the register tool ingests
type Source interface {
	// Open returns the content stored under key. Keys use forward slashes.
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// StorageType represents the storage backend type
type StorageType string

const (
	StorageTypeLocal StorageType = "local"
	StorageTypeS3    StorageType = "s3"
)

// NewSource creates a source based on configuration
func NewSource(ctx context.Context, cfg config.StorageConfig) (Source, error) {
	switch StorageType(cfg.Type) {
	case StorageTypeLocal:
		return NewLocalSource(cfg.LocalPath)
	case StorageTypeS3:
		if cfg.S3Bucket == "" {
			return nil, errors.New("AWS_S3_BUCKET environment variable is required for S3 storage")
		}
		return NewS3Source(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage type: %s", cfg.Type)
	}
}

// cleanKey normalises key and rejects keys escaping the storage root
func cleanKey(key string) (string, error) {
	cleaned := path.Clean("/" + strings.ReplaceAll(key, "\\", "/"))
	cleaned = strings.TrimPrefix(cleaned, "/")
	if cleaned == "" || cleaned == "." {
		return "", fmt.Errorf("invalid storage key: %q", key)
	}
	return cleaned, nil
}
