// Package storage stores result files and exported tables in object storage.
package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/mat-analysis/pkg/config"
)

// Storage defines the interface for object storage operations.
type Storage interface {
	// Upload uploads data from reader to the specified key.
	Upload(ctx context.Context, key string, reader io.Reader) error

	// Download opens the object at key. The caller closes the reader.
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// DownloadFile copies the object at key into localPath.
	DownloadFile(ctx context.Context, key string, localPath string) error

	// Delete removes the object. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Exists checks if an object exists at the specified key.
	Exists(ctx context.Context, key string) (bool, error)

	// GetURL returns where the object can be fetched from.
	GetURL(key string) string
}

// StorageType represents the type of storage backend.
type StorageType string

const (
	StorageTypeLocal StorageType = "local"
	StorageTypeCOS   StorageType = "cos"
)

// NewStorage creates a new Storage instance based on the configuration.
func NewStorage(cfg *config.StorageConfig) (Storage, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}

	if StorageType(cfg.Type) == StorageTypeCOS {
		return NewCOSStorage(&COSConfig{
			Bucket:    cfg.Bucket,
			Region:    cfg.Region,
			SecretID:  cfg.SecretID,
			SecretKey: cfg.SecretKey,
			Domain:    cfg.Domain,
			Scheme:    cfg.Scheme,
		})
	}
	return NewLocalStorage(cfg.LocalPath)
}

// ValidateConfig validates the storage configuration.
func ValidateConfig(cfg *config.StorageConfig) error {
	if cfg == nil {
		return fmt.Errorf("storage config is nil")
	}

	switch StorageType(cfg.Type) {
	case StorageTypeCOS:
		if cfg.Bucket == "" {
			return fmt.Errorf("COS bucket is required")
		}
		if cfg.Region == "" {
			return fmt.Errorf("COS region is required")
		}
		if cfg.SecretID == "" || cfg.SecretKey == "" {
			return fmt.Errorf("COS credentials are required")
		}
	case StorageTypeLocal, "":
		if cfg.LocalPath == "" {
			return fmt.Errorf("local storage path is required")
		}
	default:
		return fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
	return nil
}
