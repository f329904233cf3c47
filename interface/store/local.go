package store

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore implements ObjectStore for file:// mirrors of the buckets.
// The bucket segment of the uri is resolved under the store root.
type LocalStore struct {
	root string
}

// NewLocalStore creates a new ObjectStore over a local directory
func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

// Name implements ObjectStore
func (s *LocalStore) Name() string {
	return "FileSystem (" + s.root + ")"
}

// Download implements ObjectStore
func (s *LocalStore) Download(ctx context.Context, uri, localPath string) error {
	_, bucket, key, err := Parse(uri)
	if err != nil {
		return fmt.Errorf("LocalStore: %w", err)
	}
	srcPath := filepath.Join(s.root, bucket, filepath.FromSlash(key))
	if strings.Contains(key, "..") {
		return fmt.Errorf("LocalStore: invalid key %s", key)
	}

	return atomicWrite(localPath, func(tmpPath string) error {
		src, err := os.Open(srcPath)
		if err != nil {
			if os.IsNotExist(err) {
				return ErrObjectNotFound{uri}
			}
			return fmt.Errorf("LocalStore.Open: %w", err)
		}
		defer src.Close()

		dst, err := os.Create(tmpPath)
		if err != nil {
			return fmt.Errorf("LocalStore.Create: %w", err)
		}
		defer dst.Close()

		if _, err := io.Copy(dst, src); err != nil {
			return fmt.Errorf("LocalStore.Copy: %w", err)
		}
		return nil
	})
}
