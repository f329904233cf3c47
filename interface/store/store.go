// Package store abstracts the object stores hosting the competition data.
package store

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
)

// ObjectStore is the interface of an object download service
type ObjectStore interface {
	// Download the object at uri into localPath. The write is atomic: either
	// localPath appears complete or not at all.
	// Raise ErrObjectNotFound
	Download(ctx context.Context, uri, localPath string) error

	// Name of the store
	Name() string
}

// ErrObjectNotFound is an error returned when an object is not found or available
type ErrObjectNotFound struct {
	Object string
}

func (e ErrObjectNotFound) Error() string {
	return fmt.Sprintf("Object not found or unavailable: %s", e.Object)
}

// Parse splits a scheme://bucket/key... uri on its first two path segments
func Parse(uri string) (scheme, bucket, key string, err error) {
	scheme, rest, ok := strings.Cut(uri, "://")
	if !ok {
		return "", "", "", fmt.Errorf("Parse[%s]: missing scheme", uri)
	}
	bucket, key, ok = strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", "", fmt.Errorf("Parse[%s]: missing bucket or key", uri)
	}
	return scheme, bucket, key, nil
}

// Registry dispatches downloads to the store registered for the uri scheme
type Registry map[string]ObjectStore

// Register the store for the given uri scheme
func (reg Registry) Register(scheme string, store ObjectStore) {
	reg[scheme] = store
}

// Download implements ObjectStore
func (reg Registry) Download(ctx context.Context, uri, localPath string) error {
	scheme, _, _, err := Parse(uri)
	if err != nil {
		return err
	}
	store, ok := reg[scheme]
	if !ok {
		return fmt.Errorf("Registry: no store registered for scheme %s://", scheme)
	}
	return store.Download(ctx, uri, localPath)
}

// Name implements ObjectStore
func (reg Registry) Name() string {
	names := make([]string, 0, len(reg))
	for scheme, store := range reg {
		names = append(names, scheme+":"+store.Name())
	}
	return "Registry(" + strings.Join(names, ", ") + ")"
}

// atomicWrite runs download against a unique temporary sibling of localPath and
// renames on success, so a failed or cancelled download never leaves a partial
// file at localPath.
func atomicWrite(localPath string, download func(tmpPath string) error) error {
	tmpPath := localPath + ".part-" + uuid.New().String()
	if err := download(tmpPath); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, localPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("atomicWrite.Rename: %w", err)
	}
	return nil
}
