package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// GSStore implements ObjectStore for Google Storage mirrors
type GSStore struct {
	client *storage.Client
}

// NewGSStore creates a new ObjectStore on Google Storage.
// anonymous disables authentication for public buckets.
func NewGSStore(ctx context.Context, anonymous bool) (*GSStore, error) {
	var opts []option.ClientOption
	if anonymous {
		opts = append(opts, option.WithoutAuthentication())
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("NewGSStore: %w", err)
	}
	return &GSStore{client: client}, nil
}

// Name implements ObjectStore
func (s *GSStore) Name() string {
	return "GoogleStorage"
}

// Download implements ObjectStore
func (s *GSStore) Download(ctx context.Context, uri, localPath string) error {
	_, bucket, key, err := Parse(uri)
	if err != nil {
		return fmt.Errorf("GSStore: %w", err)
	}

	return atomicWrite(localPath, func(tmpPath string) error {
		r, err := s.client.Bucket(bucket).Object(key).NewReader(ctx)
		if err != nil {
			if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
				return ErrObjectNotFound{uri}
			}
			return fmt.Errorf("GSStore.NewReader %s/%s: %w", bucket, key, err)
		}
		defer r.Close()

		f, err := os.Create(tmpPath)
		if err != nil {
			return fmt.Errorf("GSStore.Create: %w", err)
		}
		defer f.Close()

		if _, err := io.Copy(f, r); err != nil {
			return fmt.Errorf("GSStore.Copy %s/%s: %w", bucket, key, err)
		}
		return nil
	})
}
