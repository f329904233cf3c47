package store

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/forestcarbon/biomassters/common"
)

// S3Store implements ObjectStore for the competition S3 mirrors.
// The buckets are public: access is anonymous (unsigned) unless credentials
// are provided.
type S3Store struct {
	downloader *manager.Downloader
}

// NewS3Store creates a new ObjectStore on the S3 mirror of the given region.
// accessKeyID and secretAccessKey may be empty for anonymous access.
func NewS3Store(ctx context.Context, region common.Region, accessKeyID, secretAccessKey string) (*S3Store, error) {
	credentialsProvider := aws.CredentialsProvider(aws.AnonymousCredentials{})
	if accessKeyID != "" {
		credentialsProvider = credentials.NewStaticCredentialsProvider(accessKeyID, secretAccessKey, "")
	}

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(region.AWSRegion()),
		config.WithCredentialsProvider(credentialsProvider),
	)
	if err != nil {
		return nil, fmt.Errorf("NewS3Store.LoadDefaultConfig: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	downloader := manager.NewDownloader(client, func(d *manager.Downloader) {
		d.PartSize = 10 * 1024 * 1024 // 10MB per part
	})
	return &S3Store{downloader: downloader}, nil
}

// Name implements ObjectStore
func (s *S3Store) Name() string {
	return "S3"
}

// Download implements ObjectStore
func (s *S3Store) Download(ctx context.Context, uri, localPath string) error {
	_, bucket, key, err := Parse(uri)
	if err != nil {
		return fmt.Errorf("S3Store: %w", err)
	}

	return atomicWrite(localPath, func(tmpPath string) error {
		f, err := os.Create(tmpPath)
		if err != nil {
			return fmt.Errorf("S3Store.Create: %w", err)
		}
		defer f.Close()

		if _, err := s.downloader.Download(ctx, f, &s3.GetObjectInput{
			Bucket: aws.String(bucket),
			Key:    aws.String(key),
		}); err != nil {
			var noSuchKey *types.NoSuchKey
			var notFound *types.NotFound
			if errors.As(err, &noSuchKey) || errors.As(err, &notFound) {
				return ErrObjectNotFound{uri}
			}
			return fmt.Errorf("S3Store.Download %s:%s: %w", bucket, key, err)
		}
		return nil
	})
}
