package report

import (
	"context"
	"fmt"
	"io"
	"path"
	"sync"

	"data-reconciler/core/storage"

	"github.com/minio/minio-go/v7"
)

// ObjectPrefix is the storage prefix holding the reports of profile.
func ObjectPrefix(profile string) string {
	return path.Join("reports", profile) + "/"
}

// Uploader publishes report files to object storage.
type Uploader struct {
	client storage.Client
	bucket string
	region string

	once      sync.Once
	bucketErr error
}

// NewUploader returns an Uploader writing to bucket.
func NewUploader(client storage.Client, bucket, region string) *Uploader {
	return &Uploader{client: client, bucket: bucket, region: region}
}

// Bucket returns the target bucket.
func (u *Uploader) Bucket() string {
	return u.bucket
}

// Upload stores r as object, creating the bucket on first use.
func (u *Uploader) Upload(ctx context.Context, object string, r io.Reader, size int64, contentType string) error {
	u.once.Do(func() {
		u.bucketErr = storage.EnsureBucket(ctx, u.client, u.bucket, u.region)
	})
	if u.bucketErr != nil {
		return u.bucketErr
	}

	if _, err := u.client.PutObject(ctx, u.bucket, object, r, size, minio.PutObjectOptions{ContentType: contentType}); err != nil {
		return fmt.Errorf("failed to upload %s: %w", object, err)
	}
	return nil
}
