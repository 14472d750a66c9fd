// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client so reconciliation reports can be published to
// AWS S3 or a self-hosted MinIO instance and served back over HTTP.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Operations
//
//   - EnsureBucket: creates the report bucket on first upload.
//   - PutObject: uploads a workbook.
//   - List: lists the reports of a profile.
//   - GetObject: streams a report back.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	err = storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
package storage
