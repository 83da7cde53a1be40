// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket", func(o *s3.Options) {
//	    o.Prefix = "runs/"
//	    o.Region = "us-east-1"
//	})
//
//	m, err := psmio.Load(ctx, store, "psm.csv.zst")
//
// # Features
//
//   - Multipart uploads for large result and matrix files
//   - CRC32C upload checksums
//   - Configurable prefix for multi-tenant isolation
package s3
