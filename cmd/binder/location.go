package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hupe1980/binder/blobstore"
	"github.com/hupe1980/binder/blobstore/minio"
	"github.com/hupe1980/binder/blobstore/s3"
)

var errBadLocation = errors.New("invalid location")

// location is a parsed input or output URI:
//
//	path/to/file.csv
//	s3://bucket/key
//	minio://endpoint/bucket/key
type location struct {
	scheme   string
	endpoint string
	bucket   string
	name     string
}

func parseLocation(uri string) (location, error) {
	scheme, rest, ok := strings.Cut(uri, "://")
	if !ok {
		if uri == "" {
			return location{}, fmt.Errorf("%w: empty", errBadLocation)
		}
		return location{scheme: "file", bucket: filepath.Dir(uri), name: filepath.Base(uri)}, nil
	}

	parts := strings.SplitN(rest, "/", 3)
	switch scheme {
	case "s3":
		if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
			return location{}, fmt.Errorf("%w: %q, want s3://bucket/key", errBadLocation, uri)
		}
		return location{scheme: scheme, bucket: parts[0], name: strings.Join(parts[1:], "/")}, nil
	case "minio":
		if len(parts) < 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
			return location{}, fmt.Errorf("%w: %q, want minio://endpoint/bucket/key", errBadLocation, uri)
		}
		return location{scheme: scheme, endpoint: parts[0], bucket: parts[1], name: parts[2]}, nil
	default:
		return location{}, fmt.Errorf("%w: unsupported scheme %q", errBadLocation, scheme)
	}
}

// open returns the store holding loc and the blob name within it.
func (loc location) open(ctx context.Context, cfg *Config) (blobstore.BlobStore, error) {
	switch loc.scheme {
	case "s3":
		return s3.New(ctx, loc.bucket, func(o *s3.Options) {
			o.Region = cfg.S3.Region
			o.Endpoint = cfg.S3.Endpoint
		})
	case "minio":
		access, secret := cfg.MinIO.AccessKey, cfg.MinIO.SecretKey
		if access == "" {
			access = os.Getenv("MINIO_ACCESS_KEY")
		}
		if secret == "" {
			secret = os.Getenv("MINIO_SECRET_KEY")
		}
		client, err := minio.Dial(loc.endpoint, access, secret, cfg.MinIO.Secure)
		if err != nil {
			return nil, err
		}
		return minio.NewStore(client, loc.bucket, ""), nil
	default:
		return blobstore.NewLocalStore(loc.bucket), nil
	}
}
