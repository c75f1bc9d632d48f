package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/hupe1980/gsfs/blobstore"
	miniostore "github.com/hupe1980/gsfs/blobstore/minio"
	s3store "github.com/hupe1980/gsfs/blobstore/s3"
	"github.com/hupe1980/gsfs/internal/config"
)

// Environment variables holding the MinIO credentials.
const (
	envMinioAccessKey = "MINIO_ACCESS_KEY"
	envMinioSecretKey = "MINIO_SECRET_KEY"
)

// openStore returns the export backend selected by cfg, or nil if export
// is disabled.
func openStore(ctx context.Context, cfg config.OutputConfig) (blobstore.Store, error) {
	switch cfg.Backend {
	case "":
		return nil, nil
	case "local":
		if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output dir: %w", err)
		}
		return blobstore.NewLocalStore(cfg.Dir), nil
	case "s3":
		opts := []s3store.Option{s3store.WithPrefix(cfg.Prefix)}
		if cfg.Region != "" {
			opts = append(opts, s3store.WithRegion(cfg.Region))
		}
		if cfg.Endpoint != "" {
			opts = append(opts, s3store.WithEndpoint(cfg.Endpoint), s3store.WithPathStyle(true))
		}
		return s3store.New(ctx, cfg.Bucket, opts...)
	case "minio":
		client, err := minio.New(cfg.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(os.Getenv(envMinioAccessKey), os.Getenv(envMinioSecretKey), ""),
			Secure: !cfg.Insecure,
			Region: cfg.Region,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create minio client: %w", err)
		}
		return miniostore.NewStore(client, cfg.Bucket, cfg.Prefix), nil
	default:
		return nil, fmt.Errorf("unsupported output backend %q", cfg.Backend)
	}
}
