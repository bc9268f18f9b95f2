// Package storage archives raw CSV import payloads to S3-compatible object
// storage so a failed or disputed bulk import can be replayed from the exact
// bytes the operator uploaded. Archiving is best-effort: the import itself
// never depends on it.
package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ArchiveConfig holds configuration for the import archive bucket.
type ArchiveConfig struct {
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Bucket          string
	// Endpoint overrides the AWS endpoint for S3-compatible providers
	// (MinIO, Wasabi); path-style addressing is enabled when set.
	Endpoint string
}

// Configured reports whether enough settings are present to archive.
func (c ArchiveConfig) Configured() bool {
	return c.Bucket != "" && c.AccessKeyID != "" && c.SecretAccessKey != ""
}

// Archive stores import payloads under timestamped keys.
type Archive struct {
	client *s3.Client
	bucket string
}

// NewArchive builds the S3 client. Returns nil with no error when the
// archive is not configured, which callers treat as "archiving disabled".
func NewArchive(ctx context.Context, cfg ArchiveConfig) (*Archive, error) {
	if !cfg.Configured() {
		return nil, nil
	}

	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	var client *s3.Client
	if cfg.Endpoint != "" {
		client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	} else {
		client = s3.NewFromConfig(awsCfg)
	}

	return &Archive{client: client, bucket: cfg.Bucket}, nil
}

// StoreImport writes one raw CSV payload and returns the object key.
func (a *Archive) StoreImport(ctx context.Context, uploadedBy string, payload string) (string, error) {
	key := fmt.Sprintf("imports/%s/%s.csv", time.Now().UTC().Format("2006/01/02"), time.Now().UTC().Format("150405.000000000"))
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        strings.NewReader(payload),
		ContentType: aws.String("text/csv"),
		Metadata: map[string]string{
			"uploaded-by": uploadedBy,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to archive import to bucket %s: %w", a.bucket, err)
	}
	return key, nil
}
