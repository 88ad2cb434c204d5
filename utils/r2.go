package utils

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"roadwaysledger/config"
	"roadwaysledger/logger"
)

// R2Archiver keeps a copy of every export in a Cloudflare R2 bucket.
type R2Archiver struct {
	client *s3.Client
	bucket string
	log    *logger.Logger
	now    func() time.Time
}

// NewR2Archiver builds the S3 client against the account's R2 endpoint.
func NewR2Archiver(ctx context.Context, cfg *config.Config, log *logger.Logger) (*R2Archiver, error) {
	if !cfg.ArchiveEnabled() {
		return nil, fmt.Errorf("missing required R2 configuration")
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion("auto"),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.R2AccessKeyID,
			cfg.R2SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load R2 config: %w", err)
	}

	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.R2AccountID)
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})
	if log == nil {
		log = logger.Discard()
	}
	return &R2Archiver{client: client, bucket: cfg.R2Bucket, log: log, now: time.Now}, nil
}

// ArchiveKey is the object key an export is stored under.
func ArchiveKey(at time.Time, filename string) string {
	return "exports/" + at.UTC().Format("20060102T150405Z") + "_" + filename
}

// Archive uploads body and returns the object key.
func (a *R2Archiver) Archive(ctx context.Context, filename string, body []byte, contentType string) (string, error) {
	key := ArchiveKey(a.now(), filename)
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to R2: %w", err)
	}
	a.log.Info("export archived", "bucket", a.bucket, "key", key, "bytes", len(body))
	return key, nil
}
