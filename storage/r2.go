package storage

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/orayew2002/rast-attendance/config"
)

// Object metadata written with every archived report.
const (
	metaRunID  = "run-id"
	metaReport = "report"
)

// R2Store archives reports in a Cloudflare R2 bucket (S3-compatible).
type R2Store struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// NewR2Store creates an R2Store from the R2 fields of cfg.
func NewR2Store(ctx context.Context, cfg config.StorageConfig) (*R2Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID)
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})

	return &R2Store{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(cfg.PublicURL, "/"),
	}, nil
}

// Save uploads r under its run key. The returned info is built from the
// report itself, the bucket is not queried again.
func (s *R2Store) Save(ctx context.Context, r Report) (*FileInfo, error) {
	if _, err := s.client.PutObject(ctx, putReportInput(s.bucket, r)); err != nil {
		return nil, fmt.Errorf("r2 put %s: %w", r.Key(), err)
	}

	return &FileInfo{
		URL:      objectURL(s.publicURL, s.bucket, r.Key()),
		FileName: r.Name,
		FileSize: int64(len(r.Body)),
		FileType: r.ContentType,
	}, nil
}

// putReportInput tags the object with its run and report name and makes
// browsers download it under the report's file name.
func putReportInput(bucket string, r Report) *s3.PutObjectInput {
	return &s3.PutObjectInput{
		Bucket:             aws.String(bucket),
		Key:                aws.String(r.Key()),
		Body:               bytes.NewReader(r.Body),
		ContentLength:      aws.Int64(int64(len(r.Body))),
		ContentType:        aws.String(r.ContentType),
		ContentDisposition: aws.String(mime.FormatMediaType("attachment", map[string]string{"filename": r.Name})),
		Metadata: map[string]string{
			metaRunID:  r.RunID,
			metaReport: r.Name,
		},
	}
}

// objectURL is the public address of key, or an r2:// locator when the bucket
// has no public domain.
func objectURL(publicURL, bucket, key string) string {
	if publicURL == "" {
		return "r2://" + bucket + "/" + key
	}
	return publicURL + "/" + key
}
