package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const presignExpiry = 7 * 24 * time.Hour

type S3Options struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
	// BaseURL is a public CDN in front of the bucket. Without it URLs are
	// presigned.
	BaseURL string
}

// S3Storage keeps photos in an S3 compatible bucket (AWS, Cloudflare R2,
// MinIO).
type S3Storage struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
	baseURL string
}

func NewS3Storage(ctx context.Context, opts S3Options) (*S3Storage, error) {
	if opts.Bucket == "" {
		return nil, errors.New("s3 bucket is empty")
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(opts.Region),
	}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load s3 config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})
	return newS3Storage(client, opts.Bucket, opts.BaseURL), nil
}

func newS3Storage(client *s3.Client, bucket, baseURL string) *S3Storage {
	return &S3Storage{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (s *S3Storage) Save(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	const op = "storage.s3.save"

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, body); err != nil {
		return "", fmt.Errorf("%s: read body: %w", op, err)
	}

	key := NewKey(filename)
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(buf.Bytes()),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return key, nil
}

func (s *S3Storage) URL(ctx context.Context, key string) (string, error) {
	const op = "storage.s3.url"
	if !validKey(key) {
		return "", ErrInvalidKey
	}
	if s.baseURL != "" {
		return s.baseURL + "/" + key, nil
	}

	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return req.URL, nil
}
