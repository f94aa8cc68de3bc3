package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Store stores assets in an S3 bucket.
//
// Example:
//
//	cfg, _ := config.LoadDefaultConfig(context.Background())
//	store := media.NewS3Store(s3.NewFromConfig(cfg), "my-bucket", "assets/", 50<<20)
type S3Store struct {
	client *s3.Client
	bucket string
	prefix string

	maxSize int64
}

// NewS3Store creates an S3-backed asset store. prefix is prepended to all
// object keys (e.g. "assets/"). maxSize of 0 means no size limit.
func NewS3Store(client *s3.Client, bucket, prefix string, maxSize int64) *S3Store {
	return &S3Store{
		client:  client,
		bucket:  bucket,
		prefix:  prefix,
		maxSize: maxSize,
	}
}

// Save stores an asset and returns its ID.
func (s *S3Store) Save(ctx context.Context, contentType string, size int64, r io.Reader) (string, error) {
	if s.maxSize > 0 && size > s.maxSize {
		return "", ErrTooLarge
	}

	id := newAssetID()
	key := s.prefix + id

	// Buffer the asset; element assets are small. PutObject needs a
	// seekable body for retries.
	var buf bytes.Buffer
	if s.maxSize > 0 {
		n, err := io.Copy(&buf, io.LimitReader(r, s.maxSize+1))
		if err != nil {
			return "", err
		}
		if n > s.maxSize {
			return "", ErrTooLarge
		}
	} else {
		if _, err := io.Copy(&buf, r); err != nil {
			return "", err
		}
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String(contentType),
		Metadata: map[string]string{
			"saved-at": time.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		return "", fmt.Errorf("media: s3 put failed: %w", err)
	}

	return id, nil
}

// Open retrieves an asset by ID.
func (s *S3Store) Open(ctx context.Context, id string) (*Asset, error) {
	key := s.prefix + id

	result, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("media: s3 get failed: %w", err)
	}

	contentType := "application/octet-stream"
	if result.ContentType != nil {
		contentType = *result.ContentType
	}
	size := int64(0)
	if result.ContentLength != nil {
		size = *result.ContentLength
	}

	return &Asset{
		ID:          id,
		ContentType: contentType,
		Size:        size,
		Reader:      result.Body,
	}, nil
}

// Remove deletes an asset by ID.
func (s *S3Store) Remove(ctx context.Context, id string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.prefix + id),
	})
	return err
}

// Cleanup removes assets older than maxAge.
func (s *S3Store) Cleanup(ctx context.Context, maxAge time.Duration) error {
	cutoff := time.Now().Add(-maxAge)

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return err
		}
		for _, obj := range page.Contents {
			if obj.LastModified == nil || obj.Key == nil {
				continue
			}
			if obj.LastModified.Before(cutoff) {
				s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
					Bucket: aws.String(s.bucket),
					Key:    obj.Key,
				})
			}
		}
	}
	return nil
}
