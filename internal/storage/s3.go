package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// S3Uploader stores files in an S3-compatible bucket.
type S3Uploader struct {
	client        *s3.Client
	uploader      *manager.Uploader
	bucket        string
	publicBaseURL string
}

// S3Options configures NewS3Uploader. Endpoint is set for S3-compatible
// services such as MinIO; it switches to path-style addressing.
type S3Options struct {
	Bucket        string
	Region        string
	Endpoint      string
	PublicBaseURL string
}

// NewS3Uploader creates an S3 client using the default AWS credential chain.
func NewS3Uploader(ctx context.Context, opts S3Options) (*S3Uploader, error) {
	if opts.Bucket == "" {
		return nil, errors.New("s3 bucket is not set")
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(opts.Region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3Uploader{
		client:        client,
		uploader:      manager.NewUploader(client),
		bucket:        opts.Bucket,
		publicBaseURL: strings.TrimRight(opts.PublicBaseURL, "/"),
	}, nil
}

func (u *S3Uploader) Provider() string { return ProviderS3 }

// Upload puts the object under folder/<uuid><ext>; the key is the external id.
func (u *S3Uploader) Upload(ctx context.Context, obj Object) (*Stored, error) {
	key := objectKey(obj)
	out, err := u.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        obj.Body,
		ContentType: aws.String(obj.ContentType),
	})
	if err != nil {
		return nil, fmt.Errorf("s3 upload: %w", err)
	}

	url := out.Location
	if u.publicBaseURL != "" {
		url = u.publicBaseURL + "/" + key
	}
	return &Stored{ExternalID: key, URL: url}, nil
}

// Delete removes the object by key.
func (u *S3Uploader) Delete(ctx context.Context, externalID string) error {
	if _, err := u.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(externalID),
	}); err != nil {
		return fmt.Errorf("s3 delete: %w", err)
	}
	return nil
}

func objectKey(obj Object) string {
	return strings.TrimPrefix(path.Join(obj.Folder, uuid.NewString()+strings.ToLower(path.Ext(obj.Name))), "/")
}
