package export

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}
)

type S3Options struct {
	Bucket   string
	Region   string
	Endpoint string // empty means AWS itself
	User     string
	Password string
}

type S3Saver struct {
	client *s3.Client
	bucket string
}

// NewS3Saver builds the client once. Static credentials are used when a user
// is given, the default AWS chain otherwise. A custom endpoint (MinIO) switches
// to path-style addressing.
func NewS3Saver(ctx context.Context, o S3Options) (*S3Saver, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(o.Region)}
	if o.User != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(o.User, o.Password, ""),
		))
	}

	cfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(so *s3.Options) {
		if o.Endpoint != "" {
			so.BaseEndpoint = aws.String(o.Endpoint)
			so.UsePathStyle = true
		}
	})

	return &S3Saver{client: client, bucket: o.Bucket}, nil
}

func (s *S3Saver) Save(ctx context.Context, name string, data []byte) (string, error) {
	_, err := putObject(s.client, ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(name),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("image/jpeg"),
	})
	if err != nil {
		return "", fmt.Errorf("put s3://%s/%s: %w", s.bucket, name, err)
	}
	return fmt.Sprintf("s3://%s/%s", s.bucket, name), nil
}
