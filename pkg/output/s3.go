package output

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"path"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/disintegration/imaging"
)

// UploadTimeout bounds a single S3 upload
const UploadTimeout = 30 * time.Second

// S3Config holds the bucket location and static credentials
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string // Empty for AWS, set for S3-compatible stores
	AccessKey string
	SecretKey string
	Prefix    string // Key prefix, e.g. "renders"
}

// S3Sink uploads images to an S3 bucket
type S3Sink struct {
	client  s3iface.S3API
	bucket  string
	prefix  string
	timeout time.Duration
}

// NewS3Sink creates a sink using static credentials and path-style addressing
func NewS3Sink(config S3Config) (*S3Sink, error) {
	if config.Bucket == "" {
		return nil, fmt.Errorf("S3 bucket is required")
	}

	awsConfig := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(config.AccessKey, config.SecretKey, ""),
		Region:           aws.String(config.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if config.Endpoint != "" {
		awsConfig.Endpoint = aws.String(config.Endpoint)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}

	return NewS3SinkWithClient(s3.New(sess), config.Bucket, config.Prefix), nil
}

// NewS3SinkWithClient creates a sink around an existing client
func NewS3SinkWithClient(client s3iface.S3API, bucket, prefix string) *S3Sink {
	return &S3Sink{
		client:  client,
		bucket:  bucket,
		prefix:  prefix,
		timeout: UploadTimeout,
	}
}

// Save encodes the image and uploads it under prefix/name, returning its s3:// URL
func (ss *S3Sink) Save(ctx context.Context, name string, img image.Image) (string, error) {
	name, format := imageFormat(name)
	key := path.Join(ss.prefix, name)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format); err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", key, err)
	}

	ctx, cancel := context.WithTimeout(ctx, ss.timeout)
	defer cancel()

	size := int64(buf.Len())
	_, err := ss.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(ss.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(buf.Bytes()),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType(format)),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	return fmt.Sprintf("s3://%s/%s", ss.bucket, key), nil
}
