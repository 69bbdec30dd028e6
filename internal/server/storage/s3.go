// Package storage hands out presigned URLs for source media kept in an
// S3-compatible bucket. Admins upload to a presigned PUT URL; the asset
// provider later pulls the object through a presigned GET URL.
package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Santi-a-ux/Horios-OTT/internal/server/models"
	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// KeyPrefix is the namespace of source uploads inside the bucket.
const KeyPrefix = "sources/"

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}

	now = time.Now
)

// S3Config points at an S3-compatible bucket (AWS or MinIO).
type S3Config struct {
	AccessKey    string
	SecretKey    string
	Bucket       string
	Region       string
	BaseEndpoint string
	// URLTTL bounds how long a presigned URL stays valid.
	URLTTL time.Duration
}

// S3Store hands out presigned URLs for source media. It never moves bytes
// itself.
type S3Store struct {
	cfg S3Config
}

// NewS3Store defaults URLTTL to 15 minutes.
func NewS3Store(cfg S3Config) *S3Store {
	if cfg.URLTTL <= 0 {
		cfg.URLTTL = 15 * time.Minute
	}
	return &S3Store{cfg: cfg}
}

// NewSourceKey returns a fresh object key under KeyPrefix, bucketed by date.
func NewSourceKey() string {
	d := now().UTC()
	return fmt.Sprintf("%s%d/%02d/%02d/%v", KeyPrefix, d.Year(), d.Month(), d.Day(), uuid.New())
}

// ValidKey reports whether key looks like one issued by NewSourceKey.
func ValidKey(key string) bool {
	return strings.HasPrefix(key, KeyPrefix) && !strings.Contains(key, "..") && len(key) > len(KeyPrefix)
}

func (s *S3Store) presignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.cfg.AccessKey,
			s.cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.cfg.BaseEndpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

// PresignPut reserves a new key and returns a URL the caller can PUT the
// source file to.
func (s *S3Store) PresignPut(ctx context.Context) (models.SourceUpload, error) {
	pc, err := s.presignClient(ctx)
	if err != nil {
		return models.SourceUpload{}, fmt.Errorf("s3 config: %w", err)
	}

	bucket := s.cfg.Bucket
	key := NewSourceKey()
	issued := now()

	req, err := presignPutObject(pc, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(s.cfg.URLTTL))
	if err != nil {
		return models.SourceUpload{}, fmt.Errorf("presign put: %w", err)
	}

	return models.SourceUpload{Key: key, URL: req.URL, ExpiresAt: issued.Add(s.cfg.URLTTL)}, nil
}

// PresignGet returns a time-limited download URL for key.
func (s *S3Store) PresignGet(ctx context.Context, key string) (string, error) {
	pc, err := s.presignClient(ctx)
	if err != nil {
		return "", fmt.Errorf("s3 config: %w", err)
	}

	bucket := s.cfg.Bucket

	req, err := presignGetObject(pc, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(s.cfg.URLTTL))
	if err != nil {
		return "", fmt.Errorf("presign get: %w", err)
	}

	return req.URL, nil
}
