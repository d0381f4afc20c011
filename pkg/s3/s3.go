package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/google/uuid"
)

const defaultFolder = "blog-images"

var ErrNotInBucket = errors.New("url does not belong to the configured bucket")

type ItfS3 interface {
	UploadFile(ctx context.Context, data []byte, fileName string, contentType string) (string, error)
	DeleteFile(ctx context.Context, fileURL string) error
	OwnsURL(fileURL string) bool
}

type s3Client struct {
	client     *s3.S3
	uploader   *s3manager.Uploader
	bucketName string
	region     string
	folder     string
	now        func() time.Time
}

func New() (ItfS3, error) {
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "us-east-1"
	}

	sess, err := newSession(region)
	if err != nil {
		return nil, err
	}

	bucket := os.Getenv("AWS_BUCKET_NAME")
	if bucket == "" {
		return nil, errors.New("AWS_BUCKET_NAME not set")
	}

	return &s3Client{
		client:     s3.New(sess),
		uploader:   s3manager.NewUploader(sess),
		bucketName: bucket,
		region:     region,
		folder:     defaultFolder,
		now:        time.Now,
	}, nil
}

func (s *s3Client) UploadFile(ctx context.Context, data []byte, fileName string, contentType string) (string, error) {
	now := s.now().UTC()
	key := ObjectKey(s.folder, now, uuid.NewString(), fileName)

	_, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		ACL:         aws.String(s3.ObjectCannedACLPublicRead),
		Metadata: map[string]*string{
			"original-filename": aws.String(fileName),
			"upload-date":       aws.String(now.Format(time.RFC3339)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}

	return PublicURL(s.bucketName, s.region, key), nil
}

func (s *s3Client) DeleteFile(ctx context.Context, fileURL string) error {
	key, err := s.keyFromURL(fileURL)
	if err != nil {
		return err
	}

	_, err = s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	})

	return err
}

func (s *s3Client) OwnsURL(fileURL string) bool {
	_, err := s.keyFromURL(fileURL)
	return err == nil
}

func (s *s3Client) keyFromURL(fileURL string) (string, error) {
	u, err := url.Parse(fileURL)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	if u.Host != fmt.Sprintf("%s.s3.%s.amazonaws.com", s.bucketName, s.region) {
		return "", ErrNotInBucket
	}

	key, err := url.PathUnescape(strings.TrimPrefix(u.Path, "/"))
	if err != nil {
		return "", fmt.Errorf("failed to decode S3 key: %w", err)
	}
	return key, nil
}

// ObjectKey lays out uploads as <folder>/yyyy/MM/dd/<id><ext>.
func ObjectKey(folder string, at time.Time, id string, fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	return fmt.Sprintf("%s/%s/%s%s", folder, at.Format("2006/01/02"), id, ext)
}

func PublicURL(bucket, region, key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, region, key)
}

func newSession(region string) (*session.Session, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
		Credentials: credentials.NewStaticCredentials(
			os.Getenv("AWS_ACCESS_KEY_ID"),
			os.Getenv("AWS_SECRET_ACCESS_KEY"),
			"",
		),
	})

	if err != nil {
		return nil, err
	}

	return sess, nil
}
