package services

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	appConfig "github.com/elydayvsontjs-creator/crmallesongrafica/config"
	"github.com/elydayvsontjs-creator/crmallesongrafica/models"
	"github.com/elydayvsontjs-creator/crmallesongrafica/utils"
)

// S3Interface defines the interface for S3 operations
type S3Interface interface {
	UploadBytes(content []byte, filename, contentType string) (string, error)
	GetPresignedURL(s3Key string) (string, error)
	DeleteFile(s3Key string) error
}

// S3Service handles all S3-related operations
type S3Service struct {
	client *s3.Client
	bucket string
}

// InitS3ImageStore initializes the S3-backed image store
func InitS3ImageStore(cfg *appConfig.Config) (ImageStore, error) {
	// Load AWS configuration with explicit options
	awsConfig, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(cfg.AWSRegion),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsConfig)

	imageStoreInstance = &S3ImageStore{
		s3: &S3Service{
			client: client,
			bucket: cfg.AWSS3Bucket,
		},
	}
	return imageStoreInstance, nil
}

// UploadBytes uploads a payload to S3 and returns the object key
func (s *S3Service) UploadBytes(content []byte, filename, contentType string) (string, error) {
	// Key format: uploads/{timestamp}_{filename}
	s3Key := fmt.Sprintf("uploads/%d_%s", time.Now().UnixNano(), filename)

	_, err := s.client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s3Key),
		Body:        bytes.NewReader(content),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return s3Key, nil
}

// GetPresignedURL generates a presigned URL for accessing a private S3
// object. The URL expires after 1 hour.
func (s *S3Service) GetPresignedURL(s3Key string) (string, error) {
	if s3Key == "" {
		return "", nil
	}

	presignClient := s3.NewPresignClient(s.client)

	request, err := presignClient.PresignGetObject(context.TODO(), &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s3Key),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = time.Hour
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	log.Printf("Generated presigned URL for key %s", s3Key)
	return request.URL, nil
}

// DeleteFile deletes a file from S3
func (s *S3Service) DeleteFile(s3Key string) error {
	if s3Key == "" {
		return nil
	}

	_, err := s.client.DeleteObject(context.TODO(), &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s3Key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}

	return nil
}

// S3ImageStore implements ImageStore by offloading payloads to a bucket;
// the order_images row keeps only the object key
type S3ImageStore struct {
	s3 S3Interface
}

// NewS3ImageStore wraps an existing S3 client (primarily for testing)
func NewS3ImageStore(s3 S3Interface) *S3ImageStore {
	return &S3ImageStore{s3: s3}
}

// Store validates the payload, uploads the decoded bytes and returns the
// object key as the row value
func (s *S3ImageStore) Store(dataURL string) (*StoredImage, error) {
	if err := utils.ValidateImagePayload(dataURL); err != nil {
		return nil, err
	}

	contentType, data, err := utils.ParseDataURL(dataURL)
	if err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("img_%d.%s", time.Now().UnixNano(), utils.ImageExtension(contentType))
	key, err := s.s3.UploadBytes(data, filename, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	return &StoredImage{
		Filename:    filename,
		ContentType: contentType,
		Data:        key,
	}, nil
}

// Delete removes the offloaded object from the bucket
func (s *S3ImageStore) Delete(img *models.OrderImage) error {
	if err := s.s3.DeleteFile(img.Data); err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}
