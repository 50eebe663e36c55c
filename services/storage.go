package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"court_establishment_go/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// BackupStorage holds snapshot dumps: an S3-compatible bucket when configured,
// otherwise a local directory.
type BackupStorage interface {
	UploadReader(ctx context.Context, reader io.Reader, key string, contentType string, size int64) error
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	IsConfigured() bool
}

// Backups is the global backup storage instance
var Backups BackupStorage

// InitializeBackupStorage sets up the backup storage provider based on configuration
func InitializeBackupStorage(cfg *config.Config) {
	if cfg.S3AccountID != "" && cfg.S3AccessKeyID != "" && cfg.S3SecretAccessKey != "" && cfg.S3BucketName != "" {
		bucket, err := NewBucketStorage(cfg)
		if err != nil {
			log.Printf("[WARNING] Failed to initialize bucket storage: %v. Falling back to local storage.", err)
			Backups = NewLocalBackupStorage(cfg.BackupDir)
			log.Println("Backup storage established (local filesystem - fallback)")
			return
		}

		// Test the connection before committing to it
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		_, err = bucket.client.HeadBucket(ctx, &s3.HeadBucketInput{
			Bucket: &cfg.S3BucketName,
		})
		if err != nil {
			log.Printf("[WARNING] Bucket connection test failed: %v. Falling back to local storage.", err)
			Backups = NewLocalBackupStorage(cfg.BackupDir)
			log.Println("Backup storage established (local filesystem - fallback)")
			return
		}

		Backups = bucket
		log.Printf("Backup storage established (bucket: %s)", cfg.S3BucketName)
	} else {
		Backups = NewLocalBackupStorage(cfg.BackupDir)
		log.Printf("Backup storage established (local filesystem - path: %s)", cfg.BackupDir)
	}
}

// StoreSnapshotBackup writes a snapshot dump to backup storage under a
// timestamped key and returns the key.
func StoreSnapshotBackup(ctx context.Context, dump string) (string, error) {
	if Backups == nil {
		return "", fmt.Errorf("backup storage not initialized")
	}
	key := fmt.Sprintf("snapshots/snapshot_%s.sql", time.Now().Format("20060102_150405"))
	reader := strings.NewReader(dump)
	if err := Backups.UploadReader(ctx, reader, key, "application/sql", int64(len(dump))); err != nil {
		return "", err
	}
	return key, nil
}

// BucketStorage implements BackupStorage for S3-compatible object stores
// (Cloudflare R2 endpoint layout).
type BucketStorage struct {
	client *s3.Client
	bucket string
}

// NewBucketStorage creates a new S3-compatible storage provider
func NewBucketStorage(cfg *config.Config) (*BucketStorage, error) {
	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.S3AccountID)

	creds := credentials.NewStaticCredentialsProvider(
		cfg.S3AccessKeyID,
		cfg.S3SecretAccessKey,
		"",
	)

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithCredentialsProvider(creds),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	return &BucketStorage{
		client: client,
		bucket: cfg.S3BucketName,
	}, nil
}

// IsConfigured returns true if the bucket client is usable
func (b *BucketStorage) IsConfigured() bool {
	return b.client != nil && b.bucket != ""
}

// UploadReader uploads content from a reader to the bucket
func (b *BucketStorage) UploadReader(ctx context.Context, reader io.Reader, key string, contentType string, size int64) error {
	input := &s3.PutObjectInput{
		Bucket:        aws.String(b.bucket),
		Key:           aws.String(key),
		Body:          reader,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	}

	if _, err := b.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("failed to upload to bucket: %w", err)
	}
	return nil
}

// Get retrieves an object from the bucket
func (b *BucketStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	input := &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	}

	result, err := b.client.GetObject(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get object from bucket: %w", err)
	}
	return result.Body, nil
}

// Delete removes an object from the bucket
func (b *BucketStorage) Delete(ctx context.Context, key string) error {
	input := &s3.DeleteObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	}

	if _, err := b.client.DeleteObject(ctx, input); err != nil {
		return fmt.Errorf("failed to delete from bucket: %w", err)
	}
	return nil
}

// LocalBackupStorage implements BackupStorage on the local filesystem
type LocalBackupStorage struct {
	baseDir string
}

// NewLocalBackupStorage creates a new local backup storage provider
func NewLocalBackupStorage(baseDir string) *LocalBackupStorage {
	return &LocalBackupStorage{baseDir: baseDir}
}

// IsConfigured returns true (local storage is always available)
func (l *LocalBackupStorage) IsConfigured() bool {
	return true
}

// UploadReader saves content from a reader to the backup directory
func (l *LocalBackupStorage) UploadReader(ctx context.Context, reader io.Reader, key string, contentType string, size int64) error {
	fullPath := filepath.Join(l.baseDir, key)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	dst, err := os.Create(fullPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, reader); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}
	return nil
}

// Get opens a stored backup
func (l *LocalBackupStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(l.baseDir, key))
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return f, nil
}

// Delete removes a stored backup
func (l *LocalBackupStorage) Delete(ctx context.Context, key string) error {
	if err := os.Remove(filepath.Join(l.baseDir, key)); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
