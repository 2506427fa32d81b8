package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// LogoStore keeps bank logo assets in an S3-compatible bucket.
type LogoStore struct {
	client *minio.Client
	bucket string
	base   string
}

// Config holds the MinIO connection settings.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// NewLogoStore connects to the MinIO endpoint and makes sure the logo
// bucket exists.
func NewLogoStore(ctx context.Context, cfg Config) (*LogoStore, error) {
	if cfg.Endpoint == "" || cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("missing one or more required settings: endpoint, access key, secret key")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}

	s := &LogoStore{
		client: client,
		bucket: cfg.Bucket,
		base:   fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket),
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("error checking bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.Bucket, err)
		}
	}

	log.Println("Successfully connected to MinIO endpoint:", cfg.Endpoint)
	return s, nil
}

// Upload stores a logo for a bank unless one is already present.
func (s *LogoStore) Upload(ctx context.Context, bank string, r io.Reader, size int64, contentType string) (string, error) {
	key := logoKey(bank)

	_, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err == nil {
		log.Printf("Logo for '%s' already exists in bucket '%s'. Ignoring write operation.", bank, s.bucket)
		return s.URL(bank), nil
	}
	if minio.ToErrorResponse(err).Code != "NoSuchKey" {
		return "", fmt.Errorf("failed to check for existing logo: %w", err)
	}

	_, err = s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("failed to store logo for %s: %w", bank, err)
	}

	log.Printf("Stored logo for '%s' with key '%s'", bank, key)
	return s.URL(bank), nil
}

// URL returns the public URL for a bank's logo.
func (s *LogoStore) URL(bank string) string {
	return s.base + "/" + logoKey(bank)
}

// logoKey replaces spaces and uppercases to form a stable object key.
func logoKey(bank string) string {
	k := strings.ToLower(strings.ReplaceAll(bank, " ", "-"))
	return "logos/" + k + ".png"
}
