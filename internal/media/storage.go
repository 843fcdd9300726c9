// Package media stores post images in object storage. It is a thin
// surface over MinIO; image processing and CDN concerns live elsewhere.
package media

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/Olori-Ebi/Eyi-media/configs"
)

const presignTTL = time.Hour

type Storage struct {
	bucket string
	client *minio.Client
}

func New(cfg *configs.Config) (*Storage, error) {
	cl, err := minio.New(strings.TrimPrefix(cfg.MinioEndpoint, "http://"), &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, err
	}
	return &Storage{bucket: cfg.MinioBucket, client: cl}, nil
}

func (s *Storage) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if !exists {
		return s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
	}
	return nil
}

// Upload stores the image under a fresh key and returns the application
// path it is served from.
func (s *Storage) Upload(ctx context.Context, name, contentType string, data []byte) (string, error) {
	key := uuid.NewString() + path.Ext(name)
	_, err := s.client.PutObject(ctx, s.bucket, key,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("/api/v1/media/%s", key), nil
}

func (s *Storage) PresignGet(ctx context.Context, key string) (*url.URL, error) {
	return s.client.PresignedGetObject(ctx, s.bucket, key, presignTTL, nil)
}

func (s *Storage) Remove(ctx context.Context, key string) error {
	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}
