package storage

import (
	"catalog-service/dto"
	"context"
	"github.com/minio/minio-go/v7"
	"strings"
)

type MinioStorage struct {
	client *minio.Client
	bucket string
}

func NewMinioStorage(client *minio.Client, bucket string) *MinioStorage {
	return &MinioStorage{client: client, bucket: bucket}
}

func (s *MinioStorage) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
}

// Put streams an upload into the bucket under objectName.
func (s *MinioStorage) Put(ctx context.Context, objectName string, upload dto.Upload) error {
	reader, err := upload.Open()
	if err != nil {
		return err
	}
	defer reader.Close()

	objectName = strings.ReplaceAll(objectName, "\\", "/")
	contentType := upload.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err = s.client.PutObject(ctx, s.bucket, objectName, reader, upload.Size, minio.PutObjectOptions{ContentType: contentType})
	return err
}

func (s *MinioStorage) Remove(ctx context.Context, objectName string) error {
	return s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{})
}
