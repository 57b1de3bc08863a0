package storage

import (
	"bytes"
	"context"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3Store persists objects in an S3-compatible bucket.
type S3Store struct {
	client *minio.Client
	bucket string
}

type S3Info struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

func NewS3Store(info S3Info) (*S3Store, error) {
	client, err := minio.New(info.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(info.AccessKey, info.SecretKey, ""),
		Secure: info.UseSSL,
	})
	if err != nil {
		return nil, &StoreError{Op: "init", Key: info.Endpoint, Err: err}
	}

	return &S3Store{client: client, bucket: info.Bucket}, nil
}

func (s *S3Store) Get(ctx context.Context, key string) ([]byte, error) {
	object, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, &StoreError{Op: "get", Key: key, Err: err}
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, &StoreError{Op: "get", Key: key, Err: ErrNotExist}
		}
		return nil, &StoreError{Op: "get", Key: key, Err: err}
	}

	return data, nil
}

func (s *S3Store) Put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return &StoreError{Op: "put", Key: key, Err: err}
	}
	return nil
}

func (s *S3Store) Head(ctx context.Context, key string) error {
	_, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return &StoreError{Op: "head", Key: key, Err: ErrNotExist}
		}
		return &StoreError{Op: "head", Key: key, Err: err}
	}
	return nil
}
