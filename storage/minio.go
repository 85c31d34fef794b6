package storage

import (
	"context"
	"io"
	"log"
	"math"
	"net/http"
	"net/url"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinioStorage struct {
	Storage
	client *minio.Client
}

func NewMinioStorage(bucket *Bucket) (StorageAPI, error) {
	key, secret := bucket.keySecret()
	client, err := minio.New(bucket.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(key, secret, ""),
		Secure: bucket.UseSSL,
	})
	if err != nil {
		return nil, err
	}
	return &MinioStorage{
		Storage: Storage{
			Bucket: *bucket,
		},
		client: client,
	}, nil
}

func (s *MinioStorage) Save(path string, reader io.Reader, mimeType string) (int64, error) {
	info, err := s.client.PutObject(context.Background(), s.Bucket.Name, s.Bucket.GetRemotePath(path), reader, -1, minio.PutObjectOptions{
		ContentType: mimeType,
	})
	if err != nil {
		return 0, err
	}
	return info.Size, nil
}

func (s *MinioStorage) Load(path string, writer io.Writer) (int64, error) {
	object, err := s.client.GetObject(context.Background(), s.Bucket.Name, s.Bucket.GetRemotePath(path), minio.GetObjectOptions{})
	if err != nil {
		return 0, err
	}
	defer object.Close()
	return io.Copy(writer, object)
}

// Serve redirects to a presigned URL
func (s *MinioStorage) Serve(path string, request *http.Request, writer http.ResponseWriter) {
	u, err := s.client.PresignedGetObject(request.Context(), s.Bucket.Name, s.Bucket.GetRemotePath(path), presignExpiry, url.Values{})
	if err != nil {
		log.Printf("MinIO presign error for %s: %v", path, err)
		http.Error(writer, "storage error", http.StatusInternalServerError)
		return
	}
	http.Redirect(writer, request, u.String(), http.StatusFound)
}

func (s *MinioStorage) Delete(path string) error {
	return s.client.RemoveObject(context.Background(), s.Bucket.Name, s.Bucket.GetRemotePath(path), minio.RemoveObjectOptions{})
}

// GetFreeSpace is unlimited for remote buckets
func (s *MinioStorage) GetFreeSpace() uint64 {
	return math.MaxUint64
}
