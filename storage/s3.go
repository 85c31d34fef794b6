package storage

import (
	"io"
	"log"
	"math"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

const presignExpiry = 15 * time.Minute

type S3Storage struct {
	Storage
	s3Client *s3.S3
}

func NewS3Storage(bucket *Bucket) StorageAPI {
	return &S3Storage{
		Storage: Storage{
			Bucket: *bucket,
		},
		s3Client: bucket.CreateSVC(),
	}
}

func (s *S3Storage) Save(path string, reader io.Reader, mimeType string) (int64, error) {
	counter := &countingReader{Reader: reader}
	uploader := s3manager.NewUploaderWithClient(s.s3Client)
	_, err := uploader.Upload(&s3manager.UploadInput{
		Bucket:      &s.Bucket.Name,
		Key:         aws.String(s.Bucket.GetRemotePath(path)),
		ContentType: &mimeType,
		Body:        counter,
	})
	return counter.n, err
}

func (s *S3Storage) Load(path string, writer io.Writer) (int64, error) {
	resp, err := s.s3Client.GetObject(&s3.GetObjectInput{
		Bucket: &s.Bucket.Name,
		Key:    aws.String(s.Bucket.GetRemotePath(path)),
	})
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return io.Copy(writer, resp.Body)
}

// Serve redirects to a presigned URL
func (s *S3Storage) Serve(path string, request *http.Request, writer http.ResponseWriter) {
	req, _ := s.s3Client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: &s.Bucket.Name,
		Key:    aws.String(s.Bucket.GetRemotePath(path)),
	})
	url, err := req.Presign(presignExpiry)
	if err != nil {
		log.Printf("S3 presign error for %s: %v", path, err)
		http.Error(writer, "storage error", http.StatusInternalServerError)
		return
	}
	http.Redirect(writer, request, url, http.StatusFound)
}

func (s *S3Storage) Delete(path string) error {
	_, err := s.s3Client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: &s.Bucket.Name,
		Key:    aws.String(s.Bucket.GetRemotePath(path)),
	})
	return err
}

// GetFreeSpace is unlimited for remote buckets
func (s *S3Storage) GetFreeSpace() uint64 {
	return math.MaxUint64
}

type countingReader struct {
	io.Reader
	n int64
}

func (r *countingReader) Read(p []byte) (int, error) {
	n, err := r.Reader.Read(p)
	r.n += int64(n)
	return n, err
}
