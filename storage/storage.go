package storage

import (
	"fmt"
	"io"
	"log"
	"net/http"
)

type StorageAPI interface {
	Save(path string, reader io.Reader, mimeType string) (int64, error)
	Load(path string, writer io.Writer) (int64, error)
	Serve(path string, request *http.Request, writer http.ResponseWriter)
	Delete(path string) error
	GetFreeSpace() uint64
	GetBucket() *Bucket
}

type Storage struct {
	Bucket Bucket
}

var (
	defaultStorage StorageAPI
)

// Init sets up the default storage from the config, it panics if that is not possible
func Init() {
	bucket := BucketFromConfig()
	storage, err := NewStorage(&bucket)
	if err != nil {
		panic(err)
	}
	log.Printf("Storage Bucket: %s (type %d)", bucket.Name, bucket.StorageType)
	defaultStorage = storage
}

func NewStorage(bucket *Bucket) (StorageAPI, error) {
	switch bucket.StorageType {
	case StorageTypeFile:
		return NewDiskStorage(bucket), nil
	case StorageTypeS3:
		return NewS3Storage(bucket), nil
	case StorageTypeMinio:
		return NewMinioStorage(bucket)
	}
	return nil, fmt.Errorf("storage type %d unavailable for bucket %s", bucket.StorageType, bucket.Name)
}

func (s *Storage) GetBucket() *Bucket {
	return &s.Bucket
}

func GetDefaultStorage() StorageAPI {
	if defaultStorage == nil {
		panic("no storage available")
	}
	return defaultStorage
}

// SetDefaultStorage replaces the default storage, used by tests
func SetDefaultStorage(storage StorageAPI) {
	defaultStorage = storage
}
