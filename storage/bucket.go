package storage

import (
	"strings"
	"yatube/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

type StorageType uint8

const (
	StorageTypeFile  StorageType = 0
	StorageTypeS3    StorageType = 1
	StorageTypeMinio StorageType = 2
)

// Bucket describes where media files live. It is built from the config on start
type Bucket struct {
	Name        string
	StorageType StorageType
	Path        string // Path on a drive or a prefix in a S3/MinIO bucket
	Endpoint    string
	Region      string
	AuthDetails string // Authentication details. In case of S3/MinIO - "key:secret"
	UseSSL      bool
}

// BucketFromConfig picks S3 if S3_BUCKET is set, MinIO if MINIO_ENDPOINT is set, disk otherwise
func BucketFromConfig() Bucket {
	if config.S3_BUCKET != "" {
		return Bucket{
			Name:        config.S3_BUCKET,
			StorageType: StorageTypeS3,
			Path:        config.S3_PREFIX,
			Endpoint:    config.S3_ENDPOINT,
			Region:      config.S3_REGION,
			AuthDetails: config.S3_KEY + ":" + config.S3_SECRET,
		}
	}
	if config.MINIO_ENDPOINT != "" {
		return Bucket{
			Name:        config.MINIO_BUCKET,
			StorageType: StorageTypeMinio,
			Endpoint:    config.MINIO_ENDPOINT,
			AuthDetails: config.MINIO_KEY + ":" + config.MINIO_SECRET,
			UseSSL:      config.MINIO_SSL,
		}
	}
	return Bucket{
		Name:        "media",
		StorageType: StorageTypeFile,
		Path:        config.MEDIA_DIR,
	}
}

// GetRemotePath prepends the bucket prefix (if any) to path
func (b *Bucket) GetRemotePath(path string) string {
	prefix := strings.Trim(b.Path, "/")
	if prefix == "" {
		return path
	}
	return prefix + "/" + path
}

func (b *Bucket) keySecret() (key, secret string) {
	key, secret, _ = strings.Cut(b.AuthDetails, ":")
	return
}

// CreateSVC creates a S3 client for this bucket. A custom endpoint implies path-style addressing
func (b *Bucket) CreateSVC() *s3.S3 {
	key, secret := b.keySecret()
	awsConfig := &aws.Config{
		Region: aws.String(b.Region),
	}
	if key != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(key, secret, "")
	}
	if b.Endpoint != "" {
		awsConfig.Endpoint = aws.String(b.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}
	sess := session.Must(session.NewSession(awsConfig))
	return s3.New(sess)
}
