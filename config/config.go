package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var (
	TLS_DOMAINS         = ""             // e.g. "example.com,example2.com"
	BIND_ADDRESS        = "0.0.0.0:8080" // used when TLS_DOMAINS is empty
	MYSQL_DSN           = ""             // MySQL will be used if this is set
	POSTGRES_DSN        = ""             // PostgreSQL will be used if MYSQL_DSN is not set and this is
	SQLITE_FILE         = "yatube.db"    // SQLite is the fallback
	DEBUG_MODE          = true
	SESSION_KEY         = "this is a long key" // override in production
	SESSION_MAX_AGE     = 14 * 86400           // seconds
	CORS_ORIGINS        = "*"                  // comma-separated
	POSTS_PER_PAGE      = 10
	PAGE_CACHE_SECONDS  = 20 // index feed cache, 0 disables it
	REDIS_ADDR          = "" // page cache is shared via Redis if set, kept in memory otherwise
	REDIS_PASSWORD      = ""
	REDIS_DB            = 0
	MEDIA_DIR           = "media" // disk storage root
	S3_BUCKET           = ""      // S3 storage is used if set
	S3_REGION           = "us-east-1"
	S3_ENDPOINT         = ""
	S3_KEY              = ""
	S3_SECRET           = ""
	S3_PREFIX           = ""
	MINIO_ENDPOINT      = "" // MinIO storage is used if set (and S3_BUCKET is not)
	MINIO_BUCKET        = "yatube"
	MINIO_KEY           = ""
	MINIO_SECRET        = ""
	MINIO_SSL           = false
	MAX_UPLOAD_MB       = 5
	THUMB_SIZE          = 960 // px, bounding box of generated thumbnails
	PROCESSING_INTERVAL = 30  // seconds between thumbnail scans when idle
	ADMIN_USERNAME      = ""  // admin account is created on start if both are set
	ADMIN_PASSWORD      = ""
)

func init() {
	// A missing .env file is fine, the environment wins anyway
	_ = godotenv.Load()

	readEnvString("TLS_DOMAINS", &TLS_DOMAINS)
	readEnvString("BIND_ADDRESS", &BIND_ADDRESS)
	readEnvString("MYSQL_DSN", &MYSQL_DSN)
	readEnvString("POSTGRES_DSN", &POSTGRES_DSN)
	readEnvString("SQLITE_FILE", &SQLITE_FILE)
	readEnvBool("DEBUG_MODE", &DEBUG_MODE)
	readEnvString("SESSION_KEY", &SESSION_KEY)
	readEnvInt("SESSION_MAX_AGE", &SESSION_MAX_AGE)
	readEnvString("CORS_ORIGINS", &CORS_ORIGINS)
	readEnvInt("POSTS_PER_PAGE", &POSTS_PER_PAGE)
	readEnvInt("PAGE_CACHE_SECONDS", &PAGE_CACHE_SECONDS)
	readEnvString("REDIS_ADDR", &REDIS_ADDR)
	readEnvString("REDIS_PASSWORD", &REDIS_PASSWORD)
	readEnvInt("REDIS_DB", &REDIS_DB)
	readEnvString("MEDIA_DIR", &MEDIA_DIR)
	readEnvString("S3_BUCKET", &S3_BUCKET)
	readEnvString("S3_REGION", &S3_REGION)
	readEnvString("S3_ENDPOINT", &S3_ENDPOINT)
	readEnvString("S3_KEY", &S3_KEY)
	readEnvString("S3_SECRET", &S3_SECRET)
	readEnvString("S3_PREFIX", &S3_PREFIX)
	readEnvString("MINIO_ENDPOINT", &MINIO_ENDPOINT)
	readEnvString("MINIO_BUCKET", &MINIO_BUCKET)
	readEnvString("MINIO_KEY", &MINIO_KEY)
	readEnvString("MINIO_SECRET", &MINIO_SECRET)
	readEnvBool("MINIO_SSL", &MINIO_SSL)
	readEnvInt("MAX_UPLOAD_MB", &MAX_UPLOAD_MB)
	readEnvInt("THUMB_SIZE", &THUMB_SIZE)
	readEnvInt("PROCESSING_INTERVAL", &PROCESSING_INTERVAL)
	readEnvString("ADMIN_USERNAME", &ADMIN_USERNAME)
	readEnvString("ADMIN_PASSWORD", &ADMIN_PASSWORD)
}

// CORSOrigins splits CORS_ORIGINS, falling back to "*"
func CORSOrigins() []string {
	out := []string{}
	for _, part := range strings.Split(CORS_ORIGINS, ",") {
		if item := strings.TrimSpace(part); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func readEnvString(name string, value *string) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	*value = v
}

func readEnvBool(name string, value *bool) {
	v := strings.ToLower(os.Getenv(name))
	if v == "true" || v == "1" || v == "yes" || v == "on" {
		*value = true
	} else if v == "false" || v == "0" || v == "no" || v == "off" {
		*value = false
	}
}

func readEnvInt(name string, value *int) {
	v := os.Getenv(name)
	if v == "" {
		return
	}
	f, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*value = f
}
