// Package cache keeps rendered pages for a short while.
package cache

import (
	"errors"
	"time"
)

var ErrMiss = errors.New("cache miss")

type Store interface {
	// Get returns ErrMiss when the key is absent or expired
	Get(key string) ([]byte, error)
	Set(key string, value []byte, ttl time.Duration) error
	Clear() error
}
