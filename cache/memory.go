package cache

import (
	"sync/atomic"
	"time"

	cmap "github.com/orcaman/concurrent-map/v2"
)

// sweepInterval limits how often Set walks the whole map for expired items
const sweepInterval = time.Minute

type memoryItem struct {
	value   []byte
	expires time.Time
}

type MemoryStore struct {
	items     cmap.ConcurrentMap[string, memoryItem]
	now       func() time.Time
	lastSweep atomic.Int64 // unix nanoseconds
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: cmap.New[memoryItem](),
		now:   time.Now,
	}
}

func (s *MemoryStore) Get(key string) ([]byte, error) {
	item, ok := s.items.Get(key)
	if !ok {
		return nil, ErrMiss
	}
	if !s.now().Before(item.expires) {
		s.removeExpired(key)
		return nil, ErrMiss
	}
	return item.value, nil
}

func (s *MemoryStore) Set(key string, value []byte, ttl time.Duration) error {
	now := s.now()
	s.items.Set(key, memoryItem{value: value, expires: now.Add(ttl)})
	last := s.lastSweep.Load()
	if now.UnixNano()-last >= int64(sweepInterval) && s.lastSweep.CompareAndSwap(last, now.UnixNano()) {
		s.sweep()
	}
	return nil
}

func (s *MemoryStore) Clear() error {
	s.items.Clear()
	return nil
}

// Len counts stored items, expired ones included until they are swept
func (s *MemoryStore) Len() int {
	return s.items.Count()
}

// sweep drops every expired item, including keys that are never read again
func (s *MemoryStore) sweep() {
	now := s.now()
	var expired []string
	s.items.IterCb(func(key string, item memoryItem) {
		if !now.Before(item.expires) {
			expired = append(expired, key)
		}
	})
	for _, key := range expired {
		s.removeExpired(key)
	}
}

// removeExpired leaves the key alone if it was refreshed in the meantime
func (s *MemoryStore) removeExpired(key string) {
	s.items.RemoveCb(key, func(_ string, v memoryItem, exists bool) bool {
		return exists && !s.now().Before(v.expires)
	})
}
