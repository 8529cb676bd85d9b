package cache

import (
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore guarda as entradas no processo usando go-cache com janitor
// de limpeza periódica.
type MemoryStore struct {
	items *gocache.Cache

	hits    int64
	misses  int64
	sets    int64
	deletes int64
}

// NewMemoryStore cria o backend em memória. O janitor roda a cada minuto
// removendo entradas expiradas.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: gocache.New(gocache.NoExpiration, time.Minute),
	}
}

func (s *MemoryStore) Get(key string) ([]byte, bool) {
	value, found := s.items.Get(key)
	if !found {
		atomic.AddInt64(&s.misses, 1)
		// remove a entrada expirada que o go-cache só esconde
		s.items.Delete(key)
		return nil, false
	}

	atomic.AddInt64(&s.hits, 1)
	return value.([]byte), true
}

func (s *MemoryStore) Set(key string, value []byte, ttl time.Duration) {
	s.items.Set(key, value, ttl)
	atomic.AddInt64(&s.sets, 1)
}

func (s *MemoryStore) Delete(key string) {
	s.items.Delete(key)
	atomic.AddInt64(&s.deletes, 1)
}

func (s *MemoryStore) Clear() {
	s.items.Flush()
}

func (s *MemoryStore) Stats() Stats {
	var size int64
	items := s.items.Items()
	for _, item := range items {
		if value, ok := item.Object.([]byte); ok {
			size += int64(len(value))
		}
	}

	return Stats{
		Hits:            atomic.LoadInt64(&s.hits),
		Misses:          atomic.LoadInt64(&s.misses),
		Sets:            atomic.LoadInt64(&s.sets),
		Deletes:         atomic.LoadInt64(&s.deletes),
		EntryCount:      int64(len(items)),
		ApproxSizeBytes: size,
	}
}
