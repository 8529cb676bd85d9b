package cache

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisStore é o backend de cache em KV de rede, para quando mais de uma
// instância da API precisa compartilhar os relatórios memoizados.
// As chaves recebem um prefixo para o Clear não varrer o banco inteiro.
type RedisStore struct {
	client *redis.Client
	prefix string

	hits    int64
	misses  int64
	sets    int64
	deletes int64
}

// NewRedisStore cria o backend redis com o prefixo de chave dado.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "campushub:cache:"
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) Get(key string) ([]byte, bool) {
	ctx := context.Background()

	value, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		// redis.Nil cobre tanto a chave ausente quanto a expirada;
		// o próprio redis remove entradas vencidas.
		atomic.AddInt64(&s.misses, 1)
		return nil, false
	}

	atomic.AddInt64(&s.hits, 1)
	return value, true
}

func (s *RedisStore) Set(key string, value []byte, ttl time.Duration) {
	ctx := context.Background()
	if err := s.client.Set(ctx, s.prefix+key, value, ttl).Err(); err != nil {
		return
	}
	atomic.AddInt64(&s.sets, 1)
}

func (s *RedisStore) Delete(key string) {
	ctx := context.Background()
	s.client.Del(ctx, s.prefix+key)
	atomic.AddInt64(&s.deletes, 1)
}

func (s *RedisStore) Clear() {
	ctx := context.Background()

	iter := s.client.Scan(ctx, 0, s.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		s.client.Del(ctx, iter.Val())
	}
}

func (s *RedisStore) Stats() Stats {
	stats := Stats{
		Hits:    atomic.LoadInt64(&s.hits),
		Misses:  atomic.LoadInt64(&s.misses),
		Sets:    atomic.LoadInt64(&s.sets),
		Deletes: atomic.LoadInt64(&s.deletes),
	}

	ctx := context.Background()
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		stats.EntryCount++
		if size, err := s.client.StrLen(ctx, iter.Val()).Result(); err == nil {
			stats.ApproxSizeBytes += size
		}
	}
	return stats
}
