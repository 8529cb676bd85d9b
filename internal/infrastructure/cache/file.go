package cache

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"
)

// fileEntry é o envelope gravado em disco por chave.
type fileEntry struct {
	ExpiresAt int64  `json:"expires_at"`
	Value     []byte `json:"value"`
}

// FileStore guarda cada entrada em um arquivo nomeado pelo md5 da chave,
// dentro de um diretório configurável. Entradas expiradas são removidas
// na leitura; não há varredura de fundo.
type FileStore struct {
	dir string

	hits    int64
	misses  int64
	sets    int64
	deletes int64
}

// NewFileStore cria o backend em arquivo, garantindo o diretório.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(key string) string {
	sum := md5.Sum([]byte(key))
	return filepath.Join(s.dir, hex.EncodeToString(sum[:])+".cache")
}

func (s *FileStore) Get(key string) ([]byte, bool) {
	raw, err := os.ReadFile(s.path(key))
	if err != nil {
		atomic.AddInt64(&s.misses, 1)
		return nil, false
	}

	var entry fileEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		// arquivo corrompido conta como ausente e é descartado
		os.Remove(s.path(key))
		atomic.AddInt64(&s.misses, 1)
		return nil, false
	}

	if time.Now().UnixNano() > entry.ExpiresAt {
		os.Remove(s.path(key))
		atomic.AddInt64(&s.misses, 1)
		return nil, false
	}

	atomic.AddInt64(&s.hits, 1)
	return entry.Value, true
}

func (s *FileStore) Set(key string, value []byte, ttl time.Duration) {
	entry := fileEntry{
		ExpiresAt: time.Now().Add(ttl).UnixNano(),
		Value:     value,
	}

	raw, err := json.Marshal(entry)
	if err != nil {
		return
	}
	if err := os.WriteFile(s.path(key), raw, 0o644); err != nil {
		return
	}
	atomic.AddInt64(&s.sets, 1)
}

func (s *FileStore) Delete(key string) {
	os.Remove(s.path(key))
	atomic.AddInt64(&s.deletes, 1)
}

func (s *FileStore) Clear() {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".cache") {
			os.Remove(filepath.Join(s.dir, entry.Name()))
		}
	}
}

func (s *FileStore) Stats() Stats {
	stats := Stats{
		Hits:    atomic.LoadInt64(&s.hits),
		Misses:  atomic.LoadInt64(&s.misses),
		Sets:    atomic.LoadInt64(&s.sets),
		Deletes: atomic.LoadInt64(&s.deletes),
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return stats
	}
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".cache") {
			continue
		}
		stats.EntryCount++
		if info, err := entry.Info(); err == nil {
			stats.ApproxSizeBytes += info.Size()
		}
	}
	return stats
}
