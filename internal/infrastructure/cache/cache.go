// Package cache implementa o backend de cache chave -> (valor, expiração)
// usado para memoizar os relatórios agregados. Uma interface, três
// implementações intercambiáveis (memória, arquivo, redis); a seleção é
// feita por configuração no main.
package cache

import "time"

// Store é a capacidade de cache que o Reporter consome. Valores são
// []byte (JSON serializado) para que todos os backends sejam equivalentes.
// Não há política de eviction além do TTL: crescimento entre expirações é
// uma limitação aceita do design original.
type Store interface {
	// Get retorna ausente tanto para chave nunca gravada quanto expirada.
	// Entradas expiradas são removidas preguiçosamente na leitura.
	Get(key string) ([]byte, bool)
	// Set sobrescreve incondicionalmente.
	Set(key string, value []byte, ttl time.Duration)
	Delete(key string)
	Clear()
	// Stats retorna contadores locais do processo (não duráveis e não
	// consistentes entre instâncias).
	Stats() Stats
}

// Stats são os contadores operacionais de um backend.
type Stats struct {
	Hits            int64 `json:"hits"`
	Misses          int64 `json:"misses"`
	Sets            int64 `json:"sets"`
	Deletes         int64 `json:"deletes"`
	EntryCount      int64 `json:"entry_count"`
	ApproxSizeBytes int64 `json:"approx_size_bytes"`
}
