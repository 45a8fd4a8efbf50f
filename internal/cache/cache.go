// Package cache provides a small cache for generated coaching messages.
// Generation calls cost money and multi-second latency, so a report already
// produced for a user's current week is reused until it expires.
package cache

import (
	"context"
	"sync"
	"time"
)

// SummaryCache stores generated messages by key. Implementations are
// best-effort: a miss or a backend failure just means the message gets
// regenerated.
type SummaryCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, message string)
}

// Memory is a process-local SummaryCache with per-entry expiry.
type Memory struct {
	ttl     time.Duration
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	message   string
	expiresAt time.Time
}

// NewMemory creates an in-process cache with the given TTL.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
	}
}

func (m *Memory) Get(ctx context.Context, key string) (string, bool) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return "", false
	}
	if time.Now().After(entry.expiresAt) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return "", false
	}
	return entry.message, true
}

func (m *Memory) Set(ctx context.Context, key, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memoryEntry{message: message, expiresAt: time.Now().Add(m.ttl)}
}
