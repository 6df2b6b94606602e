package ratelimit

import (
	"sync"
	"time"
)

// Record is the rate-limit state for one (identity, client IP) pair.
type Record struct {
	Key         string
	Count       int
	WindowStart time.Time
}

// Store abstracts the record storage so the limiter can be backed by a
// distributed cache in production and an in-memory map in tests and
// single-node deployments. Get returns nil when no record exists.
type Store interface {
	Get(key string) *Record
	Set(key string, rec *Record)
	Delete(key string)
	// DeleteExpired removes every record whose window started before cutoff
	// and returns how many were removed. Only the sweep deletes records.
	DeleteExpired(cutoff time.Time) int
}

// MemoryStore is a mutex-guarded in-process Store.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]*Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]*Record)}
}

func (s *MemoryStore) Get(key string) *Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.records[key]; ok {
		cp := *rec
		return &cp
	}
	return nil
}

func (s *MemoryStore) Set(key string, rec *Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *rec
	s.records[key] = &cp
}

func (s *MemoryStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, key)
}

func (s *MemoryStore) DeleteExpired(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for key, rec := range s.records {
		if rec.WindowStart.Before(cutoff) {
			delete(s.records, key)
			n++
		}
	}
	return n
}

// Len reports the number of live records. Used by tests and the sweep log.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}
