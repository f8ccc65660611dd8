package catalog

import (
	"bytes"
	"context"
	"sync"
)

type MemKV struct {
	mu sync.RWMutex
	m  map[string][]byte
}

func NewMemKV() *MemKV {
	return &MemKV{m: map[string][]byte{}}
}

func (s *MemKV) Ping(ctx context.Context) error { return nil }

func (s *MemKV) Read(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.m[key]
	if !ok {
		return nil, false, nil
	}
	return bytes.Clone(v), true, nil
}

func (s *MemKV) Write(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.m[key] = bytes.Clone(value)
	return nil
}
