package tracecache

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// MemoryStore holds the most recently used entries in process; it's safe for concurrent
// use.
type MemoryStore struct {
	cache *lru.Cache[string, *Entry]
}

func NewMemoryStore(size int) (*MemoryStore, error) {
	c, err := lru.New[string, *Entry](size)
	if err != nil {
		return nil, err
	}
	return &MemoryStore{cache: c}, nil
}

func (ms *MemoryStore) String() string { return fmt.Sprintf("memory(%d)", ms.cache.Len()) }

func (ms *MemoryStore) Get(ctx context.Context, key string) (*Entry, error) {
	if e, ok := ms.cache.Get(key); ok {
		return e, nil
	}
	return nil, ErrMiss
}

func (ms *MemoryStore) Put(ctx context.Context, key string, e *Entry) error {
	ms.cache.Add(key, e)
	return nil
}
