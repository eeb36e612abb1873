package host

import (
	"context"

	lru "github.com/hashicorp/golang-lru"
)

// CachingFetcher remembers the bytes of recently fetched sources so that
// scripts sharing a fetcher download each document once.
type CachingFetcher struct {
	next  Fetcher
	cache *lru.Cache
}

// NewCachingFetcher wraps next with an LRU cache holding up to size
// documents.
func NewCachingFetcher(next Fetcher, size int) (*CachingFetcher, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &CachingFetcher{next: next, cache: cache}, nil
}

func (f *CachingFetcher) Fetch(ctx context.Context, source string) ([]byte, error) {
	if data, ok := f.cache.Get(source); ok {
		return data.([]byte), nil
	}
	data, err := f.next.Fetch(ctx, source)
	if err != nil {
		return nil, err
	}
	f.cache.Add(source, data)
	return data, nil
}

// Len returns the number of cached documents.
func (f *CachingFetcher) Len() int {
	return f.cache.Len()
}
