package catalog

import (
	"context"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

const (
	minCapacity   = 1024
	falsePositive = 0.001
)

// IDSource provides the product ids known at startup.
type IDSource interface {
	ListIDs(ctx context.Context) ([]string, error)
}

// Filter is a bloom filter over known product ids. It cheaply rejects ids
// that cannot exist before the database is consulted. False positives fall
// through to the authoritative lookup; a real id is never rejected.
type Filter struct {
	mu sync.RWMutex
	bf *bloom.BloomFilter
}

// NewFilter builds a filter preloaded with the given ids.
func NewFilter(ids []string) *Filter {
	capacity := uint(len(ids))
	if capacity < minCapacity {
		capacity = minCapacity
	}
	bf := bloom.NewWithEstimates(capacity, falsePositive)
	for _, id := range ids {
		bf.AddString(id)
	}
	return &Filter{bf: bf}
}

// Load builds a filter from the current catalog.
func Load(ctx context.Context, src IDSource) (*Filter, error) {
	ids, err := src.ListIDs(ctx)
	if err != nil {
		return nil, err
	}
	return NewFilter(ids), nil
}

// MightContain reports whether the id may be in the catalog. A nil filter
// answers true, disabling the guard.
func (f *Filter) MightContain(id string) bool {
	if f == nil {
		return true
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.bf.TestString(id)
}

// Add registers an id created after startup.
func (f *Filter) Add(id string) {
	if f == nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bf.AddString(id)
}
