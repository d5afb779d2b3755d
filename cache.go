package memtree

import (
	"github.com/cespare/xxhash/v2"
	"github.com/elastic/go-freelru"
)

// LookupCache fronts a Tree with an LRU of recent Get hits. It pays off when
// comparisons are expensive (long string keys) and the read set is skewed; a
// cached hit costs one hash instead of O(log n) comparisons. Writes go
// straight through to the tree and invalidate the cached entry. Go equality
// on T must coincide with the tree's ordering (true for strings and
// numbers), otherwise invalidation cannot find the cached entry. Like Tree,
// a LookupCache is single-threaded.
type LookupCache[T comparable] struct {
	tree *Tree[T]
	lru  *freelru.LRU[T, T]
}

// HashStringKey adapts xxhash to freelru's callback shape for string keys.
func HashStringKey(s string) uint32 { return uint32(xxhash.Sum64String(s)) }

// NewLookupCache wraps tree with an LRU of the given capacity. The hash
// callback must be consistent with the tree's ordering: keys that compare
// equal must hash equal.
func NewLookupCache[T comparable](tree *Tree[T], capacity uint32, hash freelru.HashKeyCallback[T]) (*LookupCache[T], error) {
	lru, err := freelru.New[T, T](capacity, hash)
	if err != nil {
		return nil, err
	}
	return &LookupCache[T]{tree: tree, lru: lru}, nil
}

// Get returns the stored key equal to key, consulting the LRU first.
func (c *LookupCache[T]) Get(key T) (T, error) {
	if v, ok := c.lru.Get(key); ok {
		return v, nil
	}

	v, err := c.tree.Get(key)
	if err != nil {
		var zero T
		return zero, err
	}
	c.lru.Add(key, v)
	return v, nil
}

// Set inserts key into the tree and drops any cached representative, since
// an overwrite may have replaced it.
func (c *LookupCache[T]) Set(key T) {
	c.tree.Set(key)
	c.lru.Remove(key)
}

// Delete removes key from the tree and the cache.
func (c *LookupCache[T]) Delete(key T) error {
	c.lru.Remove(key)
	return c.tree.Delete(key)
}

// Len returns the key count of the underlying tree.
func (c *LookupCache[T]) Len() int {
	return c.tree.Len()
}

// Purge empties the LRU without touching the tree.
func (c *LookupCache[T]) Purge() {
	c.lru.Purge()
}
