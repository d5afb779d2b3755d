package memtree

import (
	"sync"

	"github.com/cespare/xxhash/v2"
)

// HashFunc maps a key to the shard that owns it.
type HashFunc[T any] func(T) uint64

// HashString is a HashFunc for string keys.
func HashString(s string) uint64 { return xxhash.Sum64String(s) }

// HashBytes is a HashFunc for []byte keys.
//
//goland:noinspection GoUnusedExportedFunction
func HashBytes(b []byte) uint64 { return xxhash.Sum64(b) }

// Sharded partitions keys across independently locked trees so callers on
// different shards never contend. A single Tree is not safe for concurrent
// mutation; Sharded is the synchronized wrapper for callers that need one.
// Keys that compare equal must hash equal or they will land on different
// shards.
type Sharded[T any] struct {
	shards []shard[T]
	hash   HashFunc[T]
}

type shard[T any] struct {
	mu   sync.RWMutex
	tree *Tree[T]
}

// NewSharded creates shardCount independent trees of the given minimum
// degree behind one synchronized facade. Returns ErrInvalidShards when
// shardCount < 1 and ErrInvalidDegree when degree < 2.
func NewSharded[T any](shardCount, degree int, cmp CompareFunc[T], hash HashFunc[T], opts ...Option[T]) (*Sharded[T], error) {
	if shardCount < 1 {
		return nil, ErrInvalidShards
	}

	s := &Sharded[T]{
		shards: make([]shard[T], shardCount),
		hash:   hash,
	}
	for i := range s.shards {
		tree, err := New[T](degree, cmp, opts...)
		if err != nil {
			return nil, err
		}
		s.shards[i].tree = tree
	}

	return s, nil
}

func (s *Sharded[T]) shardFor(key T) *shard[T] {
	return &s.shards[s.hash(key)%uint64(len(s.shards))]
}

// Get returns the stored key equal to key, or ErrKeyNotFound.
func (s *Sharded[T]) Get(key T) (T, error) {
	sh := s.shardFor(key)
	sh.mu.RLock()
	defer sh.mu.RUnlock()
	return sh.tree.Get(key)
}

// Set inserts key with the same overwrite semantics as Tree.Set.
func (s *Sharded[T]) Set(key T) {
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	sh.tree.Set(key)
}

// Delete removes key, or returns ErrKeyNotFound.
func (s *Sharded[T]) Delete(key T) error {
	sh := s.shardFor(key)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	return sh.tree.Delete(key)
}

// Len returns the total key count across all shards.
func (s *Sharded[T]) Len() int {
	total := 0
	for i := range s.shards {
		s.shards[i].mu.RLock()
		total += s.shards[i].tree.Len()
		s.shards[i].mu.RUnlock()
	}
	return total
}

// Check verifies the invariants of every shard's tree.
func (s *Sharded[T]) Check() error {
	for i := range s.shards {
		s.shards[i].mu.RLock()
		err := s.shards[i].tree.Check()
		s.shards[i].mu.RUnlock()
		if err != nil {
			return err
		}
	}
	return nil
}

// Clear resets every shard to an empty tree.
func (s *Sharded[T]) Clear() {
	for i := range s.shards {
		s.shards[i].mu.Lock()
		s.shards[i].tree.Clear()
		s.shards[i].mu.Unlock()
	}
}
