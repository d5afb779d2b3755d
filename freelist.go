package memtree

import "sync"

// DefaultFreeListSize is the capacity of the per-tree free list created when
// no shared one is supplied.
const DefaultFreeListSize = 32

// FreeList holds recycled nodes so merge-heavy workloads do not churn the
// allocator. A FreeList is safe for concurrent use and may be shared between
// several trees storing the same key type via WithFreeList.
type FreeList[T any] struct {
	mu       sync.Mutex
	freelist []*node[T]
}

// NewFreeList creates a free list holding up to size recycled nodes.
func NewFreeList[T any](size int) *FreeList[T] {
	return &FreeList[T]{freelist: make([]*node[T], 0, size)}
}

// newNode returns a recycled node when one is available, else a fresh one.
// The returned node is empty and typed as leaf or branch per the argument.
func (f *FreeList[T]) newNode(leaf bool) *node[T] {
	f.mu.Lock()
	index := len(f.freelist) - 1
	if index < 0 {
		f.mu.Unlock()
		return &node[T]{leaf: leaf}
	}
	n := f.freelist[index]
	f.freelist[index] = nil
	f.freelist = f.freelist[:index]
	f.mu.Unlock()

	n.leaf = leaf
	return n
}

// freeNode clears n and returns it to the list. Returns true if the node was
// retained, false if the list was already at capacity and the node is left
// for the GC.
func (f *FreeList[T]) freeNode(n *node[T]) bool {
	n.reset()

	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.freelist) < cap(f.freelist) {
		f.freelist = append(f.freelist, n)
		return true
	}
	return false
}
