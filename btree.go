// Package memtree implements an in-memory ordered key store backed by a
// B-tree of minimum degree t: every node holds at most 2t-1 keys, every node
// except the root holds at least t-1, and all leaves sit at the same depth.
// Lookups, inserts, and deletes are O(log n). A Tree is not safe for
// concurrent mutation; see Sharded for a synchronized wrapper.
package memtree

import (
	"cmp"

	"memtree/internal/algo"
)

// CompareFunc is a total order over keys: negative when a < b, zero when
// equal, positive when a > b. Values that compare equal are treated as the
// same key; Set replaces the stored representative.
type CompareFunc[T any] func(a, b T) int

// Tree is the main structure. It owns the root node, tracks the distinct key
// count, and hosts the rebalancing algorithms: split on the insert path,
// borrow/merge on the delete path, and root reassignment on depth changes.
type Tree[T any] struct {
	degree int // minimum degree t
	cmp    CompareFunc[T]
	root   *node[T]
	length int
	free   *FreeList[T]
	logger Logger
}

// New creates an empty tree with the given minimum degree and key order.
// Returns ErrInvalidDegree when degree < 2 (a degree-1 node could hold at
// most one key and could never satisfy the occupancy invariants).
func New[T any](degree int, cmp CompareFunc[T], opts ...Option[T]) (*Tree[T], error) {
	if degree < 2 {
		return nil, ErrInvalidDegree
	}

	o := defaultOptions[T]()
	for _, opt := range opts {
		opt(&o)
	}
	if o.freeList == nil {
		o.freeList = NewFreeList[T](DefaultFreeListSize)
	}

	t := &Tree[T]{
		degree: degree,
		cmp:    cmp,
		free:   o.freeList,
		logger: o.logger,
	}
	t.root = t.free.newNode(true)

	return t, nil
}

// NewOrdered creates a tree for a naturally ordered key type.
func NewOrdered[T cmp.Ordered](degree int, opts ...Option[T]) (*Tree[T], error) {
	return New[T](degree, cmp.Compare[T], opts...)
}

// maxKeys is the node capacity, 2t-1.
func (t *Tree[T]) maxKeys() int { return 2*t.degree - 1 }

// minKeys is the occupancy floor for non-root nodes, t-1.
func (t *Tree[T]) minKeys() int { return t.degree - 1 }

// Len returns the number of distinct keys currently stored.
func (t *Tree[T]) Len() int {
	return t.length
}

// Get returns the stored key that compares equal to key, or ErrKeyNotFound.
func (t *Tree[T]) Get(key T) (T, error) {
	n := t.root
	for {
		idx, found := algo.FindKeyIndex(n.keys, key, t.cmp)
		if found {
			return n.keys[idx], nil
		}
		if n.leaf {
			var zero T
			return zero, ErrKeyNotFound
		}
		n = n.children[idx]
	}
}

// Set inserts key, replacing the stored representative in place when an
// equal key already exists. Insertion splits proactively: any full node is
// split before the descent enters it, so the node an insert lands in always
// has room. A full root is split under a new empty root, the only way tree
// depth grows.
func (t *Tree[T]) Set(key T) {
	if t.root.full(t.maxKeys()) {
		oldRoot := t.root
		newRoot := t.free.newNode(false)
		newRoot.children = append(newRoot.children, oldRoot)
		t.root = newRoot
		t.splitChild(newRoot, 0)
		t.logger.Info("root split", "keys", t.length)
	}

	if t.insertNonFull(t.root, key) {
		t.length++
	}
}

// Delete removes the key that compares equal to key, or returns
// ErrKeyNotFound. After the removal, an internal root left with zero keys is
// replaced by its sole child, the only way tree depth shrinks.
func (t *Tree[T]) Delete(key T) error {
	if err := t.remove(t.root, key); err != nil {
		return err
	}
	t.length--

	if len(t.root.keys) == 0 && !t.root.leaf {
		oldRoot := t.root
		t.root = oldRoot.children[0]
		t.free.freeNode(oldRoot)
		t.logger.Info("root collapsed", "keys", t.length)
	}

	return nil
}

// Clear releases every node to the free list and resets the tree to a single
// empty leaf root.
func (t *Tree[T]) Clear() {
	t.releaseSubtree(t.root)
	t.root = t.free.newNode(true)
	t.length = 0
}

func (t *Tree[T]) releaseSubtree(n *node[T]) {
	for _, child := range n.children {
		t.releaseSubtree(child)
	}
	t.free.freeNode(n)
}

// splitChild splits the full child at childIdx of the non-full parent. The
// child keeps its first t-1 keys, a new right sibling takes the last t-1,
// and the median key moves up into the parent between them. Branch children
// hand their last t child links to the sibling.
func (t *Tree[T]) splitChild(parent *node[T], childIdx int) {
	child := parent.children[childIdx]
	mid := t.degree - 1

	right := t.free.newNode(child.leaf)
	right.keys = append(right.keys, child.keys[mid+1:]...)
	if !child.leaf {
		right.children = append(right.children, child.children[t.degree:]...)
		for i := t.degree; i < len(child.children); i++ {
			child.children[i] = nil
		}
		child.children = child.children[:t.degree]
	}

	median := child.keys[mid]
	var zero T
	for i := mid; i < len(child.keys); i++ {
		child.keys[i] = zero
	}
	child.keys = child.keys[:mid]

	parent.keys = algo.InsertAt(parent.keys, childIdx, median)
	parent.children = algo.InsertAt(parent.children, childIdx+1, right)
}

// insertNonFull inserts key into the subtree rooted at the non-full node n.
// Returns true when a new key was added, false when an equal key was
// overwritten. An equal key can surface at three points: in the node's own
// key list, as the median promoted by a child split, or in a leaf.
func (t *Tree[T]) insertNonFull(n *node[T], key T) bool {
	pos, found := algo.FindKeyIndex(n.keys, key, t.cmp)
	if found {
		n.keys[pos] = key
		return false
	}

	if n.leaf {
		n.keys = algo.InsertAt(n.keys, pos, key)
		return true
	}

	if n.children[pos].full(t.maxKeys()) {
		t.splitChild(n, pos)

		// The promoted median now sits at pos; re-aim the descent.
		c := t.cmp(key, n.keys[pos])
		if c == 0 {
			n.keys[pos] = key
			return false
		}
		if c > 0 {
			pos++
		}
	}

	return t.insertNonFull(n.children[pos], key)
}

// remove deletes key from the subtree rooted at n. Every node the recursion
// descends into is guaranteed at least t keys before entering (the root
// excepted), which is what makes one-pass local repair sufficient.
func (t *Tree[T]) remove(n *node[T], key T) error {
	idx, found := algo.FindKeyIndex(n.keys, key, t.cmp)

	if found {
		if n.leaf {
			n.keys = algo.RemoveAt(n.keys, idx)
			return nil
		}
		return t.removeFromBranch(n, key, idx)
	}

	if n.leaf {
		return ErrKeyNotFound
	}

	child := n.children[idx]
	if len(child.keys) <= t.minKeys() {
		child = t.fillChild(n, idx)
	}
	return t.remove(child, key)
}

// removeFromBranch deletes the key at idx of the branch node n. The key is
// replaced by its predecessor or successor when the adjacent child can spare
// one, else the two children are merged around it and the deletion recurses
// into the merged node.
func (t *Tree[T]) removeFromBranch(n *node[T], key T, idx int) error {
	left := n.children[idx]
	if len(left.keys) >= t.degree {
		pred := t.subtreeMax(left)
		n.keys[idx] = pred
		return t.remove(left, pred)
	}

	right := n.children[idx+1]
	if len(right.keys) >= t.degree {
		succ := t.subtreeMin(right)
		n.keys[idx] = succ
		return t.remove(right, succ)
	}

	merged := t.merge(n, idx)
	return t.remove(merged, key)
}

// subtreeMax returns the largest key under n: rightmost descent to a leaf.
func (t *Tree[T]) subtreeMax(n *node[T]) T {
	for !n.leaf {
		n = n.children[len(n.children)-1]
	}
	return n.keys[len(n.keys)-1]
}

// subtreeMin returns the smallest key under n: leftmost descent to a leaf.
func (t *Tree[T]) subtreeMin(n *node[T]) T {
	for !n.leaf {
		n = n.children[0]
	}
	return n.keys[0]
}

// fillChild brings the child at childIdx up to at least t keys before the
// deletion descends into it, borrowing a key from a sibling that can spare
// one or merging with a sibling when neither can. Returns the node to
// descend into, which is the merged node after a merge.
func (t *Tree[T]) fillChild(parent *node[T], childIdx int) *node[T] {
	if childIdx > 0 && len(parent.children[childIdx-1].keys) >= t.degree {
		t.borrowFromLeft(parent, childIdx)
		return parent.children[childIdx]
	}

	if childIdx < len(parent.children)-1 && len(parent.children[childIdx+1].keys) >= t.degree {
		t.borrowFromRight(parent, childIdx)
		return parent.children[childIdx]
	}

	if childIdx > 0 {
		return t.merge(parent, childIdx-1)
	}
	return t.merge(parent, childIdx)
}

// borrowFromLeft rotates the left sibling's last key through the parent into
// the child at childIdx. Branch siblings hand over their last child link too.
func (t *Tree[T]) borrowFromLeft(parent *node[T], childIdx int) {
	child := parent.children[childIdx]
	sibling := parent.children[childIdx-1]
	sepIdx := childIdx - 1

	child.keys = algo.InsertAt(child.keys, 0, parent.keys[sepIdx])
	last := len(sibling.keys) - 1
	parent.keys[sepIdx] = sibling.keys[last]
	sibling.keys = sibling.keys[:last]

	if !child.leaf {
		lastChild := len(sibling.children) - 1
		child.children = algo.InsertAt(child.children, 0, sibling.children[lastChild])
		sibling.children[lastChild] = nil
		sibling.children = sibling.children[:lastChild]
	}
}

// borrowFromRight rotates the right sibling's first key through the parent
// into the child at childIdx.
func (t *Tree[T]) borrowFromRight(parent *node[T], childIdx int) {
	child := parent.children[childIdx]
	sibling := parent.children[childIdx+1]

	child.keys = append(child.keys, parent.keys[childIdx])
	parent.keys[childIdx] = sibling.keys[0]
	sibling.keys = algo.RemoveAt(sibling.keys, 0)

	if !child.leaf {
		child.children = append(child.children, sibling.children[0])
		sibling.children = algo.RemoveAt(sibling.children, 0)
	}
}

// merge folds the separator key at sepIdx and the entire right sibling into
// the left child. Both children hold exactly t-1 keys beforehand, so the
// result lands exactly at capacity. The right sibling is released.
func (t *Tree[T]) merge(parent *node[T], sepIdx int) *node[T] {
	left := parent.children[sepIdx]
	right := parent.children[sepIdx+1]

	left.keys = append(left.keys, parent.keys[sepIdx])
	left.keys = append(left.keys, right.keys...)
	if !left.leaf {
		left.children = append(left.children, right.children...)
	}

	parent.keys = algo.RemoveAt(parent.keys, sepIdx)
	parent.children = algo.RemoveAt(parent.children, sepIdx+1)

	t.free.freeNode(right)

	return left
}
