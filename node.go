package memtree

// node is a fixed-fanout sorted container of keys plus, for branch nodes,
// child links. A node is created as leaf or branch and never converted;
// splits and merges create or release whole nodes instead. There is no
// stored root flag: root status is checked by pointer identity against
// Tree.root so it can never go stale when the root changes.
type node[T any] struct {
	leaf     bool
	keys     []T
	children []*node[T] // Empty and unused in leaf nodes
}

// full reports whether the node holds the maximum 2t-1 keys.
func (n *node[T]) full(maxKeys int) bool {
	return len(n.keys) >= maxKeys
}

// reset clears the node for reuse, zeroing slice elements so recycled nodes
// do not pin old keys or subtrees for the GC.
func (n *node[T]) reset() {
	var zero T
	for i := range n.keys {
		n.keys[i] = zero
	}
	for i := range n.children {
		n.children[i] = nil
	}
	n.keys = n.keys[:0]
	n.children = n.children[:0]
}
