package memtree

import "fmt"

// TreeStats holds the shape of the tree as seen by a full walk.
type TreeStats struct {
	Height      int // levels from root to leaf, 1 for a lone leaf root
	BranchNodes int
	LeafNodes   int
	TotalKeys   int
}

// Stats walks the whole tree and returns its shape. O(n), diagnostic use.
func (t *Tree[T]) Stats() TreeStats {
	var stats TreeStats
	t.collectStats(t.root, 1, &stats)
	return stats
}

func (t *Tree[T]) collectStats(n *node[T], depth int, stats *TreeStats) {
	stats.TotalKeys += len(n.keys)
	if n.leaf {
		stats.LeafNodes++
		if depth > stats.Height {
			stats.Height = depth
		}
		return
	}
	stats.BranchNodes++
	for _, child := range n.children {
		t.collectStats(child, depth+1, stats)
	}
}

// Check verifies the structural invariants of the whole tree: strictly
// increasing keys inside every node, subtree keys strictly between their
// bounding separators, occupancy between t-1 and 2t-1 keys for every node
// but the root, a k-key branch node having exactly k+1 children, and all
// leaves at the same depth. Returns nil or an error wrapping ErrCorruption.
// O(n), intended for test harnesses rather than production hot paths.
func (t *Tree[T]) Check() error {
	leafDepth := -1
	if err := t.checkNode(t.root, nil, nil, 1, &leafDepth); err != nil {
		t.logger.Error("invariant check failed", "error", err)
		return err
	}

	if got := t.Stats().TotalKeys; got != t.length {
		err := fmt.Errorf("key count %d does not match tracked length %d: %w", got, t.length, ErrCorruption)
		t.logger.Error("invariant check failed", "error", err)
		return err
	}
	return nil
}

// checkNode validates the subtree rooted at n, requiring every key to fall
// strictly between lower and upper (either may be nil at the tree's edges).
func (t *Tree[T]) checkNode(n *node[T], lower, upper *T, depth int, leafDepth *int) error {
	if n != t.root {
		if len(n.keys) < t.minKeys() {
			return fmt.Errorf("non-root node has %d keys, minimum is %d: %w", len(n.keys), t.minKeys(), ErrCorruption)
		}
	}
	if len(n.keys) > t.maxKeys() {
		return fmt.Errorf("node has %d keys, maximum is %d: %w", len(n.keys), t.maxKeys(), ErrCorruption)
	}

	for i, key := range n.keys {
		if i > 0 && t.cmp(n.keys[i-1], key) >= 0 {
			return fmt.Errorf("keys out of order at index %d: %w", i, ErrCorruption)
		}
		if lower != nil && t.cmp(key, *lower) <= 0 {
			return fmt.Errorf("key at index %d below subtree lower bound: %w", i, ErrCorruption)
		}
		if upper != nil && t.cmp(key, *upper) >= 0 {
			return fmt.Errorf("key at index %d above subtree upper bound: %w", i, ErrCorruption)
		}
	}

	if n.leaf {
		if len(n.children) != 0 {
			return fmt.Errorf("leaf node has %d children: %w", len(n.children), ErrCorruption)
		}
		if *leafDepth == -1 {
			*leafDepth = depth
		} else if depth != *leafDepth {
			return fmt.Errorf("leaf at depth %d, expected %d: %w", depth, *leafDepth, ErrCorruption)
		}
		return nil
	}

	if len(n.children) != len(n.keys)+1 {
		return fmt.Errorf("branch node has %d keys but %d children: %w", len(n.keys), len(n.children), ErrCorruption)
	}

	for i, child := range n.children {
		childLower := lower
		childUpper := upper
		if i > 0 {
			childLower = &n.keys[i-1]
		}
		if i < len(n.keys) {
			childUpper = &n.keys[i]
		}
		if err := t.checkNode(child, childLower, childUpper, depth+1, leafDepth); err != nil {
			return err
		}
	}
	return nil
}
