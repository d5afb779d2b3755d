package memtree

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Deletion Tests

func TestDeleteFromEmptyTree(t *testing.T) {
	t.Parallel()

	tree, err := NewOrdered[int](2)
	require.NoError(t, err)

	for _, key := range []int{0, 1, -5, 1000} {
		assert.ErrorIs(t, tree.Delete(key), ErrKeyNotFound)
	}
	assert.Equal(t, 0, tree.Len())
}

func TestDeleteSingleKeyReturnsToEmptyLeaf(t *testing.T) {
	t.Parallel()

	tree, err := NewOrdered[int](2)
	require.NoError(t, err)

	tree.Set(42)
	require.NoError(t, tree.Delete(42))

	assert.Equal(t, 0, tree.Len())
	stats := tree.Stats()
	assert.Equal(t, 1, stats.Height)
	assert.Equal(t, 1, stats.LeafNodes)
	assert.NoError(t, tree.Check())
}

func TestDeleteAscendingScenario(t *testing.T) {
	t.Parallel()

	tree, err := NewOrdered[int](3)
	require.NoError(t, err)

	for i := 1; i <= 20; i++ {
		tree.Set(i)
	}
	require.NoError(t, tree.Check())

	for i := 1; i <= 10; i++ {
		require.NoError(t, tree.Delete(i), "deleting %d", i)
		require.NoError(t, tree.Check(), "invariants after deleting %d", i)

		_, err := tree.Get(i)
		assert.ErrorIs(t, err, ErrKeyNotFound, "%d must be gone", i)

		for j := i + 1; j <= 20; j++ {
			_, err := tree.Get(j)
			require.NoError(t, err, "%d must survive deleting %d", j, i)
		}
	}

	assert.Equal(t, 10, tree.Len())
}

func TestDepthSymmetry(t *testing.T) {
	t.Parallel()

	// Inserting t*(2t) sequential keys then removing them in the same order
	// must walk the depth back down to a single empty leaf root.
	for _, degree := range []int{2, 3, 4} {
		tree, err := NewOrdered[int](degree)
		require.NoError(t, err)

		n := degree * 2 * degree
		for i := 0; i < n; i++ {
			tree.Set(i)
		}
		require.NoError(t, tree.Check())
		require.Greater(t, tree.Stats().Height, 1, "degree %d tree should have grown", degree)

		log := &recordingLogger{}
		tree.logger = log
		for i := 0; i < n; i++ {
			require.NoError(t, tree.Delete(i), "degree %d deleting %d", degree, i)
			require.NoError(t, tree.Check(), "degree %d invariants after deleting %d", degree, i)
		}

		assert.Equal(t, 0, tree.Len())
		stats := tree.Stats()
		assert.Equal(t, 1, stats.Height, "degree %d tree should be a lone leaf again", degree)
		assert.Equal(t, 1, stats.LeafNodes)
		assert.Greater(t, countOf(log.infos, "root collapsed"), 0, "degree %d should have collapsed the root", degree)
	}
}

func TestDeleteDescendingOrder(t *testing.T) {
	t.Parallel()

	tree, err := NewOrdered[int](2)
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		tree.Set(i)
	}
	for i := 99; i >= 0; i-- {
		require.NoError(t, tree.Delete(i))
		require.NoError(t, tree.Check(), "invariants after deleting %d", i)
	}
	assert.Equal(t, 0, tree.Len())
}

func TestDeleteInternalKeys(t *testing.T) {
	t.Parallel()

	// Deleting separator keys out of branch nodes exercises the
	// predecessor, successor, and merge replacement paths.
	tree, err := NewOrdered[int](2)
	require.NoError(t, err)

	for i := 0; i < 64; i++ {
		tree.Set(i)
	}

	// Collect the keys currently held in branch nodes.
	var branchKeys []int
	var walk func(n *node[int])
	walk = func(n *node[int]) {
		if n.leaf {
			return
		}
		branchKeys = append(branchKeys, n.keys...)
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(tree.root)
	require.NotEmpty(t, branchKeys)

	for _, k := range branchKeys {
		require.NoError(t, tree.Delete(k), "deleting branch key %d", k)
		require.NoError(t, tree.Check(), "invariants after deleting branch key %d", k)
		_, err := tree.Get(k)
		assert.ErrorIs(t, err, ErrKeyNotFound)
	}
}

func TestDeleteRandomOrder(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(7))
	keys := rng.Perm(500)

	tree, err := NewOrdered[int](3)
	require.NoError(t, err)
	for _, k := range keys {
		tree.Set(k)
	}

	order := rng.Perm(500)
	for i, k := range order {
		require.NoError(t, tree.Delete(k), "deleting %d", k)
		require.Equal(t, 500-i-1, tree.Len())
		if i%25 == 0 {
			require.NoError(t, tree.Check())
		}
	}

	require.NoError(t, tree.Check())
	assert.Equal(t, 0, tree.Len())
}

func TestReinsertAfterDelete(t *testing.T) {
	t.Parallel()

	tree, err := NewOrdered[int](2)
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		tree.Set(i)
	}
	for i := 0; i < 50; i += 2 {
		require.NoError(t, tree.Delete(i))
	}
	for i := 0; i < 50; i += 2 {
		tree.Set(i)
	}

	require.NoError(t, tree.Check())
	assert.Equal(t, 50, tree.Len())
	for i := 0; i < 50; i++ {
		_, err := tree.Get(i)
		require.NoError(t, err)
	}
}
