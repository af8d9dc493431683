package trie

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTree(t *testing.T) {
	t.Run("InsertAndWalk", func(t *testing.T) {
		tr := New()
		tr.Insert("fire", 1)

		node := tr.Walk("fire")
		require.NotNil(t, node)
		require.NotNil(t, node.Items())
		assert.True(t, node.Items().Contains(1))

		// Intermediate nodes exist but carry no items.
		mid := tr.Walk("fir")
		require.NotNil(t, mid)
		assert.Nil(t, mid.Items())

		assert.Nil(t, tr.Walk("fired"))
		assert.Nil(t, tr.Walk("ice"))
	})

	t.Run("InsertIdempotent", func(t *testing.T) {
		tr := New()
		tr.Insert("fire", 1)
		nodes := tr.NodeCount()

		tr.Insert("fire", 1)
		assert.Equal(t, nodes, tr.NodeCount())
		assert.Equal(t, uint64(1), tr.Walk("fire").Items().GetCardinality())
	})

	t.Run("SharedPrefix", func(t *testing.T) {
		tr := New()
		tr.Insert("fireball", 1)
		tr.Insert("firewall", 2)

		// f-i-r-e shared, then two diverging tails of 4 nodes each.
		assert.Equal(t, 12, tr.NodeCount())
	})

	t.Run("CollectDescendants", func(t *testing.T) {
		tr := New()
		tr.Insert("fireball", 1)
		tr.Insert("firewall", 2)
		tr.Insert("fire", 3)

		node := tr.Walk("fire")
		require.NotNil(t, node)

		got := tr.Collect(node, 0)
		assert.Equal(t, []uint32{1, 2, 3}, got.ToArray())

		// Cap stops after max distinct items, in traversal order:
		// the terminal node first, then descendants.
		got = tr.Collect(node, 1)
		assert.Equal(t, []uint32{3}, got.ToArray())

		got = tr.Collect(node, 2)
		assert.Equal(t, uint64(2), got.GetCardinality())
		assert.True(t, got.Contains(3))
	})

	t.Run("CollectOrderFollowsInsertion", func(t *testing.T) {
		tr := New()
		// Children of the root are visited in insertion order, so ids
		// collected under a cap depend on which branch was made first.
		tr.Insert("fz", 9)
		tr.Insert("fa", 5)

		got := tr.Collect(tr.Walk("f"), 1)
		assert.Equal(t, []uint32{9}, got.ToArray())
	})

	t.Run("RemovePrunes", func(t *testing.T) {
		tr := New()
		tr.Insert("fireball", 1)
		tr.Insert("fire", 2)

		tr.Remove("fireball", 1)
		assert.Nil(t, tr.Walk("fireb"))
		require.NotNil(t, tr.Walk("fire"))
		assert.True(t, tr.Walk("fire").Items().Contains(2))
		assert.Equal(t, 4, tr.NodeCount())

		tr.Remove("fire", 2)
		assert.Nil(t, tr.Walk("f"))
		assert.Equal(t, 0, tr.NodeCount())
	})

	t.Run("RemoveKeepsSharedNodes", func(t *testing.T) {
		tr := New()
		tr.Insert("fire", 1)
		tr.Insert("fire", 2)

		tr.Remove("fire", 1)
		node := tr.Walk("fire")
		require.NotNil(t, node)
		assert.Equal(t, []uint32{2}, node.Items().ToArray())
	})

	t.Run("RemoveAbsentIsNoop", func(t *testing.T) {
		tr := New()
		tr.Insert("fire", 1)
		nodes := tr.NodeCount()

		tr.Remove("ice", 1)
		tr.Remove("fire", 99)
		tr.Remove("fir", 1)

		assert.Equal(t, nodes, tr.NodeCount())
		assert.True(t, tr.Walk("fire").Items().Contains(1))
	})

	t.Run("Unicode", func(t *testing.T) {
		tr := New()
		tr.Insert("über", 1)

		require.NotNil(t, tr.Walk("üb"))
		assert.True(t, tr.Walk("über").Items().Contains(1))

		tr.Remove("über", 1)
		assert.Equal(t, 0, tr.NodeCount())
	})
}
