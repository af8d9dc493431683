// Package trie implements the rune-level prefix tree backing the
// triego search engine. It maps terms to sets of internal item IDs
// stored as Roaring Bitmaps.
package trie

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// Node is a single position in the prefix tree. Children are owned
// exclusively by their parent; the item bitmap holds non-owning
// references into the caller's item table. A node carries items only
// if at least one inserted term terminates at it.
type Node struct {
	children map[rune]*Node
	order    []rune // child insertion order, keeps traversal deterministic
	items    *roaring.Bitmap
}

func newNode() *Node {
	return &Node{children: make(map[rune]*Node)}
}

// Items returns the bitmap of item IDs terminating at n, or nil if
// no term terminates here. Callers must not mutate the result.
func (n *Node) Items() *roaring.Bitmap { return n.items }

// Tree is a prefix tree mapping terms to item ID sets.
// It is not safe for concurrent mutation; callers serialize writes.
type Tree struct {
	root  *Node
	nodes int
}

// New creates an empty Tree.
func New() *Tree {
	return &Tree{root: newNode()}
}

// NodeCount returns the number of nodes below the root.
func (t *Tree) NodeCount() int { return t.nodes }

// Insert adds id to the terminal node of term, creating the character
// path as needed. Inserting the same (term, id) pair twice is a no-op.
func (t *Tree) Insert(term string, id uint32) {
	node := t.root
	for _, ch := range term {
		child, ok := node.children[ch]
		if !ok {
			child = newNode()
			node.children[ch] = child
			node.order = append(node.order, ch)
			t.nodes++
		}
		node = child
	}
	if node.items == nil {
		node.items = roaring.New()
	}
	node.items.Add(id)
}

// Walk returns the node at the end of term's character path, or nil
// if the path does not exist.
func (t *Tree) Walk(term string) *Node {
	node := t.root
	for _, ch := range term {
		child, ok := node.children[ch]
		if !ok {
			return nil
		}
		node = child
	}
	return node
}

// Remove deletes id from the terminal node of term. Nodes left with
// an empty item set and no children are pruned on the way back up.
// Unknown terms and absent ids are a no-op.
func (t *Tree) Remove(term string, id uint32) {
	t.remove(t.root, []rune(term), 0, id)
}

// remove walks down to the terminal node, drops the id, and reports
// whether the caller should delete its reference to node.
func (t *Tree) remove(node *Node, runes []rune, depth int, id uint32) bool {
	if depth == len(runes) {
		if node.items != nil {
			node.items.Remove(id)
			if node.items.IsEmpty() {
				node.items = nil
			}
		}
	} else {
		ch := runes[depth]
		child, ok := node.children[ch]
		if ok && t.remove(child, runes, depth+1, id) {
			delete(node.children, ch)
			for i, c := range node.order {
				if c == ch {
					node.order = append(node.order[:i], node.order[i+1:]...)
					break
				}
			}
			t.nodes--
		}
	}
	return node != t.root && node.items == nil && len(node.children) == 0
}

// Collect gathers the item IDs of node and all of its descendants,
// visiting children breadth-first in insertion order. When max > 0,
// collection stops once max distinct items have been gathered; which
// items survive is defined by this traversal order.
func (t *Tree) Collect(node *Node, max int) *roaring.Bitmap {
	out := roaring.New()
	queue := []*Node{node}
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		if curr.items != nil {
			if max <= 0 {
				out.Or(curr.items)
			} else {
				it := curr.items.Iterator()
				for it.HasNext() {
					out.Add(it.Next())
					if out.GetCardinality() >= uint64(max) {
						return out
					}
				}
			}
		}

		for _, ch := range curr.order {
			queue = append(queue, curr.children[ch])
		}
	}
	return out
}
