// Package btree implements an in-memory B+ tree keyed by any ordered type.
// All entries live in leaves; leaves are forward-linked so range scans walk
// the bottom of the tree sequentially. Deletion does not rebalance: nodes may
// underflow after many removes, which leaves the tree sparse but correct.
package btree

import (
	"cmp"
	"slices"
)

// DefaultOrder is the maximum number of keys a node holds before it splits.
const DefaultOrder = 4

// Tree maps keys of an ordered type K to values of type V. Ties on equal keys
// replace the stored value (upsert), never duplicate. Not safe for concurrent
// use; the engine serializes all access.
type Tree[K cmp.Ordered, V any] struct {
	order int
	root  *node[K, V]
	size  int
}

// New returns an empty tree with DefaultOrder.
func New[K cmp.Ordered, V any]() *Tree[K, V] {
	return NewWithOrder[K, V](DefaultOrder)
}

// NewWithOrder returns an empty tree splitting nodes above the given key
// count. Orders below 2 are raised to DefaultOrder.
func NewWithOrder[K cmp.Ordered, V any](order int) *Tree[K, V] {
	if order < 2 {
		order = DefaultOrder
	}
	return &Tree[K, V]{order: order, root: newLeaf[K, V]()}
}

// Len reports the number of live keys.
func (t *Tree[K, V]) Len() int { return t.size }

// Insert upserts (k, v). When the root splits, a new internal root is
// allocated with the old root and its new sibling as children.
func (t *Tree[K, V]) Insert(k K, v V) {
	sp, added := t.root.insert(k, v, t.order)
	if added {
		t.size++
	}
	if sp != nil {
		t.root = &node[K, V]{
			keys:     []K{sp.key},
			children: []*node[K, V]{t.root, sp.right},
		}
	}
}

// findLeaf descends to the leaf whose key range covers k.
func (t *Tree[K, V]) findLeaf(k K) *node[K, V] {
	n := t.root
	for !n.leaf {
		n = n.children[n.childIndex(k)]
	}
	return n
}

// Find returns the value stored at k, if any.
func (t *Tree[K, V]) Find(k K) (V, bool) {
	n := t.findLeaf(k)
	idx, found := slices.BinarySearch(n.keys, k)
	if !found {
		var zero V
		return zero, false
	}
	return n.vals[idx], true
}

// Update rewrites the value at k and reports whether k was present.
func (t *Tree[K, V]) Update(k K, v V) bool {
	n := t.findLeaf(k)
	idx, found := slices.BinarySearch(n.keys, k)
	if !found {
		return false
	}
	n.vals[idx] = v
	return true
}

// Remove deletes k and reports whether it was present. Underflowing nodes are
// not merged; if the root is an internal node left with no separators, it is
// replaced by its sole child.
func (t *Tree[K, V]) Remove(k K) bool {
	n := t.findLeaf(k)
	idx, found := slices.BinarySearch(n.keys, k)
	if !found {
		return false
	}
	n.keys = slices.Delete(n.keys, idx, idx+1)
	n.vals = slices.Delete(n.vals, idx, idx+1)
	t.size--

	if !t.root.leaf && len(t.root.keys) == 0 {
		t.root = t.root.children[0]
	}
	return true
}

// RangeScan visits every (k, v) with lo <= k <= hi in ascending key order,
// following leaf links across node boundaries. The callback runs
// synchronously; it is never invoked when lo > hi or the interval is empty.
func (t *Tree[K, V]) RangeScan(lo, hi K, visit func(K, V)) {
	if lo > hi {
		return
	}
	n := t.findLeaf(lo)
	idx, _ := slices.BinarySearch(n.keys, lo)
	for n != nil {
		for i := idx; i < len(n.keys); i++ {
			if n.keys[i] > hi {
				return
			}
			visit(n.keys[i], n.vals[i])
		}
		n = n.next
		idx = 0
	}
}
