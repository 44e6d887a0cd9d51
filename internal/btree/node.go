package btree

import (
	"cmp"
	"slices"
	"sort"
)

// node is either a leaf or an internal node, tagged by the leaf flag.
// Leaves hold keys/vals pairs plus a forward link to the next leaf; internal
// nodes hold separator keys and len(keys)+1 children. The next link is a
// non-owning reference used only for range iteration.
type node[K cmp.Ordered, V any] struct {
	leaf bool

	keys []K

	// leaf payload
	vals []V
	next *node[K, V]

	// internal payload
	children []*node[K, V]
}

// split carries the key and right sibling produced by a node split up to the
// parent, which inserts them next to the child that overflowed.
type split[K cmp.Ordered, V any] struct {
	key   K
	right *node[K, V]
}

func newLeaf[K cmp.Ordered, V any]() *node[K, V] {
	return &node[K, V]{leaf: true}
}

// childIndex returns the child to descend into for key k: the position of the
// first separator strictly greater than k.
func (n *node[K, V]) childIndex(k K) int {
	return sort.Search(len(n.keys), func(i int) bool { return n.keys[i] > k })
}

// splitLeaf moves the upper half of a leaf into a new right sibling and wires
// it into the leaf chain. The promoted separator is the right leaf's first key,
// which stays in the leaf (B+ tree: all data lives at the leaf level).
func (n *node[K, V]) splitLeaf() split[K, V] {
	mid := len(n.keys) / 2

	right := newLeaf[K, V]()
	right.keys = append(right.keys, n.keys[mid:]...)
	right.vals = append(right.vals, n.vals[mid:]...)
	right.next = n.next

	n.keys = n.keys[:mid]
	n.vals = n.vals[:mid]
	n.next = right

	return split[K, V]{key: right.keys[0], right: right}
}

// splitInternal promotes the median separator to the parent; unlike a leaf
// split the median is retained in neither half.
func (n *node[K, V]) splitInternal() split[K, V] {
	mid := len(n.keys) / 2
	midKey := n.keys[mid]

	right := &node[K, V]{}
	right.keys = append(right.keys, n.keys[mid+1:]...)
	right.children = append(right.children, n.children[mid+1:]...)

	n.keys = n.keys[:mid]
	n.children = n.children[:mid+1]

	return split[K, V]{key: midKey, right: right}
}

// insert places (k, v) in the subtree rooted at n, replacing the value when k
// is already present. It returns a non-nil split when n overflowed, and
// whether the key was new.
func (n *node[K, V]) insert(k K, v V, order int) (*split[K, V], bool) {
	if n.leaf {
		idx, found := slices.BinarySearch(n.keys, k)
		if found {
			n.vals[idx] = v
			return nil, false
		}
		n.keys = slices.Insert(n.keys, idx, k)
		n.vals = slices.Insert(n.vals, idx, v)
		if len(n.keys) > order {
			sp := n.splitLeaf()
			return &sp, true
		}
		return nil, true
	}

	idx := n.childIndex(k)
	sp, added := n.children[idx].insert(k, v, order)
	if sp == nil {
		return nil, added
	}

	n.keys = slices.Insert(n.keys, idx, sp.key)
	n.children = slices.Insert(n.children, idx+1, sp.right)
	if len(n.keys) > order {
		up := n.splitInternal()
		return &up, added
	}
	return nil, added
}
