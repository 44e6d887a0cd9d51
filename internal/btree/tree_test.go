package btree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTree_InsertAndFind(t *testing.T) {
	tr := New[int64, int]()

	for i := int64(1); i <= 10; i++ {
		tr.Insert(i, int(i*100))
	}

	for i := int64(1); i <= 10; i++ {
		v, ok := tr.Find(i)
		require.True(t, ok, "key %d", i)
		require.Equal(t, int(i*100), v)
	}

	_, ok := tr.Find(42)
	require.False(t, ok)
	require.Equal(t, 10, tr.Len())
}

func TestTree_InsertUpsertsExistingKey(t *testing.T) {
	tr := New[string, int]()

	tr.Insert("a", 1)
	tr.Insert("a", 2)

	v, ok := tr.Find("a")
	require.True(t, ok)
	require.Equal(t, 2, v)
	require.Equal(t, 1, tr.Len())
}

func TestTree_Update(t *testing.T) {
	tr := New[int64, string]()
	tr.Insert(7, "old")

	require.True(t, tr.Update(7, "new"))
	v, _ := tr.Find(7)
	require.Equal(t, "new", v)

	require.False(t, tr.Update(8, "nope"))
}

func TestTree_RemoveIsIdempotent(t *testing.T) {
	tr := New[int64, int]()
	tr.Insert(1, 10)

	require.True(t, tr.Remove(1))
	_, ok := tr.Find(1)
	require.False(t, ok)

	require.False(t, tr.Remove(1))
	require.Equal(t, 0, tr.Len())
}

// After inserting order+1 distinct keys the root must become internal with
// exactly one separator and two leaves, the separator being the right leaf's
// first key.
func TestTree_LeafSplitAtOrderBoundary(t *testing.T) {
	tr := New[int64, int]() // order 4

	for i := int64(1); i <= 4; i++ {
		tr.Insert(i, int(i))
	}
	require.True(t, tr.root.leaf, "no split until order exceeded")

	tr.Insert(5, 5)

	root := tr.root
	require.False(t, root.leaf)
	require.Len(t, root.keys, 1)
	require.Len(t, root.children, 2)

	left, right := root.children[0], root.children[1]
	require.True(t, left.leaf)
	require.True(t, right.leaf)
	require.Equal(t, right.keys[0], root.keys[0])
	require.Equal(t, []int64{1, 2}, left.keys)
	require.Equal(t, []int64{3, 4, 5}, right.keys)
	require.Same(t, right, left.next)
}

// An internal split promotes the median separator without retaining it in
// either half.
func TestTree_InternalSplitDropsMedian(t *testing.T) {
	tr := NewWithOrder[int64, int](2)

	for i := int64(1); i <= 20; i++ {
		tr.Insert(i, int(i))
	}

	var checkSeparators func(n *node[int64, int])
	checkSeparators = func(n *node[int64, int]) {
		if n.leaf {
			return
		}
		require.Len(t, n.children, len(n.keys)+1)
		for i, k := range n.keys {
			// Every key in children[i] < separator <= every key in children[i+1].
			for _, ck := range collectKeys(n.children[i]) {
				require.Less(t, ck, k)
			}
			for _, ck := range collectKeys(n.children[i+1]) {
				require.GreaterOrEqual(t, ck, k)
			}
		}
		for _, c := range n.children {
			checkSeparators(c)
		}
	}
	checkSeparators(tr.root)

	for i := int64(1); i <= 20; i++ {
		v, ok := tr.Find(i)
		require.True(t, ok, "key %d", i)
		require.Equal(t, int(i), v)
	}
}

func collectKeys(n *node[int64, int]) []int64 {
	if n.leaf {
		return n.keys
	}
	var out []int64
	for _, c := range n.children {
		out = append(out, collectKeys(c)...)
	}
	return out
}

// Walking the leaf chain must yield keys in strictly ascending order after an
// arbitrary insert sequence.
func TestTree_LeafChainIsSorted(t *testing.T) {
	tr := New[int64, int]()

	keys := []int64{17, 3, 99, 42, 8, 1, 56, 23, 74, 12, 61, 38, 90, 5, 29}
	for _, k := range keys {
		tr.Insert(k, int(k))
	}

	n := tr.root
	for !n.leaf {
		n = n.children[0]
	}

	var got []int64
	for ; n != nil; n = n.next {
		got = append(got, n.keys...)
	}

	require.Len(t, got, len(keys))
	for i := 1; i < len(got); i++ {
		require.Less(t, got[i-1], got[i])
	}
}

func TestTree_RangeScan(t *testing.T) {
	tr := New[int64, int]()
	for _, k := range []int64{1, 3, 5, 7, 9, 11, 13} {
		tr.Insert(k, int(k*10))
	}

	var keys []int64
	var vals []int
	tr.RangeScan(4, 10, func(k int64, v int) {
		keys = append(keys, k)
		vals = append(vals, v)
	})

	require.Equal(t, []int64{5, 7, 9}, keys)
	require.Equal(t, []int{50, 70, 90}, vals)
}

func TestTree_RangeScanSingleKey(t *testing.T) {
	tr := New[int64, int]()
	for _, k := range []int64{2, 4, 6, 8} {
		tr.Insert(k, int(k))
	}

	calls := 0
	tr.RangeScan(6, 6, func(k int64, v int) {
		calls++
		require.Equal(t, int64(6), k)
	})
	require.Equal(t, 1, calls)
}

func TestTree_RangeScanPastAllKeys(t *testing.T) {
	tr := New[int64, int]()
	for _, k := range []int64{1, 2, 3} {
		tr.Insert(k, int(k))
	}

	calls := 0
	tr.RangeScan(10, 20, func(int64, int) { calls++ })
	require.Zero(t, calls)

	// Inverted interval visits nothing either.
	tr.RangeScan(3, 1, func(int64, int) { calls++ })
	require.Zero(t, calls)
}

func TestTree_RangeScanAcrossLeaves(t *testing.T) {
	tr := New[int64, int]()
	for i := int64(1); i <= 50; i++ {
		tr.Insert(i, int(i))
	}

	var got []int64
	tr.RangeScan(10, 40, func(k int64, _ int) { got = append(got, k) })

	require.Len(t, got, 31)
	require.Equal(t, int64(10), got[0])
	require.Equal(t, int64(40), got[len(got)-1])
	for i := 1; i < len(got); i++ {
		require.Equal(t, got[i-1]+1, got[i])
	}
}

// Deletes do not rebalance: the tree may go sparse but stays correct, and an
// internal root that loses its last separator collapses into its child.
func TestTree_RemoveKeepsTreeQueryable(t *testing.T) {
	tr := New[int64, int]()
	for i := int64(1); i <= 30; i++ {
		tr.Insert(i, int(i))
	}

	for i := int64(1); i <= 30; i += 2 {
		require.True(t, tr.Remove(i))
	}

	for i := int64(1); i <= 30; i++ {
		v, ok := tr.Find(i)
		if i%2 == 1 {
			require.False(t, ok, "key %d should be gone", i)
		} else {
			require.True(t, ok, "key %d", i)
			require.Equal(t, int(i), v)
		}
	}
	require.Equal(t, 15, tr.Len())

	var scanned []int64
	tr.RangeScan(1, 30, func(k int64, _ int) { scanned = append(scanned, k) })
	require.Len(t, scanned, 15)
	for i := 1; i < len(scanned); i++ {
		require.Less(t, scanned[i-1], scanned[i])
	}
}

func TestTree_FindReturnsLatestWrite(t *testing.T) {
	tr := New[int64, int]()

	for round := 0; round < 3; round++ {
		for i := int64(0); i < 64; i++ {
			tr.Insert(i, round*1000+int(i))
		}
	}

	for i := int64(0); i < 64; i++ {
		v, ok := tr.Find(i)
		require.True(t, ok)
		require.Equal(t, 2000+int(i), v)
	}
	require.Equal(t, 64, tr.Len())
}
