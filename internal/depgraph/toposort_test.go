package depgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGraph struct {
	n    int
	deps [][]int
}

func (g fakeGraph) NumFiles() int         { return g.n }
func (g fakeGraph) DependsOn(i int) []int { return g.deps[i] }

func TestTopoSortLinearChain(t *testing.T) {
	// 0 = a (no deps), 1 = b (depends on a), 2 = c (depends on b).
	g := fakeGraph{n: 3, deps: [][]int{{}, {0}, {1}}}
	order, err := TopoSort(g)
	require.NoError(t, err)
	assertBefore(t, order, 0, 1)
	assertBefore(t, order, 1, 2)
}

func TestTopoSortCycleDetected(t *testing.T) {
	// a uses beta (defined by b); b uses alpha (defined by a) -> cycle.
	g := fakeGraph{n: 2, deps: [][]int{{1}, {0}}}
	_, err := TopoSort(g)
	require.ErrorIs(t, err, ErrCycle)
}

func TestTopoSortOrderRespectsAllPairs(t *testing.T) {
	// Diamond: d depends on b and c; b and c both depend on a.
	g := fakeGraph{n: 4, deps: [][]int{{}, {0}, {0}, {1, 2}}}
	order, err := TopoSort(g)
	require.NoError(t, err)
	assertBefore(t, order, 0, 1)
	assertBefore(t, order, 0, 2)
	assertBefore(t, order, 1, 3)
	assertBefore(t, order, 2, 3)
}

func assertBefore(t *testing.T, order []int, earlier, later int) {
	t.Helper()
	ei, li := -1, -1
	for i, v := range order {
		if v == earlier {
			ei = i
		}
		if v == later {
			li = i
		}
	}
	assert.True(t, ei >= 0 && li >= 0, "both nodes must appear in order")
	assert.Less(t, ei, li, "node %d must precede node %d", earlier, later)
}

func TestRestrictPreservesOrder(t *testing.T) {
	order := []int{3, 1, 4, 0, 2}
	subset := map[int]bool{1: true, 0: true, 2: true}
	restricted := Restrict(order, subset)
	assert.Equal(t, []int{1, 0, 2}, restricted)
}
