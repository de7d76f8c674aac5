package hierarchy_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyaneshwarpardhi/opsdash/internal/hierarchy"
)

type testNode struct {
	id, parent string
}

func (n testNode) NodeID() string       { return n.id }
func (n testNode) ParentNodeID() string { return n.parent }

func nodes(pairs ...string) []hierarchy.Node {
	out := make([]hierarchy.Node, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, testNode{id: pairs[i], parent: pairs[i+1]})
	}
	return out
}

func ids(ns []hierarchy.Node) []string {
	out := make([]string, len(ns))
	for i, n := range ns {
		out[i] = n.NodeID()
	}
	return out
}

func TestResolve_Levels(t *testing.T) {
	f, err := hierarchy.Resolve(nodes(
		"A", "",
		"B", "A",
		"C", "A",
		"D", "B",
	), hierarchy.Options{})
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 2}, f.Levels())
	assert.Equal(t, []string{"A"}, ids(f.Level(0)))
	assert.Equal(t, []string{"B", "C"}, ids(f.Level(1)))
	assert.Equal(t, []string{"D"}, ids(f.Level(2)))
	assert.Equal(t, []string{"B", "C"}, ids(f.Children("A")))
	assert.Equal(t, 4, f.NodeCount())
}

func TestResolve_ChildBeforeParent(t *testing.T) {
	// Input order must not affect depths, only placement within a level.
	f, err := hierarchy.Resolve(nodes(
		"leaf", "mid",
		"mid", "root",
		"root", "",
		"other", "root",
	), hierarchy.Options{})
	require.NoError(t, err)

	for id, want := range map[string]int{"root": 0, "mid": 1, "other": 1, "leaf": 2} {
		got, ok := f.Depth(id)
		require.True(t, ok, id)
		assert.Equal(t, want, got, id)
	}
	assert.Equal(t, []string{"mid", "other"}, ids(f.Level(1)))
}

func TestResolve_ParentPlusOne(t *testing.T) {
	in := nodes(
		"ceo", "",
		"cto", "ceo",
		"cmo", "ceo",
		"lead", "cto",
		"dev1", "lead",
		"dev2", "lead",
		"mlead", "cmo",
		"m1", "mlead",
	)
	f, err := hierarchy.Resolve(in, hierarchy.Options{})
	require.NoError(t, err)

	for _, n := range in {
		d, _ := f.Depth(n.NodeID())
		if n.ParentNodeID() == "" {
			assert.Equal(t, 0, d, n.NodeID())
			continue
		}
		pd, _ := f.Depth(n.ParentNodeID())
		assert.Equal(t, pd+1, d, n.NodeID())
	}
}

func TestResolve_DanglingParentTolerated(t *testing.T) {
	f, err := hierarchy.Resolve(nodes(
		"orphan", "ghost",
		"child", "orphan",
	), hierarchy.Options{OnDanglingParent: hierarchy.TreatAsRoot})
	require.NoError(t, err)

	d, _ := f.Depth("orphan")
	assert.Equal(t, 1, d)
	d, _ = f.Depth("child")
	assert.Equal(t, 2, d)
	assert.False(t, f.HasParent(f.Node("orphan")))
	assert.True(t, f.HasParent(f.Node("child")))
	assert.Equal(t, []int{1, 2}, f.Levels())
}

func TestResolve_DanglingParentRejected(t *testing.T) {
	_, err := hierarchy.Resolve(nodes("orphan", "ghost"), hierarchy.Options{OnDanglingParent: hierarchy.RejectDangling})
	require.Error(t, err)
	assert.True(t, errors.Is(err, hierarchy.ErrDanglingParent))

	var de *hierarchy.DanglingParentError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "orphan", de.NodeID)
	assert.Equal(t, "ghost", de.ParentID)
}

func TestResolve_Cycle(t *testing.T) {
	cases := []struct {
		name string
		in   []hierarchy.Node
	}{
		{"self", nodes("A", "A")},
		{"pair", nodes("A", "B", "B", "A")},
		{"behind root", nodes("R", "", "A", "C", "B", "A", "C", "B")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := hierarchy.Resolve(tc.in, hierarchy.Options{})
			require.Error(t, err)
			assert.ErrorIs(t, err, hierarchy.ErrMalformedHierarchy)
			var ce *hierarchy.CycleError
			require.ErrorAs(t, err, &ce)
			require.GreaterOrEqual(t, len(ce.Chain), 2)
			last := ce.Chain[len(ce.Chain)-1]
			assert.GreaterOrEqual(t, indexOf(ce.Chain[:len(ce.Chain)-1], last), 0, "repeated id must appear earlier in %v", ce.Chain)
		})
	}
}

func indexOf(s []string, v string) int {
	for i, x := range s {
		if x == v {
			return i
		}
	}
	return -1
}

func TestResolve_DuplicateID(t *testing.T) {
	_, err := hierarchy.Resolve(nodes("A", "", "A", ""), hierarchy.Options{})
	var de *hierarchy.DuplicateIDError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "A", de.ID)
	assert.ErrorIs(t, err, hierarchy.ErrMalformedHierarchy)
}

func TestResolve_Empty(t *testing.T) {
	f, err := hierarchy.Resolve(nil, hierarchy.Options{})
	require.NoError(t, err)
	assert.Empty(t, f.Levels())
	assert.Zero(t, f.NodeCount())
}

func TestDanglingPolicy_Valid(t *testing.T) {
	assert.True(t, hierarchy.DanglingPolicy("").Valid())
	assert.True(t, hierarchy.TreatAsRoot.Valid())
	assert.True(t, hierarchy.RejectDangling.Valid())
	assert.False(t, hierarchy.DanglingPolicy("ignore").Valid())
}
