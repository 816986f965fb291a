package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasename(t *testing.T) {
	cases := map[string]string{
		"src/a.f90":       "a",
		"src/sub/b.FOR":   "b",
		"util.h":          "util",
		"noext":           "noext",
		`C:\src\main.f90`: "main",
	}
	for in, want := range cases {
		assert.Equal(t, want, Basename(in), "Basename(%q)", in)
	}
}

func TestProjectAddIndexesPathAndHeaderBasename(t *testing.T) {
	p := NewProject()

	a := p.Add("/proj/src/a.f90", KindFortran)
	h := p.Add("/proj/src/util.h", KindHeader)

	require.Equal(t, 0, a)
	require.Equal(t, 1, h)

	idx, ok := p.PathIndex["/proj/src/util.h"]
	require.True(t, ok)
	assert.Equal(t, h, idx)

	hi, ok := p.HeaderBasename["util.h"]
	require.True(t, ok)
	assert.Equal(t, h, hi)
}

func TestHeaderBasenameFirstMatchWins(t *testing.T) {
	p := NewProject()
	first := p.Add("/proj/a/util.h", KindHeader)
	p.Add("/proj/b/util.h", KindHeader)

	idx := p.HeaderBasename["util.h"]
	assert.Equal(t, first, idx)
}

func TestBuildReverseEdges(t *testing.T) {
	p := NewProject()
	a := p.Add("/proj/a.f90", KindFortran)
	b := p.Add("/proj/b.f90", KindFortran)
	c := p.Add("/proj/c.f90", KindFortran)

	// c depends on b, b depends on a.
	p.Files[c].DependsOn = []int{b}
	p.Files[b].DependsOn = []int{a}

	p.BuildReverse()

	assert.ElementsMatch(t, []int{b}, p.Reverse[a])
	assert.ElementsMatch(t, []int{c}, p.Reverse[b])
	assert.Empty(t, p.Reverse[c])
}

func TestRebuildSetContains(t *testing.T) {
	rs := RebuildSet{2, 0, 3}
	assert.True(t, rs.Contains(0))
	assert.True(t, rs.Contains(3))
	assert.False(t, rs.Contains(1))
}
