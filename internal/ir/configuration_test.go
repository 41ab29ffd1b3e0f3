package ir

import (
	"testing"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTarget(t *testing.T) {
	live := Live("q1")
	s, ok := live.State()
	assert.True(t, ok)
	assert.Equal(t, "q1", s)
	assert.False(t, live.IsDead())
	assert.Equal(t, "q1", live.String())

	dead := Dead[string]()
	_, ok = dead.State()
	assert.False(t, ok)
	assert.True(t, dead.IsDead())
	assert.Equal(t, "∅", dead.String())
}

func TestTarget_ZeroValueStateIsLive(t *testing.T) {
	// The empty string is a legitimate state and must not collide with dead.
	live := Live("")
	assert.False(t, live.IsDead())
	assert.NotEqual(t, Dead[string](), live)
}

func TestConfiguration(t *testing.T) {
	src := NewSet("a", "b")
	c := Branches(src)
	src.Add("c")

	assert.Equal(t, 2, c.Len())
	assert.False(t, c.Contains("c"))
	assert.True(t, c.Intersects(NewSet("b", "z")))
	assert.False(t, c.Intersects(NewSet("z")))
	assert.Equal(t, "{a, b}", c.String())

	states := c.States()
	states.Add("x")
	assert.False(t, c.Contains("x"))
}

func TestConfiguration_Halted(t *testing.T) {
	assert.True(t, Branches(NewSet[string]()).IsDead())
	assert.True(t, Halted[string]().IsDead())
	assert.True(t, Halted[string]().Equal(Branches[string](nil)))
	assert.Equal(t, 0, Halted[string]().States().Cardinality())
	assert.False(t, Halted[string]().Intersects(NewSet("a")))
	assert.Equal(t, "∅", Halted[int]().String())
}

func TestConfiguration_Equal(t *testing.T) {
	assert.True(t, BranchesOf("a", "b").Equal(BranchesOf("b", "a")))
	assert.False(t, BranchesOf("a").Equal(BranchesOf("a", "b")))
	assert.False(t, BranchesOf("a").Equal(Halted[string]()))
	assert.False(t, Halted[string]().Equal(BranchesOf("a")))
}

func TestConfiguration_Each(t *testing.T) {
	var seen []string
	BranchesOf("a", "b", "c").Each(func(s string) { seen = append(seen, s) })
	assert.ElementsMatch(t, []string{"a", "b", "c"}, seen)

	Halted[string]().Each(func(string) { t.Fatal("halted configuration has no branches") })
}

func TestSet(t *testing.T) {
	s := NewSet(1, 2)
	assert.True(t, s.Add(3))
	assert.False(t, s.Add(3))
	assert.Equal(t, 3, SetLen(s))
	assert.True(t, NewSet(1, 2).IsSubset(s))
	assert.True(t, s.Equal(NewSet(3, 2, 1)))
	assert.ElementsMatch(t, []int{1, 2, 3}, SetItems(s))
	assert.Equal(t, "{1, 2, 3}", FormatSet(s))

	c := CloneSet(s)
	c.Add(4)
	assert.False(t, s.ContainsOne(4))
}

func TestSet_Nil(t *testing.T) {
	var absent Set[int]
	assert.Equal(t, 0, SetLen(absent))
	assert.Nil(t, SetItems(absent))
	assert.False(t, Intersects(absent, NewSet(1)))
	assert.False(t, Intersects(NewSet(1), absent))
	assert.Equal(t, "{}", FormatSet(absent))

	empty := CloneSet(absent)
	require.NotNil(t, empty)
	assert.True(t, empty.IsEmpty())
}

func TestSet_Intersects(t *testing.T) {
	assert.True(t, Intersects(NewSet(1, 2, 3, 4), NewSet(4)))
	assert.True(t, Intersects(NewSet(4), NewSet(1, 2, 3, 4)))
	assert.False(t, Intersects(NewSet(1, 2), NewSet(3)))
	assert.False(t, Intersects(NewSet[int](), NewSet[int]()))
}

func TestCloneSet_NormalizesThreadSafeSets(t *testing.T) {
	shared := mapset.NewSet("a", "b")
	c := CloneSet(shared)

	// Equal and IsSubset only compare sets of the same implementation
	assert.True(t, c.Equal(NewSet("b", "a")))
	assert.True(t, NewSet("a").IsSubset(c))
}
