package checkout

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myusername/darts-scorer/pkg/notation"
)

func notations(paths []Path) [][]string {
	out := make([][]string, len(paths))
	for i, p := range paths {
		out[i] = p.Notations()
	}
	return out
}

func TestFindCheckoutsOneDart(t *testing.T) {
	assert.Equal(t, [][]string{{"D20"}}, notations(FindCheckouts(40, 1, 5)))
	assert.Equal(t, [][]string{{"D25"}}, notations(FindCheckouts(50, 1, 5)))
	assert.Equal(t, [][]string{{"D1"}}, notations(FindCheckouts(2, 1, 5)))
	assert.Empty(t, FindCheckouts(41, 1, 5))
	assert.Empty(t, FindCheckouts(42, 1, 5))
	assert.Empty(t, FindCheckouts(60, 1, 5))
}

func TestFindCheckoutsTwoDarts(t *testing.T) {
	assert.Equal(t, [][]string{{"T20", "D20"}, {"D25", "D25"}}, notations(FindCheckouts(100, 2, 5)))
	assert.Equal(t, [][]string{{"1", "D1"}}, notations(FindCheckouts(3, 2, 5)))
	assert.Empty(t, FindCheckouts(2, 2, 5))
	assert.Equal(t, [][]string{{"T17", "D25"}}, notations(FindCheckouts(101, 2, 5)))
	assert.Empty(t, FindCheckouts(109, 2, 5))
}

func TestFindCheckoutsMaxCheckout(t *testing.T) {
	paths := FindCheckouts(170, 3, 5)
	require.Len(t, paths, 1)
	assert.Equal(t, []string{"T20", "T20", "D25"}, paths[0].Notations())
}

func TestFindCheckoutsCandidateOrder(t *testing.T) {
	assert.Equal(t,
		[][]string{{"T12", "D2"}, {"T10", "D5"}, {"T8", "D8"}, {"T6", "D11"}, {"T4", "D14"}},
		notations(FindCheckouts(40, 2, 5)))
}

func TestFindCheckoutsRejectsUnreachable(t *testing.T) {
	for score := range BogeyNumbers {
		for darts := 1; darts <= 3; darts++ {
			assert.Empty(t, FindCheckouts(score, darts, 5), "bogey %d", score)
		}
	}
	for _, score := range []int{-5, 0, 1, 171, 180, 501} {
		assert.Empty(t, FindCheckouts(score, 3, 5), "score %d", score)
	}
	assert.Empty(t, FindCheckouts(40, 0, 5))
	assert.Empty(t, FindCheckouts(40, 4, 5))
}

func TestFindCheckoutsSoundness(t *testing.T) {
	for target := -2; target <= 175; target++ {
		for darts := 1; darts <= 3; darts++ {
			paths := FindCheckouts(target, darts, 5)
			assert.LessOrEqual(t, len(paths), 5)
			for i, p := range paths {
				assert.True(t, p.Valid(target, darts), "target %d darts %d path %s", target, darts, p)
				assert.Len(t, p, darts)
				assert.True(t, p.Last().IsDouble())
				for _, other := range paths[:i] {
					assert.False(t, other.Equal(p), "duplicate path %s", p)
				}
			}
		}
	}
}

func TestFindCheckoutsDeterministic(t *testing.T) {
	fresh := NewFinder()
	for target := 2; target <= 170; target++ {
		first := FindCheckouts(target, 3, 5)
		second := FindCheckouts(target, 3, 5)
		assert.Equal(t, notations(first), notations(second))
		assert.Equal(t, notations(first), notations(fresh.Find(target, 3, 5)))
	}
}

func TestFindCheckoutsDefaultLimit(t *testing.T) {
	assert.Len(t, FindCheckouts(100, 3, 0), DefaultMaxResults)
	assert.Len(t, FindCheckouts(100, 3, 2), 2)
}

func TestFinderReturnsCopies(t *testing.T) {
	f := NewFinder()
	paths := f.Find(100, 2, 5)
	require.NotEmpty(t, paths)
	paths[0][0] = notation.MustParse("1")
	paths[1] = nil

	again := f.Find(100, 2, 5)
	assert.Equal(t, []string{"T20", "D20"}, again[0].Notations())
	assert.Positive(t, f.Len())
}

func TestFinderConcurrentUse(t *testing.T) {
	f := NewFinder()
	want := notations(NewFinder().Find(121, 3, 5))

	var wg sync.WaitGroup
	results := make([][][]string, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = notations(f.Find(121, 3, 5))
		}(i)
	}
	wg.Wait()
	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestPathValid(t *testing.T) {
	p, ok := ParsePath("T20", "T20", "D25")
	require.True(t, ok)
	assert.True(t, p.Valid(170, 3))
	assert.False(t, p.Valid(170, 2))
	assert.False(t, p.Valid(160, 3))
	assert.Equal(t, "T20 T20 D25", p.String())

	p, _ = ParsePath("T20", "20")
	assert.False(t, p.Valid(80, 3))

	p, _ = ParsePath("0", "D20")
	assert.False(t, p.Valid(40, 3))

	_, ok = ParsePath("T25")
	assert.False(t, ok)
	assert.False(t, Path{}.Valid(0, 3))
}

func TestRankByPreference(t *testing.T) {
	a, _ := ParsePath("T20", "D20")
	b, _ := ParsePath("D25", "D25")
	c, _ := ParsePath("T19", "D12")
	d, _ := ParsePath("T18", "D12")
	paths := []Path{a, b, c, d}

	ranked := RankByPreference(paths, PreferenceSet([]string{"d12"}))
	assert.Equal(t, notations([]Path{c, d, a, b}), notations(ranked))
	assert.Equal(t, notations([]Path{a, b, c, d}), notations(paths), "input must not be reordered")

	assert.Equal(t, notations(paths), notations(RankByPreference(paths, nil)))
	assert.Empty(t, RankByPreference(nil, DefaultPreferredDoubles()))
}

func TestPreferenceSet(t *testing.T) {
	set := PreferenceSet([]string{"d20", "T20", "nonsense", "D25"})
	assert.Equal(t, map[string]bool{"D20": true, "D25": true}, set)
	assert.True(t, DefaultPreferredDoubles()["D16"])
}

func TestSuggestFewestDartsFirst(t *testing.T) {
	paths := Suggest(40, 3, 5, nil)
	require.Len(t, paths, 5)
	assert.Equal(t, []string{"D20"}, paths[0].Notations())
	assert.Equal(t, []string{"T8", "D8"}, paths[1].Notations())

	paths = Suggest(40, 1, 5, nil)
	assert.Equal(t, [][]string{{"D20"}}, notations(paths))

	paths = Suggest(170, 2, 5, nil)
	assert.Empty(t, paths)

	paths = Suggest(100, 3, 5, PreferenceSet([]string{"D25"}))
	assert.Equal(t, []string{"D25", "D25"}, paths[0].Notations())
}

func TestProgressMessage(t *testing.T) {
	assert.Equal(t, "You're just warming up!", ProgressMessage(301))
	assert.Equal(t, "Setup your double!", ProgressMessage(32))
	assert.Equal(t, "You need to hit a double 1 to finish.", ProgressMessage(2))
	assert.Equal(t, "You win! Game over.", ProgressMessage(0))
}
