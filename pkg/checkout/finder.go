package checkout

import (
	"strconv"
	"sync"

	"github.com/myusername/darts-scorer/pkg/notation"
)

const (
	// DefaultMaxResults is used when a caller passes a non-positive limit
	DefaultMaxResults = 5

	// MaxCheckout is the highest score that can be finished in three darts (T20 T20 D25)
	MaxCheckout = 170

	minCheckout = 2
)

// BogeyNumbers are the scores at or below 170 that no three darts can finish on a double
var BogeyNumbers = map[int]bool{
	169: true,
	168: true,
	166: true,
	165: true,
	163: true,
	162: true,
	159: true,
}

// IsBogey reports whether score is one of the bogey numbers
func IsBogey(score int) bool {
	return BogeyNumbers[score]
}

// IsFinishable reports whether score can be checked out in a single visit
func IsFinishable(score int) bool {
	return score >= minCheckout && score <= MaxCheckout && !IsBogey(score)
}

// candidates is the first-dart search order: triples 20..1, doubles 20..1 and
// the bull, singles 20..1 and the outer bull. Big conventional setup darts come first.
var candidates = buildCandidates()

func buildCandidates() []notation.Throw {
	var out []notation.Throw
	for s := 20; s >= 1; s-- {
		out = append(out, notation.MustParse("T"+strconv.Itoa(s)))
	}
	for s := 20; s >= 1; s-- {
		out = append(out, notation.MustParse("D"+strconv.Itoa(s)))
	}
	out = append(out, notation.MustParse("D25"))
	for s := 20; s >= 1; s-- {
		out = append(out, notation.MustParse(strconv.Itoa(s)))
	}
	out = append(out, notation.MustParse("25"))
	return out
}

type memoKey struct {
	target     int
	dartsLeft  int
	maxResults int
}

// Finder searches for checkouts and memoizes every (target, darts, limit) it solves.
// A Finder is safe for concurrent use.
type Finder struct {
	mu   sync.RWMutex
	memo map[memoKey][]Path
}

// NewFinder creates a Finder with an empty memo table
func NewFinder() *Finder {
	return &Finder{memo: make(map[memoKey][]Path)}
}

var defaultFinder = NewFinder()

// FindCheckouts searches with the package level Finder
func FindCheckouts(target, dartsLeft, maxResults int) []Path {
	return defaultFinder.Find(target, dartsLeft, maxResults)
}

// Find returns up to maxResults paths that finish target with exactly dartsLeft
// darts, the last one a double. Output order is fixed by the candidate order.
// Unreachable targets and dart counts outside 1-3 return nil.
func (f *Finder) Find(target, dartsLeft, maxResults int) []Path {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	if !IsFinishable(target) || dartsLeft < 1 || dartsLeft > notation.MaxDarts {
		return nil
	}

	key := memoKey{target: target, dartsLeft: dartsLeft, maxResults: maxResults}
	f.mu.RLock()
	cached, ok := f.memo[key]
	f.mu.RUnlock()
	if ok {
		return clonePaths(cached)
	}

	paths := f.search(target, dartsLeft, maxResults)

	f.mu.Lock()
	f.memo[key] = paths
	f.mu.Unlock()
	return clonePaths(paths)
}

// Len returns the number of memoized searches
func (f *Finder) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.memo)
}

func (f *Finder) search(target, dartsLeft, maxResults int) []Path {
	if dartsLeft == 1 {
		if finish, ok := oneDartFinish(target); ok {
			return []Path{{finish}}
		}
		return nil
	}

	var paths []Path
	for _, first := range candidates {
		if len(paths) >= maxResults {
			break
		}
		rest := target - first.Value()
		if rest < minCheckout {
			continue
		}
		// Only the best continuation per first dart is kept
		sub := f.Find(rest, dartsLeft-1, 1)
		if len(sub) == 0 {
			continue
		}
		path := append(Path{first}, sub[0]...)
		if !containsPath(paths, path) {
			paths = append(paths, path)
		}
	}
	return paths
}

// oneDartFinish is the only place the double-out rule is applied directly
func oneDartFinish(target int) (notation.Throw, bool) {
	switch {
	case target == 2*notation.Bull:
		return notation.Throw{Ring: notation.Double, Segment: notation.Bull}, true
	case target >= minCheckout && target <= 40 && target%2 == 0:
		return notation.Throw{Ring: notation.Double, Segment: target / 2}, true
	default:
		return notation.Throw{}, false
	}
}
