// Package checkout searches for finishing dart sequences and ranks them by player preference
package checkout

import (
	"strings"

	"github.com/myusername/darts-scorer/pkg/notation"
)

// Path is an ordered sequence of throws that finishes a score on a double
type Path []notation.Throw

// Total returns the sum of the throw values
func (p Path) Total() int {
	total := 0
	for _, t := range p {
		total += t.Value()
	}
	return total
}

// Last returns the finishing throw. It is the zero Throw for an empty path.
func (p Path) Last() notation.Throw {
	if len(p) == 0 {
		return notation.Throw{}
	}
	return p[len(p)-1]
}

// Notations returns the canonical token of every throw
func (p Path) Notations() []string {
	tokens := make([]string, len(p))
	for i, t := range p {
		tokens[i] = t.Notation()
	}
	return tokens
}

// String joins the notations with spaces, e.g. "T20 T20 D25"
func (p Path) String() string {
	return strings.Join(p.Notations(), " ")
}

// Equal reports whether both paths hold the same throws in the same order
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// Valid reports whether the path checks out target within dartsLeft darts:
// every throw scores, the values sum to target and the last dart is a double.
func (p Path) Valid(target, dartsLeft int) bool {
	if len(p) == 0 || len(p) > dartsLeft || len(p) > notation.MaxDarts {
		return false
	}
	for _, t := range p {
		if t.Ring == notation.Miss || t.Value() == 0 {
			return false
		}
	}
	return p.Total() == target && p.Last().IsDouble()
}

// ParsePath builds a path from notated throws. It returns false if any token is illegal.
func ParsePath(tokens ...string) (Path, bool) {
	path := make(Path, 0, len(tokens))
	for _, token := range tokens {
		t, ok := notation.Parse(token)
		if !ok {
			return nil, false
		}
		path = append(path, t)
	}
	return path, true
}

func containsPath(paths []Path, p Path) bool {
	for _, existing := range paths {
		if existing.Equal(p) {
			return true
		}
	}
	return false
}

func clonePaths(paths []Path) []Path {
	if paths == nil {
		return nil
	}
	out := make([]Path, len(paths))
	for i, p := range paths {
		out[i] = append(Path(nil), p...)
	}
	return out
}
