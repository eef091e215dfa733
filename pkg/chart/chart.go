// Package chart imports published checkout charts from text, HTML pages and PDF files
package chart

import (
	"fmt"
	"sort"

	"github.com/myusername/darts-scorer/pkg/checkout"
)

// Chart maps a score to the routes a published chart recommends for it
type Chart struct {
	Source string
	routes map[int][]checkout.Path
}

// New creates an empty chart
func New(source string) *Chart {
	return &Chart{Source: source, routes: make(map[int][]checkout.Path)}
}

// Add stores a route for score. The route must be a sound three-dart checkout.
func (c *Chart) Add(score int, route checkout.Path) error {
	if c == nil {
		return fmt.Errorf("cannot add a route to a nil chart")
	}
	if !checkout.IsFinishable(score) {
		return fmt.Errorf("score %d cannot be checked out", score)
	}
	if !route.Valid(score, 3) {
		return fmt.Errorf("route %q does not check out %d on a double", route.String(), score)
	}
	for _, existing := range c.routes[score] {
		if existing.Equal(route) {
			return nil
		}
	}
	c.routes[score] = append(c.routes[score], append(checkout.Path(nil), route...))
	return nil
}

// Routes returns the chart routes for score that fit in dartsLeft darts, in chart order
func (c *Chart) Routes(score, dartsLeft int) []checkout.Path {
	if c == nil {
		return nil
	}
	var out []checkout.Path
	for _, route := range c.routes[score] {
		if len(route) <= dartsLeft {
			out = append(out, append(checkout.Path(nil), route...))
		}
	}
	return out
}

// Len returns the number of scores that have at least one route
func (c *Chart) Len() int {
	if c == nil {
		return 0
	}
	return len(c.routes)
}

// Scores returns every charted score in descending order
func (c *Chart) Scores() []int {
	if c == nil {
		return nil
	}
	scores := make([]int, 0, len(c.routes))
	for score := range c.routes {
		scores = append(scores, score)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(scores)))
	return scores
}

// Merge copies the routes of other after the routes already in c. Merging into a
// nil chart does nothing.
func (c *Chart) Merge(other *Chart) {
	if c == nil || other == nil {
		return
	}
	for _, score := range other.Scores() {
		for _, route := range other.routes[score] {
			// Routes in other were validated when added
			_ = c.Add(score, route)
		}
	}
}
