package checkout

import (
	"strings"

	"github.com/myusername/darts-scorer/pkg/notation"
)

// defaultPreferredDoubles are the finishing doubles most players aim for
var defaultPreferredDoubles = []string{"D20", "D16", "D8", "D10", "D12", "D18", "D4", "D25"}

// DefaultPreferredDoubles returns a fresh copy of the conventional preference set
func DefaultPreferredDoubles() map[string]bool {
	return PreferenceSet(defaultPreferredDoubles)
}

// PreferenceSet canonicalizes double tokens ("d20" becomes "D20"). Tokens that are
// not doubles are dropped.
func PreferenceSet(tokens []string) map[string]bool {
	set := make(map[string]bool, len(tokens))
	for _, token := range tokens {
		t, ok := notation.Parse(token)
		if !ok || !t.IsDouble() {
			continue
		}
		set[t.Notation()] = true
	}
	return set
}

// RankByPreference moves the paths finishing on a preferred double to the front.
// Order inside each group is kept. The input slice is not modified.
func RankByPreference(paths []Path, preferred map[string]bool) []Path {
	ranked := make([]Path, 0, len(paths))
	var others []Path
	for _, p := range paths {
		if preferred[strings.ToUpper(p.Last().Notation())] {
			ranked = append(ranked, p)
		} else {
			others = append(others, p)
		}
	}
	return append(ranked, others...)
}
