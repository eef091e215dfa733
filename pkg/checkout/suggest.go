package checkout

// Suggest lists finishes for a player at the line, fewest darts first. Each dart
// count is searched with FindCheckouts and ranked by preferred; an empty
// preference set falls back to DefaultPreferredDoubles.
func Suggest(target, dartsLeft, maxResults int, preferred map[string]bool) []Path {
	return defaultFinder.Suggest(target, dartsLeft, maxResults, preferred)
}

// Suggest is the Finder backed version of the package level Suggest
func (f *Finder) Suggest(target, dartsLeft, maxResults int, preferred map[string]bool) []Path {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	if len(preferred) == 0 {
		preferred = DefaultPreferredDoubles()
	}

	var out []Path
	for darts := 1; darts <= dartsLeft && len(out) < maxResults; darts++ {
		for _, p := range RankByPreference(f.Find(target, darts, maxResults), preferred) {
			if len(out) >= maxResults {
				break
			}
			if !containsPath(out, p) {
				out = append(out, p)
			}
		}
	}
	return out
}

// ProgressMessage returns a short piece of encouragement for the remaining score
func ProgressMessage(score int) string {
	switch {
	case score > MaxCheckout:
		return "You're just warming up!"
	case score > 100:
		return "Nice! You're closing in."
	case score > 50:
		return "Almost there, stay sharp!"
	case score > 2:
		return "Setup your double!"
	case score == 2:
		return "You need to hit a double 1 to finish."
	case score == 1:
		return "Bust! You can't finish on 1."
	case score == 0:
		return "You win! Game over."
	default:
		return ""
	}
}
