package game

import "github.com/myusername/darts-scorer/pkg/checkout"

// Suggestions returns up to limit finishes for the player at the line, chart routes
// first and then computed checkouts ranked by the player's preferred doubles.
func (m *Match) Suggestions(limit int) []checkout.Path {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase == MatchComplete {
		return nil
	}
	if limit <= 0 {
		limit = checkout.DefaultMaxResults
	}

	score := m.players[m.current].RemainingScore
	if m.phase != AwaitingThrow {
		score = m.cfg.StartingScore
	}
	dartsLeft := m.dartsLeft()

	var out []checkout.Path
	add := func(paths []checkout.Path) {
		for _, p := range paths {
			if len(out) >= limit {
				return
			}
			duplicate := false
			for _, existing := range out {
				if existing.Equal(p) {
					duplicate = true
					break
				}
			}
			if !duplicate {
				out = append(out, p)
			}
		}
	}

	add(m.chart.Routes(score, dartsLeft))
	add(m.finder.Suggest(score, dartsLeft, limit, m.preferred[m.current]))
	return out
}
