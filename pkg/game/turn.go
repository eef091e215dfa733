package game

import (
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/myusername/darts-scorer/pkg/checkout"
	"github.com/myusername/darts-scorer/pkg/models"
	"github.com/myusername/darts-scorer/pkg/notation"
)

// TurnResult reports what a submitted turn did
type TurnResult struct {
	Player      string
	Outcome     models.TurnOutcome
	Total       int
	DartsUsed   int
	ScoreBefore int
	NewScore    int
	// Advanced is true when the next player now has the line
	Advanced bool
	LegWon   bool
	SetWon   bool
	MatchWon bool
}

// SubmitTurn scores the darts thrown by player. A rejected submission (bad token,
// wrong player, too many darts, finished match) returns an error and changes nothing.
// Every accepted submission produces exactly one outcome.
//
// A visit may be entered over several submissions. A bust only reverts the score
// held before the busting submission: points from earlier submissions in the same
// visit are kept, unlike the board rule where a bust voids the whole visit.
func (m *Match) SubmitTurn(player string, tokens []string) (TurnResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase == MatchComplete {
		return TurnResult{}, ErrMatchOver
	}

	turn, err := notation.EvaluateTurn(tokens)
	if err != nil {
		return TurnResult{}, err
	}
	if turn.DartsUsed == 0 {
		return TurnResult{}, ErrEmptyTurn
	}
	if left := m.dartsLeft(); turn.DartsUsed > left {
		return TurnResult{}, fmt.Errorf("%w: %d thrown, %d left", ErrTooManyDarts, turn.DartsUsed, left)
	}
	if expected := m.players[m.current].Name; player != expected {
		return TurnResult{}, fmt.Errorf("%w: %s is at the line, not %s", ErrNotPlayersTurn, expected, player)
	}

	// A finished leg is cleared away by the first dart of the next one
	if m.phase != AwaitingThrow {
		m.startNextLeg()
	}

	return m.applyTurn(turn, tokens), nil
}

// NextLeg resets the board after a won leg or set. SubmitTurn does this on its own,
// so calling NextLeg is only needed when the display should move on first.
func (m *Match) NextLeg() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.phase {
	case MatchComplete:
		return ErrMatchOver
	case AwaitingThrow:
		return ErrLegInProgress
	}
	m.startNextLeg()
	return nil
}

func (m *Match) applyTurn(turn notation.TurnResult, tokens []string) TurnResult {
	idx := m.current
	p := &m.players[idx]
	profile := &m.profiles[idx]

	cp := m.newCheckpoint(tokens)

	before := p.RemainingScore
	remaining := before - turn.Total

	outcome := models.OutcomeOK
	switch {
	case remaining < 0 || remaining == 1:
		outcome = models.OutcomeBust
	case remaining == 0 && m.cfg.CheckoutRule == models.DoubleOut && !turn.LastThrowIsDouble:
		outcome = models.OutcomeInvalidCheckout
	case remaining == 0:
		outcome = models.OutcomeWin
	}

	if outcome.IsBust() {
		remaining = before
	}
	p.RemainingScore = remaining

	throws := make([]string, len(turn.Throws))
	for i, t := range turn.Throws {
		throws[i] = t.Notation()
	}
	p.TurnHistory = append(p.TurnHistory, models.TurnRecord{
		Throws:            throws,
		Total:             turn.Total,
		DartsUsed:         turn.DartsUsed,
		LastThrowIsDouble: turn.LastThrowIsDouble,
		ScoreBefore:       before,
		ScoreAfter:        remaining,
		Outcome:           outcome,
		Leg:               m.leg,
		Set:               m.set,
	})
	p.LastTurnThrows = append([]string(nil), throws...)
	p.DartsThrownTotal += turn.DartsUsed

	profile.TotalTurns++
	profile.DartsThrown += turn.DartsUsed
	if outcome.IsBust() {
		profile.NumBusts++
	} else {
		profile.TotalScore += turn.Total
		if turn.Total > profile.HighestScore {
			profile.HighestScore = turn.Total
		}
	}

	if checkout.IsFinishable(before) {
		cp.attemptID = m.logCheckoutAttempt(p.Name, before, throws, outcome, turn.LastThrowIsDouble)
	}

	result := TurnResult{
		Player:      p.Name,
		Outcome:     outcome,
		Total:       turn.Total,
		DartsUsed:   turn.DartsUsed,
		ScoreBefore: before,
		NewScore:    remaining,
	}

	m.dartsInVisit += turn.DartsUsed
	if outcome == models.OutcomeWin {
		m.winLeg(idx, &result)
		if before > profile.HighestCheckout {
			profile.HighestCheckout = before
		}
	}

	if m.dartsInVisit >= notation.MaxDarts || outcome.IsBust() || outcome == models.OutcomeWin {
		// After a won leg this is also the player who starts the next one
		m.current = (idx + 1) % len(m.players)
		m.dartsInVisit = 0
		result.Advanced = true
	}

	m.undo = cp
	m.input = nil

	if result.MatchWon {
		for i := range m.profiles {
			m.recordProfile(i)
		}
	} else {
		m.recordProfile(idx)
	}

	log.Printf("%s threw %v (%d) from %d: %s", p.Name, throws, turn.Total, before, outcome)
	return result
}

// winLeg runs the leg, set and match cascade for the player at idx
func (m *Match) winLeg(idx int, result *TurnResult) {
	p := &m.players[idx]
	profile := &m.profiles[idx]

	p.LegsWon++
	profile.LegsWon++
	result.LegWon = true
	m.phase = LegComplete

	if p.LegsWon < m.cfg.LegsNeeded() {
		log.Printf("%s wins leg %d of set %d", p.Name, m.leg, m.set)
		return
	}

	p.SetsWon++
	profile.SetsWon++
	result.SetWon = true
	m.phase = SetComplete

	if p.SetsWon < m.cfg.SetsNeeded() {
		log.Printf("%s wins set %d", p.Name, m.set)
		return
	}

	result.MatchWon = true
	m.phase = MatchComplete
	m.winner = idx
	for i := range m.profiles {
		m.profiles[i].GamesPlayed++
	}
	profile.GamesWon++
	log.Printf("%s wins the match with %d sets", p.Name, p.SetsWon)
}

// startNextLeg resets scores for the next leg. Undo cannot reach back across it.
func (m *Match) startNextLeg() {
	if m.phase == SetComplete {
		m.set++
		m.leg = 1
		for i := range m.players {
			m.players[i].LegsWon = 0
		}
	} else {
		m.leg++
	}
	for i := range m.players {
		m.players[i].RemainingScore = m.cfg.StartingScore
	}
	m.phase = AwaitingThrow
	m.dartsInVisit = 0
	m.undo = nil
	m.input = nil
	log.Printf("Starting leg %d of set %d, %s to throw first", m.leg, m.set, m.players[m.current].Name)
}

func (m *Match) logCheckoutAttempt(player string, before int, throws []string, outcome models.TurnOutcome, isDouble bool) uuid.UUID {
	attempt := models.CheckoutAttempt{
		ID:          uuid.New(),
		MatchID:     m.id,
		Player:      player,
		ScoreBefore: before,
		Throws:      append([]string(nil), throws...),
		Result:      outcome,
		IsDouble:    isDouble,
		Leg:         m.leg,
		Set:         m.set,
		At:          m.now(),
	}
	if err := m.recorder.RecordCheckoutAttempt(attempt); err != nil {
		log.Printf("Error recording checkout attempt for %s: %v", player, err)
		return uuid.Nil
	}
	return attempt.ID
}
