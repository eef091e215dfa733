package game

import (
	"log"

	"github.com/google/uuid"

	"github.com/myusername/darts-scorer/pkg/models"
)

// checkpoint holds what is needed to reverse the most recent turn
type checkpoint struct {
	playerIndex       int
	scoreBefore       int
	dartsThrownBefore int
	legsWonBefore     int
	setsWonBefore     int
	historyLen        int
	lastThrowsBefore  []string
	rawTokens         []string

	dartsInVisit int
	phase        Phase
	winner       int
	profiles     []models.PlayerProfile
	attemptID    uuid.UUID
}

func (m *Match) newCheckpoint(tokens []string) *checkpoint {
	p := m.players[m.current]
	return &checkpoint{
		playerIndex:       m.current,
		scoreBefore:       p.RemainingScore,
		dartsThrownBefore: p.DartsThrownTotal,
		legsWonBefore:     p.LegsWon,
		setsWonBefore:     p.SetsWon,
		historyLen:        len(p.TurnHistory),
		lastThrowsBefore:  append([]string(nil), p.LastTurnThrows...),
		rawTokens:         append([]string(nil), tokens...),
		dartsInVisit:      m.dartsInVisit,
		phase:             m.phase,
		winner:            m.winner,
		profiles:          append([]models.PlayerProfile(nil), m.profiles...),
	}
}

// CanUndo reports whether a turn can be taken back
func (m *Match) CanUndo() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.undo != nil
}

// Undo takes back the most recent turn and puts its tokens in the input buffer.
// Only one turn can be undone, and never once the next leg has started.
func (m *Match) Undo() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := m.undo
	if cp == nil {
		return ErrUndoUnavailable
	}
	m.undo = nil

	p := &m.players[cp.playerIndex]
	p.RemainingScore = cp.scoreBefore
	p.DartsThrownTotal = cp.dartsThrownBefore
	p.LegsWon = cp.legsWonBefore
	p.SetsWon = cp.setsWonBefore
	p.LastTurnThrows = cp.lastThrowsBefore
	if cp.historyLen == 0 {
		p.TurnHistory = nil
	} else {
		p.TurnHistory = p.TurnHistory[:cp.historyLen]
	}

	m.current = cp.playerIndex
	m.dartsInVisit = cp.dartsInVisit
	m.phase = cp.phase
	m.winner = cp.winner

	for i, before := range cp.profiles {
		if m.profiles[i] != before {
			m.profiles[i] = before
			m.recordProfile(i)
		}
	}
	if cp.attemptID != uuid.Nil {
		if err := m.recorder.RetractCheckoutAttempt(cp.attemptID); err != nil {
			log.Printf("Error retracting checkout attempt %s: %v", cp.attemptID, err)
		}
	}

	m.input = cp.rawTokens
	log.Printf("Undid turn %v by %s, score back to %d", cp.rawTokens, p.Name, p.RemainingScore)
	return nil
}
