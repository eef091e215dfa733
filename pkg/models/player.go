package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TurnOutcome is the result of one submitted turn
type TurnOutcome int

const (
	OutcomeOK TurnOutcome = iota
	OutcomeBust
	OutcomeInvalidCheckout
	OutcomeWin
)

// String returns the label shown in turn histories
func (o TurnOutcome) String() string {
	switch o {
	case OutcomeOK:
		return "OK"
	case OutcomeBust:
		return "BUST"
	case OutcomeInvalidCheckout:
		return "BUST (Invalid Checkout)"
	case OutcomeWin:
		return "WIN"
	default:
		return fmt.Sprintf("TurnOutcome(%d)", int(o))
	}
}

// MarshalText writes the history label
func (o TurnOutcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText reads a history label back
func (o *TurnOutcome) UnmarshalText(text []byte) error {
	for _, candidate := range []TurnOutcome{OutcomeOK, OutcomeBust, OutcomeInvalidCheckout, OutcomeWin} {
		if candidate.String() == string(text) {
			*o = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown turn outcome %q", text)
}

// IsBust reports whether the turn's score was voided
func (o TurnOutcome) IsBust() bool {
	return o == OutcomeBust || o == OutcomeInvalidCheckout
}

// TurnRecord is one entry in a player's turn history
type TurnRecord struct {
	Throws            []string
	Total             int
	DartsUsed         int
	LastThrowIsDouble bool
	ScoreBefore       int
	ScoreAfter        int
	Outcome           TurnOutcome
	Leg               int
	Set               int
}

// PlayerMatchState holds a participant's progress in the current match
type PlayerMatchState struct {
	Name             string
	RemainingScore   int
	LegsWon          int
	SetsWon          int
	DartsThrownTotal int
	TurnHistory      []TurnRecord
	LastTurnThrows   []string
}

// Clone returns a deep copy of the player state
func (p PlayerMatchState) Clone() PlayerMatchState {
	out := p
	out.LastTurnThrows = append([]string(nil), p.LastTurnThrows...)
	out.TurnHistory = make([]TurnRecord, len(p.TurnHistory))
	for i, rec := range p.TurnHistory {
		rec.Throws = append([]string(nil), rec.Throws...)
		out.TurnHistory[i] = rec
	}
	return out
}

// PlayerProfile holds a player's counters across every match they played
type PlayerProfile struct {
	Name            string `json:"name"`
	TotalScore      int    `json:"total_score"`
	TotalTurns      int    `json:"total_turns"`
	DartsThrown     int    `json:"darts_thrown"`
	HighestScore    int    `json:"highest_score"`
	HighestCheckout int    `json:"highest_checkout"`
	NumBusts        int    `json:"num_busts"`
	LegsWon         int    `json:"legs_won"`
	SetsWon         int    `json:"sets_won"`
	GamesPlayed     int    `json:"games_played"`
	GamesWon        int    `json:"games_won"`
}

// NewPlayerProfile returns an empty profile for name
func NewPlayerProfile(name string) PlayerProfile {
	return PlayerProfile{Name: name}
}

// Normalize clamps counters that a hand-edited stats file may have left negative
// and makes sure games won never exceeds games played.
func (p *PlayerProfile) Normalize() {
	for _, v := range []*int{
		&p.TotalScore, &p.TotalTurns, &p.DartsThrown, &p.HighestScore, &p.HighestCheckout,
		&p.NumBusts, &p.LegsWon, &p.SetsWon, &p.GamesPlayed, &p.GamesWon,
	} {
		if *v < 0 {
			*v = 0
		}
	}
	if p.GamesWon > p.GamesPlayed {
		p.GamesPlayed = p.GamesWon
	}
}

// ThreeDartAverage returns points scored per three darts
func (p PlayerProfile) ThreeDartAverage() float64 {
	if p.DartsThrown == 0 {
		return 0
	}
	return float64(p.TotalScore) * 3 / float64(p.DartsThrown)
}

// CheckoutAttempt logs a turn taken from a finishable score
type CheckoutAttempt struct {
	ID          uuid.UUID   `json:"id"`
	MatchID     uuid.UUID   `json:"match_id"`
	Player      string      `json:"player"`
	ScoreBefore int         `json:"score_before"`
	Throws      []string    `json:"throws"`
	Result      TurnOutcome `json:"result"`
	IsDouble    bool        `json:"is_double"`
	Leg         int         `json:"leg"`
	Set         int         `json:"set"`
	At          time.Time   `json:"at"`
}
