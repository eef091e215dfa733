package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAcceptsDefault(t *testing.T) {
	assert.NoError(t, DefaultConfiguration("Alice", "Bob").Validate())
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]func(*MatchConfiguration){
		"startingScore":    func(c *MatchConfiguration) { c.StartingScore = 500 },
		"participants":     func(c *MatchConfiguration) { c.Participants = nil },
		"setsToWin":        func(c *MatchConfiguration) { c.SetsToWin = 0 },
		"legsToWinPerSet":  func(c *MatchConfiguration) { c.LegsToWinPerSet = -1 },
		"checkoutRule":     func(c *MatchConfiguration) { c.CheckoutRule = CheckoutRule(9) },
		"setLegTieRule":    func(c *MatchConfiguration) { c.SetLegTieRule = TieRule(9) },
		"preferredDoubles": func(c *MatchConfiguration) { c.PreferredDoubles = map[string][]string{"Alice": {"T20"}} },
	}
	for field, mutate := range cases {
		cfg := DefaultConfiguration("Alice", "Bob")
		mutate(&cfg)
		err := cfg.Validate()
		var cfgErr *ConfigurationError
		if assert.True(t, errors.As(err, &cfgErr), field) {
			assert.Equal(t, field, cfgErr.Field)
		}
	}

	cfg := DefaultConfiguration("Alice", "Alice")
	assert.ErrorContains(t, cfg.Validate(), "duplicate")
	cfg = DefaultConfiguration("Alice", " ")
	assert.ErrorContains(t, cfg.Validate(), "blank")
	cfg = DefaultConfiguration("Alice")
	cfg.PreferredDoubles = map[string][]string{"Carol": {"D20"}}
	assert.ErrorContains(t, cfg.Validate(), "not a participant")
}

func TestLegsAndSetsNeeded(t *testing.T) {
	cfg := DefaultConfiguration("Alice")
	cfg.LegsToWinPerSet = 5
	cfg.SetsToWin = 3
	assert.Equal(t, 5, cfg.LegsNeeded())
	assert.Equal(t, 3, cfg.SetsNeeded())

	cfg.SetLegTieRule = BestOf
	assert.Equal(t, 3, cfg.LegsNeeded())
	assert.Equal(t, 2, cfg.SetsNeeded())

	assert.Equal(t, 1, BestOf.Needed(1))
	assert.Equal(t, 3, BestOf.Needed(4))
}

func TestParseRules(t *testing.T) {
	rule, err := ParseCheckoutRule("Straight-Out")
	require.NoError(t, err)
	assert.Equal(t, StraightOut, rule)
	rule, err = ParseCheckoutRule("double_out")
	require.NoError(t, err)
	assert.Equal(t, DoubleOut, rule)
	_, err = ParseCheckoutRule("master-out")
	assert.Error(t, err)

	tie, err := ParseTieRule("best of")
	require.NoError(t, err)
	assert.Equal(t, BestOf, tie)
	_, err = ParseTieRule("sudden death")
	assert.Error(t, err)

	assert.Equal(t, "double-out", DoubleOut.String())
	assert.Equal(t, "first-to", FirstTo.String())
}

func TestCloneIsDeep(t *testing.T) {
	cfg := DefaultConfiguration("Alice", "Bob")
	cfg.PreferredDoubles = map[string][]string{"Alice": {"D16"}}
	clone := cfg.Clone()
	cfg.Participants[0] = "Mallory"
	cfg.PreferredDoubles["Alice"][0] = "D1"
	assert.Equal(t, "Alice", clone.Participants[0])
	assert.Equal(t, "D16", clone.PreferredDoubles["Alice"][0])

	player := PlayerMatchState{Name: "Alice", TurnHistory: []TurnRecord{{Throws: []string{"T20"}}}}
	copied := player.Clone()
	player.TurnHistory[0].Throws[0] = "0"
	assert.Equal(t, "T20", copied.TurnHistory[0].Throws[0])
}

func TestTurnOutcomeText(t *testing.T) {
	assert.Equal(t, "BUST (Invalid Checkout)", OutcomeInvalidCheckout.String())
	assert.True(t, OutcomeInvalidCheckout.IsBust())
	assert.False(t, OutcomeWin.IsBust())

	data, err := json.Marshal(CheckoutAttempt{Player: "Alice", Result: OutcomeWin})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"result":"WIN"`)

	var back CheckoutAttempt
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, OutcomeWin, back.Result)

	var o TurnOutcome
	assert.Error(t, o.UnmarshalText([]byte("MAYBE")))
}

func TestProfileNormalizeAndAverage(t *testing.T) {
	p := PlayerProfile{Name: "Alice", TotalScore: 300, DartsThrown: 9, GamesWon: 2, GamesPlayed: 1, NumBusts: -3}
	p.Normalize()
	assert.Equal(t, 0, p.NumBusts)
	assert.Equal(t, 2, p.GamesPlayed)
	assert.InDelta(t, 100.0, p.ThreeDartAverage(), 0.001)
	assert.Zero(t, NewPlayerProfile("Bob").ThreeDartAverage())
}
