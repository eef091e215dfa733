// Package models contains the data structures shared by the darts scoring packages
package models

import (
	"fmt"
	"strings"

	"github.com/myusername/darts-scorer/pkg/notation"
)

// CheckoutRule decides whether a leg must finish on a double
type CheckoutRule int

const (
	DoubleOut CheckoutRule = iota
	StraightOut
)

// String returns the configuration spelling of the rule
func (r CheckoutRule) String() string {
	switch r {
	case DoubleOut:
		return "double-out"
	case StraightOut:
		return "straight-out"
	default:
		return fmt.Sprintf("CheckoutRule(%d)", int(r))
	}
}

// ParseCheckoutRule accepts "double-out" or "straight-out" in any case
func ParseCheckoutRule(s string) (CheckoutRule, error) {
	switch normalizeRuleName(s) {
	case "doubleout", "double":
		return DoubleOut, nil
	case "straightout", "straight", "single", "singleout":
		return StraightOut, nil
	default:
		return DoubleOut, &ConfigurationError{Field: "checkoutRule", Reason: fmt.Sprintf("unknown checkout rule %q", s)}
	}
}

// TieRule decides how many legs (or sets) are needed to win
type TieRule int

const (
	FirstTo TieRule = iota
	BestOf
)

// String returns the configuration spelling of the rule
func (r TieRule) String() string {
	switch r {
	case FirstTo:
		return "first-to"
	case BestOf:
		return "best-of"
	default:
		return fmt.Sprintf("TieRule(%d)", int(r))
	}
}

// ParseTieRule accepts "first-to" or "best-of" in any case
func ParseTieRule(s string) (TieRule, error) {
	switch normalizeRuleName(s) {
	case "firstto", "first":
		return FirstTo, nil
	case "bestof", "best":
		return BestOf, nil
	default:
		return FirstTo, &ConfigurationError{Field: "setLegTieRule", Reason: fmt.Sprintf("unknown tie rule %q", s)}
	}
}

// Needed returns how many wins out of n decide the contest
func (r TieRule) Needed(n int) int {
	if r == BestOf {
		return (n + 2) / 2
	}
	return n
}

func normalizeRuleName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(s)
}

// SupportedStartingScores lists the X01 variants a match can be played at
var SupportedStartingScores = []int{101, 201, 301, 401, 501}

// ConfigurationError rejects a match configuration before any state exists
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid match configuration: %s: %s", e.Field, e.Reason)
}

// MatchConfiguration is fixed for the duration of a match
type MatchConfiguration struct {
	StartingScore   int
	CheckoutRule    CheckoutRule
	SetsToWin       int
	LegsToWinPerSet int
	SetLegTieRule   TieRule
	Participants    []string
	// PreferredDoubles maps a participant to the doubles they like to finish on
	PreferredDoubles map[string][]string
}

// DefaultConfiguration returns a single set, single leg 501 double-out match
func DefaultConfiguration(participants ...string) MatchConfiguration {
	return MatchConfiguration{
		StartingScore:   501,
		CheckoutRule:    DoubleOut,
		SetsToWin:       1,
		LegsToWinPerSet: 1,
		SetLegTieRule:   FirstTo,
		Participants:    participants,
	}
}

// Validate checks the configuration and returns a *ConfigurationError for the first problem
func (c MatchConfiguration) Validate() error {
	supported := false
	for _, s := range SupportedStartingScores {
		if c.StartingScore == s {
			supported = true
			break
		}
	}
	if !supported {
		return &ConfigurationError{Field: "startingScore", Reason: fmt.Sprintf("%d is not one of %v", c.StartingScore, SupportedStartingScores)}
	}

	if c.CheckoutRule != DoubleOut && c.CheckoutRule != StraightOut {
		return &ConfigurationError{Field: "checkoutRule", Reason: c.CheckoutRule.String()}
	}
	if c.SetLegTieRule != FirstTo && c.SetLegTieRule != BestOf {
		return &ConfigurationError{Field: "setLegTieRule", Reason: c.SetLegTieRule.String()}
	}
	if c.SetsToWin < 1 {
		return &ConfigurationError{Field: "setsToWin", Reason: "must be at least 1"}
	}
	if c.LegsToWinPerSet < 1 {
		return &ConfigurationError{Field: "legsToWinPerSet", Reason: "must be at least 1"}
	}

	if len(c.Participants) == 0 {
		return &ConfigurationError{Field: "participants", Reason: "at least one player is required"}
	}
	seen := make(map[string]bool, len(c.Participants))
	for _, name := range c.Participants {
		if strings.TrimSpace(name) == "" {
			return &ConfigurationError{Field: "participants", Reason: "player names must not be blank"}
		}
		if seen[name] {
			return &ConfigurationError{Field: "participants", Reason: fmt.Sprintf("duplicate player %q", name)}
		}
		seen[name] = true
	}

	for name, doubles := range c.PreferredDoubles {
		if !seen[name] {
			return &ConfigurationError{Field: "preferredDoubles", Reason: fmt.Sprintf("%q is not a participant", name)}
		}
		for _, token := range doubles {
			t, ok := notation.Parse(token)
			if !ok || !t.IsDouble() {
				return &ConfigurationError{Field: "preferredDoubles", Reason: fmt.Sprintf("%q is not a double", token)}
			}
		}
	}
	return nil
}

// LegsNeeded returns the legs a player must win to take a set
func (c MatchConfiguration) LegsNeeded() int {
	return c.SetLegTieRule.Needed(c.LegsToWinPerSet)
}

// SetsNeeded returns the sets a player must win to take the match
func (c MatchConfiguration) SetsNeeded() int {
	return c.SetLegTieRule.Needed(c.SetsToWin)
}

// Clone returns a deep copy so the caller's slices and maps cannot change a running match
func (c MatchConfiguration) Clone() MatchConfiguration {
	out := c
	out.Participants = append([]string(nil), c.Participants...)
	if c.PreferredDoubles != nil {
		out.PreferredDoubles = make(map[string][]string, len(c.PreferredDoubles))
		for name, doubles := range c.PreferredDoubles {
			out.PreferredDoubles[name] = append([]string(nil), doubles...)
		}
	}
	return out
}
