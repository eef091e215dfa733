package notation

import "fmt"

// MaxDarts is the number of darts in a full visit to the board
const MaxDarts = 3

// ParseError rejects a whole turn because of one bad token
type ParseError struct {
	Index  int
	Token  string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("turn rejected: %s", e.Reason)
	}
	return fmt.Sprintf("turn rejected: dart %d %q is not a valid throw", e.Index+1, e.Token)
}

// TurnResult is the evaluated sum of up to three darts
type TurnResult struct {
	Throws            []Throw
	Total             int
	DartsUsed         int
	LastThrowIsDouble bool
}

// EvaluateTurn parses every token and sums them. The turn is atomic: one bad
// token rejects all of it. An empty slice is a valid zero-dart turn.
func EvaluateTurn(tokens []string) (TurnResult, error) {
	if len(tokens) > MaxDarts {
		return TurnResult{}, &ParseError{
			Index:  MaxDarts,
			Token:  tokens[MaxDarts],
			Reason: fmt.Sprintf("%d darts submitted, a turn has at most %d", len(tokens), MaxDarts),
		}
	}

	result := TurnResult{Throws: make([]Throw, 0, len(tokens))}
	for i, token := range tokens {
		t, ok := Parse(token)
		if !ok {
			return TurnResult{}, &ParseError{Index: i, Token: token}
		}
		result.Throws = append(result.Throws, t)
		result.Total += t.Value()
	}
	result.DartsUsed = len(result.Throws)
	if result.DartsUsed > 0 {
		result.LastThrowIsDouble = result.Throws[result.DartsUsed-1].IsDouble()
	}
	return result, nil
}

// PartialTotal sums only the valid tokens. It is meant for live display while a
// player is still typing and must never drive game decisions.
func PartialTotal(tokens []string) int {
	total := 0
	for _, token := range tokens {
		if t, ok := Parse(token); ok {
			total += t.Value()
		}
	}
	return total
}
