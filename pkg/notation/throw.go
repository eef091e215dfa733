// Package notation parses dart throw tokens ("T20", "D25", "7", "0") and sums them into turns
package notation

import (
	"fmt"
	"strconv"
	"strings"
)

// Ring is the scoring ring a dart landed in
type Ring int

const (
	Miss Ring = iota
	Single
	Double
	Triple
)

// Bull is the segment number used for the bullseye rings
const Bull = 25

// String returns the ring name
func (r Ring) String() string {
	switch r {
	case Miss:
		return "Miss"
	case Single:
		return "Single"
	case Double:
		return "Double"
	case Triple:
		return "Triple"
	default:
		return fmt.Sprintf("Ring(%d)", int(r))
	}
}

// Multiplier returns how many times the segment counts for this ring
func (r Ring) Multiplier() int {
	switch r {
	case Single:
		return 1
	case Double:
		return 2
	case Triple:
		return 3
	default:
		return 0
	}
}

// Throw holds the result of a single dart
type Throw struct {
	Ring    Ring
	Segment int
}

// Value returns the points scored by the throw
func (t Throw) Value() int {
	return t.Segment * t.Ring.Multiplier()
}

// IsDouble reports whether the throw landed in a double ring (including the bullseye)
func (t Throw) IsDouble() bool {
	return t.Ring == Double
}

// Notation returns the canonical token for the throw
func (t Throw) Notation() string {
	switch t.Ring {
	case Single:
		return strconv.Itoa(t.Segment)
	case Double:
		return "D" + strconv.Itoa(t.Segment)
	case Triple:
		return "T" + strconv.Itoa(t.Segment)
	default:
		return "0"
	}
}

// String implements fmt.Stringer
func (t Throw) String() string {
	return t.Notation()
}

// Parse interprets a throw token. The second return value is false for anything
// that is not a legal dart: unknown prefixes, non-digit suffixes, segments outside
// 1-20 (25 only for singles and doubles), and the bare "50" which must be written "D25".
func Parse(token string) (Throw, bool) {
	token = strings.ToUpper(strings.TrimSpace(token))
	if token == "" {
		return Throw{}, false
	}

	ring := Single
	digits := token
	switch token[0] {
	case 'T':
		ring = Triple
		digits = token[1:]
	case 'D':
		ring = Double
		digits = token[1:]
	}

	segment, ok := parseSegment(digits)
	if !ok {
		return Throw{}, false
	}

	switch {
	case segment == 0:
		// Only the bare "0" is a miss; "D0" and "T0" are not darts
		if ring != Single {
			return Throw{}, false
		}
		return Throw{Ring: Miss}, true
	case segment >= 1 && segment <= 20:
		return Throw{Ring: ring, Segment: segment}, true
	case segment == Bull && ring != Triple:
		return Throw{Ring: ring, Segment: Bull}, true
	default:
		return Throw{}, false
	}
}

// ParseValue is Parse flattened into value, ring and validity
func ParseValue(token string) (int, Ring, bool) {
	t, ok := Parse(token)
	if !ok {
		return 0, Miss, false
	}
	return t.Value(), t.Ring, true
}

// MustParse is like Parse but panics on an illegal token. Intended for constant tables.
func MustParse(token string) Throw {
	t, ok := Parse(token)
	if !ok {
		panic(fmt.Sprintf("notation: illegal throw %q", token))
	}
	return t
}

// parseSegment accepts one or two ASCII digits
func parseSegment(s string) (int, bool) {
	if len(s) == 0 || len(s) > 2 {
		return 0, false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
