// Package game implements the X01 turn, leg and set state machine
package game

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/myusername/darts-scorer/pkg/chart"
	"github.com/myusername/darts-scorer/pkg/checkout"
	"github.com/myusername/darts-scorer/pkg/models"
	"github.com/myusername/darts-scorer/pkg/stats"
)

var (
	// ErrMatchOver rejects play after the match has a winner
	ErrMatchOver = errors.New("match is over")
	// ErrNotPlayersTurn rejects darts submitted for someone not at the line
	ErrNotPlayersTurn = errors.New("not this player's turn")
	// ErrUndoUnavailable is returned when there is no turn to take back
	ErrUndoUnavailable = errors.New("nothing to undo")
	// ErrTooManyDarts rejects a submission longer than what is left of the visit
	ErrTooManyDarts = errors.New("more darts than are left in the visit")
	// ErrEmptyTurn rejects a submission with no darts
	ErrEmptyTurn = errors.New("a turn needs at least one dart")
	// ErrLegInProgress is returned by NextLeg while the current leg is undecided
	ErrLegInProgress = errors.New("leg is still in progress")
)

// Phase is where the match is in its leg/set cycle
type Phase int

const (
	AwaitingThrow Phase = iota
	LegComplete
	SetComplete
	MatchComplete
)

func (p Phase) String() string {
	switch p {
	case AwaitingThrow:
		return "AwaitingThrow"
	case LegComplete:
		return "LegComplete"
	case SetComplete:
		return "SetComplete"
	case MatchComplete:
		return "MatchComplete"
	default:
		return "Unknown"
	}
}

// Options wires a match to its collaborators. Every field is optional.
type Options struct {
	// Recorder receives profile counters and checkout attempts. Defaults to an in-memory store.
	Recorder stats.Recorder
	// Profiles seeds the cross-match counters of each participant
	Profiles map[string]models.PlayerProfile
	// Chart routes are suggested ahead of computed checkouts
	Chart *chart.Chart
	// Finder defaults to a fresh checkout.Finder
	Finder *checkout.Finder
	// Now defaults to time.Now
	Now func() time.Time
}

// Match owns the state of one game. All methods are safe for concurrent use;
// separate matches share nothing.
type Match struct {
	mu sync.Mutex

	id  uuid.UUID
	cfg models.MatchConfiguration

	players   []models.PlayerMatchState
	profiles  []models.PlayerProfile
	preferred []map[string]bool

	current      int
	dartsInVisit int
	leg          int
	set          int
	phase        Phase
	winner       int

	undo  *checkpoint
	input []string

	recorder stats.Recorder
	chart    *chart.Chart
	finder   *checkout.Finder
	now      func() time.Time
}

// NewMatch validates cfg and sets up leg 1 of set 1 with the first participant to throw
func NewMatch(cfg models.MatchConfiguration, opts Options) (*Match, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.Clone()

	m := &Match{
		cfg:      cfg,
		recorder: opts.Recorder,
		chart:    opts.Chart,
		finder:   opts.Finder,
		now:      opts.Now,
	}
	if m.recorder == nil {
		m.recorder = stats.NewMemoryStore()
	}
	if m.finder == nil {
		m.finder = checkout.NewFinder()
	}
	if m.now == nil {
		m.now = time.Now
	}

	m.profiles = make([]models.PlayerProfile, len(cfg.Participants))
	m.preferred = make([]map[string]bool, len(cfg.Participants))
	for i, name := range cfg.Participants {
		profile, ok := opts.Profiles[name]
		if !ok {
			profile = models.NewPlayerProfile(name)
		}
		profile.Name = name
		m.profiles[i] = profile

		m.preferred[i] = checkout.PreferenceSet(cfg.PreferredDoubles[name])
		if len(m.preferred[i]) == 0 {
			m.preferred[i] = checkout.DefaultPreferredDoubles()
		}
	}

	m.start()
	log.Printf("Match %s started: %d players, %d %s, %s %d sets of %d legs",
		m.id, len(cfg.Participants), cfg.StartingScore, cfg.CheckoutRule, cfg.SetLegTieRule, cfg.SetsToWin, cfg.LegsToWinPerSet)
	return m, nil
}

// start puts every participant back at the starting score of leg 1, set 1
func (m *Match) start() {
	m.id = uuid.New()
	m.players = make([]models.PlayerMatchState, len(m.cfg.Participants))
	for i, name := range m.cfg.Participants {
		m.players[i] = models.PlayerMatchState{
			Name:           name,
			RemainingScore: m.cfg.StartingScore,
		}
	}
	m.current = 0
	m.dartsInVisit = 0
	m.leg = 1
	m.set = 1
	m.phase = AwaitingThrow
	m.winner = -1
	m.undo = nil
	m.input = nil
}

// Reset restarts the match with the same configuration. Cross-match profiles keep
// whatever was already recorded.
func (m *Match) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.start()
	log.Printf("Match reset, new match id %s", m.id)
}

// ID identifies the match in checkout attempt logs
func (m *Match) ID() uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.id
}

// Config returns a copy of the match configuration
func (m *Match) Config() models.MatchConfiguration {
	return m.cfg.Clone()
}

// InputBuffer returns the tokens of the last undone turn, waiting to be corrected
func (m *Match) InputBuffer() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.input...)
}

// Profiles returns the current cross-match counters of every participant, in seat order
func (m *Match) Profiles() []models.PlayerProfile {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.PlayerProfile(nil), m.profiles...)
}

// MatchSnapshot is a read-only copy of the match for display
type MatchSnapshot struct {
	ID            uuid.UUID
	Config        models.MatchConfiguration
	Players       []models.PlayerMatchState
	CurrentPlayer int
	CurrentName   string
	CurrentLeg    int
	CurrentSet    int
	DartsLeft     int
	Phase         Phase
	MatchOver     bool
	Winner        string
	CanUndo       bool
	InputBuffer   []string
}

// Snapshot copies the match state
func (m *Match) Snapshot() MatchSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := MatchSnapshot{
		ID:            m.id,
		Config:        m.cfg.Clone(),
		Players:       make([]models.PlayerMatchState, len(m.players)),
		CurrentPlayer: m.current,
		CurrentName:   m.players[m.current].Name,
		CurrentLeg:    m.leg,
		CurrentSet:    m.set,
		DartsLeft:     m.dartsLeft(),
		Phase:         m.phase,
		MatchOver:     m.phase == MatchComplete,
		CanUndo:       m.undo != nil,
		InputBuffer:   append([]string(nil), m.input...),
	}
	for i, p := range m.players {
		snap.Players[i] = p.Clone()
	}
	if m.winner >= 0 {
		snap.Winner = m.players[m.winner].Name
	}
	return snap
}

// Player returns a copy of one participant's state
func (m *Match) Player(name string) (models.PlayerMatchState, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.players {
		if p.Name == name {
			return p.Clone(), true
		}
	}
	return models.PlayerMatchState{}, false
}

// dartsLeft is what the player at the line may still throw in this visit
func (m *Match) dartsLeft() int {
	if m.phase != AwaitingThrow {
		if m.phase == MatchComplete {
			return 0
		}
		return 3
	}
	return 3 - m.dartsInVisit
}

func (m *Match) recordProfile(i int) {
	if err := m.recorder.RecordProfile(m.profiles[i]); err != nil {
		log.Printf("Error recording profile for %s: %v", m.profiles[i].Name, err)
	}
}
