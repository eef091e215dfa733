package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myusername/darts-scorer/pkg/game"
	"github.com/myusername/darts-scorer/pkg/models"
)

func newMatch(t *testing.T) *game.Match {
	t.Helper()
	cfg := models.DefaultConfiguration("Alice", "Bob")
	cfg.StartingScore = 101
	m, err := game.NewMatch(cfg, game.Options{})
	require.NoError(t, err)
	return m
}

func TestDisplayScoreboard(t *testing.T) {
	m := newMatch(t)
	_, err := m.SubmitTurn("Alice", []string{"T20", "T20", "1"})
	require.NoError(t, err)
	require.NoError(t, m.Undo())

	var buf bytes.Buffer
	DisplayScoreboard(&buf, m.Snapshot(), m.Suggestions(3))
	out := buf.String()

	assert.Contains(t, out, "SET 1 LEG 1 (101 double-out)")
	assert.Contains(t, out, "> Alice")
	assert.Contains(t, out, "Alice to throw, 3 darts left. Nice! You're closing in.")
	assert.Contains(t, out, "Undone turn: T20 T20 1")
	assert.Contains(t, out, "Checkouts:")
}

func TestDisplayScoreboardMatchOver(t *testing.T) {
	m := newMatch(t)
	_, err := m.SubmitTurn("Alice", []string{"T20", "1", "D20"})
	require.NoError(t, err)

	var buf bytes.Buffer
	DisplayScoreboard(&buf, m.Snapshot(), nil)
	assert.Contains(t, buf.String(), "Alice wins the match!")
	assert.NotContains(t, buf.String(), "Checkouts:")
}

func TestDisplayTurnHistory(t *testing.T) {
	m := newMatch(t)
	_, err := m.SubmitTurn("Alice", []string{"T20", "T20"})
	require.NoError(t, err)
	alice, ok := m.Player("Alice")
	require.True(t, ok)

	var buf bytes.Buffer
	DisplayTurnHistory(&buf, alice)
	assert.Contains(t, buf.String(), "T20 T20")
	assert.Contains(t, buf.String(), "BUST")

	buf.Reset()
	bob, _ := m.Player("Bob")
	DisplayTurnHistory(&buf, bob)
	assert.Contains(t, buf.String(), "no turns yet")
}

func TestDisplayProfiles(t *testing.T) {
	var buf bytes.Buffer
	DisplayProfiles(&buf, []models.PlayerProfile{{Name: "Alice", TotalScore: 300, DartsThrown: 9, GamesPlayed: 2, GamesWon: 1}})
	assert.Contains(t, buf.String(), "Alice")
	assert.Contains(t, buf.String(), "100.00")
}

func TestSaveProfilesToCSV(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "profiles.csv")
	profiles := []models.PlayerProfile{
		{Name: "Alice", TotalScore: 300, TotalTurns: 3, DartsThrown: 9, HighestScore: 140, GamesPlayed: 1, GamesWon: 1},
		{Name: "Bob"},
	}
	require.NoError(t, SaveProfilesToCSV(profiles, dest))

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Player,ThreeDartAverage"))
	assert.Equal(t, "Alice,100.00,300,3,9,140,0,0,0,0,1,1", lines[1])
	assert.Equal(t, "Bob,0.00,0,0,0,0,0,0,0,0,0,0", lines[2])

	assert.Error(t, SaveProfilesToCSV(profiles, filepath.Join(t.TempDir(), "missing", "x.csv")))
}
