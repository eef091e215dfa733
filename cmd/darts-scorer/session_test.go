package main

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
	"github.com/myusername/darts-scorer/pkg/stats"
)

func newSession(t *testing.T, out *bytes.Buffer) (*session, *stats.MemoryStore) {
	t.Helper()
	cfg := models.DefaultConfiguration("Alice", "Bob")
	cfg.StartingScore = 101
	store := stats.NewMemoryStore()
	m, err := game.NewMatch(cfg, game.Options{Recorder: store})
	require.NoError(t, err)
	return &session{
		match:    m,
		profiles: func() []models.PlayerProfile { return stats.SortedProfiles(store.Profiles()) },
		out:      out,
		limit:    3,
	}, store
}

func TestSessionPlaysAMatch(t *testing.T) {
	var out bytes.Buffer
	s, store := newSession(t, &out)

	input := strings.Join([]string{
		"T20, 1",
		"D20",
		"stats",
		"quit",
		"T20 T20 T20",
	}, "\n")
	require.NoError(t, s.run(strings.NewReader(input)))

	text := out.String()
	assert.Contains(t, text, "Alice scored 61: OK")
	assert.Contains(t, text, "Alice scored 40: WIN")
	assert.Contains(t, text, "Alice wins the match!")
	assert.Equal(t, 1, store.Profiles()["Alice"].GamesWon)
	assert.Empty(t, s.match.Snapshot().Players[1].TurnHistory, "input after quit is not read")
}

func TestSessionCommands(t *testing.T) {
	var out bytes.Buffer
	s, _ := newSession(t, &out)

	assert.True(t, s.handle("T20 T20 T20"))
	assert.Contains(t, out.String(), "Alice scored 180: BUST")

	assert.True(t, s.handle("undo"))
	assert.Contains(t, out.String(), "Undone turn: T20 T20 T20")

	out.Reset()
	assert.True(t, s.handle("undo"))
	assert.Contains(t, out.String(), "Cannot undo")

	out.Reset()
	assert.True(t, s.handle("X99"))
	assert.Contains(t, out.String(), "Error: turn rejected")

	out.Reset()
	assert.True(t, s.handle("next"))
	assert.Contains(t, out.String(), "Cannot start the next leg")

	out.Reset()
	assert.True(t, s.handle("suggest"))
	assert.Equal(t, 3, strings.Count(out.String(), "\n"))

	out.Reset()
	assert.True(t, s.handle("history"))
	assert.Contains(t, out.String(), "Turn history for Bob")

	assert.True(t, s.handle(""))
	assert.True(t, s.handle("reset"))
	assert.False(t, s.handle("QUIT"))
}

func TestSplitPlayers(t *testing.T) {
	assert.Equal(t, []string{"Alice", "Bob"}, splitPlayers(" Alice, ,Bob "))
	assert.Empty(t, splitPlayers(""))
}

func TestLoadChartFile(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "chart.txt")
	require.NoError(t, os.WriteFile(txt, []byte("170 T20 T20 BULL\n40 D20"), 0644))
	c, err := loadChartFile(txt)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	html := filepath.Join(dir, "chart.html")
	require.NoError(t, os.WriteFile(html, []byte("<table><tr><td>100</td><td>T20 D20</td></tr></table>"), 0644))
	c, err = loadChartFile(html)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())

	_, err = loadChartFile(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}
