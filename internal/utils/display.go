// Package utils provides display and export helpers for the darts-scorer
package utils

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/myusername/darts-scorer/pkg/checkout"
	"github.com/myusername/darts-scorer/pkg/game"
	"github.com/myusername/darts-scorer/pkg/models"
)

// DisplayScoreboard prints the remaining scores, who is at the line and the checkout suggestions
func DisplayScoreboard(w io.Writer, snap game.MatchSnapshot, suggestions []checkout.Path) {
	fmt.Fprintf(w, "\n=========== SET %d LEG %d (%d %s) ===========\n",
		snap.CurrentSet, snap.CurrentLeg, snap.Config.StartingScore, snap.Config.CheckoutRule)
	fmt.Fprintf(w, "  %-20s | %-5s | %-4s | %-4s | %-5s | %-14s\n",
		"Player", "Score", "Legs", "Sets", "Darts", "Last")
	fmt.Fprintf(w, "  %-20s | %-5s | %-4s | %-4s | %-5s | %-14s\n",
		strings.Repeat("-", 20), strings.Repeat("-", 5), strings.Repeat("-", 4),
		strings.Repeat("-", 4), strings.Repeat("-", 5), strings.Repeat("-", 14))

	for i, p := range snap.Players {
		marker := " "
		if i == snap.CurrentPlayer && !snap.MatchOver {
			marker = ">"
		}
		fmt.Fprintf(w, "%s %-20s | %5d | %4d | %4d | %5d | %-14s\n",
			marker, p.Name, p.RemainingScore, p.LegsWon, p.SetsWon, p.DartsThrownTotal,
			strings.Join(p.LastTurnThrows, " "))
	}

	switch {
	case snap.MatchOver:
		fmt.Fprintf(w, "\n%s wins the match!\n", snap.Winner)
	case snap.Phase != game.AwaitingThrow:
		fmt.Fprintf(w, "\n%s complete. %s throws first in the next leg.\n", phaseLabel(snap.Phase), snap.CurrentName)
	default:
		score := snap.Players[snap.CurrentPlayer].RemainingScore
		fmt.Fprintf(w, "\n%s to throw, %d darts left. %s\n", snap.CurrentName, snap.DartsLeft, checkout.ProgressMessage(score))
	}

	if len(snap.InputBuffer) > 0 {
		fmt.Fprintf(w, "Undone turn: %s\n", strings.Join(snap.InputBuffer, " "))
	}
	if len(suggestions) > 0 {
		fmt.Fprintln(w, "Checkouts:")
		for _, s := range suggestions {
			fmt.Fprintf(w, "  %s\n", s)
		}
	}
	fmt.Fprintln(w, strings.Repeat("=", 64))
}

func phaseLabel(phase game.Phase) string {
	if phase == game.SetComplete {
		return "Set"
	}
	return "Leg"
}

// DisplayTurnHistory prints every turn a player has thrown in this match
func DisplayTurnHistory(w io.Writer, player models.PlayerMatchState) {
	fmt.Fprintf(w, "\nTurn history for %s\n", player.Name)
	if len(player.TurnHistory) == 0 {
		fmt.Fprintln(w, "  no turns yet")
		return
	}
	for i, t := range player.TurnHistory {
		fmt.Fprintf(w, "  %3d. S%d L%d  %-14s %3d  %3d -> %3d  %s\n",
			i+1, t.Set, t.Leg, strings.Join(t.Throws, " "), t.Total, t.ScoreBefore, t.ScoreAfter, t.Outcome)
	}
}

// DisplayProfiles prints the cross-match statistics, one line per player
func DisplayProfiles(w io.Writer, profiles []models.PlayerProfile) {
	fmt.Fprintf(w, "\n%-20s | %-6s | %-5s | %-5s | %-5s | %-6s | %-6s | %-5s\n",
		"Player", "3DA", "Games", "Wins", "Legs", "HighSc", "HighCO", "Busts")
	fmt.Fprintf(w, "%-20s | %-6s | %-5s | %-5s | %-5s | %-6s | %-6s | %-5s\n",
		strings.Repeat("-", 20), strings.Repeat("-", 6), strings.Repeat("-", 5),
		strings.Repeat("-", 5), strings.Repeat("-", 5), strings.Repeat("-", 6),
		strings.Repeat("-", 6), strings.Repeat("-", 5))
	for _, p := range profiles {
		fmt.Fprintf(w, "%-20s | %6.2f | %5d | %5d | %5d | %6d | %6d | %5d\n",
			p.Name, p.ThreeDartAverage(), p.GamesPlayed, p.GamesWon, p.LegsWon,
			p.HighestScore, p.HighestCheckout, p.NumBusts)
	}
}

// SaveProfilesToCSV saves the player profiles to a CSV file
func SaveProfilesToCSV(profiles []models.PlayerProfile, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	_, err = fmt.Fprintf(f, "Player,ThreeDartAverage,TotalScore,TotalTurns,DartsThrown,HighestScore,HighestCheckout,NumBusts,LegsWon,SetsWon,GamesPlayed,GamesWon\n")
	if err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, p := range profiles {
		_, err = fmt.Fprintf(f, "%s,%.2f,%d,%d,%d,%d,%d,%d,%d,%d,%d,%d\n",
			p.Name, p.ThreeDartAverage(), p.TotalScore, p.TotalTurns, p.DartsThrown,
			p.HighestScore, p.HighestCheckout, p.NumBusts, p.LegsWon, p.SetsWon,
			p.GamesPlayed, p.GamesWon)
		if err != nil {
			return fmt.Errorf("failed to write player data: %w", err)
		}
	}

	return nil
}
