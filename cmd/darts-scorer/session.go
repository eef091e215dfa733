package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/myusername/darts-scorer/internal/utils"
	"github.com/myusername/darts-scorer/pkg/game"
	"github.com/myusername/darts-scorer/pkg/models"
)

const helpText = `Commands:
  T20 T20 20   score darts for the player at the line (one to three tokens)
  undo         take back the last turn
  next         start the next leg after a leg or set is won
  suggest      list checkouts for the player at the line
  history      show the turn history of every player
  reset        restart the match
  stats        show player statistics
  help         show this text
  quit         leave`

// session drives one match from line-oriented input
type session struct {
	match    *game.Match
	profiles func() []models.PlayerProfile
	out      io.Writer
	limit    int
}

// run reads commands until quit or end of input
func (s *session) run(in io.Reader) error {
	utils.DisplayScoreboard(s.out, s.match.Snapshot(), s.match.Suggestions(s.limit))

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if !s.handle(sc.Text()) {
			return nil
		}
	}
	return sc.Err()
}

// handle runs one input line and reports whether the session goes on
func (s *session) handle(line string) bool {
	fields := strings.Fields(strings.ReplaceAll(line, ",", " "))
	if len(fields) == 0 {
		return true
	}

	switch strings.ToLower(fields[0]) {
	case "quit", "exit", "q":
		return false
	case "help", "?":
		fmt.Fprintln(s.out, helpText)
		return true
	case "undo", "u":
		if err := s.match.Undo(); err != nil {
			fmt.Fprintf(s.out, "Cannot undo: %v\n", err)
			return true
		}
	case "next":
		if err := s.match.NextLeg(); err != nil {
			fmt.Fprintf(s.out, "Cannot start the next leg: %v\n", err)
			return true
		}
	case "suggest":
		paths := s.match.Suggestions(s.limit)
		if len(paths) == 0 {
			fmt.Fprintln(s.out, "No checkout from here.")
		}
		for _, p := range paths {
			fmt.Fprintf(s.out, "  %s\n", p)
		}
		return true
	case "history":
		for _, p := range s.match.Snapshot().Players {
			utils.DisplayTurnHistory(s.out, p)
		}
		return true
	case "reset":
		s.match.Reset()
	case "stats":
		utils.DisplayProfiles(s.out, s.profiles())
		return true
	default:
		s.throw(fields)
	}

	utils.DisplayScoreboard(s.out, s.match.Snapshot(), s.match.Suggestions(s.limit))
	return true
}

// throw submits the tokens for whoever is at the line
func (s *session) throw(tokens []string) {
	player := s.match.Snapshot().CurrentName
	result, err := s.match.SubmitTurn(player, tokens)
	if err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}

	fmt.Fprintf(s.out, "%s scored %d: %s\n", result.Player, result.Total, result.Outcome)
	if result.MatchWon {
		log.Printf("Match won by %s", result.Player)
	}
}
