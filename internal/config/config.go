// Package config loads the darts-scorer JSON configuration file
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/myusername/darts-scorer/pkg/models"
)

// DefaultStatsFile is where profiles are kept when the file does not say otherwise
const DefaultStatsFile = "darts_stats.json"

// rawConfig mirrors the JSON document; rules are spelled as strings
type rawConfig struct {
	StartingScore    *int                `json:"startingScore"`
	CheckoutRule     string              `json:"checkoutRule"`
	SetsToWin        *int                `json:"setsToWin"`
	LegsToWinPerSet  *int                `json:"legsToWinPerSet"`
	SetLegTieRule    string              `json:"setLegTieRule"`
	Participants     []string            `json:"participants"`
	PreferredDoubles map[string][]string `json:"preferredDoubles"`
	StatsFile        string              `json:"statsFile"`
	Chart            string              `json:"chart"`
}

// Config is the loaded file: the match to play plus where the app keeps its data
type Config struct {
	Match     models.MatchConfiguration
	StatsFile string
	// Chart is a local .txt, .html or .pdf checkout chart; empty for none
	Chart string
}

// Default returns the configuration used when no file is given
func Default(participants ...string) Config {
	return Config{
		Match:     models.DefaultConfiguration(participants...),
		StatsFile: DefaultStatsFile,
	}
}

// Load reads path and converts it to a Config. Missing fields take the defaults and
// participants, when given, replace the ones in the file; preferred doubles of
// players left out are dropped. The match part is
// validated, so a bad file never yields a usable Config.
func Load(path string, participants ...string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("error reading config: %w", err)
	}
	return Parse(data, participants...)
}

// Parse converts a JSON document to a Config
func Parse(data []byte, participants ...string) (Config, error) {
	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("error parsing config: %w", err)
	}
	if len(participants) > 0 {
		raw.Participants = participants
	}

	cfg := Default(raw.Participants...)
	m := &cfg.Match

	if raw.StartingScore != nil {
		m.StartingScore = *raw.StartingScore
	}
	if raw.SetsToWin != nil {
		m.SetsToWin = *raw.SetsToWin
	}
	if raw.LegsToWinPerSet != nil {
		m.LegsToWinPerSet = *raw.LegsToWinPerSet
	}
	if raw.CheckoutRule != "" {
		rule, err := models.ParseCheckoutRule(raw.CheckoutRule)
		if err != nil {
			return Config{}, err
		}
		m.CheckoutRule = rule
	}
	if raw.SetLegTieRule != "" {
		rule, err := models.ParseTieRule(raw.SetLegTieRule)
		if err != nil {
			return Config{}, err
		}
		m.SetLegTieRule = rule
	}
	m.PreferredDoubles = raw.PreferredDoubles
	if len(participants) > 0 {
		m.PreferredDoubles = keepPlaying(raw.PreferredDoubles, participants)
	}

	if raw.StatsFile != "" {
		cfg.StatsFile = raw.StatsFile
	}
	cfg.Chart = raw.Chart

	if err := m.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// keepPlaying drops preferred doubles of players who are not in this match
func keepPlaying(preferred map[string][]string, participants []string) map[string][]string {
	if preferred == nil {
		return nil
	}
	playing := make(map[string]bool, len(participants))
	for _, name := range participants {
		playing[name] = true
	}
	out := make(map[string][]string, len(preferred))
	for name, doubles := range preferred {
		if playing[name] {
			out[name] = doubles
		}
	}
	return out
}
