// Package config handles loading and validating runtime configuration for the Courtside API.
// Configuration values (like the database URL and API port) are read from environment variables
// rather than being hardcoded. This follows the "12-factor app" methodology, which recommends
// storing config in the environment so the same binary can run in dev, staging, and production
// without changing any code — just swap the environment variables.
//
// The season policy (regular-season length, playoff bracket thresholds) is a separate YAML
// file because league operators tune it per season without redeploying.
package config

import (
	"fmt"
	"os"

	// godotenv reads a .env file and loads its key=value pairs into the process environment.
	// This is convenient in development: create a .env file with your settings and they're
	// automatically available as environment variables. In production, real env vars are used.
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all runtime configuration values for the application.
type Config struct {
	Port        string       // The TCP port the HTTP server will listen on (e.g., "8080")
	DatabaseURL string       // PostgreSQL connection string
	Env         string       // "development", "staging", or "production"
	Season      SeasonPolicy // Week-sequence policy shared by every division
}

// SeasonPolicy describes how a division's week sequence is built: how many regular
// weeks a season has, and which playoff rounds a bracket gets for a given team count.
// The bracket rule is deliberately configuration, not code — leagues change it between
// seasons.
type SeasonPolicy struct {
	// RegularWeeks is the number of regular-season weeks, numbered 1..RegularWeeks.
	RegularWeeks int `yaml:"regular_weeks"`
	// PlayoffMinTeams is the smallest team count that gets a playoff bracket at all.
	// Below this, the season is regular weeks only.
	PlayoffMinTeams int `yaml:"playoff_min_teams"`
	// QuarterfinalMinTeams is the smallest team count whose bracket includes a
	// quarterfinal round. Brackets at or above PlayoffMinTeams but below this
	// threshold play semifinal and final only.
	QuarterfinalMinTeams int `yaml:"quarterfinal_min_teams"`
}

// DefaultSeasonPolicy is used when no season policy file is configured:
// a 10-week regular season, playoffs from 4 teams, quarterfinals from 9 teams.
func DefaultSeasonPolicy() SeasonPolicy {
	return SeasonPolicy{
		RegularWeeks:         10,
		PlayoffMinTeams:      4,
		QuarterfinalMinTeams: 9,
	}
}

// Load reads configuration from environment variables and returns a populated Config.
// It first tries to load a .env file for local development. The underscore (_) discards
// the error from godotenv.Load — if there's no .env file (e.g., in production), that's fine.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	env := os.Getenv("ENV")
	if env == "" {
		// Default to "development" so local runs don't accidentally behave like production
		env = "development"
	}

	season, err := LoadSeasonPolicy(os.Getenv("SEASON_POLICY_PATH"))
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:        port,
		DatabaseURL: os.Getenv("DATABASE_URL"), // Required — server will fail to start without it
		Env:         env,
		Season:      season,
	}, nil
}

// LoadSeasonPolicy reads a season policy YAML file. An empty path returns the default
// policy; a path that exists but fails to parse or validate is an error, because a
// half-applied policy would silently produce wrong week sequences for every division.
func LoadSeasonPolicy(path string) (SeasonPolicy, error) {
	policy := DefaultSeasonPolicy()
	if path == "" {
		return policy, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return SeasonPolicy{}, fmt.Errorf("reading season policy %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return SeasonPolicy{}, fmt.Errorf("parsing season policy %s: %w", path, err)
	}
	if err := policy.Validate(); err != nil {
		return SeasonPolicy{}, fmt.Errorf("invalid season policy %s: %w", path, err)
	}
	return policy, nil
}

// Validate checks the policy for values the planner cannot work with.
func (p SeasonPolicy) Validate() error {
	if p.RegularWeeks < 1 {
		return fmt.Errorf("regular_weeks must be at least 1, got %d", p.RegularWeeks)
	}
	if p.PlayoffMinTeams < 2 {
		return fmt.Errorf("playoff_min_teams must be at least 2, got %d", p.PlayoffMinTeams)
	}
	if p.QuarterfinalMinTeams < p.PlayoffMinTeams {
		return fmt.Errorf("quarterfinal_min_teams (%d) must not be below playoff_min_teams (%d)",
			p.QuarterfinalMinTeams, p.PlayoffMinTeams)
	}
	return nil
}
