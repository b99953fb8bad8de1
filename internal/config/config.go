package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/derekprior/roundrobin/internal/schedule"
)

type League struct {
	Name  string `yaml:"name"`
	Owner string `yaml:"owner"`
}

type Season struct {
	TotalWeeks int `yaml:"total_weeks"`
}

type Team struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

type Config struct {
	League League `yaml:"league"`
	Season Season `yaml:"season"`
	Teams  []Team `yaml:"teams"`
}

// Roster returns the league's teams in canonical order.
func (c *Config) Roster() []schedule.Team {
	teams := make([]schedule.Team, 0, len(c.Teams))
	for _, t := range c.Teams {
		teams = append(teams, schedule.Team{ID: t.ID, Name: t.Name})
	}
	return schedule.Canonicalize(teams)
}

// LoadFromBytes parses YAML bytes into a Config and validates it.
func LoadFromBytes(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromFile reads and parses a YAML config file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromBytes(data)
}

func (c *Config) validate() error {
	if c.Season.TotalWeeks <= 0 {
		return fmt.Errorf("season total_weeks must be positive, got %d", c.Season.TotalWeeks)
	}

	if len(c.Teams) == 0 {
		return fmt.Errorf("at least one team is required")
	}

	// Check for duplicate team ids. Empty ids are placeholders and are
	// dropped by Roster.
	seen := make(map[string]string)
	for _, t := range c.Teams {
		if strings.TrimSpace(t.ID) == "" {
			continue
		}
		key := schedule.Team{ID: t.ID}.Key()
		if prev, ok := seen[key]; ok {
			return fmt.Errorf("team id %q is used by both %q and %q", t.ID, prev, t.Name)
		}
		seen[key] = t.Name
	}

	if len(c.Roster()) == 0 {
		return fmt.Errorf("no usable teams: every id is a placeholder")
	}

	if strings.TrimSpace(c.League.Owner) == "" {
		c.League.Owner = strings.TrimSpace(c.League.Name)
	}
	if c.League.Owner == "" {
		return fmt.Errorf("league needs an owner or a name")
	}

	return nil
}
