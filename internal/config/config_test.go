package config

import (
	"testing"
	"time"
)

const testConfigYAML = `
league:
  name: Friday Night League
  owner: "0xOwner"

season:
  total_weeks: 9

teams:
  - id: "0xCC"
    name: Cubs
  - id: "0xaa"
    name: Angels
  - id: "0xBB"
    name: Astros
`

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(testConfigYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("league", func(t *testing.T) {
		if cfg.League.Name != "Friday Night League" {
			t.Errorf("name = %q, want %q", cfg.League.Name, "Friday Night League")
		}
		if cfg.League.Owner != "0xOwner" {
			t.Errorf("owner = %q, want %q", cfg.League.Owner, "0xOwner")
		}
	})

	t.Run("season", func(t *testing.T) {
		if cfg.Season.TotalWeeks != 9 {
			t.Errorf("total weeks = %d, want 9", cfg.Season.TotalWeeks)
		}
	})

	t.Run("teams", func(t *testing.T) {
		if len(cfg.Teams) != 3 {
			t.Fatalf("teams = %d, want 3", len(cfg.Teams))
		}
		if cfg.Teams[0].Name != "Cubs" {
			t.Errorf("first team = %q, want %q", cfg.Teams[0].Name, "Cubs")
		}
	})
}

func TestRoster(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(testConfigYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	roster := cfg.Roster()
	want := []string{"0xaa", "0xbb", "0xcc"}
	if len(roster) != len(want) {
		t.Fatalf("Roster() = %d teams, want %d", len(roster), len(want))
	}
	for i, id := range want {
		if roster[i].ID != id {
			t.Errorf("roster[%d] = %q, want %q", i, roster[i].ID, id)
		}
	}
	if roster[1].Name != "Astros" {
		t.Errorf("roster[1].Name = %q, want %q", roster[1].Name, "Astros")
	}
}

func TestLoadConfigValidation(t *testing.T) {
	t.Run("zero weeks", func(t *testing.T) {
		yaml := `
league: {name: L}
season: {total_weeks: 0}
teams:
  - id: a
`
		_, err := LoadFromBytes([]byte(yaml))
		if err == nil {
			t.Error("expected error for zero total_weeks")
		}
	})

	t.Run("negative weeks", func(t *testing.T) {
		yaml := `
league: {name: L}
season: {total_weeks: -2}
teams:
  - id: a
`
		_, err := LoadFromBytes([]byte(yaml))
		if err == nil {
			t.Error("expected error for negative total_weeks")
		}
	})

	t.Run("no teams", func(t *testing.T) {
		yaml := `
league: {name: L}
season: {total_weeks: 3}
teams: []
`
		_, err := LoadFromBytes([]byte(yaml))
		if err == nil {
			t.Error("expected error for no teams")
		}
	})

	t.Run("only missing ids", func(t *testing.T) {
		yaml := `
league: {name: L}
season: {total_weeks: 3}
teams:
  - name: Nameless
`
		_, err := LoadFromBytes([]byte(yaml))
		if err == nil {
			t.Error("expected error when every team lacks an id")
		}
	})

	t.Run("missing and placeholder ids are ignored", func(t *testing.T) {
		yaml := `
league: {name: L}
season: {total_weeks: 3}
teams:
  - {id: a, name: Angels}
  - {name: Nameless}
  - {id: "  ", name: Blank}
  - {id: "0x0000", name: Zero}
  - {id: b, name: Astros}
`
		cfg, err := LoadFromBytes([]byte(yaml))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := cfg.Roster(); len(got) != 2 {
			t.Errorf("roster = %v, want 2 teams", got)
		}
	})

	t.Run("only placeholder ids", func(t *testing.T) {
		yaml := `
league: {name: L}
season: {total_weeks: 3}
teams:
  - id: "0x0000"
`
		_, err := LoadFromBytes([]byte(yaml))
		if err == nil {
			t.Error("expected error for placeholder-only roster")
		}
	})

	t.Run("duplicate ids ignore case", func(t *testing.T) {
		yaml := `
league: {name: L}
season: {total_weeks: 3}
teams:
  - {id: "0xAB", name: Angels}
  - {id: "0xab", name: Astros}
`
		_, err := LoadFromBytes([]byte(yaml))
		if err == nil {
			t.Error("expected error for duplicate team id")
		}
	})

	t.Run("no owner or name", func(t *testing.T) {
		yaml := `
season: {total_weeks: 3}
teams:
  - id: a
`
		_, err := LoadFromBytes([]byte(yaml))
		if err == nil {
			t.Error("expected error for league without owner or name")
		}
	})

	t.Run("owner defaults to name", func(t *testing.T) {
		yaml := `
league: {name: "  Tuesday League "}
season: {total_weeks: 3}
teams:
  - id: a
`
		cfg, err := LoadFromBytes([]byte(yaml))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.League.Owner != "Tuesday League" {
			t.Errorf("owner = %q, want %q", cfg.League.Owner, "Tuesday League")
		}
	})
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(t.TempDir() + "/missing.yaml")
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadServer(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Run("defaults", func(t *testing.T) {
		cfg, err := LoadServer()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Addr != ":8080" {
			t.Errorf("addr = %q, want %q", cfg.Addr, ":8080")
		}
		if cfg.DatabasePath != "roundrobin.db" {
			t.Errorf("db = %q, want %q", cfg.DatabasePath, "roundrobin.db")
		}
		if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
			t.Errorf("origins = %v, want [*]", cfg.AllowedOrigins)
		}
		if cfg.ShutdownTimeout != 10*time.Second {
			t.Errorf("shutdown timeout = %s, want 10s", cfg.ShutdownTimeout)
		}
		if cfg.LogFormat != "console" {
			t.Errorf("log format = %q, want console", cfg.LogFormat)
		}
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("ROUNDROBIN_ADDR", "127.0.0.1:9000")
		t.Setenv("ROUNDROBIN_ALLOWED_ORIGINS", "https://a.example,https://b.example")
		t.Setenv("ROUNDROBIN_SHUTDOWN_TIMEOUT", "3s")
		cfg, err := LoadServer()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Addr != "127.0.0.1:9000" {
			t.Errorf("addr = %q, want %q", cfg.Addr, "127.0.0.1:9000")
		}
		if len(cfg.AllowedOrigins) != 2 {
			t.Errorf("origins = %v, want 2 entries", cfg.AllowedOrigins)
		}
		if cfg.ShutdownTimeout != 3*time.Second {
			t.Errorf("shutdown timeout = %s, want 3s", cfg.ShutdownTimeout)
		}
	})

	t.Run("bad log format", func(t *testing.T) {
		t.Setenv("ROUNDROBIN_LOG_FORMAT", "xml")
		if _, err := LoadServer(); err == nil {
			t.Error("expected error for unknown log format")
		}
	})

	t.Run("bad duration", func(t *testing.T) {
		t.Setenv("ROUNDROBIN_SHUTDOWN_TIMEOUT", "soon")
		if _, err := LoadServer(); err == nil {
			t.Error("expected error for unparsable duration")
		}
	})
}
