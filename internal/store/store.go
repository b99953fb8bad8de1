// Package store persists league rosters and their schedules in SQLite.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/derekprior/roundrobin/internal/schedule"
)

//go:embed migrations.sql
var migrations string

// ErrNotFound is returned when a league or week does not exist.
var ErrNotFound = errors.New("not found")

const (
	kindMatch = "match"
	kindBye   = "bye"
)

// League is a stored roster together with its generated season.
type League struct {
	Owner      string
	TotalWeeks int
	Teams      []schedule.Team
	Season     schedule.Season
	UpdatedAt  time.Time
}

type Store struct {
	db  *sql.DB
	log zerolog.Logger
	now func() time.Time
}

// Open opens (creating if needed) the database at path and applies migrations.
func Open(ctx context.Context, path string, log zerolog.Logger) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is required")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating database dir: %w", err)
		}
	}

	dsn := "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// SQLite prefers a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.ExecContext(ctx, migrations); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}

	log.Debug().Str("path", path).Msg("store opened")
	return &Store{db: db, log: log, now: time.Now}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveLeague replaces the league's roster and its whole season in one
// transaction.
func (s *Store) SaveLeague(ctx context.Context, l League) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO leagues(owner, total_weeks, updated_at) VALUES(?,?,?)
		 ON CONFLICT(owner) DO UPDATE SET total_weeks=excluded.total_weeks, updated_at=excluded.updated_at`,
		l.Owner, l.TotalWeeks, s.now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("saving league: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM teams WHERE owner = ?`, l.Owner); err != nil {
		return fmt.Errorf("clearing teams: %w", err)
	}
	for _, t := range l.Teams {
		if _, err := tx.ExecContext(ctx, `INSERT INTO teams(owner, id, name) VALUES(?,?,?)`, l.Owner, t.ID, t.Name); err != nil {
			return fmt.Errorf("saving team %s: %w", t.ID, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM pairings WHERE owner = ?`, l.Owner); err != nil {
		return fmt.Errorf("clearing pairings: %w", err)
	}
	for _, wk := range l.Season.Weeks() {
		if err := insertWeek(ctx, tx, l.Owner, wk, l.Season[wk]); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	s.log.Debug().Str("owner", l.Owner).Int("teams", len(l.Teams)).Int("weeks", len(l.Season)).Msg("league saved")
	return nil
}

// SaveWeek replaces a single week of an existing league.
func (s *Store) SaveWeek(ctx context.Context, owner string, week int, pairings schedule.Week) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	total, err := totalWeeks(ctx, tx, owner)
	if err != nil {
		return err
	}
	if week < 1 || week > total {
		return fmt.Errorf("week %d: %w", week, ErrNotFound)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM pairings WHERE owner = ? AND week = ?`, owner, week); err != nil {
		return fmt.Errorf("clearing week %d: %w", week, err)
	}
	if err := insertWeek(ctx, tx, owner, week, pairings); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE leagues SET updated_at = ? WHERE owner = ?`,
		s.now().UTC().Format(time.RFC3339Nano), owner); err != nil {
		return fmt.Errorf("touching league: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	s.log.Debug().Str("owner", owner).Int("week", week).Int("pairings", len(pairings)).Msg("week saved")
	return nil
}

// League loads a league with its roster and season.
func (s *Store) League(ctx context.Context, owner string) (League, error) {
	l := League{Owner: owner}

	var updated string
	err := s.db.QueryRowContext(ctx,
		`SELECT total_weeks, updated_at FROM leagues WHERE owner = ?`, owner,
	).Scan(&l.TotalWeeks, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return League{}, fmt.Errorf("league %s: %w", owner, ErrNotFound)
	}
	if err != nil {
		return League{}, fmt.Errorf("loading league: %w", err)
	}
	if t, err := time.Parse(time.RFC3339Nano, updated); err == nil {
		l.UpdatedAt = t
	}

	l.Teams, err = s.teams(ctx, owner)
	if err != nil {
		return League{}, err
	}
	l.Season, err = s.pairings(ctx, owner, 0)
	if err != nil {
		return League{}, err
	}
	return l, nil
}

// Week loads one week of a league.
func (s *Store) Week(ctx context.Context, owner string, week int) (schedule.Week, error) {
	total, err := totalWeeks(ctx, s.db, owner)
	if err != nil {
		return nil, err
	}
	if week < 1 || week > total {
		return nil, fmt.Errorf("week %d: %w", week, ErrNotFound)
	}
	season, err := s.pairings(ctx, owner, week)
	if err != nil {
		return nil, err
	}
	if season[week] == nil {
		return schedule.Week{}, nil
	}
	return season[week], nil
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func totalWeeks(ctx context.Context, q queryer, owner string) (int, error) {
	var total int
	err := q.QueryRowContext(ctx, `SELECT total_weeks FROM leagues WHERE owner = ?`, owner).Scan(&total)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("league %s: %w", owner, ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("loading league: %w", err)
	}
	return total, nil
}

func (s *Store) teams(ctx context.Context, owner string) ([]schedule.Team, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM teams WHERE owner = ? ORDER BY id`, owner)
	if err != nil {
		return nil, fmt.Errorf("loading teams: %w", err)
	}
	defer rows.Close()

	teams := []schedule.Team{}
	for rows.Next() {
		var t schedule.Team
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("scanning team: %w", err)
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

// pairings loads one week, or every week when week is 0.
func (s *Store) pairings(ctx context.Context, owner string, week int) (schedule.Season, error) {
	query := `SELECT week, kind, home_id, home_name, away_id, away_name FROM pairings WHERE owner = ?`
	args := []any{owner}
	if week > 0 {
		query += ` AND week = ?`
		args = append(args, week)
	}
	query += ` ORDER BY week, position`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("loading pairings: %w", err)
	}
	defer rows.Close()

	season := make(schedule.Season)
	for rows.Next() {
		var (
			wk             int
			kind           string
			home           schedule.Team
			awayID, awayNm sql.NullString
		)
		if err := rows.Scan(&wk, &kind, &home.ID, &home.Name, &awayID, &awayNm); err != nil {
			return nil, fmt.Errorf("scanning pairing: %w", err)
		}
		switch kind {
		case kindMatch:
			away := schedule.Team{ID: awayID.String, Name: awayNm.String}
			season[wk] = append(season[wk], schedule.Match{Home: home, Away: away})
		case kindBye:
			season[wk] = append(season[wk], schedule.Bye{Team: home})
		default:
			return nil, fmt.Errorf("week %d: unknown pairing kind %q", wk, kind)
		}
	}
	return season, rows.Err()
}

func insertWeek(ctx context.Context, tx *sql.Tx, owner string, week int, pairings schedule.Week) error {
	for pos, p := range pairings {
		var err error
		switch p := p.(type) {
		case schedule.Match:
			_, err = tx.ExecContext(ctx,
				`INSERT INTO pairings(owner, week, position, kind, home_id, home_name, away_id, away_name)
				 VALUES(?,?,?,?,?,?,?,?)`,
				owner, week, pos, kindMatch, p.Home.ID, p.Home.Name, p.Away.ID, p.Away.Name)
		case schedule.Bye:
			_, err = tx.ExecContext(ctx,
				`INSERT INTO pairings(owner, week, position, kind, home_id, home_name)
				 VALUES(?,?,?,?,?,?)`,
				owner, week, pos, kindBye, p.Team.ID, p.Team.Name)
		default:
			err = fmt.Errorf("unsupported pairing %T", p)
		}
		if err != nil {
			return fmt.Errorf("saving week %d pairing %d: %w", week, pos, err)
		}
	}
	return nil
}
