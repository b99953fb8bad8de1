package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/derekprior/roundrobin/internal/schedule"
	"github.com/derekprior/roundrobin/internal/store"
	"github.com/derekprior/roundrobin/internal/validator"
)

// maxWeeks bounds a single generate request.
const maxWeeks = 1000

type leagueRequest struct {
	Teams      []schedule.Team `json:"teams"`
	TotalWeeks *int            `json:"total_weeks"`
}

type leagueResponse struct {
	Owner      string          `json:"owner"`
	TotalWeeks int             `json:"total_weeks"`
	Teams      []schedule.Team `json:"teams"`
	Weeks      schedule.Season `json:"weeks"`
	UpdatedAt  *time.Time      `json:"updated_at,omitempty"`
}

type weekRequest struct {
	Pairings schedule.Week `json:"pairings"`
}

type weekResponse struct {
	Week       int           `json:"week"`
	Pairings   schedule.Week `json:"pairings"`
	Violations []string      `json:"violations,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, envelope{"status": "ok"}); err != nil {
		s.serverError(w, r, err)
	}
}

func (s *Server) handlePutLeague(w http.ResponseWriter, r *http.Request) {
	owner := ownerParam(r)

	var req leagueRequest
	if err := readJSON(w, r, &req); err != nil {
		s.badRequest(w, r, err)
		return
	}
	if req.TotalWeeks == nil {
		s.badRequest(w, r, errors.New("total_weeks is required"))
		return
	}
	weeks := *req.TotalWeeks
	if weeks < 0 || weeks > maxWeeks {
		s.badRequest(w, r, fmt.Errorf("total_weeks must be between 0 and %d", maxWeeks))
		return
	}

	roster := schedule.Canonicalize(req.Teams)
	l := store.League{
		Owner:      owner,
		TotalWeeks: weeks,
		Teams:      roster,
		Season:     schedule.GenerateSeason(roster, weeks),
	}
	if err := s.store.SaveLeague(r.Context(), l); err != nil {
		s.serverError(w, r, err)
		return
	}
	s.log.Info().Str("owner", owner).Int("teams", len(roster)).Int("weeks", len(l.Season)).Msg("season generated")

	if err := writeJSON(w, http.StatusOK, toLeagueResponse(l)); err != nil {
		s.serverError(w, r, err)
	}
}

func (s *Server) handleGetLeague(w http.ResponseWriter, r *http.Request) {
	l, err := s.store.League(r.Context(), ownerParam(r))
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, toLeagueResponse(l)); err != nil {
		s.serverError(w, r, err)
	}
}

func (s *Server) handleGetWeek(w http.ResponseWriter, r *http.Request) {
	week, ok := s.weekParam(w, r)
	if !ok {
		return
	}
	pairings, err := s.store.Week(r.Context(), ownerParam(r), week)
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, weekResponse{Week: week, Pairings: pairings}); err != nil {
		s.serverError(w, r, err)
	}
}

// handlePutWeek accepts an edited week, repairs it against the stored roster
// and saves the repaired version. The response lists what was wrong with the
// submitted week.
func (s *Server) handlePutWeek(w http.ResponseWriter, r *http.Request) {
	owner := ownerParam(r)
	week, ok := s.weekParam(w, r)
	if !ok {
		return
	}

	var req weekRequest
	if err := readJSON(w, r, &req); err != nil {
		s.badRequest(w, r, err)
		return
	}

	l, err := s.store.League(r.Context(), owner)
	if err != nil {
		s.storeError(w, r, err)
		return
	}

	problems := validator.ValidateWeek(req.Pairings, l.Teams)
	normalized := schedule.NormalizeWeek(req.Pairings, l.Teams)
	if err := s.store.SaveWeek(r.Context(), owner, week, normalized); err != nil {
		s.storeError(w, r, err)
		return
	}
	if len(problems) > 0 {
		s.log.Info().Str("owner", owner).Int("week", week).Int("problems", len(problems)).Msg("week repaired")
	}

	resp := weekResponse{Week: week, Pairings: normalized, Violations: problems}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		s.serverError(w, r, err)
	}
}

func (s *Server) handleValidateWeek(w http.ResponseWriter, r *http.Request) {
	owner := ownerParam(r)
	week, ok := s.weekParam(w, r)
	if !ok {
		return
	}

	var req weekRequest
	if err := readJSON(w, r, &req); err != nil {
		s.badRequest(w, r, err)
		return
	}

	l, err := s.store.League(r.Context(), owner)
	if err != nil {
		s.storeError(w, r, err)
		return
	}
	if week > l.TotalWeeks {
		s.notFound(w, r)
		return
	}

	problems := validator.ValidateWeek(req.Pairings, l.Teams)
	if problems == nil {
		problems = []string{}
	}
	if err := writeJSON(w, http.StatusOK, envelope{"week": week, "violations": problems}); err != nil {
		s.serverError(w, r, err)
	}
}

func (s *Server) storeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, store.ErrNotFound) {
		s.notFound(w, r)
		return
	}
	s.serverError(w, r, err)
}

// ownerParam returns the owner key in canonical form.
func ownerParam(r *http.Request) string {
	return schedule.Team{ID: chi.URLParam(r, "owner")}.Key()
}

func (s *Server) weekParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	week, err := strconv.Atoi(chi.URLParam(r, "week"))
	if err != nil || week < 1 {
		s.badRequest(w, r, errors.New("week must be a positive integer"))
		return 0, false
	}
	return week, true
}

func toLeagueResponse(l store.League) leagueResponse {
	resp := leagueResponse{
		Owner:      l.Owner,
		TotalWeeks: l.TotalWeeks,
		Teams:      l.Teams,
		Weeks:      l.Season,
	}
	if resp.Teams == nil {
		resp.Teams = []schedule.Team{}
	}
	if resp.Weeks == nil {
		resp.Weeks = schedule.Season{}
	}
	if !l.UpdatedAt.IsZero() {
		resp.UpdatedAt = &l.UpdatedAt
	}
	return resp
}
