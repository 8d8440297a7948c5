package main

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/mzaleski/padel-mixer/internal/httputil"
	"github.com/mzaleski/padel-mixer/internal/scoring"
	"github.com/mzaleski/padel-mixer/internal/service"
	"github.com/mzaleski/padel-mixer/internal/share"
	"github.com/mzaleski/padel-mixer/internal/tournament"
)

type createTournamentRequest struct {
	Name            string              `json:"name"`
	Format          string              `json:"format"`
	ScoringSystem   int                 `json:"scoringSystem"`
	Courts          int                 `json:"courts"`
	Players         []tournament.Player `json:"players"`
	Teams           []tournament.Team   `json:"teams"`
	RoundMode       string              `json:"roundMode"`
	TotalRounds     *int                `json:"totalRounds"`
	RankingStrategy string              `json:"rankingStrategy"`
}

type scoreRequest struct {
	Score1 int `json:"score1"`
	Score2 int `json:"score2"`
}

// noOp reports transition errors the API surfaces as an unchanged snapshot
// rather than a failure.
func noOp(err error) bool {
	return errors.Is(err, service.ErrRoundIncomplete) ||
		errors.Is(err, service.ErrNoMoreRounds) ||
		errors.Is(err, service.ErrRoundsRemaining) ||
		errors.Is(err, service.ErrTournamentFinished)
}

func newRouter(tournaments *service.TournamentService, matches *service.MatchService) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	r.Get("/tournaments", func(w http.ResponseWriter, r *http.Request) {
		list, err := tournaments.List(r.Context())
		if err != nil {
			httputil.InternalServerError(w, "Failed to list tournaments", err)
			return
		}
		httputil.JSON(w, http.StatusOK, list)
	})

	r.Post("/tournaments", func(w http.ResponseWriter, r *http.Request) {
		var req createTournamentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.BadRequest(w, "Invalid request body", err)
			return
		}

		settings := tournament.Settings{
			Name:            req.Name,
			Format:          tournament.Format(req.Format),
			ScoringSystem:   tournament.ScoringSystem(req.ScoringSystem),
			Courts:          req.Courts,
			Players:         req.Players,
			Teams:           req.Teams,
			RoundMode:       tournament.RoundMode(req.RoundMode),
			TotalRounds:     req.TotalRounds,
			RankingStrategy: tournament.RankingStrategy(req.RankingStrategy),
		}

		t, err := tournaments.Create(r.Context(), settings)
		if err != nil {
			httputil.BadRequest(w, "Failed to create tournament", err)
			return
		}
		httputil.JSON(w, http.StatusCreated, t)
	})

	r.Get("/tournaments/{id}", func(w http.ResponseWriter, r *http.Request) {
		t, err := tournaments.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				httputil.NotFound(w, "Tournament not found", err)
				return
			}
			httputil.InternalServerError(w, "Failed to get tournament", err)
			return
		}
		httputil.JSON(w, http.StatusOK, t)
	})

	r.Delete("/tournaments/{id}", func(w http.ResponseWriter, r *http.Request) {
		if err := tournaments.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			httputil.InternalServerError(w, "Failed to delete tournament", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	r.Get("/tournaments/{id}/standings", func(w http.ResponseWriter, r *http.Request) {
		t, err := tournaments.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				httputil.NotFound(w, "Tournament not found", err)
				return
			}
			httputil.InternalServerError(w, "Failed to get tournament", err)
			return
		}
		httputil.JSON(w, http.StatusOK, map[string]any{
			"players": scoring.ComputeStandings(t),
			"teams":   scoring.ComputeTeamStandings(t),
		})
	})

	r.Post("/tournaments/{id}/matches/{matchID}/score", func(w http.ResponseWriter, r *http.Request) {
		var req scoreRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.BadRequest(w, "Invalid request body", err)
			return
		}

		t, err := matches.UpdateScore(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "matchID"), req.Score1, req.Score2)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				httputil.NotFound(w, "Tournament not found", err)
			case errors.Is(err, service.ErrMatchNotFound):
				httputil.NotFound(w, "Match not found", err)
			case errors.Is(err, service.ErrInvalidScore):
				httputil.UnprocessableEntity(w, "Scores must be non-negative and sum to the scoring system", err)
			case noOp(err):
				httputil.JSON(w, http.StatusOK, t)
			default:
				httputil.InternalServerError(w, "Failed to update score", err)
			}
			return
		}
		httputil.JSON(w, http.StatusOK, t)
	})

	r.Post("/tournaments/{id}/rounds/next", func(w http.ResponseWriter, r *http.Request) {
		t, err := tournaments.NextRound(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				httputil.NotFound(w, "Tournament not found", err)
				return
			}
			if noOp(err) {
				httputil.JSON(w, http.StatusOK, t)
				return
			}
			httputil.InternalServerError(w, "Failed to advance round", err)
			return
		}
		httputil.JSON(w, http.StatusOK, t)
	})

	r.Post("/tournaments/{id}/rounds/final", func(w http.ResponseWriter, r *http.Request) {
		t, err := tournaments.GenerateFinalRound(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				httputil.NotFound(w, "Tournament not found", err)
			case errors.Is(err, service.ErrFinalRoundUnsupported):
				httputil.BadRequest(w, "Final round is only available for classic americano", err)
			case noOp(err):
				httputil.JSON(w, http.StatusOK, t)
			default:
				httputil.InternalServerError(w, "Failed to generate final round", err)
			}
			return
		}
		httputil.JSON(w, http.StatusOK, t)
	})

	r.Post("/tournaments/{id}/finish", func(w http.ResponseWriter, r *http.Request) {
		t, err := tournaments.Finish(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				httputil.NotFound(w, "Tournament not found", err)
				return
			}
			httputil.InternalServerError(w, "Failed to finish tournament", err)
			return
		}
		httputil.JSON(w, http.StatusOK, t)
	})

	r.Get("/tournaments/{id}/share", func(w http.ResponseWriter, r *http.Request) {
		t, err := tournaments.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				httputil.NotFound(w, "Tournament not found", err)
				return
			}
			httputil.InternalServerError(w, "Failed to get tournament", err)
			return
		}

		encoded, err := share.Encode(t)
		if err != nil {
			httputil.InternalServerError(w, "Failed to encode tournament", err)
			return
		}
		httputil.JSON(w, http.StatusOK, map[string]string{"data": encoded})
	})

	r.Get("/results", func(w http.ResponseWriter, r *http.Request) {
		encoded := r.URL.Query().Get("data")
		if encoded == "" {
			httputil.BadRequest(w, "Missing data parameter", nil)
			return
		}

		t, err := share.Decode(encoded)
		if err != nil {
			httputil.BadRequest(w, "Invalid share data", err)
			return
		}
		httputil.JSON(w, http.StatusOK, map[string]any{
			"tournament": t,
			"players":    scoring.ComputeStandings(t),
			"teams":      scoring.ComputeTeamStandings(t),
		})
	})

	return r
}
