/* handlers.go
 * Contains the HTTP handlers for the read-only JSON endpoints
 * Authors: Ahasuerus
 */

package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"ravens-nest/api/shared"

	"github.com/rs/zerolog/log"
)

// Routes registers every endpoint on a new mux
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.HealthHandler)
	mux.HandleFunc("GET /leaderboard/{format}", s.LeaderboardHandler)
	mux.HandleFunc("GET /matches/{id}", s.MatchHandler)
	mux.HandleFunc("GET /queues/{format}", s.QueueHandler)
	return mux
}

// HealthHandler reports that the server is up and how many matches are logged
func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Matches: len(s.api.Matches())})
}

// LeaderboardHandler returns the top n of a format, 10 when n is not given
// Preconditions: Receives a format path value (1v1, flex, reg or the full name) and an optional n query parameter
// Postconditions: Writes the leaderboard entries, or 400 for a bad format or n
func (s *Server) LeaderboardHandler(w http.ResponseWriter, r *http.Request) {
	n := 10
	if raw := r.URL.Query().Get("n"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "n must be a positive number")
			return
		}
		n = parsed
	}

	entries, err := s.api.Leaderboard(r.PathValue("format"), n)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	if entries == nil {
		writeJSON(w, http.StatusOK, []any{})
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// MatchHandler returns a match by id
func (s *Server) MatchHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid match id")
		return
	}
	m, err := s.api.GetMatch(id)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// QueueHandler returns the waiting entries of a format's queue
func (s *Server) QueueHandler(w http.ResponseWriter, r *http.Request) {
	entries, err := s.api.QueueEntries(r.PathValue("format"))
	if err != nil {
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func writeAPIError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, shared.ErrInvalidFormat):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		log.Error().Err(err).Msg("web request failed")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Warn().Err(err).Msg("writing response")
	}
}
