package api

import (
	"net/http"

	"github.com/reelkeep/reelkeep/internal/analytics"
)

func (s *Server) handleMovieStats(w http.ResponseWriter, r *http.Request) {
	movies, err := s.movies.List()
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, analytics.Compute(movies))
}
