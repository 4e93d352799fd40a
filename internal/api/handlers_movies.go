package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/reelkeep/reelkeep/internal/models"
	"github.com/reelkeep/reelkeep/internal/repository"
)

// ──────────────────── Movie CRUD ────────────────────

func (s *Server) handleListMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := s.movies.List()
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, movies)
}

func (s *Server) handleCreateMovie(w http.ResponseWriter, r *http.Request) {
	var movie models.Movie
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&movie); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(&movie); err != nil {
		s.respondError(w, http.StatusBadRequest, "title is required")
		return
	}
	movie.ID = 0

	if err := s.movies.Create(&movie); err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusCreated, &movie)
}

func (s *Server) handleGetMovie(w http.ResponseWriter, r *http.Request) {
	movie, ok := s.movieByPathID(w, r)
	if !ok {
		return
	}
	s.respondJSON(w, http.StatusOK, movie)
}

// handleUpdateMovie overwrites exactly the fields present in the request
// body. Unknown keys are rejected rather than silently applied.
func (s *Server) handleUpdateMovie(w http.ResponseWriter, r *http.Request) {
	movie, ok := s.movieByPathID(w, r)
	if !ok {
		return
	}

	var updates map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := movie.ApplyUpdates(updates); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.movies.Update(movie); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "movie not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, movie)
}

func (s *Server) handleDeleteMovie(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid movie id")
		return
	}
	if err := s.movies.Delete(id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "movie not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"message": "deleted"})
}

// ──────────────────── Filter ────────────────────

func (s *Server) handleFilterMovies(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := repository.MovieFilter{
		Genre:    q.Get("genre"),
		Year:     q.Get("year"),
		Director: q.Get("director"),
		Actor:    q.Get("actor"),
		Title:    q.Get("title"),
	}
	// A non-numeric min_rating is ignored, not an error.
	if raw := q.Get("min_rating"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			f.MinRating = &v
		}
	}

	movies, err := s.movies.Filter(f)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, movies)
}

func (s *Server) movieByPathID(w http.ResponseWriter, r *http.Request) (*models.Movie, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid movie id")
		return nil, false
	}
	movie, err := s.movies.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "movie not found")
			return nil, false
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	return movie, true
}
