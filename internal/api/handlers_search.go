package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/reelkeep/reelkeep/internal/metadata"
	"github.com/reelkeep/reelkeep/internal/models"
	"github.com/reelkeep/reelkeep/internal/repository"
)

// ──────────────────── Search-and-add ────────────────────

func (s *Server) handleSearchMovie(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	sources := r.URL.Query()["sources"]
	if title == "" {
		s.respondError(w, http.StatusBadRequest, "title query param required")
		return
	}

	// Advisory duplicate check: exact title match, not transactional.
	if existing, err := s.movies.GetByTitle(title); err == nil {
		s.respondJSON(w, http.StatusConflict, map[string]interface{}{
			"error": "Movie already exists in your collection",
			"movie": existing,
		})
		return
	} else if !errors.Is(err, repository.ErrNotFound) {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	result := s.enricher.SearchByTitle(title)
	if result == nil {
		s.respondError(w, http.StatusNotFound, "movie not found")
		return
	}

	movie := movieFromResult(result, sources)
	if err := s.movies.Create(movie); err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusCreated, movie)
}

func (s *Server) handleSearchMovieByIMDB(w http.ResponseWriter, r *http.Request) {
	imdbID := r.URL.Query().Get("imdb_id")
	sources := r.URL.Query()["sources"]
	if imdbID == "" {
		s.respondError(w, http.StatusBadRequest, "imdb_id query param required")
		return
	}

	result := s.enricher.SearchByIMDBID(imdbID)
	if result == nil {
		s.respondError(w, http.StatusNotFound, "Movie not found")
		return
	}

	// Duplicate check happens against the resolved title, after the lookup,
	// so a wasted enrichment call is possible here.
	if existing, err := s.movies.GetByTitle(result.Title); err == nil {
		s.respondJSON(w, http.StatusConflict, map[string]interface{}{
			"error": "Movie already exists in your collection",
			"movie": existing,
		})
		return
	} else if !errors.Is(err, repository.ErrNotFound) {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	movie := movieFromResult(result, sources)
	if err := s.movies.Create(movie); err != nil {
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusCreated, movie)
}

// ──────────────────── Enhancement backfill ────────────────────

// handleEnhancedMovie fills the enrichment-cache fields on an existing row
// when they were never fetched, leaving every other field untouched.
func (s *Server) handleEnhancedMovie(w http.ResponseWriter, r *http.Request) {
	movie, ok := s.movieByPathID(w, r)
	if !ok {
		return
	}

	if movie.TMDBID == nil {
		if result := s.enricher.SearchByTitle(movie.Title); result != nil {
			update := repository.EnrichmentUpdate{
				TMDBID:            result.TMDBID,
				BackdropURL:       result.BackdropURL,
				TMDBRating:        result.TMDBRating,
				TMDBVoteCount:     result.TMDBVoteCount,
				CastData:          encodeList(result.Cast),
				TrailersData:      encodeList(result.Trailers),
				SimilarMoviesData: encodeList(result.SimilarMovies),
			}
			if err := s.movies.UpdateEnrichment(movie.ID, update); err != nil {
				s.respondError(w, http.StatusInternalServerError, err.Error())
				return
			}
			movie, err := s.movies.GetByID(movie.ID)
			if err != nil {
				s.respondError(w, http.StatusInternalServerError, err.Error())
				return
			}
			s.respondJSON(w, http.StatusOK, movie)
			return
		}
	}

	s.respondJSON(w, http.StatusOK, movie)
}

// ──────────────────── Conversion ────────────────────

func movieFromResult(result *metadata.Result, sources []string) *models.Movie {
	movie := &models.Movie{
		Title:               result.Title,
		Year:                result.Year,
		Genre:               result.Genre,
		Director:            result.Director,
		Actors:              result.Actors,
		IMDBScore:           result.IMDBScore,
		RottenTomatoesScore: result.RottenTomatoesScore,
		MetacriticScore:     result.MetacriticScore,
		Plot:                result.Plot,
		PosterURL:           result.PosterURL,
		Runtime:             result.Runtime,
		TMDBID:              result.TMDBID,
		BackdropURL:         result.BackdropURL,
		TMDBRating:          result.TMDBRating,
		TMDBVoteCount:       result.TMDBVoteCount,
		CastData:            encodeList(result.Cast),
		TrailersData:        encodeList(result.Trailers),
		SimilarMoviesData:   encodeList(result.SimilarMovies),
	}
	if len(sources) > 0 {
		movie.Sources = encodeList(sources)
	}
	return movie
}

// encodeList marshals a slice to its JSON-string storage form, writing "[]"
// for nil slices so the stored text is always a valid array.
func encodeList(v interface{}) models.JSONList {
	raw, err := json.Marshal(v)
	if err != nil || string(raw) == "null" {
		return models.JSONList("[]")
	}
	return models.JSONList(raw)
}
