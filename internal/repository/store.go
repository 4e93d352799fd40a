package repository

import (
	"errors"

	"github.com/reelkeep/reelkeep/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// MovieFilter holds the optional predicates of the filter endpoint. Empty
// fields are skipped; present fields are ANDed together.
type MovieFilter struct {
	Genre     string
	Year      string
	Director  string
	Actor     string
	Title     string
	MinRating *float64
}

// EnrichmentUpdate carries the enrichment-cache fields written by the
// backfill path. Everything else on the row is left untouched.
type EnrichmentUpdate struct {
	TMDBID            *int
	BackdropURL       *string
	TMDBRating        *float64
	TMDBVoteCount     *int
	CastData          models.JSONList
	TrailersData      models.JSONList
	SimilarMoviesData models.JSONList
}

type MovieStore interface {
	Create(movie *models.Movie) error
	GetByID(id int) (*models.Movie, error)
	GetByTitle(title string) (*models.Movie, error)
	List() ([]*models.Movie, error)
	Filter(f MovieFilter) ([]*models.Movie, error)
	Update(movie *models.Movie) error
	UpdateEnrichment(id int, e EnrichmentUpdate) error
	Delete(id int) error
}

type UserStore interface {
	Create(user *models.User) error
	GetByUsername(username string) (*models.User, error)
}
