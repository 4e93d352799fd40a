package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/reelkeep/reelkeep/internal/models"
)

type MovieRepository struct {
	db *sql.DB
}

func NewMovieRepository(db *sql.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

const movieColumns = `id, title, year, genre, director, actors, imdb_score, rotten_tomatoes_score,
	metacritic_score, plot, poster_url, runtime, personal_rating, tags, notes,
	COALESCE(watched, FALSE), date_added, date_watched, COALESCE(lent_out, FALSE), lent_to, date_lent,
	tmdb_id, backdrop_url, tmdb_rating, tmdb_vote_count, cast_data, trailers_data, similar_movies_data, sources`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMovie(row rowScanner) (*models.Movie, error) {
	m := &models.Movie{}
	err := row.Scan(
		&m.ID, &m.Title, &m.Year, &m.Genre, &m.Director, &m.Actors,
		&m.IMDBScore, &m.RottenTomatoesScore, &m.MetacriticScore,
		&m.Plot, &m.PosterURL, &m.Runtime, &m.PersonalRating, &m.Tags, &m.Notes,
		&m.Watched, &m.DateAdded, &m.DateWatched, &m.LentOut, &m.LentTo, &m.DateLent,
		&m.TMDBID, &m.BackdropURL, &m.TMDBRating, &m.TMDBVoteCount,
		&m.CastData, &m.TrailersData, &m.SimilarMoviesData, &m.Sources,
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *MovieRepository) Create(movie *models.Movie) error {
	query := `
		INSERT INTO movies (title, year, genre, director, actors, imdb_score, rotten_tomatoes_score,
			metacritic_score, plot, poster_url, runtime, personal_rating, tags, notes,
			watched, date_added, date_watched, lent_out, lent_to, date_lent,
			tmdb_id, backdrop_url, tmdb_rating, tmdb_vote_count, cast_data, trailers_data, similar_movies_data, sources)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
			$15, COALESCE($16, NOW()), $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28)
		RETURNING id, date_added`

	return r.db.QueryRow(query,
		movie.Title, movie.Year, movie.Genre, movie.Director, movie.Actors,
		movie.IMDBScore, movie.RottenTomatoesScore, movie.MetacriticScore,
		movie.Plot, movie.PosterURL, movie.Runtime, movie.PersonalRating, movie.Tags, movie.Notes,
		movie.Watched, movie.DateAdded, movie.DateWatched, movie.LentOut, movie.LentTo, movie.DateLent,
		movie.TMDBID, movie.BackdropURL, movie.TMDBRating, movie.TMDBVoteCount,
		movie.CastData, movie.TrailersData, movie.SimilarMoviesData, movie.Sources).
		Scan(&movie.ID, &movie.DateAdded)
}

func (r *MovieRepository) GetByID(id int) (*models.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE id = $1`
	m, err := scanMovie(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get movie: %w", err)
	}
	return m, nil
}

// GetByTitle returns the first row with an exact title match. This backs the
// advisory duplicate check; there is no unique constraint on title.
func (r *MovieRepository) GetByTitle(title string) (*models.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE title = $1 LIMIT 1`
	m, err := scanMovie(r.db.QueryRow(query, title))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get movie by title: %w", err)
	}
	return m, nil
}

func (r *MovieRepository) List() ([]*models.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies ORDER BY id`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list movies: %w", err)
	}
	defer rows.Close()
	return collectMovies(rows)
}

// Filter applies the optional predicates ANDed together. min_rating compares
// against imdb_score cast to a number; rows whose score is not numeric are
// excluded by the guarded CAST rather than raising an error.
func (r *MovieRepository) Filter(f MovieFilter) ([]*models.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies`

	var conditions []string
	var args []interface{}
	argID := 1

	if f.Genre != "" {
		conditions = append(conditions, fmt.Sprintf("genre ILIKE $%d", argID))
		args = append(args, "%"+f.Genre+"%")
		argID++
	}
	if f.Year != "" {
		conditions = append(conditions, fmt.Sprintf("year = $%d", argID))
		args = append(args, f.Year)
		argID++
	}
	if f.Director != "" {
		conditions = append(conditions, fmt.Sprintf("director ILIKE $%d", argID))
		args = append(args, "%"+f.Director+"%")
		argID++
	}
	if f.Actor != "" {
		conditions = append(conditions, fmt.Sprintf("actors ILIKE $%d", argID))
		args = append(args, "%"+f.Actor+"%")
		argID++
	}
	if f.Title != "" {
		conditions = append(conditions, fmt.Sprintf("title ILIKE $%d", argID))
		args = append(args, "%"+f.Title+"%")
		argID++
	}
	if f.MinRating != nil {
		conditions = append(conditions,
			fmt.Sprintf(`(CASE WHEN imdb_score ~ '^[0-9]+(\.[0-9]+)?$' THEN imdb_score::double precision END) >= $%d`, argID))
		args = append(args, *f.MinRating)
		argID++
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to filter movies: %w", err)
	}
	defer rows.Close()
	return collectMovies(rows)
}

func (r *MovieRepository) Update(movie *models.Movie) error {
	query := `
		UPDATE movies SET title = $1, year = $2, genre = $3, director = $4, actors = $5,
			imdb_score = $6, rotten_tomatoes_score = $7, metacritic_score = $8,
			plot = $9, poster_url = $10, runtime = $11, personal_rating = $12, tags = $13, notes = $14,
			watched = $15, date_added = $16, date_watched = $17, lent_out = $18, lent_to = $19, date_lent = $20,
			tmdb_id = $21, backdrop_url = $22, tmdb_rating = $23, tmdb_vote_count = $24,
			cast_data = $25, trailers_data = $26, similar_movies_data = $27, sources = $28
		WHERE id = $29`

	result, err := r.db.Exec(query,
		movie.Title, movie.Year, movie.Genre, movie.Director, movie.Actors,
		movie.IMDBScore, movie.RottenTomatoesScore, movie.MetacriticScore,
		movie.Plot, movie.PosterURL, movie.Runtime, movie.PersonalRating, movie.Tags, movie.Notes,
		movie.Watched, movie.DateAdded, movie.DateWatched, movie.LentOut, movie.LentTo, movie.DateLent,
		movie.TMDBID, movie.BackdropURL, movie.TMDBRating, movie.TMDBVoteCount,
		movie.CastData, movie.TrailersData, movie.SimilarMoviesData, movie.Sources,
		movie.ID)
	if err != nil {
		return fmt.Errorf("failed to update movie: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MovieRepository) UpdateEnrichment(id int, e EnrichmentUpdate) error {
	query := `
		UPDATE movies SET tmdb_id = $1, backdrop_url = $2, tmdb_rating = $3, tmdb_vote_count = $4,
			cast_data = $5, trailers_data = $6, similar_movies_data = $7
		WHERE id = $8`

	result, err := r.db.Exec(query,
		e.TMDBID, e.BackdropURL, e.TMDBRating, e.TMDBVoteCount,
		e.CastData, e.TrailersData, e.SimilarMoviesData, id)
	if err != nil {
		return fmt.Errorf("failed to update enrichment data: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MovieRepository) Delete(id int) error {
	result, err := r.db.Exec("DELETE FROM movies WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete movie: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func collectMovies(rows *sql.Rows) ([]*models.Movie, error) {
	movies := []*models.Movie{}
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan movie: %w", err)
		}
		movies = append(movies, m)
	}
	return movies, rows.Err()
}
