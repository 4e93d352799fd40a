package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// ──────────────────── Enums ────────────────────

type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

// ──────────────────── JSONList ────────────────────

// JSONList is a JSON array stored as text. Request bodies may carry it as a
// native array or as a pre-encoded string; both end up in the same string
// storage form, and responses always present the decoded array.
type JSONList string

func (j JSONList) MarshalJSON() ([]byte, error) {
	if j == "" {
		return []byte("[]"), nil
	}
	if json.Valid([]byte(j)) {
		return []byte(j), nil
	}
	return json.Marshal(string(j))
}

func (j *JSONList) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*j = JSONList(s)
		return nil
	}
	var arr []interface{}
	if err := json.Unmarshal(data, &arr); err != nil {
		return fmt.Errorf("expected JSON array or string: %w", err)
	}
	raw, err := json.Marshal(arr)
	if err != nil {
		return err
	}
	*j = JSONList(raw)
	return nil
}

func (j *JSONList) Scan(value interface{}) error {
	if value == nil {
		*j = ""
		return nil
	}
	switch v := value.(type) {
	case string:
		*j = JSONList(v)
	case []byte:
		*j = JSONList(v)
	default:
		return fmt.Errorf("cannot scan %T into JSONList", value)
	}
	return nil
}

func (j JSONList) Value() (driver.Value, error) {
	if j == "" {
		return nil, nil
	}
	return string(j), nil
}

// ──────────────────── Movie ────────────────────

type Movie struct {
	ID                  int      `json:"id" db:"id"`
	Title               string   `json:"title" db:"title" validate:"required"`
	Year                *string  `json:"year" db:"year"`
	Genre               *string  `json:"genre" db:"genre"`
	Director            *string  `json:"director" db:"director"`
	Actors              *string  `json:"actors" db:"actors"`
	IMDBScore           *string  `json:"imdb_score" db:"imdb_score"`
	RottenTomatoesScore *string  `json:"rotten_tomatoes_score" db:"rotten_tomatoes_score"`
	MetacriticScore     *string  `json:"metacritic_score" db:"metacritic_score"`
	Plot                *string  `json:"plot" db:"plot"`
	PosterURL           *string  `json:"poster_url" db:"poster_url"`
	Runtime             *string  `json:"runtime" db:"runtime"`
	PersonalRating      *float64 `json:"personal_rating" db:"personal_rating"`

	// Tags is a raw JSON string and is returned undecoded, unlike Sources.
	Tags        *string    `json:"tags" db:"tags"`
	Notes       *string    `json:"notes" db:"notes"`
	Watched     bool       `json:"watched" db:"watched"`
	DateAdded   *time.Time `json:"date_added" db:"date_added"`
	DateWatched *time.Time `json:"date_watched" db:"date_watched"`

	LentOut  bool       `json:"lent_out" db:"lent_out"`
	LentTo   *string    `json:"lent_to" db:"lent_to"`
	DateLent *time.Time `json:"date_lent" db:"date_lent"`

	TMDBID            *int     `json:"tmdb_id" db:"tmdb_id"`
	BackdropURL       *string  `json:"backdrop_url" db:"backdrop_url"`
	TMDBRating        *float64 `json:"tmdb_rating" db:"tmdb_rating"`
	TMDBVoteCount     *int     `json:"tmdb_vote_count" db:"tmdb_vote_count"`
	CastData          JSONList `json:"cast_data" db:"cast_data"`
	TrailersData      JSONList `json:"trailers_data" db:"trailers_data"`
	SimilarMoviesData JSONList `json:"similar_movies_data" db:"similar_movies_data"`

	Sources JSONList `json:"sources" db:"sources"`
}

// ──────────────────── Enrichment sub-objects ────────────────────

type CastMember struct {
	Name        string  `json:"name"`
	Character   string  `json:"character"`
	ProfilePath *string `json:"profile_path"`
}

type Trailer struct {
	Name string  `json:"name"`
	Key  string  `json:"key"`
	Site string  `json:"site"`
	Type string  `json:"type"`
	URL  *string `json:"url"`
}

type SimilarMovie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	PosterPath  *string `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	Overview    string  `json:"overview"`
}

// ──────────────────── User ────────────────────

type User struct {
	ID           int       `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         UserRole  `json:"role" db:"role"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
