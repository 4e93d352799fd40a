package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cast"
)

// ApplyUpdates overwrites the named fields on the movie with the decoded
// JSON values. Every key must be a known, updatable column; anything else is
// rejected so request bodies cannot set arbitrary attributes. The id is not
// updatable.
func (m *Movie) ApplyUpdates(updates map[string]interface{}) error {
	for key, value := range updates {
		if err := m.applyField(key, value); err != nil {
			return err
		}
	}
	return nil
}

func (m *Movie) applyField(key string, value interface{}) error {
	switch key {
	case "title":
		s, err := cast.ToStringE(value)
		if err != nil || s == "" {
			return fmt.Errorf("field %q must be a non-empty string", key)
		}
		m.Title = s
	case "year":
		return setStringPtr(&m.Year, key, value)
	case "genre":
		return setStringPtr(&m.Genre, key, value)
	case "director":
		return setStringPtr(&m.Director, key, value)
	case "actors":
		return setStringPtr(&m.Actors, key, value)
	case "imdb_score":
		return setStringPtr(&m.IMDBScore, key, value)
	case "rotten_tomatoes_score":
		return setStringPtr(&m.RottenTomatoesScore, key, value)
	case "metacritic_score":
		return setStringPtr(&m.MetacriticScore, key, value)
	case "plot":
		return setStringPtr(&m.Plot, key, value)
	case "poster_url":
		return setStringPtr(&m.PosterURL, key, value)
	case "runtime":
		return setStringPtr(&m.Runtime, key, value)
	case "personal_rating":
		return setFloatPtr(&m.PersonalRating, key, value)
	case "tags":
		return setStringPtr(&m.Tags, key, value)
	case "notes":
		return setStringPtr(&m.Notes, key, value)
	case "watched":
		b, err := cast.ToBoolE(value)
		if err != nil {
			return fmt.Errorf("field %q must be a boolean", key)
		}
		m.Watched = b
	case "date_added":
		return setTimePtr(&m.DateAdded, key, value)
	case "date_watched":
		return setTimePtr(&m.DateWatched, key, value)
	case "lent_out":
		b, err := cast.ToBoolE(value)
		if err != nil {
			return fmt.Errorf("field %q must be a boolean", key)
		}
		m.LentOut = b
	case "lent_to":
		return setStringPtr(&m.LentTo, key, value)
	case "date_lent":
		return setTimePtr(&m.DateLent, key, value)
	case "tmdb_id":
		return setIntPtr(&m.TMDBID, key, value)
	case "backdrop_url":
		return setStringPtr(&m.BackdropURL, key, value)
	case "tmdb_rating":
		return setFloatPtr(&m.TMDBRating, key, value)
	case "tmdb_vote_count":
		return setIntPtr(&m.TMDBVoteCount, key, value)
	case "cast_data":
		return setJSONList(&m.CastData, key, value)
	case "trailers_data":
		return setJSONList(&m.TrailersData, key, value)
	case "similar_movies_data":
		return setJSONList(&m.SimilarMoviesData, key, value)
	case "sources":
		return setJSONList(&m.Sources, key, value)
	default:
		return fmt.Errorf("unknown field: %s", key)
	}
	return nil
}

func setStringPtr(dst **string, key string, value interface{}) error {
	if value == nil {
		*dst = nil
		return nil
	}
	s, err := cast.ToStringE(value)
	if err != nil {
		return fmt.Errorf("field %q must be a string", key)
	}
	*dst = &s
	return nil
}

func setFloatPtr(dst **float64, key string, value interface{}) error {
	if value == nil {
		*dst = nil
		return nil
	}
	f, err := cast.ToFloat64E(value)
	if err != nil {
		return fmt.Errorf("field %q must be a number", key)
	}
	*dst = &f
	return nil
}

func setIntPtr(dst **int, key string, value interface{}) error {
	if value == nil {
		*dst = nil
		return nil
	}
	i, err := cast.ToIntE(value)
	if err != nil {
		return fmt.Errorf("field %q must be an integer", key)
	}
	*dst = &i
	return nil
}

func setTimePtr(dst **time.Time, key string, value interface{}) error {
	if value == nil {
		*dst = nil
		return nil
	}
	t, err := cast.ToTimeE(value)
	if err != nil {
		return fmt.Errorf("field %q must be a timestamp", key)
	}
	*dst = &t
	return nil
}

// setJSONList accepts a native array or a pre-encoded JSON string, matching
// the create path's handling of these columns.
func setJSONList(dst *JSONList, key string, value interface{}) error {
	switch v := value.(type) {
	case nil:
		*dst = ""
	case string:
		*dst = JSONList(v)
	case []interface{}:
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("field %q could not be encoded: %v", key, err)
		}
		*dst = JSONList(raw)
	default:
		return fmt.Errorf("field %q must be an array or string", key)
	}
	return nil
}
