package analytics

import (
	"fmt"
	"testing"

	"github.com/reelkeep/reelkeep/internal/models"
)

func strPtr(s string) *string { return &s }

func movie(title, year, genre, director string) *models.Movie {
	m := &models.Movie{Title: title}
	if year != "" {
		m.Year = strPtr(year)
	}
	if genre != "" {
		m.Genre = strPtr(genre)
	}
	if director != "" {
		m.Director = strPtr(director)
	}
	return m
}

func TestComputeCounts(t *testing.T) {
	movies := []*models.Movie{
		movie("Pulp Fiction", "1994", "Crime, Drama", "Quentin Tarantino"),
		movie("Reservoir Dogs", "1992", "Crime, Thriller", "Quentin Tarantino"),
		movie("The Matrix", "1999", "Action, Sci-Fi", "Lana Wachowski, Lilly Wachowski"),
		movie("Batman Begins", "2005", "Action", "Christopher Nolan"),
		movie("Untitled", "", "", ""),
	}

	s := Compute(movies)

	if s.TotalMovies != 5 {
		t.Errorf("total = %d, want 5", s.TotalMovies)
	}

	wantGenres := map[string]int{"Crime": 2, "Drama": 1, "Thriller": 1, "Action": 2, "Sci-Fi": 1}
	for g, n := range wantGenres {
		if s.Genres[g] != n {
			t.Errorf("genre %q = %d, want %d", g, s.Genres[g], n)
		}
	}

	wantDecades := map[string]int{"1990s": 3, "2000s": 1}
	if len(s.Decades) != len(wantDecades) {
		t.Errorf("decades = %v, want %v", s.Decades, wantDecades)
	}
	for d, n := range wantDecades {
		if s.Decades[d] != n {
			t.Errorf("decade %q = %d, want %d", d, s.Decades[d], n)
		}
	}

	// Co-directed entries count as one combined key, not per name.
	if s.TopDirectors["Quentin Tarantino"] != 2 {
		t.Errorf("Tarantino = %d, want 2", s.TopDirectors["Quentin Tarantino"])
	}
	if s.TopDirectors["Lana Wachowski, Lilly Wachowski"] != 1 {
		t.Errorf("combined director key missing: %v", s.TopDirectors)
	}
	if _, ok := s.TopDirectors["Lana Wachowski"]; ok {
		t.Error("co-director names must not be split")
	}
}

func TestComputeGenreTokensTrimmed(t *testing.T) {
	s := Compute([]*models.Movie{movie("X", "2020", " Action ,  Drama,", "")})
	if s.Genres["Action"] != 1 || s.Genres["Drama"] != 1 {
		t.Errorf("tokens not trimmed: %v", s.Genres)
	}
	if _, ok := s.Genres[""]; ok {
		t.Error("empty tokens must be dropped")
	}
}

func TestComputeEmpty(t *testing.T) {
	s := Compute(nil)
	if s.TotalMovies != 0 || len(s.Genres) != 0 || len(s.Decades) != 0 || len(s.TopDirectors) != 0 {
		t.Errorf("empty collection should yield empty stats: %+v", s)
	}
}

func TestTopNLimits(t *testing.T) {
	counts := make(map[string]int)
	for i := 0; i < 15; i++ {
		counts[fmt.Sprintf("d%02d", i)] = i + 1
	}
	top := topN(counts, 10)
	if len(top) != 10 {
		t.Fatalf("len = %d, want 10", len(top))
	}
	// The five smallest counts must have been dropped.
	for i := 0; i < 5; i++ {
		if _, ok := top[fmt.Sprintf("d%02d", i)]; ok {
			t.Errorf("low-count entry d%02d should not be in the top 10", i)
		}
	}
	if top["d14"] != 15 {
		t.Errorf("highest entry missing: %v", top)
	}
}
