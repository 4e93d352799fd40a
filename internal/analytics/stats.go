package analytics

import (
	"sort"
	"strings"

	"github.com/reelkeep/reelkeep/internal/models"
)

type Stats struct {
	TotalMovies  int            `json:"total_movies"`
	Genres       map[string]int `json:"genres"`
	Decades      map[string]int `json:"decades"`
	TopDirectors map[string]int `json:"top_directors"`
}

// Compute tallies collection-wide frequencies in one pass. Genre strings are
// split on commas and each trimmed token counted on its own; director
// strings are counted whole, so co-director entries form a single combined
// key. Decades come from the first three characters of the year plus "0s".
func Compute(movies []*models.Movie) *Stats {
	genres := make(map[string]int)
	decades := make(map[string]int)
	directors := make(map[string]int)

	for _, m := range movies {
		if m.Genre != nil && *m.Genre != "" {
			for _, g := range strings.Split(*m.Genre, ",") {
				g = strings.TrimSpace(g)
				if g != "" {
					genres[g]++
				}
			}
		}
		if m.Year != nil && *m.Year != "" {
			y := *m.Year
			if len(y) > 3 {
				y = y[:3]
			}
			decades[y+"0s"]++
		}
		if m.Director != nil && *m.Director != "" {
			directors[*m.Director]++
		}
	}

	return &Stats{
		TotalMovies:  len(movies),
		Genres:       topN(genres, 10),
		Decades:      decades,
		TopDirectors: topN(directors, 10),
	}
}

func topN(counts map[string]int, n int) map[string]int {
	type entry struct {
		key   string
		count int
	}
	entries := make([]entry, 0, len(counts))
	for k, v := range counts {
		entries = append(entries, entry{k, v})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].count > entries[j].count })

	if len(entries) > n {
		entries = entries[:n]
	}
	top := make(map[string]int, len(entries))
	for _, e := range entries {
		top[e.key] = e.count
	}
	return top
}
