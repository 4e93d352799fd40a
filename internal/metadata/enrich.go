package metadata

import (
	"fmt"
	"log"
	"strings"

	"github.com/reelkeep/reelkeep/internal/models"
)

const (
	maxCastEntries    = 5
	maxTrailers       = 3
	maxSimilarMovies  = 5
	maxOverviewLength = 200
)

// Result is the normalized record shape produced by merging both providers.
type Result struct {
	Title               string
	Year                *string
	Genre               *string
	Director            *string
	Actors              *string
	Plot                *string
	PosterURL           *string
	BackdropURL         *string
	Runtime             *string
	IMDBScore           *string
	RottenTomatoesScore *string
	MetacriticScore     *string
	TMDBID              *int
	TMDBRating          *float64
	TMDBVoteCount       *int
	Cast                []models.CastMember
	Trailers            []models.Trailer
	SimilarMovies       []models.SimilarMovie
}

// Enricher consults TMDB for rich metadata and OMDb for aggregated ratings,
// merging partial results into one Result. Provider faults are logged and
// absorbed; a lookup comes back nil only when both providers yield nothing.
type Enricher struct {
	tmdb *TMDBScraper
	omdb *OMDBScraper
}

func NewEnricher(tmdb *TMDBScraper, omdb *OMDBScraper) *Enricher {
	return &Enricher{tmdb: tmdb, omdb: omdb}
}

// SearchByTitle resolves a title through TMDB (first search hit, then full
// details) and overlays OMDb ratings. Without a TMDB key, or when TMDB has
// no results or fails, OMDb alone is used.
func (e *Enricher) SearchByTitle(title string) *Result {
	if !e.tmdb.Enabled() {
		log.Printf("enrich: TMDB API key not configured, falling back to OMDb only")
		return e.omdbOnly(title)
	}

	movieID, err := e.tmdb.SearchFirst(title)
	if err != nil {
		log.Printf("enrich: TMDB lookup failed: %v", err)
		return e.omdbOnly(title)
	}
	if movieID == 0 {
		log.Printf("enrich: TMDB found no results for %q", title)
		return e.omdbOnly(title)
	}

	details, err := e.tmdb.GetDetails(movieID)
	if err != nil {
		log.Printf("enrich: TMDB details failed: %v", err)
		return e.omdbOnly(title)
	}

	// Ratings lookup uses TMDB's canonical title, not the raw query.
	var omdbData *omdbResult
	if e.omdb.Enabled() {
		omdbData, err = e.omdb.ByTitle(details.Title)
		if err != nil {
			log.Printf("enrich: OMDb lookup failed: %v", err)
			omdbData = nil
		}
	}

	return combine(details, omdbData)
}

// SearchByIMDBID resolves an IMDB id through both providers. The id is
// normalized to the tt-prefixed form first.
func (e *Enricher) SearchByIMDBID(imdbID string) *Result {
	if !strings.HasPrefix(imdbID, "tt") {
		imdbID = "tt" + imdbID
	}

	var omdbData *omdbResult
	if e.omdb.Enabled() {
		var err error
		omdbData, err = e.omdb.ByIMDBID(imdbID)
		if err != nil {
			log.Printf("enrich: OMDb lookup by IMDB id failed: %v", err)
			omdbData = nil
		}
	}

	var details *tmdbDetails
	if e.tmdb.Enabled() {
		movieID, err := e.tmdb.FindByIMDBID(imdbID)
		if err != nil {
			log.Printf("enrich: TMDB lookup by IMDB id failed: %v", err)
		} else if movieID != 0 {
			details, err = e.tmdb.GetDetails(movieID)
			if err != nil {
				log.Printf("enrich: TMDB details failed: %v", err)
				details = nil
			}
		}
	}

	if details != nil {
		return combine(details, omdbData)
	}
	if omdbData != nil {
		return mapOMDB(omdbData)
	}
	return nil
}

func (e *Enricher) omdbOnly(title string) *Result {
	if !e.omdb.Enabled() {
		return nil
	}
	data, err := e.omdb.ByTitle(title)
	if err != nil {
		log.Printf("enrich: OMDb search failed: %v", err)
		return nil
	}
	if data == nil {
		return nil
	}
	return mapOMDB(data)
}

// combine merges TMDB details with optional OMDb data. TMDB is authoritative
// for every descriptive field; OMDb contributes the three rating scores and
// a runtime fallback when TMDB had none.
func combine(t *tmdbDetails, o *omdbResult) *Result {
	var cast []models.CastMember
	for _, c := range t.Credits.Cast {
		if len(cast) == maxCastEntries {
			break
		}
		var profile *string
		if c.ProfilePath != "" {
			p := tmdbProfileBase + c.ProfilePath
			profile = &p
		}
		cast = append(cast, models.CastMember{Name: c.Name, Character: c.Character, ProfilePath: profile})
	}

	var trailers []models.Trailer
	for _, v := range t.Videos.Results {
		if len(trailers) == maxTrailers {
			break
		}
		if (v.Type != "Trailer" && v.Type != "Teaser") || v.Site != "YouTube" {
			continue
		}
		u := "https://www.youtube.com/watch?v=" + v.Key
		trailers = append(trailers, models.Trailer{Name: v.Name, Key: v.Key, Site: v.Site, Type: v.Type, URL: &u})
	}

	var similar []models.SimilarMovie
	for _, m := range t.Similar.Results {
		if len(similar) == maxSimilarMovies {
			break
		}
		var poster *string
		if m.PosterPath != "" {
			p := tmdbSimilarBase + m.PosterPath
			poster = &p
		}
		similar = append(similar, models.SimilarMovie{
			ID:          m.ID,
			Title:       m.Title,
			PosterPath:  poster,
			ReleaseDate: m.ReleaseDate,
			Overview:    truncateOverview(m.Overview),
		})
	}

	var directors []string
	for _, c := range t.Credits.Crew {
		if c.Job == "Director" {
			directors = append(directors, c.Name)
		}
	}

	var genres []string
	for _, g := range t.Genres {
		genres = append(genres, g.Name)
	}

	r := &Result{
		Title:         t.Title,
		TMDBRating:    &t.VoteAverage,
		TMDBVoteCount: &t.VoteCount,
		Cast:          cast,
		Trailers:      trailers,
		SimilarMovies: similar,
	}
	id := t.ID
	r.TMDBID = &id

	if len(t.ReleaseDate) >= 4 {
		y := t.ReleaseDate[:4]
		r.Year = &y
	}
	if len(genres) > 0 {
		g := strings.Join(genres, ", ")
		r.Genre = &g
	}
	if len(directors) > 0 {
		d := strings.Join(directors, ", ")
		r.Director = &d
	}
	if len(cast) > 0 {
		var names []string
		for _, c := range cast {
			names = append(names, c.Name)
		}
		a := strings.Join(names, ", ")
		r.Actors = &a
	}
	if t.Overview != "" {
		p := t.Overview
		r.Plot = &p
	}
	if t.PosterPath != "" {
		p := tmdbPosterBase + t.PosterPath
		r.PosterURL = &p
	}
	if t.BackdropPath != "" {
		b := tmdbBackdropBase + t.BackdropPath
		r.BackdropURL = &b
	}
	if t.Runtime != 0 {
		rt := fmt.Sprintf("%d min", t.Runtime)
		r.Runtime = &rt
	}

	if o != nil {
		if o.IMDBRating != "" && o.IMDBRating != "N/A" {
			v := o.IMDBRating
			r.IMDBScore = &v
		}
		r.RottenTomatoesScore = extractRating(o.Ratings, "Rotten Tomatoes")
		r.MetacriticScore = extractRating(o.Ratings, "Metacritic")

		if r.Runtime == nil && o.Runtime != "" && o.Runtime != "N/A" {
			rt := o.Runtime
			r.Runtime = &rt
		}
	}

	return r
}

// mapOMDB converts an OMDb-only payload into the normalized shape. There is
// no cast, trailer or similar-title data on this path.
func mapOMDB(o *omdbResult) *Result {
	r := &Result{
		Title:               o.Title,
		IMDBScore:           nil,
		RottenTomatoesScore: extractRating(o.Ratings, "Rotten Tomatoes"),
		MetacriticScore:     extractRating(o.Ratings, "Metacritic"),
	}
	if o.Year != "" {
		y := o.Year
		r.Year = &y
	}
	if o.Genre != "" {
		g := o.Genre
		r.Genre = &g
	}
	if o.Director != "" {
		d := o.Director
		r.Director = &d
	}
	if o.Actors != "" {
		a := o.Actors
		r.Actors = &a
	}
	if o.Plot != "" {
		p := o.Plot
		r.Plot = &p
	}
	if o.Poster != "" && o.Poster != "N/A" {
		p := o.Poster
		r.PosterURL = &p
	}
	if o.Runtime != "" {
		rt := o.Runtime
		r.Runtime = &rt
	}
	if o.IMDBRating != "" && o.IMDBRating != "N/A" {
		v := o.IMDBRating
		r.IMDBScore = &v
	}
	return r
}

// truncateOverview caps an overview at 200 characters, counting runes so a
// multi-byte character is never split.
func truncateOverview(overview string) string {
	runes := []rune(overview)
	if len(runes) > maxOverviewLength {
		return string(runes[:maxOverviewLength]) + "..."
	}
	return overview
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
