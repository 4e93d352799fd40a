package metadata

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const (
	tmdbProfileBase  = "https://image.tmdb.org/t/p/w185"
	tmdbSimilarBase  = "https://image.tmdb.org/t/p/w300"
	tmdbPosterBase   = "https://image.tmdb.org/t/p/w500"
	tmdbBackdropBase = "https://image.tmdb.org/t/p/w1280"
)

type TMDBScraper struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewTMDBScraper(apiKey string) *TMDBScraper {
	return &TMDBScraper{
		apiKey:  apiKey,
		baseURL: "https://api.themoviedb.org/3",
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *TMDBScraper) Enabled() bool { return s.apiKey != "" }

type tmdbCastMember struct {
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path"`
}

type tmdbCrewMember struct {
	Name string `json:"name"`
	Job  string `json:"job"`
}

type tmdbVideo struct {
	Name string `json:"name"`
	Key  string `json:"key"`
	Site string `json:"site"`
	Type string `json:"type"`
}

type tmdbSimilarEntry struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	PosterPath  string `json:"poster_path"`
	ReleaseDate string `json:"release_date"`
	Overview    string `json:"overview"`
}

// tmdbDetails is the movie details response with credits, videos and similar
// titles appended in the same call.
type tmdbDetails struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	Overview     string  `json:"overview"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	ReleaseDate  string  `json:"release_date"`
	Runtime      int     `json:"runtime"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int     `json:"vote_count"`
	Genres       []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"genres"`
	Credits struct {
		Cast []tmdbCastMember `json:"cast"`
		Crew []tmdbCrewMember `json:"crew"`
	} `json:"credits"`
	Videos struct {
		Results []tmdbVideo `json:"results"`
	} `json:"videos"`
	Similar struct {
		Results []tmdbSimilarEntry `json:"results"`
	} `json:"similar"`
}

// SearchFirst returns the TMDB id of the first (most relevant) search result,
// with no disambiguation. Returns 0 if nothing matched.
func (s *TMDBScraper) SearchFirst(title string) (int, error) {
	if s.apiKey == "" {
		return 0, fmt.Errorf("TMDB API key not configured")
	}

	reqURL := fmt.Sprintf("%s/search/movie?api_key=%s&query=%s&language=en-US",
		s.baseURL, s.apiKey, url.QueryEscape(title))
	resp, err := s.client.Get(reqURL)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return 0, fmt.Errorf("TMDB search returned %d", resp.StatusCode)
	}

	var result struct {
		Results []struct {
			ID int `json:"id"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, err
	}
	if len(result.Results) == 0 {
		return 0, nil
	}
	return result.Results[0].ID, nil
}

// GetDetails fetches full movie details including cast, videos and similar
// titles in one follow-up call.
func (s *TMDBScraper) GetDetails(movieID int) (*tmdbDetails, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("TMDB API key not configured")
	}

	reqURL := fmt.Sprintf("%s/movie/%d?api_key=%s&language=en-US&append_to_response=credits,videos,similar",
		s.baseURL, movieID, s.apiKey)
	resp, err := s.client.Get(reqURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("TMDB details request returned %d", resp.StatusCode)
	}

	var details tmdbDetails
	if err := json.NewDecoder(resp.Body).Decode(&details); err != nil {
		return nil, err
	}
	return &details, nil
}

// FindByIMDBID resolves an IMDB id to a TMDB movie id via the find endpoint.
// Returns 0 if TMDB knows no movie under that id.
func (s *TMDBScraper) FindByIMDBID(imdbID string) (int, error) {
	if s.apiKey == "" {
		return 0, fmt.Errorf("TMDB API key not configured")
	}

	reqURL := fmt.Sprintf("%s/find/%s?api_key=%s&external_source=imdb_id",
		s.baseURL, url.PathEscape(imdbID), s.apiKey)
	resp, err := s.client.Get(reqURL)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return 0, fmt.Errorf("TMDB find returned %d", resp.StatusCode)
	}

	var result struct {
		MovieResults []struct {
			ID int `json:"id"`
		} `json:"movie_results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, err
	}
	if len(result.MovieResults) == 0 {
		return 0, nil
	}
	return result.MovieResults[0].ID, nil
}
