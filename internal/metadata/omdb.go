package metadata

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

type OMDBScraper struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewOMDBScraper(apiKey string) *OMDBScraper {
	return &OMDBScraper{
		apiKey:  apiKey,
		baseURL: "http://www.omdbapi.com/",
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *OMDBScraper) Enabled() bool { return s.apiKey != "" }

type omdbRating struct {
	Source string `json:"Source"`
	Value  string `json:"Value"`
}

type omdbResult struct {
	Response   string       `json:"Response"`
	Error      string       `json:"Error"`
	Title      string       `json:"Title"`
	Year       string       `json:"Year"`
	Genre      string       `json:"Genre"`
	Director   string       `json:"Director"`
	Actors     string       `json:"Actors"`
	Plot       string       `json:"Plot"`
	Poster     string       `json:"Poster"`
	Runtime    string       `json:"Runtime"`
	IMDBRating string       `json:"imdbRating"`
	IMDBId     string       `json:"imdbID"`
	Ratings    []omdbRating `json:"Ratings"`
}

// ByTitle looks a title up on OMDb. A "False" response (unknown title) is
// returned as nil without error.
func (s *OMDBScraper) ByTitle(title string) (*omdbResult, error) {
	return s.get("t=" + url.QueryEscape(title))
}

// ByIMDBID looks up a movie by its IMDB id.
func (s *OMDBScraper) ByIMDBID(imdbID string) (*omdbResult, error) {
	return s.get("i=" + url.QueryEscape(imdbID))
}

func (s *OMDBScraper) get(param string) (*omdbResult, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("OMDb API key not configured")
	}

	reqURL := fmt.Sprintf("%s?%s&apikey=%s", s.baseURL, param, url.QueryEscape(s.apiKey))
	resp, err := s.client.Get(reqURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("OMDb request returned %d", resp.StatusCode)
	}

	var result omdbResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	if result.Response != "True" {
		return nil, nil
	}
	return &result, nil
}

// extractRating scans the OMDb named-ratings list for a source, matching
// case-insensitively on a substring of the source name.
func extractRating(ratings []omdbRating, sourceName string) *string {
	for _, r := range ratings {
		if containsFold(r.Source, sourceName) {
			v := r.Value
			return &v
		}
	}
	return nil
}
