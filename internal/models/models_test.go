package models

import (
	"encoding/json"
	"testing"
)

func TestJSONListMarshal(t *testing.T) {
	tests := []struct {
		name string
		in   JSONList
		want string
	}{
		{"empty renders as empty array", "", "[]"},
		{"stored array passes through", `[{"name":"Neo"}]`, `[{"name":"Neo"}]`},
		{"stored scalar passes through", "[1,2,3]", "[1,2,3]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestJSONListUnmarshal(t *testing.T) {
	var j JSONList
	if err := json.Unmarshal([]byte(`["blu-ray","digital"]`), &j); err != nil {
		t.Fatal(err)
	}
	if string(j) != `["blu-ray","digital"]` {
		t.Errorf("array input stored as %q", j)
	}

	if err := json.Unmarshal([]byte(`"[\"dvd\"]"`), &j); err != nil {
		t.Fatal(err)
	}
	if string(j) != `["dvd"]` {
		t.Errorf("string input stored as %q", j)
	}

	if err := json.Unmarshal([]byte(`42`), &j); err == nil {
		t.Error("scalar input should be rejected")
	}
}

func TestJSONListScanValue(t *testing.T) {
	var j JSONList
	if err := j.Scan(nil); err != nil || j != "" {
		t.Errorf("NULL scan: j=%q err=%v", j, err)
	}
	if err := j.Scan([]byte(`["a"]`)); err != nil || string(j) != `["a"]` {
		t.Errorf("bytes scan: j=%q err=%v", j, err)
	}

	v, err := JSONList("").Value()
	if err != nil || v != nil {
		t.Errorf("empty list should store NULL, got %v", v)
	}
	v, err = JSONList(`["a"]`).Value()
	if err != nil || v != `["a"]` {
		t.Errorf("value = %v", v)
	}
}

func TestApplyUpdates(t *testing.T) {
	year := "1999"
	m := &Movie{ID: 7, Title: "The Matrix", Year: &year}

	err := m.ApplyUpdates(map[string]interface{}{
		"title":           "The Matrix Reloaded",
		"year":            "2003",
		"watched":         true,
		"personal_rating": 8.5,
		"tmdb_vote_count": float64(1200), // JSON numbers decode as float64
		"notes":           nil,
		"sources":         []interface{}{"blu-ray"},
	})
	if err != nil {
		t.Fatal(err)
	}

	if m.Title != "The Matrix Reloaded" {
		t.Errorf("title = %q", m.Title)
	}
	if m.Year == nil || *m.Year != "2003" {
		t.Errorf("year = %v", m.Year)
	}
	if !m.Watched {
		t.Error("watched not set")
	}
	if m.PersonalRating == nil || *m.PersonalRating != 8.5 {
		t.Errorf("personal_rating = %v", m.PersonalRating)
	}
	if m.TMDBVoteCount == nil || *m.TMDBVoteCount != 1200 {
		t.Errorf("tmdb_vote_count = %v", m.TMDBVoteCount)
	}
	if m.Notes != nil {
		t.Error("explicit null should clear the field")
	}
	if string(m.Sources) != `["blu-ray"]` {
		t.Errorf("sources = %q", m.Sources)
	}
}

func TestApplyUpdatesRejectsUnknownKeys(t *testing.T) {
	m := &Movie{ID: 7, Title: "The Matrix"}
	if err := m.ApplyUpdates(map[string]interface{}{"poster": "x"}); err == nil {
		t.Error("unknown key should be rejected")
	}
	if err := m.ApplyUpdates(map[string]interface{}{"id": 99}); err == nil {
		t.Error("id must not be updatable")
	}
	if m.ID != 7 {
		t.Errorf("id changed to %d", m.ID)
	}
}

func TestApplyUpdatesRejectsEmptyTitle(t *testing.T) {
	m := &Movie{Title: "Alien"}
	if err := m.ApplyUpdates(map[string]interface{}{"title": ""}); err == nil {
		t.Error("empty title should be rejected")
	}
	if m.Title != "Alien" {
		t.Errorf("title changed to %q", m.Title)
	}
}

func TestApplyUpdatesTypeErrors(t *testing.T) {
	m := &Movie{Title: "Alien"}
	if err := m.ApplyUpdates(map[string]interface{}{"personal_rating": "not a number"}); err == nil {
		t.Error("non-numeric rating should be rejected")
	}
	if err := m.ApplyUpdates(map[string]interface{}{"watched": "maybe"}); err == nil {
		t.Error("non-boolean watched should be rejected")
	}
	if err := m.ApplyUpdates(map[string]interface{}{"sources": 3.14}); err == nil {
		t.Error("scalar sources should be rejected")
	}
}
