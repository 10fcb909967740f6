package domain

import (
	"fmt"
	"slices"
	"strings"
)

// Kind distinguishes the catalog an entity belongs to
type Kind string

const (
	KindTV    Kind = "tv"
	KindMovie Kind = "movie"
)

// ParseKind converts a user supplied string into a Kind
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tv", "show", "shows":
		return KindTV, nil
	case "movie", "movies":
		return KindMovie, nil
	default:
		return "", fmt.Errorf("unknown kind: %q", s)
	}
}

// Record holds the bookkeeping shared by every persisted catalog entry.
// CategoryTypes accumulates the listing contexts ("popular", "top_rated",
// or a search query) the entry has been fetched under.
type Record struct {
	ID            int64    `json:"id"`
	CategoryTypes []string `json:"category_types,omitempty"`
	Page          int      `json:"page"`        // Page of the listing that last wrote this row
	TotalPages    int      `json:"total_pages"` // Total pages reported by that listing
	Position      int      `json:"position"`    // Index within that page
	FetchedAt     int64    `json:"fetched_at"`  // Unix timestamp of the last persisting write
}

// HasCategory reports whether the entry was fetched under the given tag
func (r *Record) HasCategory(tag string) bool {
	return slices.Contains(r.CategoryTypes, tag)
}

// Details carries the fields only the detail fetch populates.
type Details[E any] struct {
	Reviews []Review `json:"reviews,omitempty"`
	Videos  []Video  `json:"videos,omitempty"`
	Casts   []Cast   `json:"casts,omitempty"`
	Crews   []Crew   `json:"crews,omitempty"`
	Similar []E      `json:"similar,omitempty"`
}

// IsEmpty returns true if no detail-only field has been populated
func (d *Details[E]) IsEmpty() bool {
	return len(d.Reviews) == 0 && len(d.Videos) == 0 &&
		len(d.Casts) == 0 && len(d.Crews) == 0 && len(d.Similar) == 0
}

// Entity is implemented by the pointer types of persisted catalog entries
// (*TvShow, *Movie). The zero value (nil) means "absent".
type Entity[E any] interface {
	comparable
	Meta() *Record
	Detail() *Details[E]
	GetTitle() string
}

// Genre is a catalog genre tag
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Review is a user review attached to a title
type Review struct {
	ID      string `json:"id"`
	Author  string `json:"author"`
	Content string `json:"content"`
	URL     string `json:"url,omitempty"`
}

// Video is a trailer/clip reference
type Video struct {
	ID   string `json:"id"`
	Key  string `json:"key"`  // Site-specific key (YouTube id)
	Name string `json:"name"`
	Site string `json:"site"` // "YouTube", "Vimeo"
	Type string `json:"type"` // "Trailer", "Teaser", "Clip"
}

// Cast is an actor credit
type Cast struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character,omitempty"`
	ProfilePath string `json:"profile_path,omitempty"`
	Order       int    `json:"order"`
}

// Crew is a production credit
type Crew struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Job         string `json:"job,omitempty"`
	Department  string `json:"department,omitempty"`
	ProfilePath string `json:"profile_path,omitempty"`
}

// TvShow represents a TV series
type TvShow struct {
	Record
	Name            string  `json:"name"`
	OriginalName    string  `json:"original_name,omitempty"`
	Overview        string  `json:"overview,omitempty"`
	FirstAirDate    string  `json:"first_air_date,omitempty"` // YYYY-MM-DD
	Status          string  `json:"status,omitempty"`         // "Returning Series", "Ended"
	Genres          []Genre `json:"genres,omitempty"`
	EpisodeRunTime  int     `json:"episode_run_time,omitempty"` // Minutes
	NumberOfSeasons int     `json:"number_of_seasons,omitempty"`
	VoteAverage     float64 `json:"vote_average,omitempty"` // 0-10 scale
	PosterPath      string  `json:"poster_path,omitempty"`
	BackdropPath    string  `json:"backdrop_path,omitempty"`

	Details[*TvShow]
}

func (t *TvShow) Meta() *Record              { return &t.Record }
func (t *TvShow) Detail() *Details[*TvShow] { return &t.Details }
func (t *TvShow) GetTitle() string           { return t.Name }

// Year returns the first air year (0 if unknown)
func (t *TvShow) Year() int { return parseYear(t.FirstAirDate) }

// Movie represents a feature film
type Movie struct {
	Record
	Title         string  `json:"title"`
	OriginalTitle string  `json:"original_title,omitempty"`
	Overview      string  `json:"overview,omitempty"`
	ReleaseDate   string  `json:"release_date,omitempty"` // YYYY-MM-DD
	Status        string  `json:"status,omitempty"`       // "Released", "In Production"
	Genres        []Genre `json:"genres,omitempty"`
	Runtime       int     `json:"runtime,omitempty"` // Minutes
	VoteAverage   float64 `json:"vote_average,omitempty"`
	PosterPath    string  `json:"poster_path,omitempty"`
	BackdropPath  string  `json:"backdrop_path,omitempty"`

	Details[*Movie]
}

func (m *Movie) Meta() *Record             { return &m.Record }
func (m *Movie) Detail() *Details[*Movie] { return &m.Details }
func (m *Movie) GetTitle() string          { return m.Title }

// Year returns the release year (0 if unknown)
func (m *Movie) Year() int { return parseYear(m.ReleaseDate) }

// FormattedRuntime returns the runtime in a human-readable format
func (m *Movie) FormattedRuntime() string {
	if m.Runtime <= 0 {
		return ""
	}
	h, mins := m.Runtime/60, m.Runtime%60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, mins)
	}
	return fmt.Sprintf("%dm", mins)
}

// GenreNames flattens a genre list for display
func GenreNames(genres []Genre) []string {
	names := make([]string, 0, len(genres))
	for _, g := range genres {
		names = append(names, g.Name)
	}
	return names
}

func parseYear(date string) int {
	if len(date) < 4 {
		return 0
	}
	var y int
	if _, err := fmt.Sscanf(date[:4], "%d", &y); err != nil {
		return 0
	}
	return y
}
