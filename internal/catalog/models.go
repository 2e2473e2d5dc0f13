package catalog

import (
	"fmt"
	"strings"
)

// ContentType distinguishes movies from TV shows.
type ContentType string

const (
	Movie  ContentType = "Movie"
	TVShow ContentType = "TV Show"
)

// ParseContentType normalizes a free-form type string to a ContentType.
// Matching is case-insensitive and tolerant of the "tv show"/"tvshow" spellings.
func ParseContentType(s string) (ContentType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "movie":
		return Movie, nil
	case "tv show", "tvshow", "tv", "show":
		return TVShow, nil
	default:
		return "", fmt.Errorf("unknown content type %q", s)
	}
}

// Item represents a single catalog entry. Items are immutable after load.
type Item struct {
	Title       string      `json:"title"`
	Type        ContentType `json:"type"`
	Description string      `json:"description"`
	ListedIn    string      `json:"listed_in"` // Comma-separated genre tags
	ReleaseYear int         `json:"release_year"`
	Country     string      `json:"country"`
}

// Genres splits the comma-separated listed_in field into trimmed tags.
func (i Item) Genres() []string {
	if i.ListedIn == "" {
		return nil
	}
	parts := strings.Split(i.ListedIn, ",")
	genres := make([]string, 0, len(parts))
	for _, p := range parts {
		if g := strings.TrimSpace(p); g != "" {
			genres = append(genres, g)
		}
	}
	return genres
}
