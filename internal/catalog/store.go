package catalog

import (
	"sort"
	"strings"
)

// Store holds the loaded catalog. It is read-only after construction and
// safe to share by reference across recommendation calls.
type Store struct {
	items []Item
	years []int
}

// NewStore builds a store over the given items. The slice is retained, not
// copied; callers must not mutate it afterwards.
func NewStore(items []Item) *Store {
	seen := make(map[int]bool)
	var years []int
	for _, item := range items {
		if !seen[item.ReleaseYear] {
			seen[item.ReleaseYear] = true
			years = append(years, item.ReleaseYear)
		}
	}
	sort.Ints(years)

	return &Store{
		items: items,
		years: years,
	}
}

// Items returns all catalog items in load order.
func (s *Store) Items() []Item {
	return s.items
}

// Len returns the number of catalog items.
func (s *Store) Len() int {
	return len(s.items)
}

// DistinctYears returns the sorted distinct release years present in the catalog.
func (s *Store) DistinctYears() []int {
	return s.years
}

// Descriptions returns every item's description, index-aligned with Items.
func (s *Store) Descriptions() []string {
	descriptions := make([]string, len(s.items))
	for i, item := range s.items {
		descriptions[i] = item.Description
	}
	return descriptions
}

// FilterParams are the categorical constraints applied when selecting candidates.
type FilterParams struct {
	Type  ContentType
	Genre string
	Year  int
}

// Matches reports whether an item satisfies every constraint: content type
// equal (case-insensitive), genre contained in listed_in (case-insensitive
// substring), and release year equal exactly.
func (p FilterParams) Matches(item Item) bool {
	if !strings.EqualFold(string(item.Type), string(p.Type)) {
		return false
	}
	if !strings.Contains(strings.ToLower(item.ListedIn), strings.ToLower(p.Genre)) {
		return false
	}
	return item.ReleaseYear == p.Year
}

// Filter returns the items satisfying the given constraints, in load order.
func (s *Store) Filter(p FilterParams) []Item {
	var matched []Item
	for _, item := range s.items {
		if p.Matches(item) {
			matched = append(matched, item)
		}
	}
	return matched
}

// CountByType returns how many items exist per content type.
func (s *Store) CountByType() map[ContentType]int {
	counts := make(map[ContentType]int)
	for _, item := range s.items {
		counts[item.Type]++
	}
	return counts
}

// TopGenres returns the most frequent genre tags, up to limit, ordered by
// descending count with alphabetical tie-break.
func (s *Store) TopGenres(limit int) []GenreCount {
	counts := make(map[string]int)
	for _, item := range s.items {
		for _, genre := range item.Genres() {
			counts[genre]++
		}
	}

	genres := make([]GenreCount, 0, len(counts))
	for genre, count := range counts {
		genres = append(genres, GenreCount{Genre: genre, Count: count})
	}
	sort.Slice(genres, func(i, j int) bool {
		if genres[i].Count != genres[j].Count {
			return genres[i].Count > genres[j].Count
		}
		return genres[i].Genre < genres[j].Genre
	})

	if limit > 0 && len(genres) > limit {
		genres = genres[:limit]
	}
	return genres
}

// GenreCount pairs a genre tag with its catalog frequency.
type GenreCount struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}
