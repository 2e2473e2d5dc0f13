// Package recommend selects a single catalog item for a user from mood,
// free-text preference, and categorical constraints.
package recommend

import (
	"log/slog"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/reelpick/reelpick/internal/catalog"
	"github.com/reelpick/reelpick/internal/fuzzy"
	"github.com/reelpick/reelpick/internal/similarity"
)

const (
	// Blend weights for the final score.
	similarityWeight = 0.7
	moodWeight       = 0.3

	// topCandidates is how many of the best-scored items enter the final
	// random pick.
	topCandidates = 10

	// fuzzyExpansionLimit is how many fuzzy-matched descriptions widen the
	// free-text preference before vectorization.
	fuzzyExpansionLimit = 5
)

// SentinelMessage is returned to callers when filtering and deduplication
// leave no candidates. It signals "relax your criteria", not an error.
const SentinelMessage = "No new recommendations available, please adjust your criteria."

// Query carries the user's inputs for one recommendation call. Duration,
// Reviews, Polarity and Country are accepted for interface compatibility but
// not consumed by scoring.
type Query struct {
	Mood          int    // 0-10
	PhysicalState int    // 0-10
	Preference    string // free-text content preference
	Genre         string
	Duration      string // reserved
	Reviews       string // reserved
	Polarity      string // reserved
	ContentType   catalog.ContentType
	ReleaseYear   int // 0 means absent: a year is drawn from the catalog
	Country       string
}

// Result is the outcome of a recommendation call. A zero Result is the
// no-candidates sentinel.
type Result struct {
	Title string  `json:"title,omitempty" yaml:"title,omitempty"`
	Score float64 `json:"score" yaml:"score"`
}

// OK reports whether the result carries a concrete recommendation.
func (r Result) OK() bool {
	return r.Title != ""
}

// scoredItem is the per-request working view of a candidate. It never
// outlives the call that built it.
type scoredItem struct {
	item       catalog.Item
	similarity float64
	fuzzy      float64
	final      float64
}

// Engine runs the recommendation pipeline over an immutable catalog store.
// It owns the session history and the random source used for the default
// year draw and the top-candidate shuffle.
type Engine struct {
	store   *catalog.Store
	history *History
	rng     *rand.Rand
}

// NewEngine creates an engine over the given store. A non-zero seed makes the
// default-year draw and top-candidate shuffle reproducible.
func NewEngine(store *catalog.Store, seed int64) *Engine {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Engine{
		store:   store,
		history: NewHistory(),
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// History exposes the session history for inspection by the caller.
func (e *Engine) History() *History {
	return e.history
}

// Recommend runs the full pipeline: filter, relax, score, deduplicate
// against the session history, blend, and pick one of the top candidates at
// random. It never fails for expected-empty conditions; the zero Result is
// the "no new recommendations" sentinel.
func (e *Engine) Recommend(q Query) Result {
	year := q.ReleaseYear
	if year == 0 {
		years := e.store.DistinctYears()
		if len(years) > 0 {
			year = years[e.rng.Intn(len(years))]
			slog.Debug("No release year given, drew one from the catalog", "year", year)
		}
	}

	params := catalog.FilterParams{Type: q.ContentType, Genre: q.Genre, Year: year}
	candidates := e.store.Filter(params)

	if len(candidates) == 0 {
		slog.Debug("No exact match found, relaxing constraints")
		// The relaxation pass applies an unchanged constraint set, so it can
		// only re-confirm the empty result before the similarity fallback.
		candidates = e.store.Filter(params)

		if len(candidates) == 0 {
			slog.Debug("No candidates after relaxing, falling back to content similarity")
			return e.similarityFallback(q)
		}
	}

	simScores := e.scoreDescriptions(q.Preference, descriptions(candidates))

	scored := make([]scoredItem, 0, len(candidates))
	for i, item := range candidates {
		if e.history.Contains(item.Title) {
			continue
		}
		var sim float64
		if simScores != nil {
			sim = simScores[i]
		}
		fz := MoodGenreScore(q.Mood, q.PhysicalState, q.Genre)
		scored = append(scored, scoredItem{
			item:       item,
			similarity: sim,
			fuzzy:      fz,
			final:      similarityWeight*sim + moodWeight*fz,
		})
	}

	if len(scored) == 0 {
		slog.Debug("All matching titles already recommended this session")
		return Result{}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].final > scored[j].final
	})

	top := scored
	if len(top) > topCandidates {
		top = top[:topCandidates]
	}
	// Shuffle the top candidates so repeated identical queries do not pin
	// the single best-scored title.
	e.rng.Shuffle(len(top), func(i, j int) {
		top[i], top[j] = top[j], top[i]
	})

	pick := top[0]
	e.history.Add(pick.item.Title)
	slog.Debug("Recommendation selected", "title", pick.item.Title, "score", pick.final)

	return Result{Title: pick.item.Title, Score: pick.final}
}

// similarityFallback scores the whole catalog against the preference text and
// returns the single most similar item. It bypasses mood blending, history
// deduplication, and the top-candidate shuffle.
func (e *Engine) similarityFallback(q Query) Result {
	scores := e.scoreDescriptions(q.Preference, e.store.Descriptions())
	if scores == nil {
		return Result{}
	}

	best := 0
	for i, score := range scores {
		if score > scores[best] {
			best = i
		}
	}
	item := e.store.Items()[best]
	return Result{Title: item.Title, Score: scores[best]}
}

// scoreDescriptions widens the free-text preference into a denser
// pseudo-document by joining its closest fuzzy matches from the corpus, then
// scores every corpus entry against it. A nil return means no signal.
func (e *Engine) scoreDescriptions(preference string, corpus []string) []float64 {
	matched := fuzzy.Extract(preference, corpus, fuzzyExpansionLimit)
	expanded := strings.Join(matched, " ")
	return similarity.Scores(expanded, corpus)
}

func descriptions(items []catalog.Item) []string {
	result := make([]string, len(items))
	for i, item := range items {
		result[i] = item.Description
	}
	return result
}
