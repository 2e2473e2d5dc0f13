package recommend

import (
	"fmt"
	"math"
	"testing"

	"github.com/reelpick/reelpick/internal/catalog"
)

func TestRecommendExactMatch(t *testing.T) {
	// Single movie matching all constraints: it must be the recommendation.
	description := "space pirates chase ancient treasure"
	store := catalog.NewStore([]catalog.Item{
		{Title: "Star Plunder", Type: catalog.Movie, Description: description, ListedIn: "Comedies, Sci-Fi", ReleaseYear: 2020},
	})
	engine := NewEngine(store, 1)

	result := engine.Recommend(Query{
		Mood:          8,
		PhysicalState: 6,
		Preference:    description,
		Genre:         "comedies",
		ContentType:   catalog.Movie,
		ReleaseYear:   2020,
	})

	if !result.OK() {
		t.Fatal("Expected a recommendation, got sentinel")
	}
	if result.Title != "Star Plunder" {
		t.Errorf("Expected 'Star Plunder', got %q", result.Title)
	}

	// Preference equals the sole description, so similarity is 1.0 and the
	// final score must be the exact weighted blend.
	expected := 0.7*1.0 + 0.3*MoodGenreScore(8, 6, "comedies")
	if math.Abs(result.Score-expected) > 1e-9 {
		t.Errorf("Expected blended score %v, got %v", expected, result.Score)
	}

	if got := engine.History().Titles(); len(got) != 1 || got[0] != "Star Plunder" {
		t.Errorf("Expected history [Star Plunder], got %v", got)
	}
}

func TestRecommendSimilarityFallback(t *testing.T) {
	store := catalog.NewStore([]catalog.Item{
		{Title: "Rebel Run", Type: catalog.Movie, Description: "galaxy rebels smuggle forbidden relics", ListedIn: "Sci-Fi", ReleaseYear: 2015},
		{Title: "Rise & Knead", Type: catalog.TVShow, Description: "sourdough bakery", ListedIn: "Reality", ReleaseYear: 2018},
	})
	engine := NewEngine(store, 1)

	// Nothing matches a 1999 comedy movie, so the pipeline falls through to
	// whole-catalog content similarity.
	result := engine.Recommend(Query{
		Mood:          5,
		PhysicalState: 5,
		Preference:    "galaxy rebels",
		Genre:         "comedies",
		ContentType:   catalog.Movie,
		ReleaseYear:   1999,
	})

	if !result.OK() {
		t.Fatal("Expected a fallback recommendation, got sentinel")
	}
	if result.Title != "Rebel Run" {
		t.Errorf("Expected globally most similar 'Rebel Run', got %q", result.Title)
	}
	if result.Score <= 0 {
		t.Errorf("Expected positive similarity score, got %v", result.Score)
	}

	// The fallback path bypasses session history entirely
	if engine.History().Len() != 0 {
		t.Errorf("Expected empty history after fallback, got %v", engine.History().Titles())
	}
}

func TestRecommendSentinelWhenExhausted(t *testing.T) {
	store := catalog.NewStore([]catalog.Item{
		{Title: "Star Plunder", Type: catalog.Movie, Description: "space pirates chase ancient treasure", ListedIn: "Comedies", ReleaseYear: 2020},
	})
	engine := NewEngine(store, 1)

	query := Query{
		Mood:          5,
		PhysicalState: 5,
		Preference:    "pirates",
		Genre:         "comedies",
		ContentType:   catalog.Movie,
		ReleaseYear:   2020,
	}

	first := engine.Recommend(query)
	if !first.OK() {
		t.Fatal("Expected a recommendation on the first call")
	}

	second := engine.Recommend(query)
	if second.OK() {
		t.Errorf("Expected sentinel once the only match is in history, got %q", second.Title)
	}
	if second.Score != 0 {
		t.Errorf("Expected sentinel score 0, got %v", second.Score)
	}
	if engine.History().Len() != 1 {
		t.Errorf("Expected history unchanged by sentinel, got %d", engine.History().Len())
	}
}

func TestRecommendDefaultYearDrawnFromCatalog(t *testing.T) {
	items := []catalog.Item{
		{Title: "Laugh 2020", Type: catalog.Movie, Description: "friends open a bar", ListedIn: "Comedies", ReleaseYear: 2020},
		{Title: "Laugh 2021", Type: catalog.Movie, Description: "rivals open a diner", ListedIn: "Comedies", ReleaseYear: 2021},
	}
	store := catalog.NewStore(items)
	yearByTitle := map[string]int{}
	for _, item := range items {
		yearByTitle[item.Title] = item.ReleaseYear
	}

	// Every item matches type and genre, so whichever year is drawn yields a
	// recommendation whose year must exist in the catalog.
	for seed := int64(1); seed <= 20; seed++ {
		engine := NewEngine(store, seed)
		result := engine.Recommend(Query{
			Mood:          5,
			PhysicalState: 5,
			Preference:    "open",
			Genre:         "comedies",
			ContentType:   catalog.Movie,
		})
		if !result.OK() {
			t.Fatalf("Expected a recommendation for seed %d, got sentinel", seed)
		}
		if _, ok := yearByTitle[result.Title]; !ok {
			t.Fatalf("Recommended title %q not in catalog", result.Title)
		}
	}
}

func TestRecommendHistoryGrowsMonotonically(t *testing.T) {
	var items []catalog.Item
	for i := 0; i < 12; i++ {
		items = append(items, catalog.Item{
			Title:       fmt.Sprintf("Comedy #%d", i),
			Type:        catalog.Movie,
			Description: fmt.Sprintf("misadventure number %d in a small town", i),
			ListedIn:    "Comedies",
			ReleaseYear: 2020,
		})
	}
	store := catalog.NewStore(items)
	engine := NewEngine(store, 7)

	query := Query{
		Mood:          6,
		PhysicalState: 4,
		Preference:    "small town misadventure",
		Genre:         "comedies",
		ContentType:   catalog.Movie,
		ReleaseYear:   2020,
	}

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		result := engine.Recommend(query)
		if !result.OK() {
			t.Fatalf("Expected recommendation %d, got sentinel", i+1)
		}
		if seen[result.Title] {
			t.Fatalf("Title %q recommended twice", result.Title)
		}
		seen[result.Title] = true

		if engine.History().Len() != i+1 {
			t.Errorf("Expected history length %d, got %d", i+1, engine.History().Len())
		}
	}
}

func TestRecommendExhaustsThenSentinel(t *testing.T) {
	store := catalog.NewStore([]catalog.Item{
		{Title: "First Pick", Type: catalog.Movie, Description: "storm chasers film tornadoes", ListedIn: "Comedies", ReleaseYear: 2020},
		{Title: "Second Pick", Type: catalog.Movie, Description: "retired spies reunite", ListedIn: "Comedies", ReleaseYear: 2020},
	})
	engine := NewEngine(store, 3)

	query := Query{
		Mood:          5,
		PhysicalState: 5,
		Preference:    "spies",
		Genre:         "comedies",
		ContentType:   catalog.Movie,
		ReleaseYear:   2020,
	}

	for i := 0; i < 2; i++ {
		if result := engine.Recommend(query); !result.OK() {
			t.Fatalf("Expected recommendation %d, got sentinel", i+1)
		}
	}
	if result := engine.Recommend(query); result.OK() {
		t.Errorf("Expected sentinel after exhausting all matches, got %q", result.Title)
	}
	if engine.History().Len() != 2 {
		t.Errorf("Expected 2 titles in history, got %d", engine.History().Len())
	}
}

func TestRecommendDeterministicWithSeed(t *testing.T) {
	var items []catalog.Item
	for i := 0; i < 15; i++ {
		items = append(items, catalog.Item{
			Title:       fmt.Sprintf("Show #%d", i),
			Type:        catalog.TVShow,
			Description: fmt.Sprintf("season %d of an anthology series", i),
			ListedIn:    "Dramas",
			ReleaseYear: 2019,
		})
	}
	store := catalog.NewStore(items)

	query := Query{
		Mood:          5,
		PhysicalState: 5,
		Preference:    "anthology",
		Genre:         "dramas",
		ContentType:   catalog.TVShow,
		ReleaseYear:   2019,
	}

	run := func() []string {
		engine := NewEngine(store, 99)
		var titles []string
		for i := 0; i < 4; i++ {
			titles = append(titles, engine.Recommend(query).Title)
		}
		return titles
	}

	first := run()
	second := run()
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("Same seed diverged at call %d: %q vs %q", i, first[i], second[i])
		}
	}
}

func TestRecommendDegradedSimilaritySignal(t *testing.T) {
	// Descriptions made of stop-words only leave an empty vocabulary; the
	// similarity signal degrades to zero and the mood score carries the pick.
	store := catalog.NewStore([]catalog.Item{
		{Title: "Wordless", Type: catalog.Movie, Description: "the and of", ListedIn: "Comedies", ReleaseYear: 2020},
	})
	engine := NewEngine(store, 1)

	result := engine.Recommend(Query{
		Mood:          8,
		PhysicalState: 8,
		Preference:    "anything at all",
		Genre:         "comedies",
		ContentType:   catalog.Movie,
		ReleaseYear:   2020,
	})

	if !result.OK() {
		t.Fatal("Expected a recommendation despite degraded similarity signal")
	}
	expected := 0.3 * MoodGenreScore(8, 8, "comedies")
	if math.Abs(result.Score-expected) > 1e-9 {
		t.Errorf("Expected mood-only score %v, got %v", expected, result.Score)
	}
}

func TestRecommendFallbackDegradedSignal(t *testing.T) {
	// No constraint match and no usable vocabulary anywhere: the engine must
	// return the sentinel rather than an arbitrary item.
	store := catalog.NewStore([]catalog.Item{
		{Title: "Wordless", Type: catalog.Movie, Description: "the and of", ListedIn: "Dramas", ReleaseYear: 2001},
	})
	engine := NewEngine(store, 1)

	result := engine.Recommend(Query{
		Mood:          5,
		PhysicalState: 5,
		Preference:    "anything",
		Genre:         "comedies",
		ContentType:   catalog.Movie,
		ReleaseYear:   1999,
	})

	if result.OK() {
		t.Errorf("Expected sentinel, got %q", result.Title)
	}
}
