package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/reelpick/reelpick/internal/catalog"
	"github.com/reelpick/reelpick/internal/recommend"
	"github.com/reelpick/reelpick/internal/results"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type recommendOptions struct {
	catalogPath   string
	mood          int
	physicalState int
	preference    string
	genre         string
	duration      string
	reviews       string
	polarity      string
	contentType   string
	releaseYear   int
	country       string
	count         int
	seed          int64
	output        string
	saveReport    bool
}

func newRecommendCmd() *cobra.Command {
	var opts recommendOptions

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Recommend a movie or TV show from the catalog",
		Long: `Recommends a single title matching your content type, genre, and release
year, ranked by a blend of content similarity against your free-text
preference and a mood/energy affinity score.

Titles already recommended in the same session are not repeated. When no
catalog row matches the constraints, the closest title by content similarity
alone is returned instead.`,
		Example: `  # A comedy movie from 2020 for a good mood
  reelpick recommend --catalog netflix_titles.csv --type movie --genre comedy \
    --release-year 2020 --mood 8 --physical-state 6 --preference "feel-good heist"

  # Three successive picks in one session, reproducibly
  reelpick recommend --catalog netflix_titles.csv --type "tv show" --genre drama \
    --count 3 --seed 42`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeRecommend(opts)
		},
	}

	cmd.Flags().StringVar(&opts.catalogPath, "catalog", "", "Path to the catalog file (.csv, .jsonl, or .parquet); defaults to $REELPICK_CATALOG")
	cmd.Flags().IntVar(&opts.mood, "mood", 5, "Mood slider, 0-10")
	cmd.Flags().IntVar(&opts.physicalState, "physical-state", 5, "Physical state slider, 0-10")
	cmd.Flags().StringVar(&opts.preference, "preference", "", "Free-text content preference")
	cmd.Flags().StringVar(&opts.genre, "genre", "", "Genre to match against the catalog's listed_in tags")
	cmd.Flags().StringVar(&opts.duration, "duration", "medium", "Preferred duration: short, medium, or long (reserved)")
	cmd.Flags().StringVar(&opts.reviews, "reviews", "good", "Preferred review level: good, average, or bad (reserved)")
	cmd.Flags().StringVar(&opts.polarity, "polarity", "positive", "Preferred polarity: positive, negative, or neutral (reserved)")
	cmd.Flags().StringVar(&opts.contentType, "type", "movie", "Content type: movie or tv show")
	cmd.Flags().IntVar(&opts.releaseYear, "release-year", 0, "Release year; omit to draw one from the catalog")
	cmd.Flags().StringVar(&opts.country, "country", "", "Country (optional, reserved)")
	cmd.Flags().IntVar(&opts.count, "count", 1, "Number of successive recommendations in this session")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "Random seed for reproducible sessions (0 = time-based)")
	cmd.Flags().StringVar(&opts.output, "output", "text", "Output format: text, json, or yaml")
	cmd.Flags().BoolVar(&opts.saveReport, "save-report", false, "Write a YAML session report under reports/")

	return cmd
}

func executeRecommend(opts recommendOptions) error {
	if opts.mood < 0 || opts.mood > 10 {
		return fmt.Errorf("mood must be between 0 and 10, got %d", opts.mood)
	}
	if opts.physicalState < 0 || opts.physicalState > 10 {
		return fmt.Errorf("physical-state must be between 0 and 10, got %d", opts.physicalState)
	}
	if opts.count < 1 {
		return fmt.Errorf("count must be at least 1, got %d", opts.count)
	}

	contentType, err := catalog.ParseContentType(opts.contentType)
	if err != nil {
		return err
	}

	catalogPath := opts.catalogPath
	if catalogPath == "" {
		catalogPath = os.Getenv("REELPICK_CATALOG")
	}
	if catalogPath == "" {
		return fmt.Errorf("no catalog given: set --catalog or REELPICK_CATALOG")
	}

	slog.Info("Loading catalog", "path", catalogPath)
	items, err := catalog.NewLoader(catalogPath).Load()
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	if len(items) == 0 {
		return fmt.Errorf("catalog %s contains no usable rows", catalogPath)
	}
	store := catalog.NewStore(items)
	slog.Info("Catalog loaded", "items", store.Len())

	engine := recommend.NewEngine(store, opts.seed)

	query := recommend.Query{
		Mood:          opts.mood,
		PhysicalState: opts.physicalState,
		Preference:    strings.ToLower(strings.TrimSpace(opts.preference)),
		Genre:         strings.ToLower(strings.TrimSpace(opts.genre)),
		Duration:      strings.ToLower(strings.TrimSpace(opts.duration)),
		Reviews:       strings.ToLower(strings.TrimSpace(opts.reviews)),
		Polarity:      strings.ToLower(strings.TrimSpace(opts.polarity)),
		ContentType:   contentType,
		ReleaseYear:   opts.releaseYear,
		Country:       strings.TrimSpace(opts.country),
	}

	var picks []recommend.Result
	for i := 0; i < opts.count; i++ {
		picks = append(picks, engine.Recommend(query))
	}

	if err := renderResults(picks, opts.output); err != nil {
		return err
	}

	if opts.saveReport {
		report := make([]results.Recommendation, len(picks))
		for i, pick := range picks {
			report[i] = results.Recommendation{
				Title:         pick.Title,
				Score:         pick.Score,
				Sentinel:      !pick.OK(),
				Mood:          query.Mood,
				PhysicalState: query.PhysicalState,
				Preference:    query.Preference,
				Genre:         query.Genre,
				ContentType:   string(query.ContentType),
				ReleaseYear:   query.ReleaseYear,
			}
		}
		path, err := results.SaveToYAML(catalogPath, store.Len(), opts.seed, report)
		if err != nil {
			return err
		}
		fmt.Printf("\nSession report saved to: %s\n", path)
	}

	return nil
}

// resultOutput is the machine-readable rendering of one recommendation.
type resultOutput struct {
	Title   string  `json:"title,omitempty" yaml:"title,omitempty"`
	Score   float64 `json:"score" yaml:"score"`
	Message string  `json:"message,omitempty" yaml:"message,omitempty"`
}

func renderResults(picks []recommend.Result, format string) error {
	outputs := make([]resultOutput, len(picks))
	for i, pick := range picks {
		outputs[i] = resultOutput{Title: pick.Title, Score: pick.Score}
		if !pick.OK() {
			outputs[i].Message = recommend.SentinelMessage
		}
	}

	switch format {
	case "text":
		for _, out := range outputs {
			if out.Message != "" {
				fmt.Println(out.Message)
				continue
			}
			fmt.Printf("We recommend: %s (score: %.4f)\n", out.Title, out.Score)
		}
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(outputs); err != nil {
			return fmt.Errorf("failed to encode results: %w", err)
		}
	case "yaml":
		data, err := yaml.Marshal(outputs)
		if err != nil {
			return fmt.Errorf("failed to encode results: %w", err)
		}
		fmt.Print(string(data))
	default:
		return fmt.Errorf("unknown output format %q (supported: text, json, yaml)", format)
	}

	return nil
}
