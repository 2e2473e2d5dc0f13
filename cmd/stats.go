package cmd

import (
	"fmt"
	"os"

	"github.com/reelpick/reelpick/internal/catalog"
	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	var catalogPath string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show a summary of the catalog",
		Long: `Prints catalog counts by content type, the release year range, and the
most frequent genre tags. Useful for sanity-checking a catalog file before
asking for recommendations.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if catalogPath == "" {
				catalogPath = os.Getenv("REELPICK_CATALOG")
			}
			if catalogPath == "" {
				return fmt.Errorf("no catalog given: set --catalog or REELPICK_CATALOG")
			}
			return executeStats(catalogPath)
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "Path to the catalog file (.csv, .jsonl, or .parquet); defaults to $REELPICK_CATALOG")

	return cmd
}

func executeStats(catalogPath string) error {
	items, err := catalog.NewLoader(catalogPath).Load()
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	store := catalog.NewStore(items)

	fmt.Printf("Catalog: %s\n", catalogPath)
	fmt.Printf("Items:   %d\n", store.Len())

	for contentType, count := range store.CountByType() {
		fmt.Printf("  %-8s %d\n", contentType, count)
	}

	years := store.DistinctYears()
	if len(years) > 0 {
		fmt.Printf("Years:   %d-%d (%d distinct)\n", years[0], years[len(years)-1], len(years))
	}

	fmt.Println("Top genres:")
	for _, gc := range store.TopGenres(10) {
		fmt.Printf("  %-30s %d\n", gc.Genre, gc.Count)
	}

	return nil
}
