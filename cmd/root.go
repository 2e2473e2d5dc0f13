package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reelpick",
		Short: "Mood-driven movie and TV show recommendation tool",
		Long: `Reelpick recommends a single movie or TV show from a tabular catalog.

It combines categorical filtering with fuzzy text matching, TF-IDF content
similarity, and a mood/energy affinity score, and avoids repeating titles it
already recommended in the current session.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(newRecommendCmd())
	cmd.AddCommand(newStatsCmd())

	return cmd
}
