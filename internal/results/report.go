// Package results writes session reports of recommendations to YAML files.
package results

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// SessionConfig records the inputs that shaped a recommendation session.
type SessionConfig struct {
	CatalogPath string `yaml:"catalogpath"`
	CatalogSize int    `yaml:"catalogsize"`
	Seed        int64  `yaml:"seed"`
	Timestamp   string `yaml:"timestamp"`
}

// Recommendation is one recommendation outcome within a session.
type Recommendation struct {
	Title         string  `yaml:"title,omitempty"`
	Score         float64 `yaml:"score"`
	Sentinel      bool    `yaml:"sentinel,omitempty"`
	Mood          int     `yaml:"mood"`
	PhysicalState int     `yaml:"physicalstate"`
	Preference    string  `yaml:"preference,omitempty"`
	Genre         string  `yaml:"genre,omitempty"`
	ContentType   string  `yaml:"contenttype"`
	ReleaseYear   int     `yaml:"releaseyear,omitempty"`
}

// SessionReport is the complete report written for one session.
type SessionReport struct {
	Config  SessionConfig    `yaml:"config"`
	Results []Recommendation `yaml:"results"`
}

// SaveToYAML saves a session report to a YAML file in the reports/ directory
// and returns the written path.
func SaveToYAML(catalogPath string, catalogSize int, seed int64, recommendations []Recommendation) (string, error) {
	// Create reports directory
	if err := os.MkdirAll("reports", 0755); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}

	// Generate timestamp
	timestamp := time.Now().Format("2006-01-02_15-04-05")

	report := SessionReport{
		Config: SessionConfig{
			CatalogPath: catalogPath,
			CatalogSize: catalogSize,
			Seed:        seed,
			Timestamp:   timestamp,
		},
		Results: recommendations,
	}

	data, err := yaml.Marshal(&report)
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}

	path := filepath.Join("reports", fmt.Sprintf("session_%s.yaml", timestamp))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	return path, nil
}
