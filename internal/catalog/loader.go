package catalog

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// Loader handles loading of a catalog file.
type Loader struct {
	catalogPath string
}

// NewLoader creates a new catalog loader.
func NewLoader(catalogPath string) *Loader {
	return &Loader{
		catalogPath: catalogPath,
	}
}

// rawRecord is the on-disk row shape before validation.
type rawRecord struct {
	Title       string `json:"title" parquet:"title"`
	Type        string `json:"type" parquet:"type"`
	Description string `json:"description" parquet:"description,optional"`
	ListedIn    string `json:"listed_in" parquet:"listed_in,optional"`
	ReleaseYear int64  `json:"release_year" parquet:"release_year,optional"`
	Country     string `json:"country" parquet:"country,optional"`
}

// Load loads catalog items from a catalog file (CSV, JSONL or Parquet).
// Unreadable sources fail the load; individual malformed rows are skipped.
func (l *Loader) Load() ([]Item, error) {
	// Detect file format
	ext := strings.ToLower(filepath.Ext(l.catalogPath))

	switch ext {
	case ".csv":
		return l.loadCSV()
	case ".parquet":
		return l.loadParquet()
	case ".jsonl", ".json":
		return l.loadJSONL()
	default:
		return nil, fmt.Errorf("unsupported file format: %s (supported: .csv, .jsonl, .parquet)", ext)
	}
}

// loadCSV loads items from a delimited catalog file such as netflix_titles.csv.
// Column order is taken from the header row; extra columns are ignored.
func (l *Loader) loadCSV() ([]Item, error) {
	slog.Debug("Opening CSV file", "path", l.catalogPath)

	file, err := os.Open(l.catalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Row length validated per record so bad rows skip, not abort

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"title", "type", "release_year"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("catalog is missing required column %q", required)
		}
	}

	field := func(row []string, name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return row[idx]
	}

	var items []Item
	rowNum := 1
	skipped := 0
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		rowNum++
		if err != nil {
			// Malformed line (bad quoting etc.) - skip, keep reading
			skipped++
			slog.Debug("Skipping malformed CSV row", "row", rowNum, "err", err)
			continue
		}

		year, err := strconv.Atoi(strings.TrimSpace(field(row, "release_year")))
		if err != nil {
			skipped++
			slog.Debug("Skipping row with unparseable release year", "row", rowNum, "value", field(row, "release_year"))
			continue
		}

		item, err := newItem(rawRecord{
			Title:       field(row, "title"),
			Type:        field(row, "type"),
			Description: field(row, "description"),
			ListedIn:    field(row, "listed_in"),
			ReleaseYear: int64(year),
			Country:     field(row, "country"),
		})
		if err != nil {
			skipped++
			slog.Debug("Skipping invalid row", "row", rowNum, "err", err)
			continue
		}
		items = append(items, item)
	}

	slog.Debug("Finished reading CSV file", "total_items", len(items), "skipped", skipped)

	return items, nil
}

// loadJSONL loads items from a JSONL file.
func (l *Loader) loadJSONL() ([]Item, error) {
	slog.Debug("Opening JSONL file", "path", l.catalogPath)

	file, err := os.Open(l.catalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer file.Close()

	var items []Item
	scanner := bufio.NewScanner(file)

	lineNum := 0
	skipped := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()

		if len(line) == 0 {
			continue
		}

		var record rawRecord
		if err := json.Unmarshal(line, &record); err != nil {
			skipped++
			slog.Debug("Skipping unparseable JSONL line", "line", lineNum, "err", err)
			continue
		}

		item, err := newItem(record)
		if err != nil {
			skipped++
			slog.Debug("Skipping invalid row", "line", lineNum, "err", err)
			continue
		}
		items = append(items, item)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading catalog: %w", err)
	}

	slog.Debug("Finished reading JSONL file", "total_items", len(items), "skipped", skipped)

	return items, nil
}

// loadParquet loads items from a Parquet file.
func (l *Loader) loadParquet() ([]Item, error) {
	slog.Debug("Opening Parquet file", "path", l.catalogPath)

	file, err := os.Open(l.catalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	slog.Debug("Parquet file opened successfully", "num_rows", pf.NumRows(), "num_row_groups", len(pf.RowGroups()))

	reader := parquet.NewGenericReader[rawRecord](pf)
	defer reader.Close()

	var items []Item
	rows := make([]rawRecord, 128) // Read in batches

	skipped := 0
	for {
		n, err := reader.Read(rows)
		for _, record := range rows[:n] {
			item, itemErr := newItem(record)
			if itemErr != nil {
				skipped++
				slog.Debug("Skipping invalid row", "err", itemErr)
				continue
			}
			items = append(items, item)
		}
		if err != nil {
			break
		}
	}

	slog.Debug("Finished reading Parquet file", "total_items", len(items), "skipped", skipped)

	return items, nil
}

// newItem validates a raw record and normalizes it into an Item.
// Missing descriptions become the empty string rather than failing the row.
func newItem(r rawRecord) (Item, error) {
	title := strings.TrimSpace(r.Title)
	if title == "" {
		return Item{}, fmt.Errorf("empty title")
	}

	contentType, err := ParseContentType(r.Type)
	if err != nil {
		return Item{}, err
	}

	if r.ReleaseYear <= 0 {
		return Item{}, fmt.Errorf("invalid release year %d", r.ReleaseYear)
	}

	return Item{
		Title:       title,
		Type:        contentType,
		Description: strings.TrimSpace(r.Description),
		ListedIn:    strings.TrimSpace(r.ListedIn),
		ReleaseYear: int(r.ReleaseYear),
		Country:     strings.TrimSpace(r.Country),
	}, nil
}
