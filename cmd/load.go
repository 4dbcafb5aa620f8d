package cmd

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/spf13/cobra"

	"github.com/pable/injury-metrics/internal/dataset"
	"github.com/pable/injury-metrics/internal/model"
	"github.com/pable/injury-metrics/internal/pipeline"
	"github.com/pable/injury-metrics/internal/storage"
)

var loadTopN int

var loadCmd = &cobra.Command{
	Use:   "load <injuries.csv[.gz|.zst]>",
	Short: "Load an injury dataset from CSV and store its metrics",
	Args:  cobra.ExactArgs(1),
	RunE:  runLoad,
}

func init() {
	loadCmd.Flags().IntVar(&loadTopN, "top", 10, "rows in ranked tables")
}

func runLoad(cmd *cobra.Command, args []string) error {
	path := args[0]

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	fmt.Fprintf(os.Stdout, "Loading %s...\n", path)
	events, stats, err := readEventsFile(path)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}
	if stats.Skipped > 0 {
		fmt.Fprintf(os.Stdout, "Skipped %d rows with missing player or club.\n", stats.Skipped)
	}
	if stats.ParseWarnings > 0 {
		fmt.Fprintf(os.Stdout, "%d cells could not be parsed and were treated as missing.\n", stats.ParseWarnings)
	}

	hash := dataset.Hash(events)
	exists, err := db.DatasetExists(hash)
	if err != nil {
		return fmt.Errorf("check dataset: %w", err)
	}
	if exists {
		fmt.Fprintf(os.Stdout, "Dataset %s already stored, showing cached results.\n", hash[:12])
		return showByHash(db, hash, nil, loadTopN, false)
	}

	enriched := pipeline.Enrich(events)
	summary := buildSummary(hash, path, enriched, stats)

	if err := db.InsertDataset(summary); err != nil {
		return fmt.Errorf("insert dataset: %w", err)
	}
	if err := db.InsertEvents(hash, enriched); err != nil {
		return fmt.Errorf("insert events: %w", err)
	}

	renderDataset(os.Stdout, summary, enriched, nil, loadTopN)
	return nil
}

// readEventsFile opens a CSV file, transparently decompressing .gz and .zst.
func readEventsFile(path string) ([]model.Event, dataset.ReadStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, dataset.ReadStats{}, err
	}
	defer f.Close()

	var src io.Reader = f
	switch {
	case strings.HasSuffix(path, ".zst"):
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, dataset.ReadStats{}, fmt.Errorf("zstd: %w", err)
		}
		defer dec.Close()
		src = dec
	case strings.HasSuffix(path, ".gz"):
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, dataset.ReadStats{}, fmt.Errorf("gzip: %w", err)
		}
		defer gz.Close()
		src = gz
	}

	return dataset.ReadCSV(src)
}
