package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pable/injury-metrics/internal/dataset"
	"github.com/pable/injury-metrics/internal/pipeline"
	"github.com/pable/injury-metrics/internal/storage"
)

var (
	sampleSeed    int64
	sampleRows    int
	samplePlayers int
	sampleClubs   int
	sampleTopN    int
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Generate and store a synthetic demo dataset",
	Long:  "Generate a deterministic synthetic injury dataset (for trying the tool without real data), store it, and show its metrics.",
	Args:  cobra.NoArgs,
	RunE:  runSample,
}

func init() {
	def := dataset.DefaultSampleConfig()
	sampleCmd.Flags().Int64Var(&sampleSeed, "seed", def.Seed, "random seed")
	sampleCmd.Flags().IntVar(&sampleRows, "rows", def.Rows, "number of events")
	sampleCmd.Flags().IntVar(&samplePlayers, "players", def.Players, "number of distinct players")
	sampleCmd.Flags().IntVar(&sampleClubs, "clubs", def.Clubs, "number of distinct clubs")
	sampleCmd.Flags().IntVar(&sampleTopN, "top", 10, "rows in ranked tables")
}

func runSample(cmd *cobra.Command, args []string) error {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	cfg := dataset.SampleConfig{
		Seed:    sampleSeed,
		Rows:    sampleRows,
		Players: samplePlayers,
		Clubs:   sampleClubs,
	}
	events := dataset.GenerateSample(cfg)
	hash := dataset.Hash(events)

	exists, err := db.DatasetExists(hash)
	if err != nil {
		return fmt.Errorf("check dataset: %w", err)
	}
	if exists {
		fmt.Fprintf(os.Stdout, "Sample dataset %s already stored, showing cached results.\n", hash[:12])
		return showByHash(db, hash, nil, sampleTopN, false)
	}

	enriched := pipeline.Enrich(events)
	summary := buildSummary(hash, fmt.Sprintf("sample(seed=%d)", cfg.Seed), enriched, dataset.ReadStats{})

	if err := db.InsertDataset(summary); err != nil {
		return fmt.Errorf("insert dataset: %w", err)
	}
	if err := db.InsertEvents(hash, enriched); err != nil {
		return fmt.Errorf("insert events: %w", err)
	}

	renderDataset(os.Stdout, summary, enriched, nil, sampleTopN)
	return nil
}
