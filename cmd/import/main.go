// Command import validates a CSV statement export offline: it runs the
// same parsing and duplicate detection as the API import endpoint and
// prints a summary, without touching a running service.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/moneymind/backend/internal/ingest"
	"github.com/moneymind/backend/internal/logger"
	"github.com/moneymind/backend/internal/store/inmemory"
)

func main() {
	var (
		file      = flag.String("file", "", "Path to the CSV file (required)")
		accountID = flag.String("account", "", "Account ID to import into (required)")
	)
	flag.Parse()

	log := logger.New()

	if *file == "" || *accountID == "" {
		log.Fatal().Msg("Both -file and -account are required")
	}

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("Failed to open CSV file")
	}
	defer f.Close()

	ctx := logger.WithContext(context.Background(), log)

	// A throwaway store: this command checks the file, it does not
	// persist anything.
	importer := ingest.NewImporter(inmemory.NewTransactionStore(), nil)

	result, err := importer.ImportCSV(ctx, f, ingest.Options{
		AccountID:      *accountID,
		SkipDuplicates: true,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Import failed")
	}

	for _, rowErr := range result.RowErrors {
		log.Warn().Int("line", rowErr.Line).Err(rowErr.Err).Msg("Rejected row")
	}

	log.Info().
		Int("imported", result.Imported).
		Int("skipped", result.Skipped).
		Int("rejected", len(result.RowErrors)).
		Msg("CSV validated")

	if len(result.RowErrors) > 0 {
		os.Exit(1)
	}
}
