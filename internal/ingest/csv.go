// Package ingest imports transactions from CSV statement exports.
//
// Expected columns: date (YYYY-MM-DD), amount (signed decimal, positive
// for money IN), currency, description, merchant, tags
// (semicolon-separated). A header row is required. Bad rows are
// collected per row rather than aborting the whole import.
package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/moneymind/backend/internal/domain"
	"github.com/moneymind/backend/internal/logger"
	"github.com/moneymind/backend/internal/store"
)

// Categorizer is the optional auto-categorization hook. The categorize
// service satisfies it.
type Categorizer interface {
	CategorizeTransaction(ctx context.Context, t *domain.Transaction) (*domain.Category, error)
}

// Options controls one import run.
type Options struct {
	AccountID      string
	SkipDuplicates bool
	AutoCategorize bool
}

// RowError records why a single CSV row was rejected.
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

// Result summarizes an import run.
type Result struct {
	Imported  int
	Skipped   int
	RowErrors []RowError
}

// Importer parses CSV statements and writes transactions to the store.
type Importer struct {
	transactions store.TransactionRepository
	categorizer  Categorizer // nil disables auto-categorization
}

// NewImporter wires the repository and the optional categorizer.
func NewImporter(transactions store.TransactionRepository, categorizer Categorizer) *Importer {
	return &Importer{transactions: transactions, categorizer: categorizer}
}

// ImportCSV reads the statement and saves each valid row. Duplicates
// (same account, date, amount and description as an existing
// transaction) are skipped when opts.SkipDuplicates is set.
func (imp *Importer) ImportCSV(ctx context.Context, r io.Reader, opts Options) (*Result, error) {
	log := logger.FromContext(ctx)

	if opts.AccountID == "" {
		return nil, fmt.Errorf("ImportCSV: account ID is required")
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("ImportCSV: read header: %w", err)
	}
	columns, err := mapColumns(header)
	if err != nil {
		return nil, fmt.Errorf("ImportCSV: %w", err)
	}

	existing, err := imp.transactions.GetByAccount(ctx, opts.AccountID)
	if err != nil {
		return nil, fmt.Errorf("ImportCSV: list existing transactions: %w", err)
	}
	seen := make(map[string]bool, len(existing))
	for _, t := range existing {
		seen[duplicateKey(t.AccountID, t.Date, t.Amount.Amount.String(), t.Description)] = true
	}

	result := &Result{}
	line := 1 // header consumed

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			result.RowErrors = append(result.RowErrors, RowError{Line: line, Err: err})
			continue
		}

		t, err := parseRow(record, columns, opts.AccountID)
		if err != nil {
			result.RowErrors = append(result.RowErrors, RowError{Line: line, Err: err})
			continue
		}

		key := duplicateKey(t.AccountID, t.Date, t.Amount.Amount.String(), t.Description)
		if opts.SkipDuplicates && seen[key] {
			result.Skipped++
			continue
		}

		if opts.AutoCategorize && imp.categorizer != nil {
			category, err := imp.categorizer.CategorizeTransaction(ctx, t)
			if err != nil {
				// Categorization is best-effort during import; the
				// transaction still lands, uncategorized.
				log.Warn().Err(err).Int("line", line).Msg("auto-categorization failed")
			} else if err := t.Categorize(category); err != nil {
				result.RowErrors = append(result.RowErrors, RowError{Line: line, Err: err})
				continue
			}
		}

		if err := imp.transactions.Save(ctx, t); err != nil {
			result.RowErrors = append(result.RowErrors, RowError{Line: line, Err: err})
			continue
		}
		seen[key] = true
		result.Imported++
	}

	log.Info().
		Int("imported", result.Imported).
		Int("skipped", result.Skipped).
		Int("errors", len(result.RowErrors)).
		Msg("CSV import finished")

	return result, nil
}

type columnIndex struct {
	date, amount, currency, description, merchant, tags int
}

func mapColumns(header []string) (columnIndex, error) {
	idx := columnIndex{date: -1, amount: -1, currency: -1, description: -1, merchant: -1, tags: -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "date":
			idx.date = i
		case "amount":
			idx.amount = i
		case "currency":
			idx.currency = i
		case "description":
			idx.description = i
		case "merchant":
			idx.merchant = i
		case "tags":
			idx.tags = i
		}
	}
	if idx.date == -1 || idx.amount == -1 || idx.currency == -1 || idx.description == -1 {
		return idx, fmt.Errorf("header must include date, amount, currency and description columns")
	}
	return idx, nil
}

func parseRow(record []string, columns columnIndex, accountID string) (*domain.Transaction, error) {
	field := func(i int) string {
		if i < 0 || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	date, err := time.Parse("2006-01-02", field(columns.date))
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", field(columns.date), err)
	}

	currency, err := domain.ParseCurrency(field(columns.currency))
	if err != nil {
		return nil, err
	}

	amount, err := domain.MoneyFromString(field(columns.amount), currency)
	if err != nil {
		return nil, fmt.Errorf("invalid amount %q: %w", field(columns.amount), err)
	}

	var tags []string
	if raw := field(columns.tags); raw != "" {
		for _, tag := range strings.Split(raw, ";") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
	}

	return domain.NewTransaction(accountID, date, amount, field(columns.description), field(columns.merchant), tags)
}

func duplicateKey(accountID string, date time.Time, amount, description string) string {
	return strings.Join([]string{accountID, date.Format("2006-01-02"), amount, strings.ToLower(description)}, "|")
}
