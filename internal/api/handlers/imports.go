package handlers

import (
	"net/http"

	"github.com/moneymind/backend/internal/api/middleware"
	"github.com/moneymind/backend/internal/ingest"
	"github.com/rs/zerolog"
)

// maxImportBytes caps CSV upload size at 10 MiB.
const maxImportBytes = 10 << 20

// ImportsHandler handles CSV statement uploads.
type ImportsHandler struct {
	importer *ingest.Importer
	log      zerolog.Logger
}

// NewImportsHandler creates a new imports handler.
func NewImportsHandler(importer *ingest.Importer, log zerolog.Logger) *ImportsHandler {
	return &ImportsHandler{importer: importer, log: log}
}

// ImportCSV handles POST /api/transactions/import?account_id=...
// The request body is the raw CSV.
func (h *ImportsHandler) ImportCSV(w http.ResponseWriter, r *http.Request) {
	accountID := r.URL.Query().Get("account_id")
	if accountID == "" {
		middleware.WriteError(w, http.StatusBadRequest, "account_id is required")
		return
	}

	opts := ingest.Options{
		AccountID:      accountID,
		SkipDuplicates: r.URL.Query().Get("skip_duplicates") != "false",
		AutoCategorize: r.URL.Query().Get("auto_categorize") == "true",
	}

	body := http.MaxBytesReader(w, r.Body, maxImportBytes)
	result, err := h.importer.ImportCSV(r.Context(), body, opts)
	if err != nil {
		h.log.Error().Err(err).Msg("CSV import failed")
		middleware.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	rowErrors := make([]string, 0, len(result.RowErrors))
	for _, re := range result.RowErrors {
		rowErrors = append(rowErrors, re.Error())
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"imported":   result.Imported,
		"skipped":    result.Skipped,
		"row_errors": rowErrors,
	})
}
