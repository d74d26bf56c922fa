package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/moneymind/backend/internal/ai"
	"github.com/moneymind/backend/internal/api/handlers"
	"github.com/moneymind/backend/internal/api/middleware"
	"github.com/moneymind/backend/internal/categorize"
	"github.com/moneymind/backend/internal/config"
	"github.com/moneymind/backend/internal/ingest"
	"github.com/moneymind/backend/internal/insights"
	"github.com/moneymind/backend/internal/logger"
	"github.com/moneymind/backend/internal/search"
	"github.com/moneymind/backend/internal/store/inmemory"
)

func main() {
	var (
		port = flag.String("port", "", "HTTP server port (overrides PORT env)")
	)
	flag.Parse()

	log := logger.New()
	cfg := config.Load()
	if *port != "" {
		cfg.ServerPort = ":" + *port
	}

	ctx := context.Background()

	// Repositories. In-memory for now; anything satisfying the store
	// interfaces can replace these.
	transactionStore := inmemory.NewTransactionStore()
	categoryStore := inmemory.NewCategoryStore()
	budgetStore := inmemory.NewBudgetStore()

	// AI collaborator shared by categorization and insights.
	gemini, err := ai.NewGemini(ctx, categoryStore, cfg.GeminiModel)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Gemini client")
	}

	ruleEngine := categorize.NewKeywordRuleEngine(nil)
	categorizer := categorize.NewService(ruleEngine, gemini)
	insightService := insights.NewService(gemini)
	searchHandler := search.NewHandler(transactionStore)
	importer := ingest.NewImporter(transactionStore, categorizer)

	transactionsHandler := handlers.NewTransactionsHandler(transactionStore, categoryStore, searchHandler, categorizer, log)
	categoriesHandler := handlers.NewCategoriesHandler(categoryStore, log)
	budgetsHandler := handlers.NewBudgetsHandler(budgetStore, categoryStore, log)
	insightsHandler := handlers.NewInsightsHandler(transactionStore, budgetStore, insightService, cfg, log)
	importsHandler := handlers.NewImportsHandler(importer, log)

	mux := http.NewServeMux()

	mux.HandleFunc("/api/transactions", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			transactionsHandler.SearchTransactions(w, r)
		case http.MethodPost:
			transactionsHandler.CreateTransaction(w, r)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/transactions/suggest-categories", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			transactionsHandler.SuggestCategories(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/transactions/import", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			importsHandler.ImportCSV(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/transactions/", func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, "/api/transactions/")
		if rest == "" {
			middleware.WriteError(w, http.StatusBadRequest, "Transaction ID is required")
			return
		}

		if id, ok := strings.CutSuffix(rest, "/categorize"); ok {
			if r.Method == http.MethodPost {
				transactionsHandler.CategorizeTransaction(w, r, id)
			} else {
				middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
			}
			return
		}

		switch r.Method {
		case http.MethodGet:
			transactionsHandler.GetTransaction(w, r, rest)
		case http.MethodPut:
			transactionsHandler.UpdateTransaction(w, r, rest)
		case http.MethodDelete:
			transactionsHandler.DeleteTransaction(w, r, rest)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/categories", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			categoriesHandler.ListCategories(w, r)
		case http.MethodPost:
			categoriesHandler.CreateCategory(w, r)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/categories/", func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, "/api/categories/")
		if id, ok := strings.CutSuffix(rest, "/deactivate"); ok && r.Method == http.MethodPost {
			categoriesHandler.DeactivateCategory(w, r, id)
			return
		}
		middleware.WriteError(w, http.StatusNotFound, "Not found")
	})

	mux.HandleFunc("/api/budgets", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			budgetsHandler.ListBudgets(w, r)
		case http.MethodPost:
			budgetsHandler.CreateBudget(w, r)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/insights", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			insightsHandler.GenerateInsights(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/insights/anomalies", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			insightsHandler.DetectAnomalies(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/insights/summary", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			insightsHandler.MonthlySummary(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	handler := middleware.Recovery(log)(
		middleware.Logger(log)(
			middleware.RequestID(
				middleware.CORS(mux),
			),
		),
	)

	server := &http.Server{
		Addr:         cfg.ServerPort,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.ServerPort).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
