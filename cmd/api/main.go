package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ntdung/chitieu/internal/api/handlers"
	"github.com/ntdung/chitieu/internal/api/middleware"
	"github.com/ntdung/chitieu/internal/chat"
	"github.com/ntdung/chitieu/internal/config"
	"github.com/ntdung/chitieu/internal/llm"
	"github.com/ntdung/chitieu/internal/logger"
	"github.com/ntdung/chitieu/internal/parser"
	"github.com/ntdung/chitieu/internal/predict"
	"github.com/ntdung/chitieu/internal/store"
	bigquerystore "github.com/ntdung/chitieu/internal/store/bigquery"
	memorystore "github.com/ntdung/chitieu/internal/store/memory"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	var (
		port = flag.String("port", "", "HTTP server port (overrides PORT env)")
	)
	flag.Parse()

	log := logger.New()

	cfg := config.Load()
	if *port != "" {
		cfg.Port = *port
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	ctx := context.Background()

	// Persistence collaborator.
	var st store.Store
	switch cfg.DataBackend {
	case "bigquery":
		bq, err := bigquerystore.New(ctx, cfg.BigQueryProject, cfg.BigQueryDataset)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create BigQuery store")
		}
		st = bq
	default:
		mem := memorystore.New()
		mem.SeedCategories(memorystore.DefaultCategories())
		st = mem
		log.Warn().Msg("Using in-memory store - data is lost on restart")
	}
	defer st.Close()

	// Parsers: AI first when configured, rules always as fallback.
	var parsers []parser.Parser
	var gen llm.TextGenerator
	if cfg.AIEnabled() {
		gemini, err := llm.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiTimeout)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create Gemini client")
		}
		gen = gemini
		parsers = append(parsers, parser.NewAIParser(gemini))
		log.Info().Str("model", cfg.GeminiModel).Msg("AI parsing enabled")
	} else {
		log.Warn().Msg("GEMINI_API_KEY not set - rule-based parsing only")
	}
	parsers = append(parsers, &parser.RuleParser{})

	orchestrator := parser.NewOrchestrator(log, parsers...)
	chatService := chat.New(st, orchestrator, log)
	predictor := predict.NewGenerator(gen, log)

	chatHandler := handlers.NewChatHandler(chatService, log)
	statisticsHandler := handlers.NewStatisticsHandler(st, predictor, log)
	categoriesHandler := handlers.NewCategoriesHandler(st, log)
	transactionsHandler := handlers.NewTransactionsHandler(st, log)

	// API routes require a caller identity; health does not.
	api := http.NewServeMux()

	api.HandleFunc("/api/chat", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			chatHandler.HandleMessage(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	api.HandleFunc("/api/statistics", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			statisticsHandler.GetStatistics(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	api.HandleFunc("/api/statistics/predict", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			statisticsHandler.GetPrediction(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	api.HandleFunc("/api/categories", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			categoriesHandler.ListCategories(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	api.HandleFunc("/api/transactions", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			transactionsHandler.ListTransactions(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	root := http.NewServeMux()
	root.Handle("/api/", middleware.Identity(api))
	root.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	handler := middleware.Recovery(log)(
		middleware.Logger(log)(
			middleware.RequestID(
				middleware.CORS(root),
			),
		),
	)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("backend", cfg.DataBackend).Msg("Starting API server")
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
