package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"cloud.google.com/go/civil"
	"github.com/rs/zerolog"

	"github.com/ntdung/chitieu/internal/api/middleware"
	"github.com/ntdung/chitieu/internal/chat"
	"github.com/ntdung/chitieu/internal/predict"
	"github.com/ntdung/chitieu/internal/stats"
	"github.com/ntdung/chitieu/internal/store"
)

// ChatHandler handles the conversational transaction entry endpoint.
type ChatHandler struct {
	svc *chat.Service
	log zerolog.Logger
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(svc *chat.Service, log zerolog.Logger) *ChatHandler {
	return &ChatHandler{svc: svc, log: log}
}

// HandleMessage handles POST /api/chat
func (h *ChatHandler) HandleMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := middleware.UserID(ctx)

	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Message == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Message is required")
		return
	}

	reply, err := h.svc.HandleMessage(ctx, userID, req.Message)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to handle chat message")
		middleware.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, reply)
}

// StatisticsHandler handles the statistics and prediction endpoints.
type StatisticsHandler struct {
	store     store.Store
	predictor *predict.Generator
	log       zerolog.Logger
}

// NewStatisticsHandler creates a new statistics handler.
func NewStatisticsHandler(st store.Store, predictor *predict.Generator, log zerolog.Logger) *StatisticsHandler {
	return &StatisticsHandler{store: st, predictor: predictor, log: log}
}

// GetStatistics handles GET /api/statistics?year=&month=
func (h *StatisticsHandler) GetStatistics(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := middleware.UserID(ctx)

	year := time.Now().Year()
	if y := r.URL.Query().Get("year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, "Invalid year")
			return
		}
		year = parsed
	}

	from := civil.Date{Year: year, Month: time.January, Day: 1}
	to := civil.Date{Year: year, Month: time.December, Day: 31}
	if m := r.URL.Query().Get("month"); m != "" {
		month, err := strconv.Atoi(m)
		if err != nil || month < 1 || month > 12 {
			middleware.WriteError(w, http.StatusBadRequest, "Invalid month")
			return
		}
		from = civil.Date{Year: year, Month: time.Month(month), Day: 1}
		to = civil.DateOf(time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC))
	}

	// Statistics cover the whole family, not just the caller.
	familyIDs, err := h.store.FamilyUserIDs(ctx, userID)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to resolve family members")
		middleware.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	txs, err := h.store.ListTransactions(ctx, familyIDs, from, to)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list transactions")
		middleware.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, stats.Aggregate(txs, year))
}

// GetPrediction handles GET /api/statistics/predict
func (h *StatisticsHandler) GetPrediction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := middleware.UserID(ctx)

	familyIDs, err := h.store.FamilyUserIDs(ctx, userID)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to resolve family members")
		middleware.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	today := time.Now()
	from := civil.DateOf(today.AddDate(0, -predict.HistoryMonths, 0))
	to := civil.DateOf(today)

	txs, err := h.store.ListTransactions(ctx, familyIDs, from, to)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list transactions")
		middleware.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, h.predictor.Predict(ctx, txs))
}

// CategoriesHandler handles category listing.
type CategoriesHandler struct {
	store store.Store
	log   zerolog.Logger
}

// NewCategoriesHandler creates a new categories handler.
func NewCategoriesHandler(st store.Store, log zerolog.Logger) *CategoriesHandler {
	return &CategoriesHandler{store: st, log: log}
}

// ListCategories handles GET /api/categories
func (h *CategoriesHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := middleware.UserID(ctx)

	categories, err := h.store.ListCategories(ctx, userID)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list categories")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list categories")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"categories": categories,
		"count":      len(categories),
	})
}

// TransactionsHandler handles transaction listing.
type TransactionsHandler struct {
	store store.Store
	log   zerolog.Logger
}

// NewTransactionsHandler creates a new transactions handler.
func NewTransactionsHandler(st store.Store, log zerolog.Logger) *TransactionsHandler {
	return &TransactionsHandler{store: st, log: log}
}

// ListTransactions handles GET /api/transactions?year=&month=
func (h *TransactionsHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, _ := middleware.UserID(ctx)

	year := time.Now().Year()
	if y := r.URL.Query().Get("year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, "Invalid year")
			return
		}
		year = parsed
	}

	from := civil.Date{Year: year, Month: time.January, Day: 1}
	to := civil.Date{Year: year, Month: time.December, Day: 31}
	if m := r.URL.Query().Get("month"); m != "" {
		month, err := strconv.Atoi(m)
		if err != nil || month < 1 || month > 12 {
			middleware.WriteError(w, http.StatusBadRequest, "Invalid month")
			return
		}
		from = civil.Date{Year: year, Month: time.Month(month), Day: 1}
		to = civil.DateOf(time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC))
	}

	familyIDs, err := h.store.FamilyUserIDs(ctx, userID)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to resolve family members")
		middleware.WriteError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	txs, err := h.store.ListTransactions(ctx, familyIDs, from, to)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list transactions")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list transactions")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"transactions": txs,
		"count":        len(txs),
	})
}
