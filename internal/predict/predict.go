// Package predict turns the trailing three months of transactions into a
// next-month forecast. The model-backed path degrades field-by-field to
// computed averages; the caller always gets a usable forecast object once
// enough history exists.
package predict

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/ntdung/chitieu/internal/domain"
	"github.com/ntdung/chitieu/internal/llm"
	"github.com/ntdung/chitieu/internal/stats"
)

// MinTransactions is the minimum history required before forecasting.
const MinTransactions = 5

// HistoryMonths is the trailing window the forecast is based on.
const HistoryMonths = 3

const insufficientDataMessage = "Cần ít nhất 5 giao dịch để dự đoán. Hãy thêm thêm giao dịch!"

// Trend tags.
const (
	TrendUp     = "up"
	TrendDown   = "down"
	TrendStable = "stable"
)

// Forecast is the normalized prediction payload.
type Forecast struct {
	PredictedIncome     float64  `json:"predictedIncome"`
	PredictedExpense    float64  `json:"predictedExpense"`
	PredictedBalance    float64  `json:"predictedBalance"`
	Confidence          int      `json:"confidence"`
	Trend               string   `json:"trend"`
	Summary             string   `json:"summary"`
	Tips                []string `json:"tips"`
	Warnings            []string `json:"warnings"`
	TopSpendingCategory string   `json:"topSpendingCategory"`
	SavingPotential     float64  `json:"savingPotential"`
	MonthName           string   `json:"monthName"`
}

// Stats accompanies the forecast in the endpoint payload.
type Stats struct {
	AvgMonthlyIncome  float64              `json:"avgMonthlyIncome"`
	AvgMonthlyExpense float64              `json:"avgMonthlyExpense"`
	MonthlyTrends     []stats.MonthlyTrend `json:"monthlyTrends"`
	TopExpenses       []stats.CategoryStat `json:"topExpenses"`
	TotalTransactions int                  `json:"totalTransactions"`
}

// Response is either a forecast with its stats or an informational message
// when the caller does not have enough history yet.
type Response struct {
	Prediction *Forecast `json:"prediction"`
	Stats      *Stats    `json:"stats,omitempty"`
	Message    string    `json:"message,omitempty"`
}

// forecastInput carries the aggregates both the prompt and the fallback use.
type forecastInput struct {
	avgIncome         float64
	avgExpense        float64
	expenseCategories []stats.CategoryStat
	incomeCategories  []stats.CategoryStat
	trends            []stats.MonthlyTrend
	totalTransactions int
	nextMonthName     string
}

// Generator produces forecasts. With a nil text generator only the
// averages-based path runs.
type Generator struct {
	gen llm.TextGenerator
	log zerolog.Logger

	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time
}

// NewGenerator creates a forecast generator.
func NewGenerator(gen llm.TextGenerator, log zerolog.Logger) *Generator {
	return &Generator{gen: gen, log: log}
}

// Predict builds a forecast from the given trailing-window transactions.
// Fewer than MinTransactions yields an informational message and no
// forecast; every other path yields a non-nil Prediction.
func (g *Generator) Predict(ctx context.Context, txs []domain.Transaction) *Response {
	if len(txs) < MinTransactions {
		return &Response{Message: insufficientDataMessage}
	}

	categoryStats := stats.CategoryTotals(txs)
	trends := stats.MonthlyTrends(txs)

	totalMonths := len(trends)
	if totalMonths == 0 {
		totalMonths = 1
	}
	var sumIncome, sumExpense float64
	for _, m := range trends {
		sumIncome += m.Income
		sumExpense += m.Expense
	}

	var expenseCategories, incomeCategories []stats.CategoryStat
	for _, c := range categoryStats {
		if c.Kind == domain.KindIncome {
			incomeCategories = append(incomeCategories, c)
		} else {
			expenseCategories = append(expenseCategories, c)
		}
	}

	in := forecastInput{
		avgIncome:         sumIncome / float64(totalMonths),
		avgExpense:        sumExpense / float64(totalMonths),
		expenseCategories: expenseCategories,
		incomeCategories:  incomeCategories,
		trends:            trends,
		totalTransactions: len(txs),
		nextMonthName:     g.nextMonthName(),
	}

	forecast := g.generate(ctx, in)

	topExpenses := expenseCategories
	if len(topExpenses) > 5 {
		topExpenses = topExpenses[:5]
	}

	return &Response{
		Prediction: forecast,
		Stats: &Stats{
			AvgMonthlyIncome:  in.avgIncome,
			AvgMonthlyExpense: in.avgExpense,
			MonthlyTrends:     trends,
			TopExpenses:       topExpenses,
			TotalTransactions: len(txs),
		},
	}
}

// generate asks the model for a forecast, coercing its answer field by
// field. Any failure along the way drops to the averages-based fallback.
func (g *Generator) generate(ctx context.Context, in forecastInput) *Forecast {
	if g.gen == nil {
		return g.fallback(in)
	}

	text, err := g.gen.GenerateText(ctx, buildForecastPrompt(in))
	if err != nil {
		g.log.Warn().Err(err).Msg("Forecast model call failed, using averages")
		return g.fallback(in)
	}

	raw, ok := llm.FirstJSONObject(text)
	if !ok {
		g.log.Warn().Msg("No JSON object in forecast response, using averages")
		return g.fallback(in)
	}

	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		g.log.Warn().Err(err).Msg("Malformed forecast JSON, using averages")
		return g.fallback(in)
	}

	income := numberOr(obj["predictedIncome"], in.avgIncome)
	expense := numberOr(obj["predictedExpense"], in.avgExpense)
	balance := numberOr(obj["predictedBalance"], income-expense)
	if math.Abs(balance-(income-expense)) > 1 {
		// The model's own arithmetic disagrees with its income/expense.
		balance = income - expense
	}

	return &Forecast{
		PredictedIncome:     income,
		PredictedExpense:    expense,
		PredictedBalance:    balance,
		Confidence:          clampConfidence(int(numberOr(obj["confidence"], 70))),
		Trend:               normalizeTrend(asString(obj["trend"])),
		Summary:             stringOr(obj["summary"], "Dựa trên dữ liệu hiện có, tài chính của bạn đang ổn định."),
		Tips:                stringSlice(obj["tips"]),
		Warnings:            dropEmpty(stringSlice(obj["warnings"])),
		TopSpendingCategory: asString(obj["topSpendingCategory"]),
		SavingPotential:     math.Max(0, numberOr(obj["savingPotential"], 0)),
		MonthName:           in.nextMonthName,
	}
}

// fallback is the deterministic forecast: three-month averages at fixed
// confidence 50 and a stable trend.
func (g *Generator) fallback(in forecastInput) *Forecast {
	top := ""
	if len(in.expenseCategories) > 0 {
		top = in.expenseCategories[0].Name
	}

	return &Forecast{
		PredictedIncome:  in.avgIncome,
		PredictedExpense: in.avgExpense,
		PredictedBalance: in.avgIncome - in.avgExpense,
		Confidence:       50,
		Trend:            TrendStable,
		Summary:          "Dự đoán dựa trên mức trung bình 3 tháng gần nhất.",
		Tips: []string{
			"Theo dõi chi tiêu hàng ngày",
			"Đặt mục tiêu tiết kiệm cụ thể",
			"Hạn chế chi tiêu không cần thiết",
		},
		Warnings:            []string{},
		TopSpendingCategory: top,
		SavingPotential:     0,
		MonthName:           in.nextMonthName,
	}
}

func (g *Generator) nextMonthName() string {
	next := g.now().AddDate(0, 1, 0)
	return fmt.Sprintf("tháng %d năm %d", int(next.Month()), next.Year())
}

func (g *Generator) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

// numberOr mirrors the loose defaulting the endpoint always had: missing,
// non-numeric and zero all fall back.
func numberOr(v interface{}, fallback float64) float64 {
	n, ok := asNumber(v)
	if !ok || n == 0 {
		return fallback
	}
	return n
}

func asNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func stringOr(v interface{}, fallback string) string {
	if s := asString(v); s != "" {
		return s
	}
	return fallback
}

func stringSlice(v interface{}) []string {
	items, ok := v.([]interface{})
	if !ok {
		return []string{}
	}
	result := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			result = append(result, s)
		}
	}
	return result
}

func dropEmpty(ss []string) []string {
	result := make([]string, 0, len(ss))
	for _, s := range ss {
		if s != "" {
			result = append(result, s)
		}
	}
	return result
}

func clampConfidence(c int) int {
	if c < 1 {
		return 1
	}
	if c > 100 {
		return 100
	}
	return c
}

func normalizeTrend(t string) string {
	switch t {
	case TrendUp, TrendDown, TrendStable:
		return t
	}
	return TrendStable
}
