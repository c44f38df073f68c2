// Package stats aggregates transactions into the figures the statistics
// endpoint and the predictor feed on. Everything here is pure arithmetic
// over read-only transaction snapshots.
package stats

import (
	"fmt"
	"sort"
	"time"

	"github.com/ntdung/chitieu/internal/domain"
)

// CategoryStat is one category's aggregate. Average is always recomputed
// from Total/Count and never tracked separately.
type CategoryStat struct {
	CategoryID string      `json:"categoryId,omitempty"`
	Name       string      `json:"categoryName"`
	Icon       string      `json:"categoryIcon"`
	Color      string      `json:"categoryColor,omitempty"`
	Kind       domain.Kind `json:"type"`
	Total      float64     `json:"total"`
	Count      int         `json:"count"`
	Average    float64     `json:"avgPerTransaction"`
	Percentage float64     `json:"percentage"`
}

// MonthlyStat is one display month ("T1".."T12") of the requested year.
type MonthlyStat struct {
	Month   string  `json:"month"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"`
}

// MonthlyTrend is one "YYYY-MM" bucket, used by the predictor.
type MonthlyTrend struct {
	Month   string  `json:"month"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// Summary is the statistics endpoint payload.
type Summary struct {
	TotalIncome      float64        `json:"totalIncome"`
	TotalExpense     float64        `json:"totalExpense"`
	Balance          float64        `json:"balance"`
	CategoryStats    []CategoryStat `json:"categoryStats"`
	MonthlyStats     []MonthlyStat  `json:"monthlyStats"`
	TransactionCount int            `json:"transactionCount"`
}

// Aggregate computes per-category and per-month figures over the given
// transactions. The monthly series always carries all 12 months of year,
// zero-filled where nothing happened. Category percentages are taken
// against the grand total of the same kind, 0 when that total is 0, and
// the list is sorted by total descending for display.
func Aggregate(txs []domain.Transaction, year int) Summary {
	byCategory := make(map[string]*CategoryStat)
	var order []string

	var totalIncome, totalExpense float64
	for _, t := range txs {
		stat, ok := byCategory[t.CategoryID]
		if !ok {
			stat = &CategoryStat{
				CategoryID: t.CategoryID,
				Name:       t.Category.Name,
				Icon:       t.Category.Icon,
				Color:      t.Category.Color,
				Kind:       t.Kind,
			}
			byCategory[t.CategoryID] = stat
			order = append(order, t.CategoryID)
		}
		stat.Total += t.Amount
		stat.Count++

		if t.Kind == domain.KindIncome {
			totalIncome += t.Amount
		} else {
			totalExpense += t.Amount
		}
	}

	categoryStats := make([]CategoryStat, 0, len(byCategory))
	for _, id := range order {
		stat := *byCategory[id]
		stat.Average = stat.Total / float64(stat.Count)
		stat.Percentage = percentage(stat.Total, stat.Kind, totalIncome, totalExpense)
		categoryStats = append(categoryStats, stat)
	}
	sort.SliceStable(categoryStats, func(i, j int) bool {
		return categoryStats[i].Total > categoryStats[j].Total
	})

	monthlyStats := make([]MonthlyStat, 0, 12)
	for m := time.January; m <= time.December; m++ {
		var income, expense float64
		for _, t := range txs {
			if t.Date.Year != year || t.Date.Month != m {
				continue
			}
			if t.Kind == domain.KindIncome {
				income += t.Amount
			} else {
				expense += t.Amount
			}
		}
		monthlyStats = append(monthlyStats, MonthlyStat{
			Month:   fmt.Sprintf("T%d", int(m)),
			Income:  income,
			Expense: expense,
			Balance: income - expense,
		})
	}

	return Summary{
		TotalIncome:      totalIncome,
		TotalExpense:     totalExpense,
		Balance:          totalIncome - totalExpense,
		CategoryStats:    categoryStats,
		MonthlyStats:     monthlyStats,
		TransactionCount: len(txs),
	}
}

func percentage(total float64, kind domain.Kind, totalIncome, totalExpense float64) float64 {
	denom := totalExpense
	if kind == domain.KindIncome {
		denom = totalIncome
	}
	if denom <= 0 {
		return 0
	}
	return total / denom * 100
}

// CategoryTotals groups transactions by category name, with the running
// average maintained as total/count. Sorted by total descending with name
// as tiebreaker so output is deterministic.
func CategoryTotals(txs []domain.Transaction) []CategoryStat {
	byName := make(map[string]*CategoryStat)
	var order []string

	for _, t := range txs {
		stat, ok := byName[t.Category.Name]
		if !ok {
			stat = &CategoryStat{
				Name: t.Category.Name,
				Icon: t.Category.Icon,
				Kind: t.Kind,
			}
			byName[t.Category.Name] = stat
			order = append(order, t.Category.Name)
		}
		stat.Total += t.Amount
		stat.Count++
		stat.Average = stat.Total / float64(stat.Count)
	}

	result := make([]CategoryStat, 0, len(byName))
	for _, name := range order {
		result = append(result, *byName[name])
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Total != result[j].Total {
			return result[i].Total > result[j].Total
		}
		return result[i].Name < result[j].Name
	})
	return result
}

// MonthlyTrends buckets transactions into "YYYY-MM" keys, one entry per
// distinct month present, sorted ascending by month key.
func MonthlyTrends(txs []domain.Transaction) []MonthlyTrend {
	byMonth := make(map[string]*MonthlyTrend)

	for _, t := range txs {
		key := fmt.Sprintf("%04d-%02d", t.Date.Year, int(t.Date.Month))
		trend, ok := byMonth[key]
		if !ok {
			trend = &MonthlyTrend{Month: key}
			byMonth[key] = trend
		}
		if t.Kind == domain.KindIncome {
			trend.Income += t.Amount
		} else {
			trend.Expense += t.Amount
		}
	}

	result := make([]MonthlyTrend, 0, len(byMonth))
	for _, trend := range byMonth {
		result = append(result, *trend)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Month < result[j].Month })
	return result
}
