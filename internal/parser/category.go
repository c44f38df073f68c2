package parser

import (
	"strings"

	"github.com/ntdung/chitieu/internal/domain"
)

type categoryEntry struct {
	name     string
	keywords []string
}

// categoryTable is constructed once and never mutated. Table order matters:
// on a tie the earlier entry keeps the match.
var categoryTable = []categoryEntry{
	{"Ăn uống", []string{"ăn", "uống", "cơm", "phở", "cafe", "trưa", "sáng", "tối", "nhậu", "bia"}},
	{"Di chuyển", []string{"grab", "xe", "taxi", "xăng", "gửi xe"}},
	{"Mua sắm", []string{"mua", "shopping", "shopee", "lazada"}},
	{"Giải trí", []string{"xem phim", "game", "chơi", "du lịch", "karaoke"}},
	{"Hóa đơn", []string{"điện", "nước", "internet", "wifi", "tiền nhà"}},
	{"Sức khỏe", []string{"thuốc", "bệnh viện", "khám"}},
	{"Lương", []string{"lương", "salary"}},
	{"Thưởng", []string{"thưởng", "bonus"}},
}

// Kind-specific fallbacks when no keyword matches at all.
const (
	DefaultExpenseCategory = "Khác"
	DefaultIncomeCategory  = "Thu nhập khác"
)

// MatchCategory returns the category label whose keywords occur most often
// as substrings of the lower-cased message. Only a strictly greater count
// replaces the incumbent; zero matches yields the kind-specific default.
func MatchCategory(lowerMessage string, kind domain.Kind) string {
	matched := DefaultExpenseCategory
	if kind == domain.KindIncome {
		matched = DefaultIncomeCategory
	}

	maxMatches := 0
	for _, entry := range categoryTable {
		count := 0
		for _, kw := range entry.keywords {
			if strings.Contains(lowerMessage, kw) {
				count++
			}
		}
		if count > maxMatches {
			maxMatches = count
			matched = entry.name
		}
	}

	return matched
}
