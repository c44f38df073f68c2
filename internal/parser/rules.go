package parser

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/civil"

	"github.com/ntdung/chitieu/internal/domain"
)

// Presence of any of these marks the message as income; everything else is
// an expense. First match wins, table order only.
var incomeKeywords = []string{"nhận", "thu", "lương", "thưởng", "được", "bán", "tiền về"}

// RuleParser is the deterministic fallback parser. It is a pure function of
// the message text (plus the clock); the caller's category list is resolved
// later by the orchestrator, so it is ignored here.
type RuleParser struct {
	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time
}

func (p *RuleParser) Name() string { return string(OutcomeRules) }

func (p *RuleParser) Parse(ctx context.Context, message string, categories []domain.Category) (*domain.Intent, error) {
	lower := strings.ToLower(message)

	amount, ok := ExtractAmount(message)
	if !ok {
		return nil, ErrNoAmount
	}

	kind := detectKind(lower)
	categoryName := MatchCategory(lower, kind)
	description := CleanDescription(message, categoryName)
	date := ResolveDate(lower, civil.DateOf(p.now()))

	return &domain.Intent{
		Amount:       amount,
		Description:  description,
		CategoryName: categoryName,
		Kind:         kind,
		Date:         date,
	}, nil
}

func (p *RuleParser) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

func detectKind(lowerMessage string) domain.Kind {
	for _, kw := range incomeKeywords {
		if strings.Contains(lowerMessage, kw) {
			return domain.KindIncome
		}
	}
	return domain.KindExpense
}
