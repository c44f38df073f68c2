package parser

import (
	"context"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/civil"

	"github.com/ntdung/chitieu/internal/domain"
)

func fixedClock() time.Time {
	return time.Date(2025, time.October, 3, 12, 0, 0, 0, time.UTC)
}

func TestRuleParserExpense(t *testing.T) {
	p := &RuleParser{Now: fixedClock}

	intent, err := p.Parse(context.Background(), "Hôm qua ăn trưa 50k", nil)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if intent.Amount != 50_000 {
		t.Errorf("Amount = %v, want 50000", intent.Amount)
	}
	if intent.Kind != domain.KindExpense {
		t.Errorf("Kind = %v, want expense", intent.Kind)
	}
	if intent.CategoryName != "Ăn uống" {
		t.Errorf("CategoryName = %q, want %q", intent.CategoryName, "Ăn uống")
	}
	if want := (civil.Date{Year: 2025, Month: time.October, Day: 2}); intent.Date != want {
		t.Errorf("Date = %v, want %v", intent.Date, want)
	}
	if intent.Description == "" {
		t.Error("Description is empty")
	}
}

func TestRuleParserIncome(t *testing.T) {
	p := &RuleParser{Now: fixedClock}

	intent, err := p.Parse(context.Background(), "Nhận lương 15tr", nil)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if intent.Amount != 15_000_000 {
		t.Errorf("Amount = %v, want 15000000", intent.Amount)
	}
	if intent.Kind != domain.KindIncome {
		t.Errorf("Kind = %v, want income", intent.Kind)
	}
	if intent.CategoryName != "Lương" {
		t.Errorf("CategoryName = %q, want %q", intent.CategoryName, "Lương")
	}
	if want := (civil.Date{Year: 2025, Month: time.October, Day: 3}); intent.Date != want {
		t.Errorf("Date = %v, want %v", intent.Date, want)
	}
}

func TestRuleParserNoAmount(t *testing.T) {
	p := &RuleParser{Now: fixedClock}

	_, err := p.Parse(context.Background(), "xyz", nil)
	if !errors.Is(err, ErrNoAmount) {
		t.Fatalf("Parse error = %v, want ErrNoAmount", err)
	}
}

func TestDetectKind(t *testing.T) {
	tests := []struct {
		message string
		want    domain.Kind
	}{
		{"nhận lương 15tr", domain.KindIncome},
		{"thu tiền hàng 2tr", domain.KindIncome},
		{"bán xe cũ 5 triệu", domain.KindIncome},
		{"tiền về 500k", domain.KindIncome},
		{"ăn trưa 50k", domain.KindExpense},
		{"đổ xăng 200k", domain.KindExpense},
	}
	for _, tt := range tests {
		if got := detectKind(tt.message); got != tt.want {
			t.Errorf("detectKind(%q) = %v, want %v", tt.message, got, tt.want)
		}
	}
}
