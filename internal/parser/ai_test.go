package parser

import (
	"context"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/civil"

	"github.com/ntdung/chitieu/internal/domain"
)

// stubGenerator returns a canned response or error.
type stubGenerator struct {
	text string
	err  error
}

func (s *stubGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	return s.text, s.err
}

func TestAIParserProseWrappedJSON(t *testing.T) {
	gen := &stubGenerator{text: `Đây là kết quả phân tích:
{"amount": 50000, "description": "ăn trưa", "categoryName": "Ăn uống", "type": "expense", "date": "2025-10-02"}
Chúc bạn một ngày tốt lành!`}
	p := NewAIParser(gen)
	p.Now = fixedClock

	intent, err := p.Parse(context.Background(), "hôm qua ăn trưa 50k", nil)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if intent.Amount != 50_000 {
		t.Errorf("Amount = %v, want 50000", intent.Amount)
	}
	if intent.Description != "ăn trưa" {
		t.Errorf("Description = %q, want %q", intent.Description, "ăn trưa")
	}
	if intent.CategoryName != "Ăn uống" {
		t.Errorf("CategoryName = %q, want %q", intent.CategoryName, "Ăn uống")
	}
	if intent.Kind != domain.KindExpense {
		t.Errorf("Kind = %v, want expense", intent.Kind)
	}
	if want := (civil.Date{Year: 2025, Month: time.October, Day: 2}); intent.Date != want {
		t.Errorf("Date = %v, want %v", intent.Date, want)
	}
}

func TestAIParserStringAmount(t *testing.T) {
	gen := &stubGenerator{text: `{"amount": "15000000", "description": "lương", "categoryName": "Lương", "type": "income", "date": "2025-10-03"}`}
	p := NewAIParser(gen)
	p.Now = fixedClock

	intent, err := p.Parse(context.Background(), "nhận lương 15tr", nil)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if intent.Amount != 15_000_000 {
		t.Errorf("Amount = %v, want 15000000", intent.Amount)
	}
	if intent.Kind != domain.KindIncome {
		t.Errorf("Kind = %v, want income", intent.Kind)
	}
}

func TestAIParserBadDateDegradesToToday(t *testing.T) {
	gen := &stubGenerator{text: `{"amount": 1000, "description": "x", "categoryName": "Khác", "type": "expense", "date": "not-a-date"}`}
	p := NewAIParser(gen)
	p.Now = fixedClock

	intent, err := p.Parse(context.Background(), "x 1000đ", nil)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if want := (civil.Date{Year: 2025, Month: time.October, Day: 3}); intent.Date != want {
		t.Errorf("Date = %v, want today %v", intent.Date, want)
	}
}

func TestAIParserFailures(t *testing.T) {
	tests := []struct {
		name string
		gen  *stubGenerator
	}{
		{"model error", &stubGenerator{err: errors.New("deadline exceeded")}},
		{"no JSON in response", &stubGenerator{text: "xin lỗi, mình không hiểu"}},
		{"malformed JSON", &stubGenerator{text: `{"amount": 50000,`}},
		{"model reported error", &stubGenerator{text: `{"error": "Không thể phân tích tin nhắn"}`}},
		{"non-numeric amount", &stubGenerator{text: `{"amount": "nhiều lắm"}`}},
		{"missing amount", &stubGenerator{text: `{"description": "ăn trưa"}`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewAIParser(tt.gen)
			p.Now = fixedClock
			if _, err := p.Parse(context.Background(), "ăn trưa 50k", nil); err == nil {
				t.Error("Parse succeeded, want error")
			}
		})
	}
}
