package parser

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"cloud.google.com/go/civil"

	"github.com/ntdung/chitieu/internal/domain"
	"github.com/ntdung/chitieu/internal/llm"
)

// AIParser delegates parsing to a generative model. It makes one bounded
// attempt and reports any failure to the orchestrator, which falls through
// to the rule-based parser; nothing here is surfaced to the caller.
type AIParser struct {
	gen llm.TextGenerator

	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time
}

// NewAIParser creates an AIParser backed by the given text generator.
func NewAIParser(gen llm.TextGenerator) *AIParser {
	return &AIParser{gen: gen}
}

func (p *AIParser) Name() string { return string(OutcomeAI) }

func (p *AIParser) Parse(ctx context.Context, message string, categories []domain.Category) (*domain.Intent, error) {
	today := civil.DateOf(p.now())
	prompt := buildParsePrompt(message, categories, today)

	text, err := p.gen.GenerateText(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("AIParser: model call: %w", err)
	}

	// The model may wrap the JSON in prose; keep only the first object.
	raw, ok := llm.FirstJSONObject(text)
	if !ok {
		return nil, fmt.Errorf("AIParser: no JSON object in model response")
	}

	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return nil, fmt.Errorf("AIParser: unmarshal model JSON: %w", err)
	}

	if _, hasErr := obj["error"]; hasErr {
		return nil, fmt.Errorf("AIParser: model reported %q", asString(obj["error"]))
	}

	amount, ok := asNumber(obj["amount"])
	if !ok {
		return nil, fmt.Errorf("AIParser: amount %v is not numeric", obj["amount"])
	}

	// Other fields pass through; validation against the real category list
	// happens at orchestration time. An unparseable date degrades to today
	// rather than failing the whole parse.
	date := today
	if d, err := civil.ParseDate(asString(obj["date"])); err == nil {
		date = d
	}

	return &domain.Intent{
		Amount:       amount,
		Description:  asString(obj["description"]),
		CategoryName: asString(obj["categoryName"]),
		Kind:         domain.ParseKind(asString(obj["type"])),
		Date:         date,
	}, nil
}

func (p *AIParser) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

// asNumber coerces the loosely-typed values models emit for numeric fields.
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
