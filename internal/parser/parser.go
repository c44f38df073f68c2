// Package parser turns free-text Vietnamese chat messages into structured
// transaction intents. Two parser variants exist behind one interface: an
// AI-backed parser and a deterministic rule engine. The orchestrator tries
// them in order and resolves the winning intent against the caller's
// category list.
package parser

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ntdung/chitieu/internal/domain"
)

// Sentinel errors for the parse failure taxonomy.
var (
	// ErrNoAmount means no monetary amount was found in the message.
	ErrNoAmount = errors.New("no amount found in message")
	// ErrUnparseable means every configured parser failed on the message.
	ErrUnparseable = errors.New("message could not be parsed")
	// ErrNoCategory means the caller has no category of the intent's kind.
	// It requires caller action (create a category), unlike a parse failure.
	ErrNoCategory = errors.New("no matching category for intent")
)

// Parser is one parsing strategy. Implementations must not surface model or
// extraction failures beyond their error return.
type Parser interface {
	Name() string
	Parse(ctx context.Context, message string, categories []domain.Category) (*domain.Intent, error)
}

// Outcome tags which path produced the final intent.
type Outcome string

const (
	OutcomeAI     Outcome = "ai"
	OutcomeRules  Outcome = "rules"
	OutcomeFailed Outcome = "failed"
)

// Orchestrator tries its parsers in order and returns the first usable
// intent. Parser names double as outcome tags.
type Orchestrator struct {
	parsers []Parser
	log     zerolog.Logger
}

// NewOrchestrator creates an orchestrator over the given parsers, tried in
// argument order.
func NewOrchestrator(log zerolog.Logger, parsers ...Parser) *Orchestrator {
	return &Orchestrator{parsers: parsers, log: log}
}

// Parse runs the parsers in order. A parse yielding a non-positive amount
// counts as a failure, not a zero-value transaction. When every parser
// fails the outcome is OutcomeFailed with ErrUnparseable.
func (o *Orchestrator) Parse(ctx context.Context, message string, categories []domain.Category) (*domain.Intent, Outcome, error) {
	for _, p := range o.parsers {
		intent, err := p.Parse(ctx, message, categories)
		if err != nil {
			o.log.Debug().Err(err).Str("parser", p.Name()).Msg("Parser failed, falling through")
			continue
		}
		if intent.Amount <= 0 {
			o.log.Debug().Str("parser", p.Name()).Float64("amount", intent.Amount).Msg("Non-positive amount, falling through")
			continue
		}
		return intent, Outcome(p.Name()), nil
	}
	return nil, OutcomeFailed, ErrUnparseable
}

// ResolveCategory maps the intent's category name onto the caller's live
// category list: case-insensitive exact name match first, then the first
// category of the same kind. The list must be a snapshot fetched once per
// request. Returns ErrNoCategory when nothing of the intent's kind exists.
func ResolveCategory(intent *domain.Intent, categories []domain.Category) (*domain.Category, error) {
	for i := range categories {
		if strings.EqualFold(categories[i].Name, intent.CategoryName) {
			return &categories[i], nil
		}
	}
	for i := range categories {
		if categories[i].Kind == intent.Kind {
			return &categories[i], nil
		}
	}
	return nil, ErrNoCategory
}
