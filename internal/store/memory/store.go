// Package memory is the in-memory Store backend, used for development and
// tests. Data is lost on restart - use the bigquery backend for real use.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"cloud.google.com/go/civil"

	"github.com/ntdung/chitieu/internal/domain"
	"github.com/ntdung/chitieu/internal/store"
)

// Store keeps everything in mutex-guarded maps and is safe for concurrent
// use. Reads return copies so callers cannot mutate shared state.
type Store struct {
	mu           sync.RWMutex
	categories   map[string]domain.Category
	transactions map[string]domain.Transaction
	families     map[string][]string // userID -> family member userIDs
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		categories:   make(map[string]domain.Category),
		transactions: make(map[string]domain.Transaction),
		families:     make(map[string][]string),
	}
}

// SeedCategories inserts categories, typically DefaultCategories().
func (s *Store) SeedCategories(categories []domain.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range categories {
		s.categories[c.ID] = c
	}
}

// SetFamily records that the given users see each other's data.
func (s *Store) SetFamily(userIDs []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range userIDs {
		members := make([]string, len(userIDs))
		copy(members, userIDs)
		s.families[id] = members
	}
}

func (s *Store) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.Category
	for _, c := range s.categories {
		if (c.IsDefault && c.UserID == "") || c.UserID == userID {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (s *Store) CreateTransaction(ctx context.Context, tx *domain.Transaction) error {
	if tx.ID == "" {
		return fmt.Errorf("CreateTransaction: transaction ID is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	category, ok := s.categories[tx.CategoryID]
	if !ok {
		return fmt.Errorf("CreateTransaction: category %s: %w", tx.CategoryID, store.ErrNotFound)
	}

	stored := *tx
	stored.Category = category
	s.transactions[tx.ID] = stored
	return nil
}

func (s *Store) ListTransactions(ctx context.Context, userIDs []string, from, to civil.Date) ([]domain.Transaction, error) {
	users := make(map[string]bool, len(userIDs))
	for _, id := range userIDs {
		users[id] = true
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.Transaction
	for _, t := range s.transactions {
		if !users[t.UserID] {
			continue
		}
		if t.Date.Before(from) || t.Date.After(to) {
			continue
		}
		result = append(result, t)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Date != result[j].Date {
			return result[j].Date.Before(result[i].Date)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (s *Store) FamilyUserIDs(ctx context.Context, userID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if members, ok := s.families[userID]; ok {
		result := make([]string, len(members))
		copy(result, members)
		return result, nil
	}
	return []string{userID}, nil
}

func (s *Store) Close() error { return nil }
