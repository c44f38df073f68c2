// Package store defines the persistence collaborator the core depends on.
// Categories and transactions are owned by the store; the core reads them
// as snapshots and appends new transactions. Backends: memory, bigquery.
package store

import (
	"context"
	"errors"

	"cloud.google.com/go/civil"

	"github.com/ntdung/chitieu/internal/domain"
)

// ErrNotFound is returned when a referenced entity does not exist.
var ErrNotFound = errors.New("store: not found")

// Store is the persistence contract. ListCategories returns the caller's
// categories plus the shared defaults in one consistent snapshot.
// ListTransactions returns transactions of all given users within the
// inclusive date range, newest first, with Category populated.
type Store interface {
	ListCategories(ctx context.Context, userID string) ([]domain.Category, error)
	CreateTransaction(ctx context.Context, tx *domain.Transaction) error
	ListTransactions(ctx context.Context, userIDs []string, from, to civil.Date) ([]domain.Transaction, error)

	// FamilyUserIDs returns every member of the caller's family, or just
	// the caller when they belong to none. Family membership itself is
	// managed elsewhere; the core only reads it for shared visibility.
	FamilyUserIDs(ctx context.Context, userID string) ([]string, error)

	Close() error
}
