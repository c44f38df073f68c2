// Package bigquery is the BigQuery-backed Store implementation. Schema
// lives in the configured dataset: categories, transactions and
// family_members tables.
package bigquery

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"
	"google.golang.org/api/iterator"

	"github.com/ntdung/chitieu/internal/domain"
)

const transactionsTable = "transactions"

// Store holds one shared BigQuery client for the process.
type Store struct {
	client  *bigquery.Client
	dataset string
}

// New creates a BigQuery-backed store for the given project and dataset.
func New(ctx context.Context, projectID, dataset string) (*Store, error) {
	client, err := bigquery.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("bigquery.New: client: %w", err)
	}
	return &Store{client: client, dataset: dataset}, nil
}

func (s *Store) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	q := s.client.Query(fmt.Sprintf(`
		SELECT
			category_id, user_id, name, icon, color, kind, is_default
		FROM %s.categories
		WHERE (is_default = TRUE AND user_id IS NULL) OR user_id = @user_id
		ORDER BY name
	`, s.dataset))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "user_id", Value: userID},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("ListCategories: query read: %w", err)
	}

	var result []domain.Category
	for {
		var r categoryRow
		err := it.Next(&r)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ListCategories: iter next: %w", err)
		}
		result = append(result, r.toDomain())
	}
	return result, nil
}

func (s *Store) CreateTransaction(ctx context.Context, tx *domain.Transaction) error {
	inserter := s.client.Dataset(s.dataset).Table(transactionsTable).Inserter()
	if err := inserter.Put(ctx, transactionToRow(tx)); err != nil {
		return fmt.Errorf("CreateTransaction: inserting row: %w", err)
	}
	return nil
}

func (s *Store) ListTransactions(ctx context.Context, userIDs []string, from, to civil.Date) ([]domain.Transaction, error) {
	q := s.client.Query(fmt.Sprintf(`
		SELECT
			t.transaction_id,
			t.user_id,
			t.category_id,
			t.amount,
			t.description,
			t.kind,
			t.transaction_date,
			t.created_ts,
			c.name AS category_name,
			c.icon AS category_icon,
			c.color AS category_color,
			c.kind AS category_kind,
			c.user_id AS category_user_id,
			c.is_default AS category_is_default
		FROM %s.transactions t
		JOIN %s.categories c ON t.category_id = c.category_id
		WHERE t.user_id IN UNNEST(@user_ids)
		  AND t.transaction_date BETWEEN @start_date AND @end_date
		ORDER BY t.transaction_date DESC, t.created_ts DESC
	`, s.dataset, s.dataset))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "user_ids", Value: userIDs},
		{Name: "start_date", Value: from},
		{Name: "end_date", Value: to},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("ListTransactions: query read: %w", err)
	}

	var result []domain.Transaction
	for {
		var r transactionWithCategoryRow
		err := it.Next(&r)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ListTransactions: iter next: %w", err)
		}
		result = append(result, r.toDomain())
	}
	return result, nil
}

func (s *Store) FamilyUserIDs(ctx context.Context, userID string) ([]string, error) {
	q := s.client.Query(fmt.Sprintf(`
		SELECT member.user_id
		FROM %s.family_members self
		JOIN %s.family_members member ON self.family_id = member.family_id
		WHERE self.user_id = @user_id
	`, s.dataset, s.dataset))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "user_id", Value: userID},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("FamilyUserIDs: query read: %w", err)
	}

	var result []string
	for {
		var r struct {
			UserID string `bigquery:"user_id"`
		}
		err := it.Next(&r)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("FamilyUserIDs: iter next: %w", err)
		}
		result = append(result, r.UserID)
	}

	if len(result) == 0 {
		return []string{userID}, nil
	}
	return result, nil
}

func (s *Store) Close() error {
	return s.client.Close()
}
