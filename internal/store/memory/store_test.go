package memory

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ntdung/chitieu/internal/domain"
	"github.com/ntdung/chitieu/internal/store"
)

func date(year int, month time.Month, day int) civil.Date {
	return civil.Date{Year: year, Month: month, Day: day}
}

func TestListCategories(t *testing.T) {
	s := New()
	s.SeedCategories([]domain.Category{
		{ID: "d1", Name: "Khác", Kind: domain.KindExpense, IsDefault: true},
		{ID: "u1", Name: "Cà phê", UserID: "user-1", Kind: domain.KindExpense},
		{ID: "u2", Name: "Thú cưng", UserID: "user-2", Kind: domain.KindExpense},
	})

	got, err := s.ListCategories(context.Background(), "user-1")
	require.NoError(t, err)

	// Defaults plus the caller's own, never another user's.
	require.Len(t, got, 2)
	assert.Equal(t, "Cà phê", got[0].Name)
	assert.Equal(t, "Khác", got[1].Name)
}

func TestCreateTransaction(t *testing.T) {
	s := New()
	s.SeedCategories(DefaultCategories())

	tx := &domain.Transaction{
		ID:         "tx-1",
		UserID:     "user-1",
		CategoryID: "cat-an-uong",
		Amount:     50_000,
		Kind:       domain.KindExpense,
		Date:       date(2025, time.October, 2),
	}
	require.NoError(t, s.CreateTransaction(context.Background(), tx))

	txs, err := s.ListTransactions(context.Background(), []string{"user-1"},
		date(2025, time.October, 1), date(2025, time.October, 31))
	require.NoError(t, err)
	require.Len(t, txs, 1)
	// The stored transaction carries the full category.
	assert.Equal(t, "Ăn uống", txs[0].Category.Name)
}

func TestCreateTransactionUnknownCategory(t *testing.T) {
	s := New()

	err := s.CreateTransaction(context.Background(), &domain.Transaction{
		ID:         "tx-1",
		CategoryID: "missing",
	})
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateTransactionRequiresID(t *testing.T) {
	s := New()
	s.SeedCategories(DefaultCategories())

	err := s.CreateTransaction(context.Background(), &domain.Transaction{CategoryID: "cat-khac"})
	assert.Error(t, err)
}

func TestListTransactionsFiltersAndSorts(t *testing.T) {
	s := New()
	s.SeedCategories(DefaultCategories())

	seed := []struct {
		id     string
		userID string
		d      civil.Date
	}{
		{"tx-a", "user-1", date(2025, time.October, 1)},
		{"tx-b", "user-1", date(2025, time.October, 5)},
		{"tx-c", "user-2", date(2025, time.October, 3)},
		{"tx-d", "user-1", date(2025, time.September, 30)}, // outside range
	}
	for _, row := range seed {
		require.NoError(t, s.CreateTransaction(context.Background(), &domain.Transaction{
			ID:         row.id,
			UserID:     row.userID,
			CategoryID: "cat-an-uong",
			Amount:     10_000,
			Kind:       domain.KindExpense,
			Date:       row.d,
		}))
	}

	txs, err := s.ListTransactions(context.Background(), []string{"user-1", "user-2"},
		date(2025, time.October, 1), date(2025, time.October, 31))
	require.NoError(t, err)

	// Newest first; the September row is out of range.
	require.Len(t, txs, 3)
	assert.Equal(t, "tx-b", txs[0].ID)
	assert.Equal(t, "tx-c", txs[1].ID)
	assert.Equal(t, "tx-a", txs[2].ID)

	// Range bounds are inclusive.
	txs, err = s.ListTransactions(context.Background(), []string{"user-1"},
		date(2025, time.September, 30), date(2025, time.October, 1))
	require.NoError(t, err)
	require.Len(t, txs, 2)
}

func TestFamilyUserIDs(t *testing.T) {
	s := New()

	// Without a family the caller sees only themselves.
	ids, err := s.FamilyUserIDs(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"user-1"}, ids)

	s.SetFamily([]string{"user-1", "user-2"})

	ids, err = s.FamilyUserIDs(context.Background(), "user-1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"user-1", "user-2"}, ids)

	ids, err = s.FamilyUserIDs(context.Background(), "user-2")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"user-1", "user-2"}, ids)
}
