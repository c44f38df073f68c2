package chat

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ntdung/chitieu/internal/domain"
	"github.com/ntdung/chitieu/internal/parser"
	"github.com/ntdung/chitieu/internal/store/memory"
)

func fixedClock() time.Time {
	return time.Date(2025, time.October, 3, 12, 0, 0, 0, time.UTC)
}

func newTestService(st *memory.Store) *Service {
	orch := parser.NewOrchestrator(zerolog.Nop(), &parser.RuleParser{Now: fixedClock})
	svc := New(st, orch, zerolog.Nop())
	svc.Now = fixedClock
	svc.NewID = func() string { return "tx-test-1" }
	return svc
}

func TestHandleMessageRecordsExpense(t *testing.T) {
	st := memory.New()
	st.SeedCategories(memory.DefaultCategories())
	svc := newTestService(st)

	reply, err := svc.HandleMessage(context.Background(), "user-1", "hôm qua ăn trưa 50k")
	require.NoError(t, err)

	assert.True(t, reply.Success)
	assert.False(t, reply.UsedAI)
	require.NotNil(t, reply.Transaction)

	tx := reply.Transaction
	assert.Equal(t, "user-1", tx.UserID)
	assert.Equal(t, 50_000.0, tx.Amount)
	assert.Equal(t, domain.KindExpense, tx.Kind)
	assert.Equal(t, "Ăn uống", tx.Category.Name)
	assert.Equal(t, civil.Date{Year: 2025, Month: time.October, Day: 2}, tx.Date)

	assert.Contains(t, reply.Reply, "✅ Đã ghi nhận chi tiêu")
	assert.Contains(t, reply.Reply, "50.000đ")
	assert.Contains(t, reply.Reply, "Ăn uống")
	assert.NotContains(t, reply.Reply, "Phân tích bởi AI")

	// The transaction is actually persisted, visible in a listing.
	txs, err := st.ListTransactions(context.Background(), []string{"user-1"},
		civil.Date{Year: 2025, Month: time.October, Day: 1},
		civil.Date{Year: 2025, Month: time.October, Day: 31})
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, "tx-test-1", txs[0].ID)
}

func TestHandleMessageRecordsIncome(t *testing.T) {
	st := memory.New()
	st.SeedCategories(memory.DefaultCategories())
	svc := newTestService(st)

	reply, err := svc.HandleMessage(context.Background(), "user-1", "nhận lương 15tr")
	require.NoError(t, err)

	assert.True(t, reply.Success)
	require.NotNil(t, reply.Transaction)
	assert.Equal(t, 15_000_000.0, reply.Transaction.Amount)
	assert.Equal(t, domain.KindIncome, reply.Transaction.Kind)
	assert.Equal(t, "Lương", reply.Transaction.Category.Name)
	assert.Contains(t, reply.Reply, "thu nhập")
	assert.Contains(t, reply.Reply, "15.000.000đ")
}

func TestHandleMessageNotUnderstood(t *testing.T) {
	st := memory.New()
	st.SeedCategories(memory.DefaultCategories())
	svc := newTestService(st)

	reply, err := svc.HandleMessage(context.Background(), "user-1", "xin chào")
	require.NoError(t, err)

	assert.False(t, reply.Success)
	assert.Nil(t, reply.Transaction)
	assert.Contains(t, reply.Reply, "không hiểu")
}

func TestHandleMessageNoCategories(t *testing.T) {
	st := memory.New() // nothing seeded
	svc := newTestService(st)

	reply, err := svc.HandleMessage(context.Background(), "user-1", "ăn trưa 50k")
	require.NoError(t, err)

	assert.False(t, reply.Success)
	assert.Nil(t, reply.Transaction)
	assert.Contains(t, reply.Reply, "danh mục")
}
