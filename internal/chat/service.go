// Package chat handles the conversational entry point: a free-text message
// comes in, a transaction comes out (or a Vietnamese explanation of why
// not). All parse failures become user-displayable replies here; nothing
// propagates as an error unless persistence itself breaks.
package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ntdung/chitieu/internal/domain"
	"github.com/ntdung/chitieu/internal/parser"
	"github.com/ntdung/chitieu/internal/store"
)

const (
	helpReply = "Xin lỗi, mình không hiểu. Bạn có thể nhập theo dạng:\n" +
		"• 'ăn trưa 50k'\n" +
		"• 'đổ xăng 200 nghìn'\n" +
		"• 'nhận lương 15 triệu'"

	noCategoryReply = "Không tìm thấy danh mục phù hợp. Vui lòng tạo danh mục trước."
)

// Reply is the chat endpoint payload.
type Reply struct {
	Success     bool                `json:"success"`
	Reply       string              `json:"reply"`
	Transaction *domain.Transaction `json:"transaction,omitempty"`
	UsedAI      bool                `json:"usedAI"`
}

// Service wires the parse orchestrator to the persistence collaborator.
type Service struct {
	store store.Store
	orch  *parser.Orchestrator
	log   zerolog.Logger

	// Overridable for tests; default to time.Now and uuid.NewString.
	Now   func() time.Time
	NewID func() string
}

// New creates a chat service.
func New(st store.Store, orch *parser.Orchestrator, log zerolog.Logger) *Service {
	return &Service{store: st, orch: orch, log: log}
}

// HandleMessage parses the message, resolves the category against a single
// snapshot of the caller's category list, and persists the transaction.
// Parse and resolution failures return Success=false replies, not errors.
func (s *Service) HandleMessage(ctx context.Context, userID, message string) (*Reply, error) {
	categories, err := s.store.ListCategories(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("HandleMessage: list categories: %w", err)
	}

	intent, outcome, err := s.orch.Parse(ctx, message, categories)
	if err != nil {
		s.log.Info().Str("user_id", userID).Msg("Message not understood")
		return &Reply{Success: false, Reply: helpReply}, nil
	}

	category, err := parser.ResolveCategory(intent, categories)
	if err != nil {
		if errors.Is(err, parser.ErrNoCategory) {
			s.log.Info().Str("user_id", userID).Str("category", intent.CategoryName).Msg("No category of required kind")
			return &Reply{Success: false, Reply: noCategoryReply}, nil
		}
		return nil, fmt.Errorf("HandleMessage: resolve category: %w", err)
	}

	tx := &domain.Transaction{
		ID:          s.newID(),
		UserID:      userID,
		CategoryID:  category.ID,
		Amount:      intent.Amount,
		Description: intent.Description,
		Kind:        intent.Kind,
		Date:        intent.Date,
		CreatedTS:   s.now(),
		Category:    *category,
	}
	if err := s.store.CreateTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("HandleMessage: create transaction: %w", err)
	}

	usedAI := outcome == parser.OutcomeAI
	s.log.Info().
		Str("user_id", userID).
		Str("outcome", string(outcome)).
		Float64("amount", tx.Amount).
		Str("category", category.Name).
		Msg("Transaction recorded from chat")

	return &Reply{
		Success:     true,
		Reply:       confirmationReply(tx, usedAI),
		Transaction: tx,
		UsedAI:      usedAI,
	}, nil
}

func confirmationReply(tx *domain.Transaction, usedAI bool) string {
	kindLabel := "chi tiêu"
	if tx.Kind == domain.KindIncome {
		kindLabel = "thu nhập"
	}

	reply := fmt.Sprintf(`✅ Đã ghi nhận %s:

💰 Số tiền: %s
📁 Danh mục: %s %s
📝 Mô tả: %s
📅 Ngày: %s`,
		kindLabel,
		FormatVND(tx.Amount),
		tx.Category.Icon, tx.Category.Name,
		tx.Description,
		FormatDateVN(tx.Date),
	)

	if usedAI {
		reply += "\n\n🤖 Phân tích bởi AI"
	}
	return reply
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}
