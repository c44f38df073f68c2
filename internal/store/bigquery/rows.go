package bigquery

import (
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"

	"github.com/ntdung/chitieu/internal/domain"
)

type categoryRow struct {
	CategoryID string              `bigquery:"category_id"` // REQUIRED
	UserID     bigquery.NullString `bigquery:"user_id"`     // NULLABLE (NULL for shared defaults)
	Name       string              `bigquery:"name"`        // REQUIRED
	Icon       string              `bigquery:"icon"`        // REQUIRED
	Color      string              `bigquery:"color"`       // REQUIRED
	Kind       string              `bigquery:"kind"`        // "expense" | "income"
	IsDefault  bigquery.NullBool   `bigquery:"is_default"`  // NULLABLE
}

func (r *categoryRow) toDomain() domain.Category {
	return domain.Category{
		ID:        r.CategoryID,
		UserID:    r.UserID.StringVal,
		Name:      r.Name,
		Icon:      r.Icon,
		Color:     r.Color,
		Kind:      domain.ParseKind(r.Kind),
		IsDefault: r.IsDefault.Valid && r.IsDefault.Bool,
	}
}

type transactionRow struct {
	TransactionID string     `bigquery:"transaction_id"`   // REQUIRED
	UserID        string     `bigquery:"user_id"`          // REQUIRED
	CategoryID    string     `bigquery:"category_id"`      // REQUIRED
	Amount        float64    `bigquery:"amount"`           // REQUIRED FLOAT64, whole VND
	Description   string     `bigquery:"description"`      // REQUIRED
	Kind          string     `bigquery:"kind"`             // "expense" | "income"
	Date          civil.Date `bigquery:"transaction_date"` // REQUIRED DATE
	CreatedTS     time.Time  `bigquery:"created_ts"`       // REQUIRED
}

func transactionToRow(tx *domain.Transaction) *transactionRow {
	return &transactionRow{
		TransactionID: tx.ID,
		UserID:        tx.UserID,
		CategoryID:    tx.CategoryID,
		Amount:        tx.Amount,
		Description:   tx.Description,
		Kind:          string(tx.Kind),
		Date:          tx.Date,
		CreatedTS:     tx.CreatedTS,
	}
}

// transactionWithCategoryRow is the join shape ListTransactions reads.
type transactionWithCategoryRow struct {
	TransactionID string     `bigquery:"transaction_id"`
	UserID        string     `bigquery:"user_id"`
	CategoryID    string     `bigquery:"category_id"`
	Amount        float64    `bigquery:"amount"`
	Description   string     `bigquery:"description"`
	Kind          string     `bigquery:"kind"`
	Date          civil.Date `bigquery:"transaction_date"`
	CreatedTS     time.Time  `bigquery:"created_ts"`

	CategoryName      string              `bigquery:"category_name"`
	CategoryIcon      string              `bigquery:"category_icon"`
	CategoryColor     string              `bigquery:"category_color"`
	CategoryKind      string              `bigquery:"category_kind"`
	CategoryUserID    bigquery.NullString `bigquery:"category_user_id"`
	CategoryIsDefault bigquery.NullBool   `bigquery:"category_is_default"`
}

func (r *transactionWithCategoryRow) toDomain() domain.Transaction {
	return domain.Transaction{
		ID:          r.TransactionID,
		UserID:      r.UserID,
		CategoryID:  r.CategoryID,
		Amount:      r.Amount,
		Description: r.Description,
		Kind:        domain.ParseKind(r.Kind),
		Date:        r.Date,
		CreatedTS:   r.CreatedTS,
		Category: domain.Category{
			ID:        r.CategoryID,
			UserID:    r.CategoryUserID.StringVal,
			Name:      r.CategoryName,
			Icon:      r.CategoryIcon,
			Color:     r.CategoryColor,
			Kind:      domain.ParseKind(r.CategoryKind),
			IsDefault: r.CategoryIsDefault.Valid && r.CategoryIsDefault.Bool,
		},
	}
}
