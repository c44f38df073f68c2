package domain

import (
	"time"

	"cloud.google.com/go/civil"
)

// Kind is the polarity of a transaction.
type Kind string

const (
	KindExpense Kind = "expense"
	KindIncome  Kind = "income"
)

// ParseKind maps a raw string to a Kind, defaulting to expense.
func ParseKind(s string) Kind {
	if s == string(KindIncome) {
		return KindIncome
	}
	return KindExpense
}

// Category is owned by the persistence collaborator; the core only reads it.
type Category struct {
	ID        string `json:"id"`
	UserID    string `json:"userId,omitempty"`
	Name      string `json:"name"`
	Icon      string `json:"icon"`
	Color     string `json:"color"`
	Kind      Kind   `json:"type"`
	IsDefault bool   `json:"isDefault"`
}

// Transaction is a persisted income/expense record. Date is a calendar date
// with no time-of-day component. Category is populated on reads.
type Transaction struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	CategoryID  string     `json:"categoryId"`
	Amount      float64    `json:"amount"`
	Description string     `json:"description"`
	Kind        Kind       `json:"type"`
	Date        civil.Date `json:"date"`
	CreatedTS   time.Time  `json:"createdAt"`

	Category Category `json:"category"`
}
