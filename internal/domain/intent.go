package domain

import "cloud.google.com/go/civil"

// Intent is the structured result of parsing a chat message, prior to
// persistence. CategoryName still has to be resolved against the caller's
// category list before a Transaction can be created.
type Intent struct {
	Amount       float64
	Description  string
	CategoryName string
	Kind         Kind
	Date         civil.Date
}
