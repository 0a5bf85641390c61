package entities

import "time"

// TransactionType classifies a ledger entry.

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "INCOME"
	TransactionTypeExpense TransactionType = "EXPENSE"
)

// FinancialTransaction is one cash-flow ledger entry.
//
// Storage model (DynamoDB):
//   - PK: tenant_id
//   - SK: id
//
// Entries with a non-empty RelatedID were derived from a paid service order;
// they are immutable and cannot be deleted independently of the order.
type FinancialTransaction struct {
	ID            string          `json:"id"`
	Type          TransactionType `json:"type"`
	Description   string          `json:"description"`
	Amount        float64         `json:"amount"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	RelatedID     string          `json:"related_id,omitempty"`
	Date          time.Time       `json:"date"`
}
