package response

import (
	"time"

	"oficina_pro/internal/domain/entities"
)

type TransactionResponse struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	Description   string    `json:"description"`
	Amount        float64   `json:"amount"`
	PaymentMethod string    `json:"payment_method,omitempty"`
	RelatedID     string    `json:"related_id,omitempty"`
	Date          time.Time `json:"date"`
}

func FromTransaction(t entities.FinancialTransaction) TransactionResponse {
	return TransactionResponse{
		ID:            t.ID,
		Type:          string(t.Type),
		Description:   t.Description,
		Amount:        t.Amount,
		PaymentMethod: t.PaymentMethod,
		RelatedID:     t.RelatedID,
		Date:          t.Date,
	}
}

func FromTransactions(txs []entities.FinancialTransaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(txs))
	for _, t := range txs {
		out = append(out, FromTransaction(t))
	}
	return out
}
