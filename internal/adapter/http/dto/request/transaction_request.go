package request

import (
	"oficina_pro/internal/domain/entities"
	"oficina_pro/internal/usecase"
)

type TransactionRequest struct {
	Type          string  `json:"type" binding:"required"`
	Description   string  `json:"description" binding:"required"`
	Amount        float64 `json:"amount" binding:"required"`
	PaymentMethod string  `json:"payment_method"`
}

func (r TransactionRequest) ToInput() usecase.TransactionInput {
	return usecase.TransactionInput{
		Type:          entities.TransactionType(r.Type),
		Description:   r.Description,
		Amount:        r.Amount,
		PaymentMethod: r.PaymentMethod,
	}
}
