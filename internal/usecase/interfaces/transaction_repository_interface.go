package interfaces

import (
	"context"

	"oficina_pro/internal/domain/entities"
)

// ITransactionRepository abstracts DynamoDB persistence for FinancialTransaction.

type ITransactionRepository interface {
	Create(ctx context.Context, tenant string, t entities.FinancialTransaction) (entities.FinancialTransaction, error)
	GetByID(ctx context.Context, tenant, id string) (entities.FinancialTransaction, error)
	List(ctx context.Context, tenant string) ([]entities.FinancialTransaction, error)
	Delete(ctx context.Context, tenant, id string) error
}
