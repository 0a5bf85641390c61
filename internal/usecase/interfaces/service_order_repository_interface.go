package interfaces

import (
	"context"

	"oficina_pro/internal/domain/entities"
)

// IServiceOrderRepository abstracts DynamoDB persistence for ServiceOrder.
//
// Convention (shared by all repositories here): a zero-value entity with a nil
// error means "not found"; use cases translate that into their own sentinels.

type IServiceOrderRepository interface {
	Create(ctx context.Context, tenant string, o entities.ServiceOrder) (entities.ServiceOrder, error)
	GetByID(ctx context.Context, tenant, id string) (entities.ServiceOrder, error)
	List(ctx context.Context, tenant string) ([]entities.ServiceOrder, error)
	ListByClientID(ctx context.Context, tenant, clientID string) ([]entities.ServiceOrder, error)
	Update(ctx context.Context, tenant string, o entities.ServiceOrder) (entities.ServiceOrder, error)
	Delete(ctx context.Context, tenant, id string) error
	Count(ctx context.Context, tenant string) (int, error)
}
