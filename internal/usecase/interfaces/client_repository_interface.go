package interfaces

import (
	"context"

	"oficina_pro/internal/domain/entities"
)

// IClientRepository abstracts DynamoDB persistence for Client.

type IClientRepository interface {
	Create(ctx context.Context, tenant string, c entities.Client) (entities.Client, error)
	GetByID(ctx context.Context, tenant, id string) (entities.Client, error)
	List(ctx context.Context, tenant string) ([]entities.Client, error)
	Update(ctx context.Context, tenant string, c entities.Client) (entities.Client, error)
	Delete(ctx context.Context, tenant, id string) error
}
