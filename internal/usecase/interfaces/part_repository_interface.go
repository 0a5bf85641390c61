package interfaces

import (
	"context"

	"oficina_pro/internal/domain/entities"
)

// IPartRepository abstracts DynamoDB persistence for Part.

type IPartRepository interface {
	Create(ctx context.Context, tenant string, p entities.Part) (entities.Part, error)
	GetByID(ctx context.Context, tenant, id string) (entities.Part, error)
	List(ctx context.Context, tenant string) ([]entities.Part, error)
	Update(ctx context.Context, tenant string, p entities.Part) (entities.Part, error)
	Delete(ctx context.Context, tenant, id string) error
}
