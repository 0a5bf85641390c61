package interfaces

import (
	"context"

	"oficina_pro/internal/domain/entities"
)

// IVehicleRepository abstracts DynamoDB persistence for Vehicle.

type IVehicleRepository interface {
	Create(ctx context.Context, tenant string, v entities.Vehicle) (entities.Vehicle, error)
	GetByID(ctx context.Context, tenant, id string) (entities.Vehicle, error)
	GetByPlate(ctx context.Context, tenant, plate string) (entities.Vehicle, error)
	List(ctx context.Context, tenant string) ([]entities.Vehicle, error)
	ListByClientID(ctx context.Context, tenant, clientID string) ([]entities.Vehicle, error)
	Update(ctx context.Context, tenant string, v entities.Vehicle) (entities.Vehicle, error)
	Delete(ctx context.Context, tenant, id string) error
}
