package interfaces

import (
	"context"

	"oficina_pro/internal/domain/entities"
)

// IEmployeeRepository abstracts DynamoDB persistence for Employee.

type IEmployeeRepository interface {
	Create(ctx context.Context, tenant string, e entities.Employee) (entities.Employee, error)
	GetByID(ctx context.Context, tenant, id string) (entities.Employee, error)
	List(ctx context.Context, tenant string) ([]entities.Employee, error)
	Update(ctx context.Context, tenant string, e entities.Employee) (entities.Employee, error)
	Delete(ctx context.Context, tenant, id string) error
}
