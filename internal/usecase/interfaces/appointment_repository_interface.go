package interfaces

import (
	"context"

	"oficina_pro/internal/domain/entities"
)

// IAppointmentRepository abstracts DynamoDB persistence for Appointment.

type IAppointmentRepository interface {
	Create(ctx context.Context, tenant string, a entities.Appointment) (entities.Appointment, error)
	GetByID(ctx context.Context, tenant, id string) (entities.Appointment, error)
	List(ctx context.Context, tenant string) ([]entities.Appointment, error)
	Update(ctx context.Context, tenant string, a entities.Appointment) (entities.Appointment, error)
	Delete(ctx context.Context, tenant, id string) error
}
