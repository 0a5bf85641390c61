package interfaces

import (
	"context"

	"oficina_pro/internal/domain/entities"
)

// IUserRepository abstracts DynamoDB persistence for login accounts.

type IUserRepository interface {
	Create(ctx context.Context, u entities.User) (entities.User, error)
	GetByUsername(ctx context.Context, username string) (entities.User, error)
	ListUsernames(ctx context.Context) ([]string, error)
	UpdateLastSync(ctx context.Context, username string) (entities.User, error)
}
