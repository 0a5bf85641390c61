package usecase

import (
	"context"
	"errors"
	"strings"

	"oficina_pro/internal/domain/entities"
	"oficina_pro/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrInvalidEmployeeID   = errors.New("invalid employee id")
	ErrInvalidEmployeeName = errors.New("invalid employee name")
)

// EmployeeInput carries staff reference data.
type EmployeeInput struct {
	Name       string
	RoleTitle  string
	Phone      string
	Commission float64
}

// IEmployeeUseCase manages staff records. Writes are owner-gated at the HTTP
// layer.

type IEmployeeUseCase interface {
	Create(ctx context.Context, tenant string, in EmployeeInput) (entities.Employee, error)
	Update(ctx context.Context, tenant, id string, in EmployeeInput) (entities.Employee, error)
	List(ctx context.Context, tenant string) ([]entities.Employee, error)
	Delete(ctx context.Context, tenant, id string) error
}

type EmployeeUseCase struct {
	repo interfaces.IEmployeeRepository
}

var _ IEmployeeUseCase = (*EmployeeUseCase)(nil)

func NewEmployeeUseCase(repo interfaces.IEmployeeRepository) *EmployeeUseCase {
	return &EmployeeUseCase{repo: repo}
}

func (u *EmployeeUseCase) Create(ctx context.Context, tenant string, in EmployeeInput) (entities.Employee, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return entities.Employee{}, ErrInvalidEmployeeName
	}
	e := entities.Employee{
		ID:         uuid.NewString(),
		Name:       in.Name,
		RoleTitle:  strings.TrimSpace(in.RoleTitle),
		Phone:      strings.TrimSpace(in.Phone),
		Commission: in.Commission,
	}
	return u.repo.Create(ctx, tenant, e)
}

func (u *EmployeeUseCase) Update(ctx context.Context, tenant, id string, in EmployeeInput) (entities.Employee, error) {
	e, err := u.mustGet(ctx, tenant, id)
	if err != nil {
		return entities.Employee{}, err
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return entities.Employee{}, ErrInvalidEmployeeName
	}
	e.Name = in.Name
	e.RoleTitle = strings.TrimSpace(in.RoleTitle)
	e.Phone = strings.TrimSpace(in.Phone)
	e.Commission = in.Commission
	return u.repo.Update(ctx, tenant, e)
}

func (u *EmployeeUseCase) List(ctx context.Context, tenant string) ([]entities.Employee, error) {
	return u.repo.List(ctx, tenant)
}

func (u *EmployeeUseCase) Delete(ctx context.Context, tenant, id string) error {
	e, err := u.mustGet(ctx, tenant, id)
	if err != nil {
		return err
	}
	return u.repo.Delete(ctx, tenant, e.ID)
}

func (u *EmployeeUseCase) mustGet(ctx context.Context, tenant, id string) (entities.Employee, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Employee{}, ErrInvalidEmployeeID
	}
	e, err := u.repo.GetByID(ctx, tenant, id)
	if err != nil {
		return entities.Employee{}, err
	}
	if e.ID == "" {
		return entities.Employee{}, ErrEmployeeNotFound
	}
	return e, nil
}
