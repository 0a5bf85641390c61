package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"oficina_pro/internal/domain/entities"
	"oficina_pro/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrPartNotFound     = errors.New("part not found")
	ErrInvalidPartID    = errors.New("invalid part id")
	ErrInvalidPartName  = errors.New("invalid part name")
	ErrStockUnderflow   = errors.New("stock adjustment would go negative")
	ErrInvalidPartStock = errors.New("invalid initial stock")
)

// PartInput carries inventory reference data.
type PartInput struct {
	Name      string
	SKU       string
	Stock     int64
	MinStock  int64
	UnitPrice float64
	CostPrice float64
}

// IPartUseCase manages inventory. Stock changes happen only through explicit
// adjustments here; finalizing an order with PART-type lines does not touch
// inventory (the two systems are deliberately decoupled).

type IPartUseCase interface {
	Create(ctx context.Context, tenant string, in PartInput) (entities.Part, error)
	Update(ctx context.Context, tenant, id string, in PartInput) (entities.Part, error)
	AdjustStock(ctx context.Context, tenant, id string, delta int64) (entities.Part, error)
	GetByID(ctx context.Context, tenant, id string) (entities.Part, error)
	List(ctx context.Context, tenant string) ([]entities.Part, error)
	ListLowStock(ctx context.Context, tenant string) ([]entities.Part, error)
	Delete(ctx context.Context, tenant, id string) error
}

type PartUseCase struct {
	repo interfaces.IPartRepository
}

var _ IPartUseCase = (*PartUseCase)(nil)

func NewPartUseCase(repo interfaces.IPartRepository) *PartUseCase {
	return &PartUseCase{repo: repo}
}

func (u *PartUseCase) Create(ctx context.Context, tenant string, in PartInput) (entities.Part, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return entities.Part{}, ErrInvalidPartName
	}
	if in.Stock < 0 {
		return entities.Part{}, ErrInvalidPartStock
	}
	p := entities.Part{
		ID:        uuid.NewString(),
		Name:      in.Name,
		SKU:       strings.TrimSpace(in.SKU),
		Stock:     in.Stock,
		MinStock:  in.MinStock,
		UnitPrice: in.UnitPrice,
		CostPrice: in.CostPrice,
	}
	return u.repo.Create(ctx, tenant, p)
}

func (u *PartUseCase) Update(ctx context.Context, tenant, id string, in PartInput) (entities.Part, error) {
	p, err := u.GetByID(ctx, tenant, id)
	if err != nil {
		return entities.Part{}, err
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return entities.Part{}, ErrInvalidPartName
	}
	if in.Stock < 0 {
		return entities.Part{}, ErrInvalidPartStock
	}
	p.Name = in.Name
	p.SKU = strings.TrimSpace(in.SKU)
	p.Stock = in.Stock
	p.MinStock = in.MinStock
	p.UnitPrice = in.UnitPrice
	p.CostPrice = in.CostPrice
	return u.repo.Update(ctx, tenant, p)
}

// AdjustStock applies a relative delta, rejecting any adjustment that would
// drive inventory negative. No partial application.
func (u *PartUseCase) AdjustStock(ctx context.Context, tenant, id string, delta int64) (entities.Part, error) {
	p, err := u.GetByID(ctx, tenant, id)
	if err != nil {
		return entities.Part{}, err
	}
	if p.Stock+delta < 0 {
		return entities.Part{}, ErrStockUnderflow
	}
	p.Stock += delta
	log.Printf("[part][usecase] stock adjusted tenant=%s part=%s delta=%d stock=%d", tenant, p.ID, delta, p.Stock)
	return u.repo.Update(ctx, tenant, p)
}

func (u *PartUseCase) GetByID(ctx context.Context, tenant, id string) (entities.Part, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Part{}, ErrInvalidPartID
	}
	p, err := u.repo.GetByID(ctx, tenant, id)
	if err != nil {
		return entities.Part{}, err
	}
	if p.ID == "" {
		return entities.Part{}, ErrPartNotFound
	}
	return p, nil
}

func (u *PartUseCase) List(ctx context.Context, tenant string) ([]entities.Part, error) {
	return u.repo.List(ctx, tenant)
}

func (u *PartUseCase) ListLowStock(ctx context.Context, tenant string) ([]entities.Part, error) {
	all, err := u.repo.List(ctx, tenant)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Part, 0, len(all))
	for _, p := range all {
		if p.LowStock() {
			out = append(out, p)
		}
	}
	return out, nil
}

func (u *PartUseCase) Delete(ctx context.Context, tenant, id string) error {
	p, err := u.GetByID(ctx, tenant, id)
	if err != nil {
		return err
	}
	return u.repo.Delete(ctx, tenant, p.ID)
}
