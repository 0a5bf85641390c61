package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"oficina_pro/internal/domain/entities"
	"oficina_pro/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrClientNotFound    = errors.New("client not found")
	ErrInvalidClientID   = errors.New("invalid client id")
	ErrInvalidClientName = errors.New("invalid client name")
	ErrVehicleNotFound   = errors.New("vehicle not found")
	ErrInvalidVehicleID  = errors.New("invalid vehicle id")
	ErrInvalidPlate      = errors.New("invalid vehicle plate")
	ErrPlateAlreadyInUse = errors.New("vehicle plate already registered")
)

// ClientInput carries client reference data.
type ClientInput struct {
	Name     string
	Phone    string
	Email    string
	Document string
}

// VehicleInput carries vehicle reference data; the owning client comes from
// the route.
type VehicleInput struct {
	Plate   string
	Model   string
	Brand   string
	Year    int
	Mileage int64
}

// IClientUseCase manages clients and their weakly-owned vehicles. Deleting a
// client cascades: its vehicles and service orders are removed in the same
// logical operation, never leaving orphaned references behind.

type IClientUseCase interface {
	Create(ctx context.Context, tenant string, in ClientInput) (entities.Client, error)
	Update(ctx context.Context, tenant, id string, in ClientInput) (entities.Client, error)
	GetByID(ctx context.Context, tenant, id string) (entities.Client, error)
	List(ctx context.Context, tenant string) ([]entities.Client, error)
	DeleteCascade(ctx context.Context, tenant, id string) error

	AddVehicle(ctx context.Context, tenant, clientID string, in VehicleInput) (entities.Vehicle, error)
	UpdateVehicle(ctx context.Context, tenant, vehicleID string, in VehicleInput) (entities.Vehicle, error)
	ListVehicles(ctx context.Context, tenant, clientID string) ([]entities.Vehicle, error)
	DeleteVehicle(ctx context.Context, tenant, vehicleID string) error
}

type ClientUseCase struct {
	repo        interfaces.IClientRepository
	vehicleRepo interfaces.IVehicleRepository
	orderRepo   interfaces.IServiceOrderRepository
	now         func() time.Time
}

var _ IClientUseCase = (*ClientUseCase)(nil)

func NewClientUseCase(repo interfaces.IClientRepository, vehicleRepo interfaces.IVehicleRepository, orderRepo interfaces.IServiceOrderRepository) *ClientUseCase {
	return &ClientUseCase{
		repo:        repo,
		vehicleRepo: vehicleRepo,
		orderRepo:   orderRepo,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (u *ClientUseCase) Create(ctx context.Context, tenant string, in ClientInput) (entities.Client, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return entities.Client{}, ErrInvalidClientName
	}
	c := entities.Client{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Phone:     strings.TrimSpace(in.Phone),
		Email:     strings.TrimSpace(in.Email),
		Document:  strings.TrimSpace(in.Document),
		CreatedAt: u.now(),
	}
	return u.repo.Create(ctx, tenant, c)
}

func (u *ClientUseCase) Update(ctx context.Context, tenant, id string, in ClientInput) (entities.Client, error) {
	c, err := u.GetByID(ctx, tenant, id)
	if err != nil {
		return entities.Client{}, err
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return entities.Client{}, ErrInvalidClientName
	}
	c.Name = in.Name
	c.Phone = strings.TrimSpace(in.Phone)
	c.Email = strings.TrimSpace(in.Email)
	c.Document = strings.TrimSpace(in.Document)
	return u.repo.Update(ctx, tenant, c)
}

func (u *ClientUseCase) GetByID(ctx context.Context, tenant, id string) (entities.Client, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Client{}, ErrInvalidClientID
	}
	c, err := u.repo.GetByID(ctx, tenant, id)
	if err != nil {
		return entities.Client{}, err
	}
	if c.ID == "" {
		return entities.Client{}, ErrClientNotFound
	}
	return c, nil
}

func (u *ClientUseCase) List(ctx context.Context, tenant string) ([]entities.Client, error) {
	return u.repo.List(ctx, tenant)
}

// DeleteCascade removes the client, its vehicles and its service orders.
// The store is single-writer per tenant, so the sequential deletes below form
// one logical operation from the caller's point of view.
func (u *ClientUseCase) DeleteCascade(ctx context.Context, tenant, id string) error {
	c, err := u.GetByID(ctx, tenant, id)
	if err != nil {
		return err
	}

	vehicles, err := u.vehicleRepo.ListByClientID(ctx, tenant, c.ID)
	if err != nil {
		return err
	}
	for _, v := range vehicles {
		if err := u.vehicleRepo.Delete(ctx, tenant, v.ID); err != nil {
			return err
		}
	}

	orders, err := u.orderRepo.ListByClientID(ctx, tenant, c.ID)
	if err != nil {
		return err
	}
	for _, o := range orders {
		if err := u.orderRepo.Delete(ctx, tenant, o.ID); err != nil {
			return err
		}
	}

	log.Printf("[client][usecase] cascade delete tenant=%s client=%s vehicles=%d orders=%d", tenant, c.ID, len(vehicles), len(orders))
	return u.repo.Delete(ctx, tenant, c.ID)
}

func (u *ClientUseCase) AddVehicle(ctx context.Context, tenant, clientID string, in VehicleInput) (entities.Vehicle, error) {
	c, err := u.GetByID(ctx, tenant, clientID)
	if err != nil {
		return entities.Vehicle{}, err
	}
	plate := normalizePlate(in.Plate)
	if plate == "" {
		return entities.Vehicle{}, ErrInvalidPlate
	}
	if existing, err := u.vehicleRepo.GetByPlate(ctx, tenant, plate); err != nil {
		return entities.Vehicle{}, err
	} else if existing.ID != "" {
		return entities.Vehicle{}, ErrPlateAlreadyInUse
	}

	v := entities.Vehicle{
		ID:       uuid.NewString(),
		ClientID: c.ID,
		Plate:    plate,
		Model:    strings.TrimSpace(in.Model),
		Brand:    strings.TrimSpace(in.Brand),
		Year:     in.Year,
		Mileage:  in.Mileage,
	}
	return u.vehicleRepo.Create(ctx, tenant, v)
}

func (u *ClientUseCase) UpdateVehicle(ctx context.Context, tenant, vehicleID string, in VehicleInput) (entities.Vehicle, error) {
	vehicleID = strings.TrimSpace(vehicleID)
	if vehicleID == "" {
		return entities.Vehicle{}, ErrInvalidVehicleID
	}
	v, err := u.vehicleRepo.GetByID(ctx, tenant, vehicleID)
	if err != nil {
		return entities.Vehicle{}, err
	}
	if v.ID == "" {
		return entities.Vehicle{}, ErrVehicleNotFound
	}
	plate := normalizePlate(in.Plate)
	if plate == "" {
		return entities.Vehicle{}, ErrInvalidPlate
	}
	if plate != v.Plate {
		if existing, err := u.vehicleRepo.GetByPlate(ctx, tenant, plate); err != nil {
			return entities.Vehicle{}, err
		} else if existing.ID != "" && existing.ID != v.ID {
			return entities.Vehicle{}, ErrPlateAlreadyInUse
		}
	}
	v.Plate = plate
	v.Model = strings.TrimSpace(in.Model)
	v.Brand = strings.TrimSpace(in.Brand)
	v.Year = in.Year
	v.Mileage = in.Mileage
	return u.vehicleRepo.Update(ctx, tenant, v)
}

func (u *ClientUseCase) ListVehicles(ctx context.Context, tenant, clientID string) ([]entities.Vehicle, error) {
	c, err := u.GetByID(ctx, tenant, clientID)
	if err != nil {
		return nil, err
	}
	return u.vehicleRepo.ListByClientID(ctx, tenant, c.ID)
}

func (u *ClientUseCase) DeleteVehicle(ctx context.Context, tenant, vehicleID string) error {
	vehicleID = strings.TrimSpace(vehicleID)
	if vehicleID == "" {
		return ErrInvalidVehicleID
	}
	v, err := u.vehicleRepo.GetByID(ctx, tenant, vehicleID)
	if err != nil {
		return err
	}
	if v.ID == "" {
		return ErrVehicleNotFound
	}
	return u.vehicleRepo.Delete(ctx, tenant, v.ID)
}

func normalizePlate(plate string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(plate), "-", ""))
}
