package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"oficina_pro/internal/domain/entities"
	"oficina_pro/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrOrderNotFound         = errors.New("service order not found")
	ErrInvalidOrderID        = errors.New("invalid service order id")
	ErrMissingClient         = errors.New("order has no client reference")
	ErrMissingVehicle        = errors.New("order has no vehicle reference")
	ErrOrderClosed           = errors.New("order is in a terminal status")
	ErrIllegalTransition     = errors.New("illegal order status transition")
	ErrOrderAlreadyFinalized = errors.New("order already finalized")
	ErrPaymentAlreadySettled = errors.New("order payment already settled")
	ErrPaymentCharge         = errors.New("payment gateway charge failed")
)

// ComputeSubtotal sums the line items plus labor. Negative quantities, unit
// prices and labor are clamped to zero before use; a line can never subtract
// from the invoice.
func ComputeSubtotal(items []entities.OSItem, labor float64) float64 {
	total := clampNonNegative(labor)
	for _, it := range items {
		total += clampNonNegative(it.Quantity) * clampNonNegative(it.UnitPrice)
	}
	return total
}

// ComputeTotal applies the discount to the subtotal, flooring at zero. A
// discount larger than the subtotal is absorbed silently, never surfaced as a
// negative total.
func ComputeTotal(items []entities.OSItem, labor, discount float64) float64 {
	total := ComputeSubtotal(items, labor) - clampNonNegative(discount)
	if total < 0 {
		return 0
	}
	return total
}

func clampNonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

// CreateOrderInput is the draft payload for a new service order.
type CreateOrderInput struct {
	ClientID   string
	VehicleID  string
	Items      []entities.OSItem
	LaborValue float64
	Discount   float64
	Mileage    int64
}

// UpdateDraftInput replaces the editable fields of a non-terminal order
// wholesale. Partial merges are not supported.
type UpdateDraftInput struct {
	Items      []entities.OSItem
	LaborValue float64
	Discount   float64
	Mileage    int64
}

// IServiceOrderUseCase exposes the service order lifecycle:
// draft -> itemization -> totals -> finalization -> payment settlement.

type IServiceOrderUseCase interface {
	CreateDraft(ctx context.Context, tenant string, in CreateOrderInput) (entities.ServiceOrder, error)
	UpdateDraft(ctx context.Context, tenant, id string, in UpdateDraftInput) (entities.ServiceOrder, error)
	Start(ctx context.Context, tenant, id string) (entities.ServiceOrder, error)
	Cancel(ctx context.Context, tenant, id string) (entities.ServiceOrder, error)
	Finalize(ctx context.Context, tenant, id string, payNow bool, method string) (entities.ServiceOrder, error)
	ConfirmPayment(ctx context.Context, tenant, id, method string) (entities.ServiceOrder, error)
	GetByID(ctx context.Context, tenant, id string) (entities.ServiceOrder, error)
	List(ctx context.Context, tenant string) ([]entities.ServiceOrder, error)
	Delete(ctx context.Context, tenant, id string) error
}

type ServiceOrderUseCase struct {
	repo        interfaces.IServiceOrderRepository
	clientRepo  interfaces.IClientRepository
	vehicleRepo interfaces.IVehicleRepository
	txRepo      interfaces.ITransactionRepository
	gateway     interfaces.IPaymentGateway
	now         func() time.Time
}

var _ IServiceOrderUseCase = (*ServiceOrderUseCase)(nil)

// NewServiceOrderUseCase wires the order lifecycle. The payment gateway may be
// nil; pay-now finalizations then settle off-system (cash drawer).
func NewServiceOrderUseCase(
	repo interfaces.IServiceOrderRepository,
	clientRepo interfaces.IClientRepository,
	vehicleRepo interfaces.IVehicleRepository,
	txRepo interfaces.ITransactionRepository,
	gateway interfaces.IPaymentGateway,
) *ServiceOrderUseCase {
	return &ServiceOrderUseCase{
		repo:        repo,
		clientRepo:  clientRepo,
		vehicleRepo: vehicleRepo,
		txRepo:      txRepo,
		gateway:     gateway,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (u *ServiceOrderUseCase) CreateDraft(ctx context.Context, tenant string, in CreateOrderInput) (entities.ServiceOrder, error) {
	in.ClientID = strings.TrimSpace(in.ClientID)
	in.VehicleID = strings.TrimSpace(in.VehicleID)
	if in.ClientID == "" {
		return entities.ServiceOrder{}, ErrMissingClient
	}
	if in.VehicleID == "" {
		return entities.ServiceOrder{}, ErrMissingVehicle
	}

	client, err := u.clientRepo.GetByID(ctx, tenant, in.ClientID)
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	if client.ID == "" {
		return entities.ServiceOrder{}, ErrClientNotFound
	}
	vehicle, err := u.vehicleRepo.GetByID(ctx, tenant, in.VehicleID)
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	if vehicle.ID == "" {
		return entities.ServiceOrder{}, ErrVehicleNotFound
	}

	seq, err := u.repo.Count(ctx, tenant)
	if err != nil {
		return entities.ServiceOrder{}, err
	}

	now := u.now()
	o := entities.ServiceOrder{
		ID:            uuid.NewString(),
		OSNumber:      fmt.Sprintf("OS-%04d", seq+1),
		ClientID:      client.ID,
		VehicleID:     vehicle.ID,
		ClientName:    client.Name,
		VehiclePlate:  vehicle.Plate,
		VehicleModel:  vehicle.Model,
		Items:         in.Items,
		LaborValue:    in.LaborValue,
		Discount:      in.Discount,
		TotalValue:    ComputeTotal(in.Items, in.LaborValue, in.Discount),
		Mileage:       in.Mileage,
		Status:        entities.OSStatusOrcamento,
		PaymentStatus: entities.PaymentStatusPendente,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	log.Printf("[order][usecase] draft created tenant=%s os=%s total=%.2f", tenant, o.OSNumber, o.TotalValue)
	return u.repo.Create(ctx, tenant, o)
}

func (u *ServiceOrderUseCase) UpdateDraft(ctx context.Context, tenant, id string, in UpdateDraftInput) (entities.ServiceOrder, error) {
	o, err := u.mustGet(ctx, tenant, id)
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	if o.Status.Terminal() {
		return entities.ServiceOrder{}, ErrOrderClosed
	}

	o.Items = in.Items
	o.LaborValue = in.LaborValue
	o.Discount = in.Discount
	o.Mileage = in.Mileage
	o.TotalValue = ComputeTotal(o.Items, o.LaborValue, o.Discount)
	o.UpdatedAt = u.now()
	return u.repo.Update(ctx, tenant, o)
}

func (u *ServiceOrderUseCase) Start(ctx context.Context, tenant, id string) (entities.ServiceOrder, error) {
	return u.transition(ctx, tenant, id, entities.OSStatusEmAndamento)
}

func (u *ServiceOrderUseCase) Cancel(ctx context.Context, tenant, id string) (entities.ServiceOrder, error) {
	return u.transition(ctx, tenant, id, entities.OSStatusCancelado)
}

func (u *ServiceOrderUseCase) transition(ctx context.Context, tenant, id string, to entities.OSStatus) (entities.ServiceOrder, error) {
	o, err := u.mustGet(ctx, tenant, id)
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	if o.Status.Terminal() {
		return entities.ServiceOrder{}, ErrOrderClosed
	}
	if !o.Status.CanTransition(to) {
		return entities.ServiceOrder{}, ErrIllegalTransition
	}
	o.Status = to
	o.UpdatedAt = u.now()
	log.Printf("[order][usecase] transition tenant=%s os=%s status=%s", tenant, o.OSNumber, to)
	return u.repo.Update(ctx, tenant, o)
}

// Finalize closes the order. An ORCAMENTO draft passes through EM_ANDAMENTO
// implicitly, matching the one-shot create-and-finalize flow at the counter;
// both hops are still table-checked.
//
// payNow settles immediately: the gateway (when configured) is charged first,
// then the order is stored as PAGO together with its linked income ledger
// entry. Otherwise the order stays PENDENTE and no ledger entry is written.
func (u *ServiceOrderUseCase) Finalize(ctx context.Context, tenant, id string, payNow bool, method string) (entities.ServiceOrder, error) {
	o, err := u.mustGet(ctx, tenant, id)
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	if o.Status == entities.OSStatusFinalizado {
		return entities.ServiceOrder{}, ErrOrderAlreadyFinalized
	}
	if o.Status.Terminal() {
		return entities.ServiceOrder{}, ErrOrderClosed
	}
	if strings.TrimSpace(o.ClientID) == "" {
		return entities.ServiceOrder{}, ErrMissingClient
	}
	if strings.TrimSpace(o.VehicleID) == "" {
		return entities.ServiceOrder{}, ErrMissingVehicle
	}

	if o.Status == entities.OSStatusOrcamento {
		if !o.Status.CanTransition(entities.OSStatusEmAndamento) {
			return entities.ServiceOrder{}, ErrIllegalTransition
		}
		o.Status = entities.OSStatusEmAndamento
	}
	if !o.Status.CanTransition(entities.OSStatusFinalizado) {
		return entities.ServiceOrder{}, ErrIllegalTransition
	}

	o.TotalValue = ComputeTotal(o.Items, o.LaborValue, o.Discount)
	o.Status = entities.OSStatusFinalizado
	o.PaymentMethod = strings.TrimSpace(method)
	o.UpdatedAt = u.now()

	if payNow {
		if err := u.chargeGateway(ctx, o); err != nil {
			return entities.ServiceOrder{}, err
		}
		o.PaymentStatus = entities.PaymentStatusPago
	} else {
		o.PaymentStatus = entities.PaymentStatusPendente
	}

	updated, err := u.repo.Update(ctx, tenant, o)
	if err != nil {
		return entities.ServiceOrder{}, err
	}

	if payNow {
		if err := u.appendIncome(ctx, tenant, updated); err != nil {
			return entities.ServiceOrder{}, err
		}
	}
	u.rollForwardMileage(ctx, tenant, updated)

	log.Printf("[order][usecase] finalized tenant=%s os=%s pay_now=%t total=%.2f", tenant, updated.OSNumber, payNow, updated.TotalValue)
	return updated, nil
}

// ConfirmPayment settles a deferred order: PENDENTE -> PAGO, or ATRASADO ->
// PAGO when the client pays late. The linked income entry is written here.
func (u *ServiceOrderUseCase) ConfirmPayment(ctx context.Context, tenant, id, method string) (entities.ServiceOrder, error) {
	o, err := u.mustGet(ctx, tenant, id)
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	if o.PaymentStatus == entities.PaymentStatusPago {
		return entities.ServiceOrder{}, ErrPaymentAlreadySettled
	}
	if !o.PaymentStatus.CanTransition(entities.PaymentStatusPago) {
		return entities.ServiceOrder{}, ErrIllegalTransition
	}

	o.PaymentStatus = entities.PaymentStatusPago
	if m := strings.TrimSpace(method); m != "" {
		o.PaymentMethod = m
	}
	o.UpdatedAt = u.now()

	updated, err := u.repo.Update(ctx, tenant, o)
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	if err := u.appendIncome(ctx, tenant, updated); err != nil {
		return entities.ServiceOrder{}, err
	}
	log.Printf("[order][usecase] payment confirmed tenant=%s os=%s method=%s", tenant, updated.OSNumber, updated.PaymentMethod)
	return updated, nil
}

func (u *ServiceOrderUseCase) GetByID(ctx context.Context, tenant, id string) (entities.ServiceOrder, error) {
	return u.mustGet(ctx, tenant, id)
}

// List returns the tenant's orders, applying the lazy overdue promotion:
// PENDENTE orders past the grace period are persisted as ATRASADO before the
// set is returned. There is no background job for this on the hot path.
func (u *ServiceOrderUseCase) List(ctx context.Context, tenant string) ([]entities.ServiceOrder, error) {
	orders, err := u.repo.List(ctx, tenant)
	if err != nil {
		return nil, err
	}
	now := u.now()
	for i, o := range orders {
		if !shouldPromoteToOverdue(o, now) {
			continue
		}
		o.PaymentStatus = entities.PaymentStatusAtrasado
		o.UpdatedAt = now
		updated, err := u.repo.Update(ctx, tenant, o)
		if err != nil {
			return nil, err
		}
		orders[i] = updated
		log.Printf("[order][usecase] promoted to overdue tenant=%s os=%s days=%d", tenant, o.OSNumber, DaysElapsed(o.CreatedAt, now))
	}
	return orders, nil
}

func (u *ServiceOrderUseCase) Delete(ctx context.Context, tenant, id string) error {
	o, err := u.mustGet(ctx, tenant, id)
	if err != nil {
		return err
	}
	log.Printf("[order][usecase] delete tenant=%s os=%s", tenant, o.OSNumber)
	return u.repo.Delete(ctx, tenant, o.ID)
}

func (u *ServiceOrderUseCase) mustGet(ctx context.Context, tenant, id string) (entities.ServiceOrder, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.ServiceOrder{}, ErrInvalidOrderID
	}
	o, err := u.repo.GetByID(ctx, tenant, id)
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	if o.ID == "" {
		return entities.ServiceOrder{}, ErrOrderNotFound
	}
	return o, nil
}

func (u *ServiceOrderUseCase) chargeGateway(ctx context.Context, o entities.ServiceOrder) error {
	if u.gateway == nil {
		return nil
	}
	payload, err := json.Marshal(map[string]any{
		"external_reference": o.ID,
		"description":        fmt.Sprintf("Ordem de servico %s", o.OSNumber),
		"transaction_amount": o.TotalValue,
		"payment_method_id":  o.PaymentMethod,
	})
	if err != nil {
		return err
	}
	_, status, _, err := u.gateway.CreatePayment(ctx, payload)
	if err != nil {
		log.Printf("[order][usecase] gateway charge failed os=%s err=%v", o.OSNumber, err)
		return fmt.Errorf("%w: %v", ErrPaymentCharge, err)
	}
	log.Printf("[order][usecase] gateway charge ok os=%s provider_status=%s", o.OSNumber, status)
	return nil
}

func (u *ServiceOrderUseCase) appendIncome(ctx context.Context, tenant string, o entities.ServiceOrder) error {
	_, err := u.txRepo.Create(ctx, tenant, entities.FinancialTransaction{
		ID:            uuid.NewString(),
		Type:          entities.TransactionTypeIncome,
		Description:   fmt.Sprintf("Recebimento %s - %s", o.OSNumber, o.ClientName),
		Amount:        o.TotalValue,
		PaymentMethod: o.PaymentMethod,
		RelatedID:     o.ID,
		Date:          u.now(),
	})
	return err
}

// rollForwardMileage updates the vehicle odometer when the finalized order
// reports a higher reading. Failures here never fail the finalize.
func (u *ServiceOrderUseCase) rollForwardMileage(ctx context.Context, tenant string, o entities.ServiceOrder) {
	if o.Mileage <= 0 {
		return
	}
	v, err := u.vehicleRepo.GetByID(ctx, tenant, o.VehicleID)
	if err != nil || v.ID == "" || v.Mileage >= o.Mileage {
		return
	}
	v.Mileage = o.Mileage
	if _, err := u.vehicleRepo.Update(ctx, tenant, v); err != nil {
		log.Printf("[order][usecase] mileage roll-forward failed vehicle=%s err=%v", o.VehicleID, err)
	}
}
