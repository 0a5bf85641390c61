package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"oficina_pro/internal/domain/entities"
	"oficina_pro/internal/usecase/interfaces"
)

// overdueGraceDays is the grace period before a PENDENTE order is considered
// in arrears.
const overdueGraceDays = 7

var (
	ErrInvalidTier         = errors.New("invalid collection tier")
	ErrOrderNotCollectable = errors.New("order payment is not outstanding")
	ErrClientPhoneMissing  = errors.New("client has no phone number")
)

// CollectionTier selects the escalation level of a notice. It is a per-send
// choice, never stored as order state; each attempt lands in the order's audit
// log instead.

type CollectionTier string

const (
	TierMild   CollectionTier = "mild"
	TierFormal CollectionTier = "formal"
	TierFinal  CollectionTier = "final"
)

// DaysElapsed counts calendar days between createdAt and now, rounding up.
// An order created 30 minutes ago already reports 1 day.
func DaysElapsed(createdAt, now time.Time) int {
	diff := now.Sub(createdAt)
	if diff < 0 {
		diff = -diff
	}
	return int(math.Ceil(diff.Hours() / 24))
}

// shouldPromoteToOverdue is the lazy PENDENTE -> ATRASADO rule applied on
// every order-set load. Cancelled orders are left alone.
func shouldPromoteToOverdue(o entities.ServiceOrder, now time.Time) bool {
	return o.PaymentStatus == entities.PaymentStatusPendente &&
		o.Status != entities.OSStatusCancelado &&
		DaysElapsed(o.CreatedAt, now) > overdueGraceDays
}

// ArrearsSummary aggregates the outstanding book.
type ArrearsSummary struct {
	TotalOutstanding float64 `json:"total_outstanding"`
	DebtorCount      int     `json:"debtor_count"`
	AverageDebt      float64 `json:"average_debt"`
	OverdueOrders    int     `json:"overdue_orders"`
}

// IBillingUseCase exposes collections: aging, escalation notices and the
// arrears aggregate.

type IBillingUseCase interface {
	SweepOverdue(ctx context.Context, tenant string) (promoted int, err error)
	SendCollectionNotice(ctx context.Context, tenant, orderID, operator string, tier CollectionTier) (entities.ServiceOrder, error)
	Summary(ctx context.Context, tenant string) (ArrearsSummary, error)
}

type BillingUseCase struct {
	orderRepo  interfaces.IServiceOrderRepository
	clientRepo interfaces.IClientRepository
	dispatcher interfaces.IMessageDispatcher
	now        func() time.Time
}

var _ IBillingUseCase = (*BillingUseCase)(nil)

// NewBillingUseCase wires collections. The dispatcher may be nil; notices are
// then recorded in the audit log without an outbound message.
func NewBillingUseCase(orderRepo interfaces.IServiceOrderRepository, clientRepo interfaces.IClientRepository, dispatcher interfaces.IMessageDispatcher) *BillingUseCase {
	return &BillingUseCase{
		orderRepo:  orderRepo,
		clientRepo: clientRepo,
		dispatcher: dispatcher,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// SweepOverdue promotes every PENDENTE order past the grace period to
// ATRASADO. The same rule runs lazily on order listing; this entry point
// exists for the daily scheduler so quiet tenants still age.
func (u *BillingUseCase) SweepOverdue(ctx context.Context, tenant string) (int, error) {
	orders, err := u.orderRepo.List(ctx, tenant)
	if err != nil {
		return 0, err
	}
	now := u.now()
	promoted := 0
	for _, o := range orders {
		if !shouldPromoteToOverdue(o, now) {
			continue
		}
		o.PaymentStatus = entities.PaymentStatusAtrasado
		o.UpdatedAt = now
		if _, err := u.orderRepo.Update(ctx, tenant, o); err != nil {
			return promoted, err
		}
		promoted++
	}
	if promoted > 0 {
		log.Printf("[billing][usecase] overdue sweep tenant=%s promoted=%d", tenant, promoted)
	}
	return promoted, nil
}

// SendCollectionNotice dispatches the tier's message to the order's client and
// appends the attempt to the order's audit log.
func (u *BillingUseCase) SendCollectionNotice(ctx context.Context, tenant, orderID, operator string, tier CollectionTier) (entities.ServiceOrder, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return entities.ServiceOrder{}, ErrInvalidOrderID
	}
	switch tier {
	case TierMild, TierFormal, TierFinal:
	default:
		return entities.ServiceOrder{}, ErrInvalidTier
	}

	o, err := u.orderRepo.GetByID(ctx, tenant, orderID)
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	if o.ID == "" {
		return entities.ServiceOrder{}, ErrOrderNotFound
	}
	if o.PaymentStatus == entities.PaymentStatusPago {
		return entities.ServiceOrder{}, ErrOrderNotCollectable
	}

	client, err := u.clientRepo.GetByID(ctx, tenant, o.ClientID)
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	if client.ID == "" {
		return entities.ServiceOrder{}, ErrClientNotFound
	}

	now := u.now()
	if u.dispatcher != nil {
		if strings.TrimSpace(client.Phone) == "" {
			return entities.ServiceOrder{}, ErrClientPhoneMissing
		}
		body := noticeMessage(tier, o, DaysElapsed(o.CreatedAt, now))
		sid, err := u.dispatcher.SendWhatsApp(ctx, client.Phone, body)
		if err != nil {
			log.Printf("[billing][usecase] notice dispatch failed tenant=%s os=%s err=%v", tenant, o.OSNumber, err)
			return entities.ServiceOrder{}, err
		}
		log.Printf("[billing][usecase] notice sent tenant=%s os=%s tier=%s sid=%s", tenant, o.OSNumber, tier, sid)
	}

	o.CollectionLog = append(o.CollectionLog, entities.CollectionAttempt{
		Date:     now,
		Operator: strings.TrimSpace(operator),
		Tier:     string(tier),
	})
	o.UpdatedAt = now
	return u.orderRepo.Update(ctx, tenant, o)
}

// Summary totals every order whose payment is outstanding (not PAGO, not
// cancelled). Average is zero-safe.
func (u *BillingUseCase) Summary(ctx context.Context, tenant string) (ArrearsSummary, error) {
	orders, err := u.orderRepo.List(ctx, tenant)
	if err != nil {
		return ArrearsSummary{}, err
	}

	var s ArrearsSummary
	debtors := map[string]struct{}{}
	for _, o := range orders {
		if o.PaymentStatus == entities.PaymentStatusPago || o.Status == entities.OSStatusCancelado {
			continue
		}
		s.TotalOutstanding += o.TotalValue
		debtors[o.ClientID] = struct{}{}
		if o.PaymentStatus == entities.PaymentStatusAtrasado {
			s.OverdueOrders++
		}
	}
	s.DebtorCount = len(debtors)
	if s.DebtorCount > 0 {
		s.AverageDebt = s.TotalOutstanding / float64(s.DebtorCount)
	}
	return s, nil
}

func noticeMessage(tier CollectionTier, o entities.ServiceOrder, days int) string {
	switch tier {
	case TierFormal:
		return fmt.Sprintf("Notificacao: a ordem de servico %s (%s) encontra-se em aberto ha %d dias, no valor de R$ %.2f. Solicitamos a regularizacao do pagamento.", o.OSNumber, o.VehicleModel, days, o.TotalValue)
	case TierFinal:
		return fmt.Sprintf("AVISO FINAL: a ordem de servico %s permanece em aberto ha %d dias (R$ %.2f). Sem o pagamento, o debito sera encaminhado para cobranca.", o.OSNumber, days, o.TotalValue)
	default:
		return fmt.Sprintf("Ola %s! Lembrete amigavel: a ordem de servico %s no valor de R$ %.2f esta aguardando pagamento.", o.ClientName, o.OSNumber, o.TotalValue)
	}
}
