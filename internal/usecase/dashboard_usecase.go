package usecase

import (
	"context"
	"log"
	"time"

	"oficina_pro/internal/domain/entities"
	"oficina_pro/internal/usecase/interfaces"
)

// fallbackInsight is shown whenever the insight collaborator is absent or
// fails; the dashboard must never depend on it.
const fallbackInsight = "Operacao estavel. Acompanhe as ordens em aberto e o estoque minimo."

// DashboardSummary is the landing-page aggregate.
type DashboardSummary struct {
	OpenOrders        int     `json:"open_orders"`
	LowStockParts     int     `json:"low_stock_parts"`
	TodayAppointments int     `json:"today_appointments"`
	MonthIncome       float64 `json:"month_income"`
	Insight           string  `json:"insight"`
}

// IDashboardUseCase aggregates counts for the landing page.

type IDashboardUseCase interface {
	Summary(ctx context.Context, tenant string) (DashboardSummary, error)
}

type DashboardUseCase struct {
	orderRepo interfaces.IServiceOrderRepository
	partRepo  interfaces.IPartRepository
	apptRepo  interfaces.IAppointmentRepository
	txRepo    interfaces.ITransactionRepository
	insights  interfaces.IInsightProvider
	now       func() time.Time
}

var _ IDashboardUseCase = (*DashboardUseCase)(nil)

func NewDashboardUseCase(
	orderRepo interfaces.IServiceOrderRepository,
	partRepo interfaces.IPartRepository,
	apptRepo interfaces.IAppointmentRepository,
	txRepo interfaces.ITransactionRepository,
	insights interfaces.IInsightProvider,
) *DashboardUseCase {
	return &DashboardUseCase{
		orderRepo: orderRepo,
		partRepo:  partRepo,
		apptRepo:  apptRepo,
		txRepo:    txRepo,
		insights:  insights,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (u *DashboardUseCase) Summary(ctx context.Context, tenant string) (DashboardSummary, error) {
	var s DashboardSummary

	orders, err := u.orderRepo.List(ctx, tenant)
	if err != nil {
		return DashboardSummary{}, err
	}
	for _, o := range orders {
		if !o.Status.Terminal() {
			s.OpenOrders++
		}
	}

	parts, err := u.partRepo.List(ctx, tenant)
	if err != nil {
		return DashboardSummary{}, err
	}
	for _, p := range parts {
		if p.LowStock() {
			s.LowStockParts++
		}
	}

	now := u.now()
	today := now.Format("2006-01-02")
	appts, err := u.apptRepo.List(ctx, tenant)
	if err != nil {
		return DashboardSummary{}, err
	}
	for _, a := range appts {
		if a.Date == today && a.Status.Active() {
			s.TodayAppointments++
		}
	}

	txs, err := u.txRepo.List(ctx, tenant)
	if err != nil {
		return DashboardSummary{}, err
	}
	for _, t := range txs {
		if t.Type == entities.TransactionTypeIncome &&
			t.Date.Year() == now.Year() && t.Date.Month() == now.Month() {
			s.MonthIncome += t.Amount
		}
	}

	s.Insight = u.insight(ctx, s)
	return s, nil
}

func (u *DashboardUseCase) insight(ctx context.Context, s DashboardSummary) string {
	if u.insights == nil {
		return fallbackInsight
	}
	text, err := u.insights.Summary(ctx, interfaces.DashboardCounts{
		OpenOrders:        s.OpenOrders,
		LowStockParts:     s.LowStockParts,
		TodayAppointments: s.TodayAppointments,
		MonthIncome:       s.MonthIncome,
	})
	if err != nil || text == "" {
		log.Printf("[dashboard][usecase] insight provider unavailable err=%v", err)
		return fallbackInsight
	}
	return text
}
