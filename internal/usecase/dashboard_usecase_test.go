package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"oficina_pro/internal/domain/entities"
	"oficina_pro/internal/usecase/interfaces"
	mock_interfaces "oficina_pro/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func newDashboardUseCase(ctrl *gomock.Controller, insights interfaces.IInsightProvider) (*DashboardUseCase, *mock_interfaces.MockIServiceOrderRepository, *mock_interfaces.MockIPartRepository, *mock_interfaces.MockIAppointmentRepository, *mock_interfaces.MockITransactionRepository) {
	orders := mock_interfaces.NewMockIServiceOrderRepository(ctrl)
	parts := mock_interfaces.NewMockIPartRepository(ctrl)
	appts := mock_interfaces.NewMockIAppointmentRepository(ctrl)
	txs := mock_interfaces.NewMockITransactionRepository(ctrl)
	uc := NewDashboardUseCase(orders, parts, appts, txs, insights)
	uc.now = func() time.Time { return time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC) }
	return uc, orders, parts, appts, txs
}

func expectDashboardData(orders *mock_interfaces.MockIServiceOrderRepository, parts *mock_interfaces.MockIPartRepository, appts *mock_interfaces.MockIAppointmentRepository, txs *mock_interfaces.MockITransactionRepository) {
	orders.EXPECT().List(gomock.Any(), "oficina").Return([]entities.ServiceOrder{
		{ID: "o-1", Status: entities.OSStatusEmAndamento},
		{ID: "o-2", Status: entities.OSStatusFinalizado},
		{ID: "o-3", Status: entities.OSStatusOrcamento},
	}, nil)
	parts.EXPECT().List(gomock.Any(), "oficina").Return([]entities.Part{
		{ID: "p-1", Stock: 0, MinStock: 2},
		{ID: "p-2", Stock: 9, MinStock: 2},
	}, nil)
	appts.EXPECT().List(gomock.Any(), "oficina").Return([]entities.Appointment{
		{ID: "a-1", Date: "2026-08-29", Status: entities.AppointmentStatusAgendado},
		{ID: "a-2", Date: "2026-08-29", Status: entities.AppointmentStatusCancelado},
		{ID: "a-3", Date: "2026-08-30", Status: entities.AppointmentStatusAgendado},
	}, nil)
	txs.EXPECT().List(gomock.Any(), "oficina").Return([]entities.FinancialTransaction{
		{ID: "t-1", Type: entities.TransactionTypeIncome, Amount: 900, Date: time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC)},
		{ID: "t-2", Type: entities.TransactionTypeIncome, Amount: 100, Date: time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC)},
		{ID: "t-3", Type: entities.TransactionTypeExpense, Amount: 400, Date: time.Date(2026, 8, 11, 0, 0, 0, 0, time.UTC)},
	}, nil)
}

func TestDashboardUseCase_Summary(t *testing.T) {
	t.Run("aggregates counts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, orders, parts, appts, txs := newDashboardUseCase(ctrl, nil)
		expectDashboardData(orders, parts, appts, txs)

		s, err := uc.Summary(context.Background(), "oficina")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.OpenOrders != 2 {
			t.Fatalf("expected 2 open orders, got %d", s.OpenOrders)
		}
		if s.LowStockParts != 1 {
			t.Fatalf("expected 1 low-stock part, got %d", s.LowStockParts)
		}
		if s.TodayAppointments != 1 {
			t.Fatalf("expected 1 appointment today, got %d", s.TodayAppointments)
		}
		if s.MonthIncome != 900 {
			t.Fatalf("expected month income 900, got %v", s.MonthIncome)
		}
	})

	t.Run("nil provider falls back to the fixed insight", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, orders, parts, appts, txs := newDashboardUseCase(ctrl, nil)
		expectDashboardData(orders, parts, appts, txs)

		s, err := uc.Summary(context.Background(), "oficina")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Insight != fallbackInsight {
			t.Fatalf("expected fallback insight, got %q", s.Insight)
		}
	})

	t.Run("provider error falls back to the fixed insight", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		insights := mock_interfaces.NewMockIInsightProvider(ctrl)
		uc, orders, parts, appts, txs := newDashboardUseCase(ctrl, insights)
		expectDashboardData(orders, parts, appts, txs)
		insights.EXPECT().Summary(gomock.Any(), gomock.Any()).Return("", errors.New("model offline"))

		s, err := uc.Summary(context.Background(), "oficina")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Insight != fallbackInsight {
			t.Fatalf("expected fallback insight, got %q", s.Insight)
		}
	})

	t.Run("provider text is passed through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		insights := mock_interfaces.NewMockIInsightProvider(ctrl)
		uc, orders, parts, appts, txs := newDashboardUseCase(ctrl, insights)
		expectDashboardData(orders, parts, appts, txs)
		insights.EXPECT().Summary(gomock.Any(), interfaces.DashboardCounts{OpenOrders: 2, LowStockParts: 1, TodayAppointments: 1, MonthIncome: 900}).Return("Semana movimentada.", nil)

		s, err := uc.Summary(context.Background(), "oficina")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Insight != "Semana movimentada." {
			t.Fatalf("unexpected insight: %q", s.Insight)
		}
	})
}
