package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"oficina_pro/internal/domain/entities"
	mock_interfaces "oficina_pro/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestDaysElapsed(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	t.Run("two hours ago rounds up to one day", func(t *testing.T) {
		if got := DaysElapsed(now.Add(-2*time.Hour), now); got != 1 {
			t.Fatalf("expected 1, got %d", got)
		}
	})

	t.Run("exactly eight days", func(t *testing.T) {
		if got := DaysElapsed(now.AddDate(0, 0, -8), now); got != 8 {
			t.Fatalf("expected 8, got %d", got)
		}
	})

	t.Run("order of arguments does not matter", func(t *testing.T) {
		if got := DaysElapsed(now, now.AddDate(0, 0, -3)); got != 3 {
			t.Fatalf("expected 3, got %d", got)
		}
	})
}

func TestShouldPromoteToOverdue(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		order entities.ServiceOrder
		want  bool
	}{
		{"pending past grace", entities.ServiceOrder{Status: entities.OSStatusFinalizado, PaymentStatus: entities.PaymentStatusPendente, CreatedAt: now.AddDate(0, 0, -8)}, true},
		{"pending inside grace", entities.ServiceOrder{Status: entities.OSStatusFinalizado, PaymentStatus: entities.PaymentStatusPendente, CreatedAt: now.AddDate(0, 0, -7)}, false},
		{"already paid", entities.ServiceOrder{Status: entities.OSStatusFinalizado, PaymentStatus: entities.PaymentStatusPago, CreatedAt: now.AddDate(0, 0, -30)}, false},
		{"cancelled order left alone", entities.ServiceOrder{Status: entities.OSStatusCancelado, PaymentStatus: entities.PaymentStatusPendente, CreatedAt: now.AddDate(0, 0, -30)}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := shouldPromoteToOverdue(tc.order, now); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestBillingUseCase_SweepOverdue(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	orders := mock_interfaces.NewMockIServiceOrderRepository(ctrl)
	uc := NewBillingUseCase(orders, nil, nil)

	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return now }

	set := []entities.ServiceOrder{
		{ID: "o-1", Status: entities.OSStatusFinalizado, PaymentStatus: entities.PaymentStatusPendente, CreatedAt: now.AddDate(0, 0, -10)},
		{ID: "o-2", Status: entities.OSStatusFinalizado, PaymentStatus: entities.PaymentStatusPendente, CreatedAt: now.AddDate(0, 0, -2)},
	}
	orders.EXPECT().List(gomock.Any(), "oficina").Return(set, nil)
	orders.EXPECT().Update(gomock.Any(), "oficina", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, o entities.ServiceOrder) (entities.ServiceOrder, error) {
			if o.ID != "o-1" || o.PaymentStatus != entities.PaymentStatusAtrasado {
				t.Fatalf("unexpected update: %+v", o)
			}
			return o, nil
		},
	)

	promoted, err := uc.SweepOverdue(context.Background(), "oficina")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if promoted != 1 {
		t.Fatalf("expected 1 promotion, got %d", promoted)
	}
}

func TestBillingUseCase_Summary(t *testing.T) {
	t.Run("zero outstanding orders yields zero average", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mock_interfaces.NewMockIServiceOrderRepository(ctrl)
		uc := NewBillingUseCase(orders, nil, nil)

		orders.EXPECT().List(gomock.Any(), "oficina").Return([]entities.ServiceOrder{
			{ID: "o-1", PaymentStatus: entities.PaymentStatusPago},
		}, nil)

		s, err := uc.Summary(context.Background(), "oficina")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.TotalOutstanding != 0 || s.DebtorCount != 0 || s.AverageDebt != 0 {
			t.Fatalf("expected empty summary, got %+v", s)
		}
	})

	t.Run("aggregates distinct debtors", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mock_interfaces.NewMockIServiceOrderRepository(ctrl)
		uc := NewBillingUseCase(orders, nil, nil)

		orders.EXPECT().List(gomock.Any(), "oficina").Return([]entities.ServiceOrder{
			{ID: "o-1", ClientID: "c-1", TotalValue: 100, Status: entities.OSStatusFinalizado, PaymentStatus: entities.PaymentStatusPendente},
			{ID: "o-2", ClientID: "c-1", TotalValue: 200, Status: entities.OSStatusFinalizado, PaymentStatus: entities.PaymentStatusAtrasado},
			{ID: "o-3", ClientID: "c-2", TotalValue: 100, Status: entities.OSStatusFinalizado, PaymentStatus: entities.PaymentStatusAtrasado},
			{ID: "o-4", ClientID: "c-3", TotalValue: 999, Status: entities.OSStatusFinalizado, PaymentStatus: entities.PaymentStatusPago},
			{ID: "o-5", ClientID: "c-4", TotalValue: 999, Status: entities.OSStatusCancelado, PaymentStatus: entities.PaymentStatusPendente},
		}, nil)

		s, err := uc.Summary(context.Background(), "oficina")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.TotalOutstanding != 400 {
			t.Fatalf("expected 400 outstanding, got %v", s.TotalOutstanding)
		}
		if s.DebtorCount != 2 {
			t.Fatalf("expected 2 debtors, got %d", s.DebtorCount)
		}
		if s.AverageDebt != 200 {
			t.Fatalf("expected average 200, got %v", s.AverageDebt)
		}
		if s.OverdueOrders != 2 {
			t.Fatalf("expected 2 overdue orders, got %d", s.OverdueOrders)
		}
	})
}

func TestBillingUseCase_SendCollectionNotice(t *testing.T) {
	order := entities.ServiceOrder{
		ID:            "o-1",
		OSNumber:      "OS-0007",
		ClientID:      "c-1",
		ClientName:    "Maria",
		TotalValue:    350,
		Status:        entities.OSStatusFinalizado,
		PaymentStatus: entities.PaymentStatusAtrasado,
		CreatedAt:     time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	}

	t.Run("invalid tier", func(t *testing.T) {
		uc := NewBillingUseCase(nil, nil, nil)
		_, err := uc.SendCollectionNotice(context.Background(), "oficina", "o-1", "ana", CollectionTier("severe"))
		if !errors.Is(err, ErrInvalidTier) {
			t.Fatalf("expected ErrInvalidTier, got %v", err)
		}
	})

	t.Run("paid order is not collectable", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mock_interfaces.NewMockIServiceOrderRepository(ctrl)
		uc := NewBillingUseCase(orders, nil, nil)
		paid := order
		paid.PaymentStatus = entities.PaymentStatusPago
		orders.EXPECT().GetByID(gomock.Any(), "oficina", "o-1").Return(paid, nil)

		_, err := uc.SendCollectionNotice(context.Background(), "oficina", "o-1", "ana", TierMild)
		if !errors.Is(err, ErrOrderNotCollectable) {
			t.Fatalf("expected ErrOrderNotCollectable, got %v", err)
		}
	})

	t.Run("dispatches and appends audit entry", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mock_interfaces.NewMockIServiceOrderRepository(ctrl)
		clients := mock_interfaces.NewMockIClientRepository(ctrl)
		dispatcher := mock_interfaces.NewMockIMessageDispatcher(ctrl)
		uc := NewBillingUseCase(orders, clients, dispatcher)

		orders.EXPECT().GetByID(gomock.Any(), "oficina", "o-1").Return(order, nil)
		clients.EXPECT().GetByID(gomock.Any(), "oficina", "c-1").Return(entities.Client{ID: "c-1", Name: "Maria", Phone: "+5511999990000"}, nil)
		dispatcher.EXPECT().SendWhatsApp(gomock.Any(), "+5511999990000", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, body string) (string, error) {
				if !strings.Contains(body, "OS-0007") {
					t.Fatalf("notice must reference the order, got %q", body)
				}
				return "SM123", nil
			},
		)
		orders.EXPECT().Update(gomock.Any(), "oficina", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, o entities.ServiceOrder) (entities.ServiceOrder, error) {
				if len(o.CollectionLog) != 1 {
					t.Fatalf("expected 1 audit entry, got %d", len(o.CollectionLog))
				}
				attempt := o.CollectionLog[0]
				if attempt.Operator != "ana" || attempt.Tier != "final" || attempt.Date.IsZero() {
					t.Fatalf("unexpected audit entry: %+v", attempt)
				}
				return o, nil
			},
		)

		_, err := uc.SendCollectionNotice(context.Background(), "oficina", "o-1", "ana", TierFinal)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("dispatch failure preserves the order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		orders := mock_interfaces.NewMockIServiceOrderRepository(ctrl)
		clients := mock_interfaces.NewMockIClientRepository(ctrl)
		dispatcher := mock_interfaces.NewMockIMessageDispatcher(ctrl)
		uc := NewBillingUseCase(orders, clients, dispatcher)

		orders.EXPECT().GetByID(gomock.Any(), "oficina", "o-1").Return(order, nil)
		clients.EXPECT().GetByID(gomock.Any(), "oficina", "c-1").Return(entities.Client{ID: "c-1", Phone: "+5511999990000"}, nil)
		dispatcher.EXPECT().SendWhatsApp(gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("twilio down"))

		_, err := uc.SendCollectionNotice(context.Background(), "oficina", "o-1", "ana", TierMild)
		if err == nil || err.Error() != "twilio down" {
			t.Fatalf("expected dispatch error, got %v", err)
		}
	})
}

func TestNoticeMessageTiers(t *testing.T) {
	o := entities.ServiceOrder{OSNumber: "OS-0001", ClientName: "Maria", TotalValue: 100}
	mild := noticeMessage(TierMild, o, 3)
	formal := noticeMessage(TierFormal, o, 10)
	final := noticeMessage(TierFinal, o, 30)
	if mild == formal || formal == final || mild == final {
		t.Fatalf("tiers must produce distinct messages")
	}
	if !strings.Contains(final, "FINAL") {
		t.Fatalf("final tier must read as a last notice, got %q", final)
	}
}
