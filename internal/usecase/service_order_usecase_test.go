package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"oficina_pro/internal/domain/entities"
	mock_interfaces "oficina_pro/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestComputeSubtotal(t *testing.T) {
	t.Run("items plus labor", func(t *testing.T) {
		items := []entities.OSItem{
			{Description: "Pastilha de freio", Quantity: 2, UnitPrice: 50, Type: entities.OSItemTypePart},
		}
		if got := ComputeSubtotal(items, 100); got != 200 {
			t.Fatalf("expected 200, got %v", got)
		}
	})

	t.Run("negative quantity and price clamp to zero", func(t *testing.T) {
		items := []entities.OSItem{
			{Quantity: -3, UnitPrice: 50},
			{Quantity: 2, UnitPrice: -10},
			{Quantity: 1, UnitPrice: 30},
		}
		if got := ComputeSubtotal(items, -5); got != 30 {
			t.Fatalf("expected 30, got %v", got)
		}
	})
}

func TestComputeTotal(t *testing.T) {
	items := []entities.OSItem{{Quantity: 2, UnitPrice: 50}}

	t.Run("zero discount equals subtotal", func(t *testing.T) {
		if ComputeTotal(items, 100, 0) != ComputeSubtotal(items, 100) {
			t.Fatalf("total with zero discount must equal subtotal")
		}
	})

	t.Run("reference scenario", func(t *testing.T) {
		if got := ComputeTotal(items, 100, 20); got != 180 {
			t.Fatalf("expected 180, got %v", got)
		}
	})

	t.Run("discount above subtotal floors at zero", func(t *testing.T) {
		if got := ComputeTotal(items, 0, 1000); got != 0 {
			t.Fatalf("expected 0, got %v", got)
		}
	})
}

func TestOSStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to entities.OSStatus
		ok       bool
	}{
		{entities.OSStatusOrcamento, entities.OSStatusEmAndamento, true},
		{entities.OSStatusOrcamento, entities.OSStatusCancelado, true},
		{entities.OSStatusOrcamento, entities.OSStatusFinalizado, false},
		{entities.OSStatusEmAndamento, entities.OSStatusFinalizado, true},
		{entities.OSStatusEmAndamento, entities.OSStatusCancelado, true},
		{entities.OSStatusFinalizado, entities.OSStatusCancelado, false},
		{entities.OSStatusCancelado, entities.OSStatusEmAndamento, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransition(tc.to); got != tc.ok {
			t.Fatalf("%s -> %s: expected %v, got %v", tc.from, tc.to, tc.ok, got)
		}
	}
	if !entities.OSStatusFinalizado.Terminal() || !entities.OSStatusCancelado.Terminal() {
		t.Fatalf("FINALIZADO and CANCELADO must be terminal")
	}
}

func TestPaymentStatusTransitions(t *testing.T) {
	if !entities.PaymentStatusPendente.CanTransition(entities.PaymentStatusPago) {
		t.Fatalf("PENDENTE -> PAGO must be legal")
	}
	if !entities.PaymentStatusPendente.CanTransition(entities.PaymentStatusAtrasado) {
		t.Fatalf("PENDENTE -> ATRASADO must be legal")
	}
	if !entities.PaymentStatusAtrasado.CanTransition(entities.PaymentStatusPago) {
		t.Fatalf("ATRASADO -> PAGO must be legal (late payment)")
	}
	if entities.PaymentStatusPago.CanTransition(entities.PaymentStatusPendente) {
		t.Fatalf("PAGO must be terminal")
	}
}

type orderMocks struct {
	orders   *mock_interfaces.MockIServiceOrderRepository
	clients  *mock_interfaces.MockIClientRepository
	vehicles *mock_interfaces.MockIVehicleRepository
	txs      *mock_interfaces.MockITransactionRepository
	gateway  *mock_interfaces.MockIPaymentGateway
}

func newOrderUseCase(ctrl *gomock.Controller, withGateway bool) (*ServiceOrderUseCase, orderMocks) {
	m := orderMocks{
		orders:   mock_interfaces.NewMockIServiceOrderRepository(ctrl),
		clients:  mock_interfaces.NewMockIClientRepository(ctrl),
		vehicles: mock_interfaces.NewMockIVehicleRepository(ctrl),
		txs:      mock_interfaces.NewMockITransactionRepository(ctrl),
		gateway:  mock_interfaces.NewMockIPaymentGateway(ctrl),
	}
	var uc *ServiceOrderUseCase
	if withGateway {
		uc = NewServiceOrderUseCase(m.orders, m.clients, m.vehicles, m.txs, m.gateway)
	} else {
		uc = NewServiceOrderUseCase(m.orders, m.clients, m.vehicles, m.txs, nil)
	}
	return uc, m
}

func TestServiceOrderUseCase_CreateDraft(t *testing.T) {
	t.Run("missing client", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _ := newOrderUseCase(ctrl, false)
		_, err := uc.CreateDraft(context.Background(), "oficina", CreateOrderInput{VehicleID: "v-1"})
		if !errors.Is(err, ErrMissingClient) {
			t.Fatalf("expected ErrMissingClient, got %v", err)
		}
	})

	t.Run("missing vehicle", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _ := newOrderUseCase(ctrl, false)
		_, err := uc.CreateDraft(context.Background(), "oficina", CreateOrderInput{ClientID: "c-1"})
		if !errors.Is(err, ErrMissingVehicle) {
			t.Fatalf("expected ErrMissingVehicle, got %v", err)
		}
	})

	t.Run("client not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newOrderUseCase(ctrl, false)
		m.clients.EXPECT().GetByID(gomock.Any(), "oficina", "c-1").Return(entities.Client{}, nil)

		_, err := uc.CreateDraft(context.Background(), "oficina", CreateOrderInput{ClientID: "c-1", VehicleID: "v-1"})
		if !errors.Is(err, ErrClientNotFound) {
			t.Fatalf("expected ErrClientNotFound, got %v", err)
		}
	})

	t.Run("success snapshots references and derives total", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newOrderUseCase(ctrl, false)

		m.clients.EXPECT().GetByID(gomock.Any(), "oficina", "c-1").Return(entities.Client{ID: "c-1", Name: "Maria"}, nil)
		m.vehicles.EXPECT().GetByID(gomock.Any(), "oficina", "v-1").Return(entities.Vehicle{ID: "v-1", Plate: "ABC1D23", Model: "Gol"}, nil)
		m.orders.EXPECT().Count(gomock.Any(), "oficina").Return(41, nil)
		m.orders.EXPECT().Create(gomock.Any(), "oficina", gomock.AssignableToTypeOf(entities.ServiceOrder{})).DoAndReturn(
			func(_ context.Context, _ string, o entities.ServiceOrder) (entities.ServiceOrder, error) {
				if o.ID == "" || o.OSNumber != "OS-0042" {
					t.Fatalf("unexpected identity: %+v", o)
				}
				if o.ClientName != "Maria" || o.VehiclePlate != "ABC1D23" || o.VehicleModel != "Gol" {
					t.Fatalf("expected denormalized snapshots, got %+v", o)
				}
				if o.Status != entities.OSStatusOrcamento || o.PaymentStatus != entities.PaymentStatusPendente {
					t.Fatalf("unexpected initial statuses: %+v", o)
				}
				if o.TotalValue != 180 {
					t.Fatalf("expected total 180, got %v", o.TotalValue)
				}
				if o.CreatedAt.IsZero() || o.UpdatedAt.IsZero() {
					t.Fatalf("expected timestamps")
				}
				return o, nil
			},
		)

		res, err := uc.CreateDraft(context.Background(), "oficina", CreateOrderInput{
			ClientID:   " c-1 ",
			VehicleID:  "v-1",
			Items:      []entities.OSItem{{Description: "Pastilha", Quantity: 2, UnitPrice: 50, Type: entities.OSItemTypePart}},
			LaborValue: 100,
			Discount:   20,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.ID == "" {
			t.Fatalf("expected generated id")
		}
	})
}

func TestServiceOrderUseCase_UpdateDraft(t *testing.T) {
	t.Run("terminal order rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newOrderUseCase(ctrl, false)
		m.orders.EXPECT().GetByID(gomock.Any(), "oficina", "o-1").Return(entities.ServiceOrder{ID: "o-1", Status: entities.OSStatusFinalizado}, nil)

		_, err := uc.UpdateDraft(context.Background(), "oficina", "o-1", UpdateDraftInput{LaborValue: 10})
		if !errors.Is(err, ErrOrderClosed) {
			t.Fatalf("expected ErrOrderClosed, got %v", err)
		}
	})

	t.Run("recomputes total", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newOrderUseCase(ctrl, false)
		m.orders.EXPECT().GetByID(gomock.Any(), "oficina", "o-1").Return(entities.ServiceOrder{ID: "o-1", Status: entities.OSStatusOrcamento}, nil)
		m.orders.EXPECT().Update(gomock.Any(), "oficina", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, o entities.ServiceOrder) (entities.ServiceOrder, error) {
				if o.TotalValue != 250 {
					t.Fatalf("expected total 250, got %v", o.TotalValue)
				}
				return o, nil
			},
		)

		_, err := uc.UpdateDraft(context.Background(), "oficina", "o-1", UpdateDraftInput{
			Items:      []entities.OSItem{{Quantity: 3, UnitPrice: 50}},
			LaborValue: 100,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestServiceOrderUseCase_Finalize(t *testing.T) {
	base := entities.ServiceOrder{
		ID:            "o-1",
		OSNumber:      "OS-0001",
		ClientID:      "c-1",
		VehicleID:     "v-1",
		ClientName:    "Maria",
		Items:         []entities.OSItem{{Quantity: 2, UnitPrice: 50}},
		LaborValue:    100,
		Discount:      20,
		Status:        entities.OSStatusOrcamento,
		PaymentStatus: entities.PaymentStatusPendente,
	}

	t.Run("already finalized is rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newOrderUseCase(ctrl, false)
		done := base
		done.Status = entities.OSStatusFinalizado
		m.orders.EXPECT().GetByID(gomock.Any(), "oficina", "o-1").Return(done, nil)

		_, err := uc.Finalize(context.Background(), "oficina", "o-1", true, "pix")
		if !errors.Is(err, ErrOrderAlreadyFinalized) {
			t.Fatalf("expected ErrOrderAlreadyFinalized, got %v", err)
		}
	})

	t.Run("cancelled order is closed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newOrderUseCase(ctrl, false)
		cancelled := base
		cancelled.Status = entities.OSStatusCancelado
		m.orders.EXPECT().GetByID(gomock.Any(), "oficina", "o-1").Return(cancelled, nil)

		_, err := uc.Finalize(context.Background(), "oficina", "o-1", false, "")
		if !errors.Is(err, ErrOrderClosed) {
			t.Fatalf("expected ErrOrderClosed, got %v", err)
		}
	})

	t.Run("missing references block finalization", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newOrderUseCase(ctrl, false)
		orphan := base
		orphan.VehicleID = ""
		m.orders.EXPECT().GetByID(gomock.Any(), "oficina", "o-1").Return(orphan, nil)

		_, err := uc.Finalize(context.Background(), "oficina", "o-1", false, "")
		if !errors.Is(err, ErrMissingVehicle) {
			t.Fatalf("expected ErrMissingVehicle, got %v", err)
		}
	})

	t.Run("deferred flow stays PENDENTE with no ledger entry", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newOrderUseCase(ctrl, false)
		m.orders.EXPECT().GetByID(gomock.Any(), "oficina", "o-1").Return(base, nil)
		m.orders.EXPECT().Update(gomock.Any(), "oficina", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, o entities.ServiceOrder) (entities.ServiceOrder, error) {
				if o.Status != entities.OSStatusFinalizado || o.PaymentStatus != entities.PaymentStatusPendente {
					t.Fatalf("unexpected statuses: %+v", o)
				}
				if o.TotalValue != 180 {
					t.Fatalf("expected total 180, got %v", o.TotalValue)
				}
				return o, nil
			},
		)
		m.vehicles.EXPECT().GetByID(gomock.Any(), "oficina", "v-1").Return(entities.Vehicle{}, nil).AnyTimes()

		res, err := uc.Finalize(context.Background(), "oficina", "o-1", false, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.PaymentStatus != entities.PaymentStatusPendente {
			t.Fatalf("expected PENDENTE, got %s", res.PaymentStatus)
		}
	})

	t.Run("pay-now flow charges gateway, sets PAGO and appends income", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newOrderUseCase(ctrl, true)
		order := base
		order.Mileage = 55000
		m.orders.EXPECT().GetByID(gomock.Any(), "oficina", "o-1").Return(order, nil)
		m.gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return("mp-1", "approved", nil, nil)
		m.orders.EXPECT().Update(gomock.Any(), "oficina", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, o entities.ServiceOrder) (entities.ServiceOrder, error) {
				if o.PaymentStatus != entities.PaymentStatusPago || o.PaymentMethod != "pix" {
					t.Fatalf("unexpected payment state: %+v", o)
				}
				return o, nil
			},
		)
		m.txs.EXPECT().Create(gomock.Any(), "oficina", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, tx entities.FinancialTransaction) (entities.FinancialTransaction, error) {
				if tx.Type != entities.TransactionTypeIncome || tx.RelatedID != "o-1" || tx.Amount != 180 {
					t.Fatalf("unexpected ledger entry: %+v", tx)
				}
				return tx, nil
			},
		)
		m.vehicles.EXPECT().GetByID(gomock.Any(), "oficina", "v-1").Return(entities.Vehicle{ID: "v-1", Mileage: 50000}, nil)
		m.vehicles.EXPECT().Update(gomock.Any(), "oficina", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, v entities.Vehicle) (entities.Vehicle, error) {
				if v.Mileage != 55000 {
					t.Fatalf("expected mileage roll-forward to 55000, got %d", v.Mileage)
				}
				return v, nil
			},
		)

		res, err := uc.Finalize(context.Background(), "oficina", "o-1", true, "pix")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Status != entities.OSStatusFinalizado {
			t.Fatalf("expected FINALIZADO, got %s", res.Status)
		}
	})

	t.Run("gateway failure aborts before persistence", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newOrderUseCase(ctrl, true)
		m.orders.EXPECT().GetByID(gomock.Any(), "oficina", "o-1").Return(base, nil)
		m.gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return("", "", nil, errors.New("mp down"))

		_, err := uc.Finalize(context.Background(), "oficina", "o-1", true, "pix")
		if !errors.Is(err, ErrPaymentCharge) {
			t.Fatalf("expected ErrPaymentCharge, got %v", err)
		}
	})
}

func TestServiceOrderUseCase_ConfirmPayment(t *testing.T) {
	t.Run("already settled", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newOrderUseCase(ctrl, false)
		m.orders.EXPECT().GetByID(gomock.Any(), "oficina", "o-1").Return(entities.ServiceOrder{ID: "o-1", PaymentStatus: entities.PaymentStatusPago}, nil)

		_, err := uc.ConfirmPayment(context.Background(), "oficina", "o-1", "pix")
		if !errors.Is(err, ErrPaymentAlreadySettled) {
			t.Fatalf("expected ErrPaymentAlreadySettled, got %v", err)
		}
	})

	t.Run("late payment settles an overdue order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, m := newOrderUseCase(ctrl, false)
		overdue := entities.ServiceOrder{ID: "o-1", OSNumber: "OS-0009", TotalValue: 300, PaymentStatus: entities.PaymentStatusAtrasado}
		m.orders.EXPECT().GetByID(gomock.Any(), "oficina", "o-1").Return(overdue, nil)
		m.orders.EXPECT().Update(gomock.Any(), "oficina", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, o entities.ServiceOrder) (entities.ServiceOrder, error) {
				if o.PaymentStatus != entities.PaymentStatusPago {
					t.Fatalf("expected PAGO, got %s", o.PaymentStatus)
				}
				return o, nil
			},
		)
		m.txs.EXPECT().Create(gomock.Any(), "oficina", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, tx entities.FinancialTransaction) (entities.FinancialTransaction, error) {
				if tx.RelatedID != "o-1" || tx.Amount != 300 {
					t.Fatalf("unexpected ledger entry: %+v", tx)
				}
				return tx, nil
			},
		)

		res, err := uc.ConfirmPayment(context.Background(), "oficina", "o-1", "dinheiro")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.PaymentMethod != "dinheiro" {
			t.Fatalf("expected payment method recorded, got %q", res.PaymentMethod)
		}
	})
}

func TestServiceOrderUseCase_ListPromotesOverdue(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc, m := newOrderUseCase(ctrl, false)

	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return now }

	fresh := entities.ServiceOrder{ID: "o-1", Status: entities.OSStatusFinalizado, PaymentStatus: entities.PaymentStatusPendente, CreatedAt: now.Add(-2 * time.Hour)}
	stale := entities.ServiceOrder{ID: "o-2", Status: entities.OSStatusFinalizado, PaymentStatus: entities.PaymentStatusPendente, CreatedAt: now.AddDate(0, 0, -8)}
	paid := entities.ServiceOrder{ID: "o-3", Status: entities.OSStatusFinalizado, PaymentStatus: entities.PaymentStatusPago, CreatedAt: now.AddDate(0, 0, -30)}

	m.orders.EXPECT().List(gomock.Any(), "oficina").Return([]entities.ServiceOrder{fresh, stale, paid}, nil)
	m.orders.EXPECT().Update(gomock.Any(), "oficina", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, o entities.ServiceOrder) (entities.ServiceOrder, error) {
			if o.ID != "o-2" || o.PaymentStatus != entities.PaymentStatusAtrasado {
				t.Fatalf("unexpected promotion: %+v", o)
			}
			return o, nil
		},
	)

	orders, err := uc.List(context.Background(), "oficina")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if orders[0].PaymentStatus != entities.PaymentStatusPendente {
		t.Fatalf("fresh order must stay PENDENTE")
	}
	if orders[1].PaymentStatus != entities.PaymentStatusAtrasado {
		t.Fatalf("stale order must be promoted to ATRASADO")
	}
	if orders[2].PaymentStatus != entities.PaymentStatusPago {
		t.Fatalf("paid order must stay PAGO")
	}
}
