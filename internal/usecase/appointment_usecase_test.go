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

func newApptUseCase(ctrl *gomock.Controller) (*AppointmentUseCase, *mock_interfaces.MockIAppointmentRepository, *mock_interfaces.MockIClientRepository) {
	repo := mock_interfaces.NewMockIAppointmentRepository(ctrl)
	clients := mock_interfaces.NewMockIClientRepository(ctrl)
	uc := NewAppointmentUseCase(repo, clients)
	uc.now = func() time.Time { return time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC) }
	return uc, repo, clients
}

func TestAppointmentUseCase_Schedule(t *testing.T) {
	in := ScheduleInput{
		ClientID:     "c-1",
		VehiclePlate: "ABC1D23",
		ServiceType:  "Revisao",
		Date:         "2026-09-01",
		Time:         "09:00",
	}

	t.Run("missing client", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _, _ := newApptUseCase(ctrl)
		bad := in
		bad.ClientID = "  "
		_, err := uc.Schedule(context.Background(), "oficina", bad)
		if !errors.Is(err, ErrMissingClient) {
			t.Fatalf("expected ErrMissingClient, got %v", err)
		}
	})

	t.Run("malformed date", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _, _ := newApptUseCase(ctrl)
		bad := in
		bad.Date = "01/09/2026"
		_, err := uc.Schedule(context.Background(), "oficina", bad)
		if !errors.Is(err, ErrInvalidAppointmentDate) {
			t.Fatalf("expected ErrInvalidAppointmentDate, got %v", err)
		}
	})

	t.Run("past date rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, _, _ := newApptUseCase(ctrl)
		bad := in
		bad.Date = "2026-08-28"
		_, err := uc.Schedule(context.Background(), "oficina", bad)
		if !errors.Is(err, ErrPastDate) {
			t.Fatalf("expected ErrPastDate, got %v", err)
		}
	})

	t.Run("slot collision", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, repo, clients := newApptUseCase(ctrl)
		clients.EXPECT().GetByID(gomock.Any(), "oficina", "c-1").Return(entities.Client{ID: "c-1", Name: "Maria"}, nil)
		repo.EXPECT().List(gomock.Any(), "oficina").Return([]entities.Appointment{
			{ID: "a-1", ClientID: "c-9", Date: "2026-09-01", Time: "09:00", Status: entities.AppointmentStatusAgendado},
		}, nil)

		_, err := uc.Schedule(context.Background(), "oficina", in)
		if !errors.Is(err, ErrSlotTaken) {
			t.Fatalf("expected ErrSlotTaken, got %v", err)
		}
	})

	t.Run("cancelled appointment frees its slot", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, repo, clients := newApptUseCase(ctrl)
		clients.EXPECT().GetByID(gomock.Any(), "oficina", "c-1").Return(entities.Client{ID: "c-1", Name: "Maria"}, nil)
		repo.EXPECT().List(gomock.Any(), "oficina").Return([]entities.Appointment{
			{ID: "a-1", ClientID: "c-9", Date: "2026-09-01", Time: "09:00", Status: entities.AppointmentStatusCancelado},
		}, nil)
		repo.EXPECT().Create(gomock.Any(), "oficina", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, a entities.Appointment) (entities.Appointment, error) {
				return a, nil
			},
		)

		if _, err := uc.Schedule(context.Background(), "oficina", in); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("client double-booking on the same day", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, repo, clients := newApptUseCase(ctrl)
		clients.EXPECT().GetByID(gomock.Any(), "oficina", "c-1").Return(entities.Client{ID: "c-1", Name: "Maria"}, nil)
		repo.EXPECT().List(gomock.Any(), "oficina").Return([]entities.Appointment{
			{ID: "a-1", ClientID: "c-1", Date: "2026-09-01", Time: "14:00", Status: entities.AppointmentStatusConfirmado},
		}, nil)

		_, err := uc.Schedule(context.Background(), "oficina", in)
		if !errors.Is(err, ErrClientAlreadyScheduled) {
			t.Fatalf("expected ErrClientAlreadyScheduled, got %v", err)
		}
	})

	t.Run("attempts count snapshots prior history", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, repo, clients := newApptUseCase(ctrl)
		clients.EXPECT().GetByID(gomock.Any(), "oficina", "c-1").Return(entities.Client{ID: "c-1", Name: "Maria"}, nil)
		repo.EXPECT().List(gomock.Any(), "oficina").Return([]entities.Appointment{
			{ID: "a-1", ClientID: "c-1", Date: "2026-07-10", Time: "09:00", Status: entities.AppointmentStatusConcluido},
			{ID: "a-2", ClientID: "c-1", Date: "2026-08-02", Time: "10:00", Status: entities.AppointmentStatusCancelado},
			{ID: "a-3", ClientID: "c-9", Date: "2026-08-02", Time: "11:00", Status: entities.AppointmentStatusConcluido},
		}, nil)
		repo.EXPECT().Create(gomock.Any(), "oficina", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, a entities.Appointment) (entities.Appointment, error) {
				if a.AttemptsCount != 3 {
					t.Fatalf("expected attempts count 3, got %d", a.AttemptsCount)
				}
				if a.Status != entities.AppointmentStatusAgendado || a.ClientName != "Maria" {
					t.Fatalf("unexpected appointment: %+v", a)
				}
				return a, nil
			},
		)

		res, err := uc.Schedule(context.Background(), "oficina", in)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.AttemptsCount != 3 {
			t.Fatalf("expected attempts count 3, got %d", res.AttemptsCount)
		}
	})
}

func TestAppointmentUseCase_UpdateStatus(t *testing.T) {
	t.Run("terminal appointment rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, repo, _ := newApptUseCase(ctrl)
		repo.EXPECT().GetByID(gomock.Any(), "oficina", "a-1").Return(entities.Appointment{ID: "a-1", Status: entities.AppointmentStatusConcluido}, nil)

		_, err := uc.UpdateStatus(context.Background(), "oficina", "a-1", entities.AppointmentStatusCancelado)
		if !errors.Is(err, ErrAppointmentClosed) {
			t.Fatalf("expected ErrAppointmentClosed, got %v", err)
		}
	})

	t.Run("confirm", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc, repo, _ := newApptUseCase(ctrl)
		repo.EXPECT().GetByID(gomock.Any(), "oficina", "a-1").Return(entities.Appointment{ID: "a-1", Status: entities.AppointmentStatusAgendado}, nil)
		repo.EXPECT().Update(gomock.Any(), "oficina", gomock.Any()).DoAndReturn(
			func(_ context.Context, _ string, a entities.Appointment) (entities.Appointment, error) {
				if a.Status != entities.AppointmentStatusConfirmado {
					t.Fatalf("expected CONFIRMADO, got %s", a.Status)
				}
				return a, nil
			},
		)

		if _, err := uc.UpdateStatus(context.Background(), "oficina", "a-1", entities.AppointmentStatusConfirmado); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestAppointmentUseCase_ListByDate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc, repo, _ := newApptUseCase(ctrl)
	repo.EXPECT().List(gomock.Any(), "oficina").Return([]entities.Appointment{
		{ID: "a-1", Date: "2026-09-01"},
		{ID: "a-2", Date: "2026-09-02"},
		{ID: "a-3", Date: "2026-09-01"},
	}, nil)

	res, err := uc.ListByDate(context.Background(), "oficina", "2026-09-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res) != 2 {
		t.Fatalf("expected 2 appointments, got %d", len(res))
	}
}
