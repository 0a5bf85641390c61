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
	ErrAppointmentNotFound    = errors.New("appointment not found")
	ErrInvalidAppointmentID   = errors.New("invalid appointment id")
	ErrInvalidAppointmentDate = errors.New("invalid appointment date")
	ErrInvalidAppointmentTime = errors.New("invalid appointment time")
	ErrSlotTaken              = errors.New("slot already taken")
	ErrClientAlreadyScheduled = errors.New("client already has an appointment that day")
	ErrPastDate               = errors.New("appointment date is in the past")
	ErrAppointmentClosed      = errors.New("appointment is in a terminal status")
)

// ScheduleInput is the candidate booking checked against the existing set.
type ScheduleInput struct {
	ClientID     string
	VehiclePlate string
	ServiceType  string
	Date         string // 2006-01-02
	Time         string // 15:04
}

// IAppointmentUseCase exposes scheduling with conflict rejection.

type IAppointmentUseCase interface {
	Schedule(ctx context.Context, tenant string, in ScheduleInput) (entities.Appointment, error)
	UpdateStatus(ctx context.Context, tenant, id string, status entities.AppointmentStatus) (entities.Appointment, error)
	GetByID(ctx context.Context, tenant, id string) (entities.Appointment, error)
	List(ctx context.Context, tenant string) ([]entities.Appointment, error)
	ListByDate(ctx context.Context, tenant, date string) ([]entities.Appointment, error)
}

type AppointmentUseCase struct {
	repo       interfaces.IAppointmentRepository
	clientRepo interfaces.IClientRepository
	now        func() time.Time
}

var _ IAppointmentUseCase = (*AppointmentUseCase)(nil)

func NewAppointmentUseCase(repo interfaces.IAppointmentRepository, clientRepo interfaces.IClientRepository) *AppointmentUseCase {
	return &AppointmentUseCase{
		repo:       repo,
		clientRepo: clientRepo,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Schedule validates the candidate against every non-cancelled appointment:
// same (date, time) is a slot collision, same (date, client) is a
// double-booking regardless of time. Past dates are rejected outright.
//
// AttemptsCount is stamped as the client's prior appointment count + 1; it is
// a historical snapshot and is never recalculated after insertion.
func (u *AppointmentUseCase) Schedule(ctx context.Context, tenant string, in ScheduleInput) (entities.Appointment, error) {
	in.ClientID = strings.TrimSpace(in.ClientID)
	if in.ClientID == "" {
		return entities.Appointment{}, ErrMissingClient
	}
	day, err := time.Parse("2006-01-02", strings.TrimSpace(in.Date))
	if err != nil {
		return entities.Appointment{}, ErrInvalidAppointmentDate
	}
	if _, err := time.Parse("15:04", strings.TrimSpace(in.Time)); err != nil {
		return entities.Appointment{}, ErrInvalidAppointmentTime
	}

	today := u.now().Truncate(24 * time.Hour)
	if day.Before(today) {
		return entities.Appointment{}, ErrPastDate
	}

	client, err := u.clientRepo.GetByID(ctx, tenant, in.ClientID)
	if err != nil {
		return entities.Appointment{}, err
	}
	if client.ID == "" {
		return entities.Appointment{}, ErrClientNotFound
	}

	existing, err := u.repo.List(ctx, tenant)
	if err != nil {
		return entities.Appointment{}, err
	}

	date := day.Format("2006-01-02")
	slot := strings.TrimSpace(in.Time)
	priorAttempts := 0
	for _, a := range existing {
		if a.ClientID == in.ClientID {
			priorAttempts++
		}
		if !a.Status.Active() || a.Date != date {
			continue
		}
		if a.Time == slot {
			return entities.Appointment{}, ErrSlotTaken
		}
		if a.ClientID == in.ClientID {
			return entities.Appointment{}, ErrClientAlreadyScheduled
		}
	}

	appt := entities.Appointment{
		ID:            uuid.NewString(),
		ClientID:      client.ID,
		ClientName:    client.Name,
		VehiclePlate:  strings.TrimSpace(in.VehiclePlate),
		ServiceType:   strings.TrimSpace(in.ServiceType),
		Date:          date,
		Time:          slot,
		Status:        entities.AppointmentStatusAgendado,
		AttemptsCount: priorAttempts + 1,
		CreatedAt:     u.now(),
	}
	log.Printf("[appointment][usecase] scheduled tenant=%s client=%s date=%s time=%s attempt=%d", tenant, client.ID, date, slot, appt.AttemptsCount)
	return u.repo.Create(ctx, tenant, appt)
}

func (u *AppointmentUseCase) UpdateStatus(ctx context.Context, tenant, id string, status entities.AppointmentStatus) (entities.Appointment, error) {
	a, err := u.GetByID(ctx, tenant, id)
	if err != nil {
		return entities.Appointment{}, err
	}
	switch status {
	case entities.AppointmentStatusConfirmado, entities.AppointmentStatusConcluido, entities.AppointmentStatusCancelado:
	default:
		return entities.Appointment{}, ErrIllegalTransition
	}
	if a.Status == entities.AppointmentStatusConcluido || a.Status == entities.AppointmentStatusCancelado {
		return entities.Appointment{}, ErrAppointmentClosed
	}
	a.Status = status
	return u.repo.Update(ctx, tenant, a)
}

func (u *AppointmentUseCase) GetByID(ctx context.Context, tenant, id string) (entities.Appointment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Appointment{}, ErrInvalidAppointmentID
	}
	a, err := u.repo.GetByID(ctx, tenant, id)
	if err != nil {
		return entities.Appointment{}, err
	}
	if a.ID == "" {
		return entities.Appointment{}, ErrAppointmentNotFound
	}
	return a, nil
}

func (u *AppointmentUseCase) List(ctx context.Context, tenant string) ([]entities.Appointment, error) {
	return u.repo.List(ctx, tenant)
}

func (u *AppointmentUseCase) ListByDate(ctx context.Context, tenant, date string) ([]entities.Appointment, error) {
	all, err := u.repo.List(ctx, tenant)
	if err != nil {
		return nil, err
	}
	date = strings.TrimSpace(date)
	out := make([]entities.Appointment, 0, len(all))
	for _, a := range all {
		if a.Date == date {
			out = append(out, a)
		}
	}
	return out, nil
}
