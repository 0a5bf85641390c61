package entities

import "time"

// AppointmentStatus tracks a booking from creation to the shop floor.

type AppointmentStatus string

const (
	AppointmentStatusAgendado   AppointmentStatus = "AGENDADO"
	AppointmentStatusConfirmado AppointmentStatus = "CONFIRMADO"
	AppointmentStatusConcluido  AppointmentStatus = "CONCLUIDO"
	AppointmentStatusCancelado  AppointmentStatus = "CANCELADO"
)

// Active reports whether the appointment still occupies its slot.
// Cancelled appointments do not participate in conflict checks.
func (s AppointmentStatus) Active() bool {
	return s != AppointmentStatusCancelado
}

// Appointment is one booked slot.
//
// Storage model (DynamoDB):
//   - PK: tenant_id
//   - SK: id
//
// Date is a calendar day ("2006-01-02") and Time a slot ("15:04"); conflicts
// are resolved on those string values, not on instants.
//
// AttemptsCount is a snapshot taken at creation time (the client's prior
// appointment count + 1). It is historical data and is never recomputed.
type Appointment struct {
	ID            string            `json:"id"`
	ClientID      string            `json:"client_id"`
	ClientName    string            `json:"client_name"`
	VehiclePlate  string            `json:"vehicle_plate"`
	ServiceType   string            `json:"service_type"`
	Date          string            `json:"date"`
	Time          string            `json:"time"`
	Status        AppointmentStatus `json:"status"`
	AttemptsCount int               `json:"attempts_count"`
	CreatedAt     time.Time         `json:"created_at"`
}
