package response

import (
	"time"

	"oficina_pro/internal/domain/entities"
)

type AppointmentResponse struct {
	ID            string    `json:"id"`
	ClientID      string    `json:"client_id"`
	ClientName    string    `json:"client_name"`
	VehiclePlate  string    `json:"vehicle_plate,omitempty"`
	ServiceType   string    `json:"service_type,omitempty"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	Status        string    `json:"status"`
	AttemptsCount int       `json:"attempts_count"`
	CreatedAt     time.Time `json:"created_at"`
}

func FromAppointment(a entities.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:            a.ID,
		ClientID:      a.ClientID,
		ClientName:    a.ClientName,
		VehiclePlate:  a.VehiclePlate,
		ServiceType:   a.ServiceType,
		Date:          a.Date,
		Time:          a.Time,
		Status:        string(a.Status),
		AttemptsCount: a.AttemptsCount,
		CreatedAt:     a.CreatedAt,
	}
}

func FromAppointments(appointments []entities.Appointment) []AppointmentResponse {
	out := make([]AppointmentResponse, 0, len(appointments))
	for _, a := range appointments {
		out = append(out, FromAppointment(a))
	}
	return out
}
