package request

import "oficina_pro/internal/usecase"

type AppointmentRequest struct {
	ClientID     string `json:"client_id" binding:"required"`
	VehiclePlate string `json:"vehicle_plate"`
	ServiceType  string `json:"service_type"`
	Date         string `json:"date" binding:"required"`
	Time         string `json:"time" binding:"required"`
}

type AppointmentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (r AppointmentRequest) ToInput() usecase.ScheduleInput {
	return usecase.ScheduleInput{
		ClientID:     r.ClientID,
		VehiclePlate: r.VehiclePlate,
		ServiceType:  r.ServiceType,
		Date:         r.Date,
		Time:         r.Time,
	}
}
