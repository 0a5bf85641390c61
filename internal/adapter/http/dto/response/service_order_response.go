package response

import (
	"time"

	"oficina_pro/internal/domain/entities"
)

type OSItemResponse struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Type        string  `json:"type"`
}

type CollectionAttemptResponse struct {
	Date     time.Time `json:"date"`
	Operator string    `json:"operator"`
	Tier     string    `json:"tier"`
}

type ServiceOrderResponse struct {
	ID            string                      `json:"id"`
	OSNumber      string                      `json:"os_number"`
	ClientID      string                      `json:"client_id"`
	VehicleID     string                      `json:"vehicle_id"`
	ClientName    string                      `json:"client_name"`
	VehiclePlate  string                      `json:"vehicle_plate"`
	VehicleModel  string                      `json:"vehicle_model"`
	Items         []OSItemResponse            `json:"items"`
	LaborValue    float64                     `json:"labor_value"`
	Discount      float64                     `json:"discount"`
	TotalValue    float64                     `json:"total_value"`
	Mileage       int64                       `json:"mileage"`
	Status        string                      `json:"status"`
	PaymentStatus string                      `json:"payment_status"`
	PaymentMethod string                      `json:"payment_method,omitempty"`
	CollectionLog []CollectionAttemptResponse `json:"collection_log,omitempty"`
	CreatedAt     time.Time                   `json:"created_at"`
	UpdatedAt     time.Time                   `json:"updated_at"`
}

func FromServiceOrder(o entities.ServiceOrder) ServiceOrderResponse {
	items := make([]OSItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OSItemResponse{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Type:        string(it.Type),
		})
	}
	log := make([]CollectionAttemptResponse, 0, len(o.CollectionLog))
	for _, a := range o.CollectionLog {
		log = append(log, CollectionAttemptResponse{
			Date:     a.Date,
			Operator: a.Operator,
			Tier:     a.Tier,
		})
	}
	return ServiceOrderResponse{
		ID:            o.ID,
		OSNumber:      o.OSNumber,
		ClientID:      o.ClientID,
		VehicleID:     o.VehicleID,
		ClientName:    o.ClientName,
		VehiclePlate:  o.VehiclePlate,
		VehicleModel:  o.VehicleModel,
		Items:         items,
		LaborValue:    o.LaborValue,
		Discount:      o.Discount,
		TotalValue:    o.TotalValue,
		Mileage:       o.Mileage,
		Status:        string(o.Status),
		PaymentStatus: string(o.PaymentStatus),
		PaymentMethod: o.PaymentMethod,
		CollectionLog: log,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

func FromServiceOrders(orders []entities.ServiceOrder) []ServiceOrderResponse {
	out := make([]ServiceOrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromServiceOrder(o))
	}
	return out
}
