package request

import (
	"oficina_pro/internal/domain/entities"
	"oficina_pro/internal/usecase"
)

type OSItemRequest struct {
	Description string  `json:"description" binding:"required"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Type        string  `json:"type"`
}

// CreateOrderRequest opens a draft (ORCAMENTO) order. Items may be empty; the
// counter often creates the draft first and itemizes later.
type CreateOrderRequest struct {
	ClientID   string          `json:"client_id" binding:"required"`
	VehicleID  string          `json:"vehicle_id" binding:"required"`
	Items      []OSItemRequest `json:"items"`
	LaborValue float64         `json:"labor_value"`
	Discount   float64         `json:"discount"`
	Mileage    int64           `json:"mileage"`
}

// UpdateOrderRequest replaces the editable fields of a non-terminal order.
type UpdateOrderRequest struct {
	Items      []OSItemRequest `json:"items"`
	LaborValue float64         `json:"labor_value"`
	Discount   float64         `json:"discount"`
	Mileage    int64           `json:"mileage"`
}

// FinalizeOrderRequest closes the order. With pay_now the charge is settled
// immediately through the configured gateway.
type FinalizeOrderRequest struct {
	PayNow        bool   `json:"pay_now"`
	PaymentMethod string `json:"payment_method"`
}

type ConfirmPaymentRequest struct {
	PaymentMethod string `json:"payment_method"`
}

type CollectionNoticeRequest struct {
	Operator string `json:"operator"`
	Tier     string `json:"tier" binding:"required"`
}

func (r CreateOrderRequest) ToInput() usecase.CreateOrderInput {
	return usecase.CreateOrderInput{
		ClientID:   r.ClientID,
		VehicleID:  r.VehicleID,
		Items:      toOSItems(r.Items),
		LaborValue: r.LaborValue,
		Discount:   r.Discount,
		Mileage:    r.Mileage,
	}
}

func (r UpdateOrderRequest) ToInput() usecase.UpdateDraftInput {
	return usecase.UpdateDraftInput{
		Items:      toOSItems(r.Items),
		LaborValue: r.LaborValue,
		Discount:   r.Discount,
		Mileage:    r.Mileage,
	}
}

func toOSItems(items []OSItemRequest) []entities.OSItem {
	out := make([]entities.OSItem, 0, len(items))
	for _, it := range items {
		t := entities.OSItemType(it.Type)
		if t != entities.OSItemTypePart {
			t = entities.OSItemTypeService
		}
		out = append(out, entities.OSItem{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Type:        t,
		})
	}
	return out
}
