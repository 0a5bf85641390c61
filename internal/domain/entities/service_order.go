package entities

import "time"

// OSStatus represents the lifecycle of a service order (ordem de serviço).
//
// Domain notes:
//   - The order lifecycle and the payment lifecycle are independent machines.
//   - Transitions are enumerated explicitly; anything not in the table is illegal.

type OSStatus string

const (
	OSStatusOrcamento   OSStatus = "ORCAMENTO"
	OSStatusEmAndamento OSStatus = "EM_ANDAMENTO"
	OSStatusFinalizado  OSStatus = "FINALIZADO"
	OSStatusCancelado   OSStatus = "CANCELADO"
)

// PaymentStatus represents the collection state of a finalized order.

type PaymentStatus string

const (
	PaymentStatusPago     PaymentStatus = "PAGO"
	PaymentStatusPendente PaymentStatus = "PENDENTE"
	PaymentStatusAtrasado PaymentStatus = "ATRASADO"
)

// OSItemType distinguishes parts from labor-style service lines.

type OSItemType string

const (
	OSItemTypePart    OSItemType = "PART"
	OSItemTypeService OSItemType = "SERVICE"
)

// osTransitions enumerates the legal order-status transitions.
// FINALIZADO and CANCELADO are terminal.
var osTransitions = map[OSStatus][]OSStatus{
	OSStatusOrcamento:   {OSStatusEmAndamento, OSStatusCancelado},
	OSStatusEmAndamento: {OSStatusFinalizado, OSStatusCancelado},
}

// paymentTransitions enumerates the legal payment-status transitions.
// PAGO is terminal; ATRASADO may still be settled (payment received late).
var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentStatusPendente: {PaymentStatusPago, PaymentStatusAtrasado},
	PaymentStatusAtrasado: {PaymentStatusPago},
}

// CanTransition reports whether from -> to is a legal order-status move.
func (from OSStatus) CanTransition(to OSStatus) bool {
	for _, next := range osTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no further order-status transition is possible.
func (s OSStatus) Terminal() bool {
	return len(osTransitions[s]) == 0
}

// CanTransition reports whether from -> to is a legal payment-status move.
func (from PaymentStatus) CanTransition(to PaymentStatus) bool {
	for _, next := range paymentTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// OSItem is one line of a service order. Quantity and UnitPrice below zero are
// treated as zero by the total computation; the order never carries a negative
// line total.
type OSItem struct {
	Description string     `json:"description"`
	Quantity    float64    `json:"quantity"`
	UnitPrice   float64    `json:"unit_price"`
	Type        OSItemType `json:"type"`
}

// CollectionAttempt is an audit record of one collection notice sent for an
// unpaid order. The tier is a per-attempt choice, not order state.
type CollectionAttempt struct {
	Date     time.Time `json:"date"`
	Operator string    `json:"operator"`
	Tier     string    `json:"tier"`
}

// ServiceOrder is the invoice-like record of work on a vehicle.
//
// Storage model (DynamoDB):
//   - PK: tenant_id
//   - SK: id
//
// Client/vehicle name, plate and model are denormalized snapshots taken at
// creation time so finalized invoices survive later edits to the references.
//
// Invariant: TotalValue == max(0, sum(clamp(qty)*clamp(price)) + labor - discount).
type ServiceOrder struct {
	ID            string              `json:"id"`
	OSNumber      string              `json:"os_number"`
	ClientID      string              `json:"client_id"`
	VehicleID     string              `json:"vehicle_id"`
	ClientName    string              `json:"client_name"`
	VehiclePlate  string              `json:"vehicle_plate"`
	VehicleModel  string              `json:"vehicle_model"`
	Items         []OSItem            `json:"items"`
	LaborValue    float64             `json:"labor_value"`
	Discount      float64             `json:"discount"`
	TotalValue    float64             `json:"total_value"`
	Mileage       int64               `json:"mileage"`
	Status        OSStatus            `json:"status"`
	PaymentStatus PaymentStatus       `json:"payment_status"`
	PaymentMethod string              `json:"payment_method,omitempty"`
	CollectionLog []CollectionAttempt `json:"collection_log,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}
