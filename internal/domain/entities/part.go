package entities

// Part is an inventory item. Stock must never go negative; adjustments that
// would underflow are rejected outright.
//
// Storage model (DynamoDB):
//   - PK: tenant_id
//   - SK: id
type Part struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	SKU       string  `json:"sku,omitempty"`
	Stock     int64   `json:"stock"`
	MinStock  int64   `json:"min_stock"`
	UnitPrice float64 `json:"unit_price"`
	CostPrice float64 `json:"cost_price,omitempty"`
}

// LowStock reports whether the part sits at or below its reorder threshold.
func (p Part) LowStock() bool {
	return p.Stock <= p.MinStock
}
