package request

import "oficina_pro/internal/usecase"

type PartRequest struct {
	Name      string  `json:"name" binding:"required"`
	SKU       string  `json:"sku"`
	Stock     int64   `json:"stock"`
	MinStock  int64   `json:"min_stock"`
	UnitPrice float64 `json:"unit_price"`
	CostPrice float64 `json:"cost_price"`
}

// StockAdjustmentRequest moves inventory by a signed delta. Underflows are
// rejected by the use case.
type StockAdjustmentRequest struct {
	Delta int64 `json:"delta" binding:"required"`
}

func (r PartRequest) ToInput() usecase.PartInput {
	return usecase.PartInput{
		Name:      r.Name,
		SKU:       r.SKU,
		Stock:     r.Stock,
		MinStock:  r.MinStock,
		UnitPrice: r.UnitPrice,
		CostPrice: r.CostPrice,
	}
}
