package response

import "oficina_pro/internal/domain/entities"

type PartResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	SKU       string  `json:"sku,omitempty"`
	Stock     int64   `json:"stock"`
	MinStock  int64   `json:"min_stock"`
	UnitPrice float64 `json:"unit_price"`
	CostPrice float64 `json:"cost_price,omitempty"`
	LowStock  bool    `json:"low_stock"`
}

func FromPart(p entities.Part) PartResponse {
	return PartResponse{
		ID:        p.ID,
		Name:      p.Name,
		SKU:       p.SKU,
		Stock:     p.Stock,
		MinStock:  p.MinStock,
		UnitPrice: p.UnitPrice,
		CostPrice: p.CostPrice,
		LowStock:  p.LowStock(),
	}
}

func FromParts(parts []entities.Part) []PartResponse {
	out := make([]PartResponse, 0, len(parts))
	for _, p := range parts {
		out = append(out, FromPart(p))
	}
	return out
}
