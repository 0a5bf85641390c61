package interfaces

import "context"

// DashboardCounts are the aggregates handed to the insight collaborator.
type DashboardCounts struct {
	OpenOrders        int     `json:"open_orders"`
	LowStockParts     int     `json:"low_stock_parts"`
	TodayAppointments int     `json:"today_appointments"`
	MonthIncome       float64 `json:"month_income"`
}

// IInsightProvider turns dashboard aggregates into a short natural-language
// remark. Callers must fall back to a fixed string when the provider is nil
// or errors; the dashboard never depends on it being available.
type IInsightProvider interface {
	Summary(ctx context.Context, counts DashboardCounts) (string, error)
}
