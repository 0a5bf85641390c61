package insights

import (
	"context"
	"fmt"
	"strings"

	"oficina_pro/internal/usecase/interfaces"
)

// HeuristicProvider produces the dashboard remark from fixed rules over the
// aggregates. It never fails, so the dashboard fallback path only triggers
// when no provider is wired at all.

type HeuristicProvider struct{}

var _ interfaces.IInsightProvider = (*HeuristicProvider)(nil)

func NewHeuristicProvider() *HeuristicProvider {
	return &HeuristicProvider{}
}

func (p *HeuristicProvider) Summary(_ context.Context, c interfaces.DashboardCounts) (string, error) {
	var parts []string

	switch {
	case c.OpenOrders == 0:
		parts = append(parts, "Nenhuma ordem em aberto.")
	case c.OpenOrders == 1:
		parts = append(parts, "1 ordem em aberto.")
	default:
		parts = append(parts, fmt.Sprintf("%d ordens em aberto.", c.OpenOrders))
	}

	if c.LowStockParts > 0 {
		parts = append(parts, fmt.Sprintf("%d pecas abaixo do estoque minimo, considere repor.", c.LowStockParts))
	}
	if c.TodayAppointments > 0 {
		parts = append(parts, fmt.Sprintf("%d agendamentos para hoje.", c.TodayAppointments))
	}
	if c.MonthIncome > 0 {
		parts = append(parts, fmt.Sprintf("Receita do mes: R$ %.2f.", c.MonthIncome))
	}

	return strings.Join(parts, " "), nil
}
