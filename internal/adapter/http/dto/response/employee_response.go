package response

import "oficina_pro/internal/domain/entities"

type EmployeeResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	RoleTitle  string  `json:"role_title"`
	Phone      string  `json:"phone,omitempty"`
	Commission float64 `json:"commission,omitempty"`
}

func FromEmployee(e entities.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:         e.ID,
		Name:       e.Name,
		RoleTitle:  e.RoleTitle,
		Phone:      e.Phone,
		Commission: e.Commission,
	}
}

func FromEmployees(employees []entities.Employee) []EmployeeResponse {
	out := make([]EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		out = append(out, FromEmployee(e))
	}
	return out
}
