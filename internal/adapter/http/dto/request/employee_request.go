package request

import "oficina_pro/internal/usecase"

type EmployeeRequest struct {
	Name       string  `json:"name" binding:"required"`
	RoleTitle  string  `json:"role_title"`
	Phone      string  `json:"phone"`
	Commission float64 `json:"commission"`
}

func (r EmployeeRequest) ToInput() usecase.EmployeeInput {
	return usecase.EmployeeInput{
		Name:       r.Name,
		RoleTitle:  r.RoleTitle,
		Phone:      r.Phone,
		Commission: r.Commission,
	}
}
