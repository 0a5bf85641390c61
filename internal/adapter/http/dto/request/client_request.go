package request

import "oficina_pro/internal/usecase"

type ClientRequest struct {
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Document string `json:"document"`
}

type VehicleRequest struct {
	Plate   string `json:"plate" binding:"required"`
	Model   string `json:"model" binding:"required"`
	Brand   string `json:"brand"`
	Year    int    `json:"year"`
	Mileage int64  `json:"mileage"`
}

func (r ClientRequest) ToInput() usecase.ClientInput {
	return usecase.ClientInput{
		Name:     r.Name,
		Phone:    r.Phone,
		Email:    r.Email,
		Document: r.Document,
	}
}

func (r VehicleRequest) ToInput() usecase.VehicleInput {
	return usecase.VehicleInput{
		Plate:   r.Plate,
		Model:   r.Model,
		Brand:   r.Brand,
		Year:    r.Year,
		Mileage: r.Mileage,
	}
}
