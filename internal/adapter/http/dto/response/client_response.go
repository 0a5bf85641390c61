package response

import (
	"time"

	"oficina_pro/internal/domain/entities"
)

type ClientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email,omitempty"`
	Document  string    `json:"document,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type VehicleResponse struct {
	ID       string `json:"id"`
	ClientID string `json:"client_id"`
	Plate    string `json:"plate"`
	Model    string `json:"model"`
	Brand    string `json:"brand,omitempty"`
	Year     int    `json:"year,omitempty"`
	Mileage  int64  `json:"mileage"`
}

func FromClient(c entities.Client) ClientResponse {
	return ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Email:     c.Email,
		Document:  c.Document,
		CreatedAt: c.CreatedAt,
	}
}

func FromClients(clients []entities.Client) []ClientResponse {
	out := make([]ClientResponse, 0, len(clients))
	for _, c := range clients {
		out = append(out, FromClient(c))
	}
	return out
}

func FromVehicle(v entities.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:       v.ID,
		ClientID: v.ClientID,
		Plate:    v.Plate,
		Model:    v.Model,
		Brand:    v.Brand,
		Year:     v.Year,
		Mileage:  v.Mileage,
	}
}

func FromVehicles(vehicles []entities.Vehicle) []VehicleResponse {
	out := make([]VehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		out = append(out, FromVehicle(v))
	}
	return out
}
