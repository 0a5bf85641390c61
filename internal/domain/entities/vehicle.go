package entities

// Vehicle is weakly owned by a Client via ClientID.
//
// Storage model (DynamoDB):
//   - PK: tenant_id
//   - SK: id
//
// Mileage only rolls forward: finalizing an order with a higher odometer
// reading updates it, a lower reading never does.
type Vehicle struct {
	ID       string `json:"id"`
	ClientID string `json:"client_id"`
	Plate    string `json:"plate"`
	Model    string `json:"model"`
	Brand    string `json:"brand,omitempty"`
	Year     int    `json:"year,omitempty"`
	Mileage  int64  `json:"mileage"`
}
