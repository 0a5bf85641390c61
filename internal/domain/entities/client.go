package entities

import "time"

// Client is a customer of the workshop.
//
// Storage model (DynamoDB):
//   - PK: tenant_id
//   - SK: id
//
// Deleting a client cascades to its vehicles and service orders in the same
// logical operation; the store never holds orphaned references.
type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email,omitempty"`
	Document  string    `json:"document,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
