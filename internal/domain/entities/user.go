package entities

import "time"

// Role gates which operations a session may perform. Only the owner (dono)
// may delete clients, manage employees or view fleet-wide financials.

type Role string

const (
	RoleDono        Role = "dono"
	RoleFuncionario Role = "funcionario"
	RoleRecepcao    Role = "recepcao"
)

// User is a login account. Username doubles as the tenant identifier: each
// user's collections live under their own partition.
//
// Storage model (DynamoDB):
//   - PK: username
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	LastSync     time.Time `json:"last_sync"`
}
