package entities

// Employee is workshop staff reference data.
//
// Storage model (DynamoDB):
//   - PK: tenant_id
//   - SK: id
type Employee struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	RoleTitle  string  `json:"role_title"`
	Phone      string  `json:"phone,omitempty"`
	Commission float64 `json:"commission,omitempty"`
}
