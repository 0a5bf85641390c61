package response

import (
	"time"

	"oficina_pro/internal/usecase"
)

type LoginResponse struct {
	Token    string    `json:"token"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
	LastSync time.Time `json:"last_sync"`
}

func FromSession(token string, s usecase.Session) LoginResponse {
	return LoginResponse{
		Token:    token,
		Username: s.Username,
		Role:     string(s.Role),
		LastSync: s.LastSync,
	}
}
