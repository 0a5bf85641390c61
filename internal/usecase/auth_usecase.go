package usecase

import (
	"context"
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"oficina_pro/internal/domain/entities"
	"oficina_pro/internal/usecase/interfaces"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrJWTSecretMissing   = errors.New("JWT_SECRET not set")
)

// Session is the authenticated principal carried by a token. The username is
// the tenant: every collection the session touches lives under its partition.
type Session struct {
	Username string        `json:"username"`
	Role     entities.Role `json:"role"`
	LastSync time.Time     `json:"last_sync"`
}

// IAuthUseCase issues and verifies session tokens.

type IAuthUseCase interface {
	Login(ctx context.Context, username, password string) (token string, session Session, err error)
	Verify(tokenString string) (Session, error)
}

type AuthUseCase struct {
	userRepo interfaces.IUserRepository
	now      func() time.Time
}

var _ IAuthUseCase = (*AuthUseCase)(nil)

func NewAuthUseCase(userRepo interfaces.IUserRepository) *AuthUseCase {
	return &AuthUseCase{
		userRepo: userRepo,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Login checks the bcrypt hash and issues an HS256 token carrying the tenant
// and role claims. LastSync is stamped so the dashboard can show when this
// account last opened a session.
func (u *AuthUseCase) Login(ctx context.Context, username, password string) (string, Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", Session{}, ErrInvalidCredentials
	}

	user, err := u.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return "", Session{}, err
	}
	if user.ID == "" {
		return "", Session{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		log.Printf("[auth][usecase] password mismatch username=%s", username)
		return "", Session{}, ErrInvalidCredentials
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", Session{}, ErrJWTSecretMissing
	}

	expiryHours := 24
	if env := os.Getenv("JWT_EXPIRY_HOURS"); env != "" {
		if h, err := strconv.Atoi(env); err == nil {
			expiryHours = h
		}
	}

	now := u.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.Username,
		"role": string(user.Role),
		"exp":  now.Add(time.Duration(expiryHours) * time.Hour).Unix(),
		"iat":  now.Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", Session{}, err
	}

	synced, err := u.userRepo.UpdateLastSync(ctx, user.Username)
	if err != nil {
		return "", Session{}, err
	}

	log.Printf("[auth][usecase] login ok username=%s role=%s", user.Username, user.Role)
	return signed, Session{Username: synced.Username, Role: synced.Role, LastSync: synced.LastSync}, nil
}

// Verify parses and validates a token, returning the session it carries.
func (u *AuthUseCase) Verify(tokenString string) (Session, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return Session{}, ErrJWTSecretMissing
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return Session{}, ErrInvalidCredentials
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Session{}, ErrInvalidCredentials
	}
	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if sub == "" || role == "" {
		return Session{}, ErrInvalidCredentials
	}
	return Session{Username: sub, Role: entities.Role(role)}, nil
}
