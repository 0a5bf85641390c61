package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"oficina_pro/internal/domain/entities"
	mock_interfaces "oficina_pro/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthUseCase_Login(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	hash, err := bcrypt.GenerateFromPassword([]byte("segredo123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed hashing fixture password: %v", err)
	}
	user := entities.User{ID: "u-1", Username: "oficina", PasswordHash: string(hash), Role: entities.RoleDono}

	t.Run("empty credentials", func(t *testing.T) {
		uc := NewAuthUseCase(nil)
		_, _, err := uc.Login(context.Background(), "  ", "")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		users := mock_interfaces.NewMockIUserRepository(ctrl)
		uc := NewAuthUseCase(users)
		users.EXPECT().GetByUsername(gomock.Any(), "ghost").Return(entities.User{}, nil)

		_, _, err := uc.Login(context.Background(), "ghost", "x")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		users := mock_interfaces.NewMockIUserRepository(ctrl)
		uc := NewAuthUseCase(users)
		users.EXPECT().GetByUsername(gomock.Any(), "oficina").Return(user, nil)

		_, _, err := uc.Login(context.Background(), "oficina", "errada")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("success issues verifiable token and stamps last sync", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		users := mock_interfaces.NewMockIUserRepository(ctrl)
		uc := NewAuthUseCase(users)

		synced := user
		synced.LastSync = time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
		users.EXPECT().GetByUsername(gomock.Any(), "oficina").Return(user, nil)
		users.EXPECT().UpdateLastSync(gomock.Any(), "oficina").Return(synced, nil)

		token, session, err := uc.Login(context.Background(), "oficina", "segredo123")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if token == "" || session.Username != "oficina" || session.Role != entities.RoleDono {
			t.Fatalf("unexpected session: %+v", session)
		}
		if session.LastSync.IsZero() {
			t.Fatalf("expected last sync stamp")
		}

		parsed, err := uc.Verify(token)
		if err != nil {
			t.Fatalf("token must verify: %v", err)
		}
		if parsed.Username != "oficina" || parsed.Role != entities.RoleDono {
			t.Fatalf("unexpected claims: %+v", parsed)
		}
	})
}

func TestAuthUseCase_Verify(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	uc := NewAuthUseCase(nil)

	t.Run("garbage token", func(t *testing.T) {
		if _, err := uc.Verify("not-a-token"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	})
}
