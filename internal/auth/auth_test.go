package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/info-mnml/Otokogi/internal/models"
)

type fakeUserStorage struct {
	users map[string]*models.User
}

func newFakeUserStorage() *fakeUserStorage {
	return &fakeUserStorage{users: make(map[string]*models.User)}
}

func (f *fakeUserStorage) CreateUser(_ context.Context, user *models.User) error {
	f.users[user.Email] = user
	return nil
}

func (f *fakeUserStorage) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	return f.users[email], nil
}

func (f *fakeUserStorage) GetUserByID(_ context.Context, id string) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func TestPasswordAuthenticator(t *testing.T) {
	authenticator := NewPasswordAuthenticator(newFakeUserStorage())
	ctx := context.Background()

	t.Run("register and authenticate", func(t *testing.T) {
		user, err := authenticator.Register(ctx, "aoki@example.com", "Aoki", "correct-horse")
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if user.PasswordHash == "correct-horse" {
			t.Error("password stored in plain text")
		}

		got, err := authenticator.Authenticate(ctx, "aoki@example.com", "correct-horse")
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}
		if got.ID != user.ID {
			t.Errorf("authenticated wrong user: %s", got.ID)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := authenticator.Authenticate(ctx, "aoki@example.com", "wrong")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := authenticator.Authenticate(ctx, "nobody@example.com", "whatever")
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("weak password", func(t *testing.T) {
		_, err := authenticator.Register(ctx, "baba@example.com", "Baba", "short")
		if !errors.Is(err, ErrWeakPassword) {
			t.Errorf("expected ErrWeakPassword, got %v", err)
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := authenticator.Register(ctx, "aoki@example.com", "Aoki2", "another-pass")
		if !errors.Is(err, ErrEmailExists) {
			t.Errorf("expected ErrEmailExists, got %v", err)
		}
	})
}

func TestJWTManager(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour)
	user := models.NewUser("aoki@example.com", "Aoki", "hash")

	token, err := manager.Generate(user)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := manager.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != user.Email {
		t.Errorf("claims = %+v", claims)
	}

	t.Run("tampered token", func(t *testing.T) {
		if _, err := manager.Validate(token + "x"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTManager("other-secret", time.Hour)
		if _, err := other.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("expired token", func(t *testing.T) {
		expired := NewJWTManager("test-secret", -time.Minute)
		token, err := expired.Generate(user)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if _, err := manager.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})
}
