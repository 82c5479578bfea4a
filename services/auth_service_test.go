package services

import (
	"context"
	"errors"
	"testing"
)

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a user with a linked player", func(t *testing.T) {
		users := newFakeUserRepo()
		players := newFakePlayerRepo()
		service := NewAuthService(users, players)

		user, err := service.Register(ctx, RegisterInput{
			Name:     "Иван",
			Email:    "  Ivan@Example.com ",
			Password: "correct horse",
		})
		if err != nil {
			t.Fatalf("register: %v", err)
		}
		if user.Email != "ivan@example.com" {
			t.Errorf("email = %q, want normalized lowercase", user.Email)
		}
		if user.PasswordHash == "correct horse" || user.PasswordHash == "" {
			t.Error("password was not hashed")
		}

		player, err := players.GetByUserID(ctx, user.ID)
		if err != nil {
			t.Fatalf("linked player: %v", err)
		}
		if player.Name != user.Name {
			t.Errorf("player name = %q, want %q", player.Name, user.Name)
		}
	})

	t.Run("rejects a taken email", func(t *testing.T) {
		users := newFakeUserRepo()
		players := newFakePlayerRepo()
		service := NewAuthService(users, players)

		input := RegisterInput{Name: "Иван", Email: "ivan@example.com", Password: "correct horse"}
		if _, err := service.Register(ctx, input); err != nil {
			t.Fatalf("first register: %v", err)
		}
		if _, err := service.Register(ctx, input); !errors.Is(err, ErrAuthEmailTaken) {
			t.Errorf("second register err = %v, want ErrAuthEmailTaken", err)
		}
	})

	tests := []struct {
		name    string
		input   RegisterInput
		wantErr error
	}{
		{"empty name", RegisterInput{Email: "a@b.c", Password: "correct horse"}, ErrValidationFailed},
		{"empty email", RegisterInput{Name: "Иван", Password: "correct horse"}, ErrValidationFailed},
		{"short password", RegisterInput{Name: "Иван", Email: "a@b.c", Password: "1234567"}, ErrPasswordTooShort},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewAuthService(newFakeUserRepo(), newFakePlayerRepo())
			if _, err := service.Register(ctx, tt.input); !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	users := newFakeUserRepo()
	service := NewAuthService(users, newFakePlayerRepo())
	if _, err := service.Register(ctx, RegisterInput{
		Name:     "Иван",
		Email:    "ivan@example.com",
		Password: "correct horse",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	t.Run("valid credentials", func(t *testing.T) {
		user, err := service.Login(ctx, LoginInput{Email: "Ivan@Example.com", Password: "correct horse"})
		if err != nil {
			t.Fatalf("login: %v", err)
		}
		if user.Email != "ivan@example.com" {
			t.Errorf("email = %q", user.Email)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := service.Login(ctx, LoginInput{Email: "ivan@example.com", Password: "wrong horse"})
		if !errors.Is(err, ErrAuthInvalidCredentials) {
			t.Errorf("err = %v, want ErrAuthInvalidCredentials", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := service.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "correct horse"})
		if !errors.Is(err, ErrAuthInvalidCredentials) {
			t.Errorf("err = %v, want ErrAuthInvalidCredentials", err)
		}
	})
}
