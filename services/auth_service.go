package services

import (
	"context"
	"errors"
	"strings"

	"github.com/futdraft/futdraft-backend/models"
	"github.com/futdraft/futdraft-backend/repositories"
	"github.com/futdraft/futdraft-backend/utils"
)

const minPasswordLength = 8

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*models.User, error)
	Login(ctx context.Context, input LoginInput) (*models.User, error)
}

type authService struct {
	userRepo   repositories.UserRepository
	playerRepo repositories.PlayerRepository
}

func NewAuthService(userRepo repositories.UserRepository, playerRepo repositories.PlayerRepository) AuthService {
	return &authService{
		userRepo:   userRepo,
		playerRepo: playerRepo,
	}
}

// Register создаёт пользователя и сразу привязанного к нему игрока, чтобы
// новый пользователь мог записываться на матчи без отдельного шага.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if name == "" || email == "" {
		return nil, ErrValidationFailed
	}
	if len(input.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashedPassword,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUserEmailConflict) {
			return nil, ErrAuthEmailTaken
		}
		return nil, storeError(err)
	}

	player := &models.Player{
		Name:   name,
		UserID: &user.ID,
	}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		return nil, storeError(err)
	}

	return user, nil
}

func (s *authService) Login(ctx context.Context, input LoginInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || input.Password == "" {
		return nil, ErrAuthInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrAuthInvalidCredentials
		}
		return nil, storeError(err)
	}

	if !utils.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, ErrAuthInvalidCredentials
	}
	return user, nil
}
