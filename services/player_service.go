package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/futdraft/futdraft-backend/models"
	"github.com/futdraft/futdraft-backend/repositories"
	"github.com/futdraft/futdraft-backend/storage"
)

var ErrAvatarStorageDisabled = errors.New("avatar storage is not configured")

// Поддерживаемые типы изображений аватара.
var avatarExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type CreatePlayerInput struct {
	Name        string `json:"name"`
	SkillRating *int   `json:"skill_rating,omitempty"`
}

type PlayerService interface {
	// CreatePlayer заводит игрока-гостя (без привязки к пользователю).
	CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error)
	GetPlayer(ctx context.Context, id int) (*models.Player, error)
	ListPlayers(ctx context.Context) ([]*models.Player, error)
	DeletePlayer(ctx context.Context, id int) error
	UploadAvatar(ctx context.Context, playerID int, contentType string, file io.Reader) (*models.Player, error)
}

type playerService struct {
	playerRepo repositories.PlayerRepository
	uploader   storage.FileUploader
}

// NewPlayerService создаёт сервис игроков. uploader может быть nil —
// тогда загрузка аватаров отключена.
func NewPlayerService(playerRepo repositories.PlayerRepository, uploader storage.FileUploader) PlayerService {
	return &playerService{
		playerRepo: playerRepo,
		uploader:   uploader,
	}
}

func (s *playerService) CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrPlayerNameRequired
	}
	if input.SkillRating != nil && (*input.SkillRating < 0 || *input.SkillRating > 100) {
		return nil, ErrInvalidSkillRating
	}

	player := &models.Player{
		Name:        name,
		SkillRating: input.SkillRating,
	}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		return nil, storeError(err)
	}
	return player, nil
}

func (s *playerService) GetPlayer(ctx context.Context, id int) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, storeError(err)
	}
	s.fillAvatarURL(player)
	return player, nil
}

func (s *playerService) ListPlayers(ctx context.Context) ([]*models.Player, error) {
	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	for _, p := range players {
		s.fillAvatarURL(p)
	}
	return players, nil
}

func (s *playerService) DeletePlayer(ctx context.Context, id int) error {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return storeError(err)
	}

	if err := s.playerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return storeError(err)
	}

	// Аватар в объектном хранилище чистим после удаления записи; сбой здесь
	// не откатывает удаление игрока.
	if s.uploader != nil && player.AvatarKey != nil {
		_ = s.uploader.Delete(ctx, *player.AvatarKey)
	}
	return nil
}

func (s *playerService) UploadAvatar(ctx context.Context, playerID int, contentType string, file io.Reader) (*models.Player, error) {
	if s.uploader == nil {
		return nil, ErrAvatarStorageDisabled
	}

	ext, ok := avatarExtensions[contentType]
	if !ok {
		return nil, ErrValidationFailed
	}

	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, storeError(err)
	}

	key := fmt.Sprintf("players/%d/avatar%s", playerID, ext)
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload avatar for player %d: %w", playerID, err)
	}

	oldKey := player.AvatarKey
	if err := s.playerRepo.UpdateAvatarKey(ctx, playerID, &result.Key); err != nil {
		return nil, storeError(err)
	}
	if oldKey != nil && *oldKey != result.Key {
		_ = s.uploader.Delete(ctx, *oldKey)
	}

	player.AvatarKey = &result.Key
	s.fillAvatarURL(player)
	return player, nil
}

func (s *playerService) fillAvatarURL(p *models.Player) {
	if s.uploader == nil || p.AvatarKey == nil {
		return
	}
	url := s.uploader.GetPublicURL(*p.AvatarKey)
	if url != "" {
		p.AvatarURL = &url
	}
}
