package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ресурс не найден (универсальная)
	ErrNotFound = errors.New("requested resource not found")

	// Ошибки валидации и бизнес-правил
	ErrValidationFailed    = errors.New("validation failed")
	ErrPasswordTooShort    = errors.New("password is too short")
	ErrPlayerNameRequired  = errors.New("player name is required")
	ErrInvalidSkillRating  = errors.New("skill rating must be between 0 and 100")
	ErrInvalidCapacity     = errors.New("match must have at least 2 slots and at least 2 teams not exceeding the slots")
	ErrInvalidDraftMode    = errors.New("draft mode must be random or balanced")
	ErrInsufficientPlayers = errors.New("confirmed roster is smaller than the requested team count")

	// Ошибки состояния записи на матч
	ErrMatchFull          = errors.New("match has no free slots")
	ErrAlreadyEnrolled    = errors.New("player is already enrolled for this match")
	ErrNotEnrolled        = errors.New("player is not enrolled for this match")
	ErrNotConfirmed       = errors.New("player has not confirmed presence for this match")
	ErrMustUnconfirmFirst = errors.New("confirmed presence must be undone before unenrolling")

	// Ошибки аутентификации и авторизации
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrAuthEmailTaken         = errors.New("email is already taken")
	ErrForbiddenOperation     = errors.New("operation not allowed for the current user")

	// Ошибки, специфичные для сущностей (дублируют ErrNotFound, но дают больше контекста)
	ErrUserNotFound   = errors.New("user not found")
	ErrMatchNotFound  = errors.New("match not found")
	ErrPlayerNotFound = errors.New("player not found")
	ErrTeamNotFound   = errors.New("team not found")

	// Недоступность хранилища. Не ретраится внутри сервисов: политика
	// повторов принадлежит вызывающей стороне.
	ErrStoreUnavailable = errors.New("durable store unavailable")
)
