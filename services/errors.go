package services

import "errors"

// Общие ошибки сервисного слоя, маппятся на HTTP-статусы в handlers.
var (
	// Ресурсы
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrUserNotFound       = errors.New("user not found")

	// Валидация и бизнес-правила
	ErrTournamentNameRequired    = errors.New("tournament name is required")
	ErrTournamentInvalidMatchCap = errors.New("tournament total matches must be positive")
	ErrTeamNameRequired          = errors.New("team name is required")
	ErrBatchTooLarge             = errors.New("too many screenshots in one batch")
	ErrBatchExceedsRemaining     = errors.New("batch exceeds remaining matches for this tournament")
	ErrNotAnImage                = errors.New("uploaded file is not an image")
	ErrPlayerWithoutTeam         = errors.New("player is not assigned to a team")

	// Конфликты
	ErrTeamNameConflict       = errors.New("team name is already in use")
	ErrTournamentNameConflict = errors.New("tournament name already exists")
	ErrUserEmailConflict      = errors.New("email address is already in use")

	// Аутентификация
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidAccessCode  = errors.New("invalid access code")
	ErrPasswordTooShort   = errors.New("password is too short")

	// Внешний сервис распознавания: отдаётся пользователю отдельно от
	// обычного сбоя извлечения, чтобы он мог повторить пакет позже.
	ErrAnalyzerUnavailable = errors.New("screenshot analysis service unavailable")
)
