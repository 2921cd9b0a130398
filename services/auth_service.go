package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/suzanemu/pubg-point-bot/models"
	"github.com/suzanemu/pubg-point-bot/repositories"
	"github.com/suzanemu/pubg-point-bot/utils"
)

const (
	minPasswordLength = 8
	tokenTTL          = 24 * time.Hour
)

type AuthService interface {
	// SignIn аутентифицирует админа по email и паролю.
	SignIn(ctx context.Context, input SignInInput) (*models.User, string, error)
	// JoinTeam регистрирует игрока по коду доступа его команды.
	JoinTeam(ctx context.Context, input JoinTeamInput) (*models.User, string, error)
	// RegisterAdmin создаёт учётку админа (bootstrap, вызывается другим админом).
	RegisterAdmin(ctx context.Context, input RegisterAdminInput) (*models.User, error)
}

type SignInInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type JoinTeamInput struct {
	Email      string `json:"email"`
	AccessCode string `json:"access_code"`
}

type RegisterAdminInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authService struct {
	userRepo       repositories.UserRepository
	accessCodeRepo repositories.AccessCodeRepository
	jwtSecret      []byte
}

func NewAuthService(
	userRepo repositories.UserRepository,
	accessCodeRepo repositories.AccessCodeRepository,
	jwtSecret string,
) AuthService {
	return &authService{
		userRepo:       userRepo,
		accessCodeRepo: accessCodeRepo,
		jwtSecret:      []byte(jwtSecret),
	}
}

func (s *authService) SignIn(ctx context.Context, input SignInInput) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	if !utils.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *authService) JoinTeam(ctx context.Context, input JoinTeamInput) (*models.User, string, error) {
	code := strings.ToUpper(strings.TrimSpace(input.AccessCode))
	accessCode, err := s.accessCodeRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repositories.ErrAccessCodeNotFound) {
			return nil, "", ErrInvalidAccessCode
		}
		return nil, "", fmt.Errorf("failed to look up access code: %w", err)
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	user, err := s.userRepo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		// Известный игрок: переподключаем к команде из кода.
		if err := s.userRepo.AssignTeam(ctx, user.ID, accessCode.TeamID); err != nil {
			return nil, "", fmt.Errorf("failed to assign team: %w", err)
		}
		user.TeamID = &accessCode.TeamID
	case errors.Is(err, repositories.ErrUserNotFound):
		user = &models.User{
			Email:  email,
			Role:   models.RolePlayer,
			TeamID: &accessCode.TeamID,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, "", fmt.Errorf("failed to create player: %w", err)
		}
	default:
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *authService) RegisterAdmin(ctx context.Context, input RegisterAdminInput) (*models.User, error) {
	if len(input.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrUserEmailConflict) {
			return nil, ErrUserEmailConflict
		}
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}
	return user, nil
}

func (s *authService) issueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    string(user.Role),
		"iat":     now.Unix(),
		"exp":     now.Add(tokenTTL).Unix(),
	}
	if user.TeamID != nil {
		claims["team_id"] = *user.TeamID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
