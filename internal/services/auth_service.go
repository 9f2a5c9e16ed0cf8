package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"vehicle-rental/internal/models"
	"vehicle-rental/internal/repositories/interfaces"
	"vehicle-rental/internal/utils"
	"vehicle-rental/pkg/logger"
)

type AuthService interface {
	Register(ctx context.Context, request *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, username, password string) (*AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error)
	ValidateToken(ctx context.Context, token string) (*Principal, error)

	GetUser(ctx context.Context, userID uint64) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uint64, city string) (*models.User, error)
	ChangePassword(ctx context.Context, userID uint64, currentPassword, newPassword string) error
}

type RegisterRequest struct {
	Username string
	Password string
	Role     models.UserRole
	City     string
}

type AuthResponse struct {
	User *models.User `json:"user"`
	*utils.TokenPair
}

type AuthOptions struct {
	Tokens            utils.TokenSettings
	BcryptCost        int
	PasswordMinLength int
}

type authService struct {
	userRepo interfaces.UserRepository
	opts     AuthOptions
	logger   *logger.Logger
}

func NewAuthService(userRepo interfaces.UserRepository, opts AuthOptions, logger *logger.Logger) AuthService {
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	if opts.PasswordMinLength == 0 {
		opts.PasswordMinLength = utils.PasswordMinLength
	}
	return &authService{
		userRepo: userRepo,
		opts:     opts,
		logger:   logger,
	}
}

func (s *authService) Register(ctx context.Context, request *RegisterRequest) (*AuthResponse, error) {
	username := strings.TrimSpace(request.Username)
	if username == "" {
		return nil, ErrInvalidCredentials
	}
	if !request.Role.IsValid() {
		return nil, ErrInvalidRole
	}
	if len(request.Password) < s.opts.PasswordMinLength {
		return nil, ErrWeakPassword
	}

	hashedPassword, err := s.hashPassword(request.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: username,
		Password: hashedPassword,
		Role:     request.Role,
		City:     strings.TrimSpace(request.City),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, interfaces.ErrDuplicate) {
			return nil, ErrUsernameTaken
		}
		s.logger.WithError(err).Error("Failed to create user")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.LogUserAction(user.ID, utils.EventUserRegistered, map[string]interface{}{
		"role": user.Role,
	})

	return s.issue(user)
}

func (s *authService) Login(ctx context.Context, username, password string) (*AuthResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			s.logger.LogSecurityEvent("login_failed", "low", map[string]interface{}{"username": username})
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !s.checkPassword(password, user.Password) {
		s.logger.LogSecurityEvent("login_failed", "low", map[string]interface{}{"user_id": user.ID})
		return nil, ErrInvalidCredentials
	}

	s.logger.LogUserAction(user.ID, utils.EventUserLogin, nil)

	return s.issue(user)
}

func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := utils.ValidateRefreshToken(refreshToken, s.opts.Tokens.Secret)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return s.issue(user)
}

func (s *authService) ValidateToken(ctx context.Context, token string) (*Principal, error) {
	claims, err := utils.ValidateToken(token, s.opts.Tokens.Secret)
	if err != nil || claims.TokenType != utils.TokenTypeAccess {
		return nil, ErrInvalidToken
	}
	return &Principal{UserID: claims.UserID, Role: models.UserRole(claims.Role)}, nil
}

func (s *authService) GetUser(ctx context.Context, userID uint64) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *authService) UpdateProfile(ctx context.Context, userID uint64, city string) (*models.User, error) {
	city = strings.TrimSpace(city)
	user, err := s.userRepo.Update(ctx, userID, &interfaces.UserUpdate{City: &city})
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (s *authService) ChangePassword(ctx context.Context, userID uint64, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	if !s.checkPassword(currentPassword, user.Password) {
		return ErrInvalidCredentials
	}
	if len(newPassword) < s.opts.PasswordMinLength {
		return ErrWeakPassword
	}

	hashed, err := s.hashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if _, err := s.userRepo.Update(ctx, userID, &interfaces.UserUpdate{Password: &hashed}); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.logger.LogUserAction(userID, "user.password_changed", nil)
	return nil
}

func (s *authService) issue(user *models.User) (*AuthResponse, error) {
	pair, err := utils.GenerateTokenPair(user.ID, string(user.Role), user.Username, s.opts.Tokens)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}
	return &AuthResponse{User: user, TokenPair: pair}, nil
}

func (s *authService) hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), s.opts.BcryptCost)
	return string(bytes), err
}

func (s *authService) checkPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
