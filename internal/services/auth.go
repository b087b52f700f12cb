package services

import (
	"context"
	"strings"

	"enquirycrm/internal/domain"
	"enquirycrm/internal/logger"
	"enquirycrm/internal/metrics"
	"enquirycrm/internal/util"
	apperrors "enquirycrm/pkg/errors"
)

// TokenIssuer signs bearer tokens for authenticated users.
type TokenIssuer interface {
	GenerateToken(user *domain.User) (string, error)
}

// LoginResult is returned on a successful login.
type LoginResult struct {
	AccessToken string       `json:"accessToken"`
	TokenType   string       `json:"tokenType"`
	User        *domain.User `json:"user"`
}

// NewUser is the input for creating a user.
type NewUser struct {
	Username string          `json:"username" validate:"required,max=50"`
	Password string          `json:"password" validate:"required,min=8"`
	Name     string          `json:"name" validate:"max=100"`
	Email    *string         `json:"email" validate:"omitnil,max=150"`
	Phone    *string         `json:"phone" validate:"omitnil,max=20"`
	Role     domain.UserRole `json:"role" validate:"omitempty,enum"`
}

// AuthService checks credentials and issues tokens.
type AuthService struct {
	users  UserRepository
	tokens TokenIssuer
	settings
}

// NewAuthService creates a new auth service
func NewAuthService(users UserRepository, tokens TokenIssuer, opts ...Option) *AuthService {
	return &AuthService{users: users, tokens: tokens, settings: newSettings(opts)}
}

var errBadCredentials = apperrors.New(apperrors.ErrCodeUnauthorized, "incorrect username or password")

// Login verifies the password and returns a signed token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	log := logger.For("AUTH").WithField("username", username)
	log.Info("Login attempt")

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		metrics.RecordAuthAttempt(false)
		if apperrors.IsNotFound(err) {
			log.Warn("Login failed: user not found")
			return nil, errBadCredentials
		}
		log.WithError(err).Error("Login failed: database error")
		return nil, err
	}
	if !util.CheckPasswordHash(password, user.HashedPassword) {
		log.Warn("Login failed: invalid password")
		metrics.RecordAuthAttempt(false)
		return nil, errBadCredentials
	}
	if !user.IsActive {
		log.Warn("Login failed: user is inactive")
		metrics.RecordAuthAttempt(false)
		return nil, apperrors.New(apperrors.ErrCodeUnauthorized, "user account is inactive")
	}

	now := s.stamp()
	user.LastLogin = &now
	if err := s.users.Save(ctx, user); err != nil {
		log.WithError(err).Warn("Failed to record last login")
	}

	token, err := s.tokens.GenerateToken(user)
	if err != nil {
		log.WithError(err).Error("Login failed: token generation error")
		return nil, apperrors.Wrap(apperrors.ErrCodeInternalError, "failed to generate token", err)
	}

	log.WithFields(map[string]any{"id": user.ID, "role": user.Role}).Info("Login successful")
	metrics.RecordAuthAttempt(true)
	return &LoginResult{AccessToken: token, TokenType: "bearer", User: user}, nil
}

// Me returns the active user named in a validated token.
func (s *AuthService) Me(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.New(apperrors.ErrCodeUnauthorized, "user not found")
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.New(apperrors.ErrCodeUnauthorized, "user account is inactive")
	}
	return user, nil
}

// CreateUser hashes the password and stores an active user. Duplicate
// usernames or emails fail with a conflict.
func (s *AuthService) CreateUser(ctx context.Context, in NewUser) (*domain.User, error) {
	log := logger.For("AUTH")
	in.Username = trimmedValue(in.Username)
	in.Name = trimmedValue(in.Name)
	in.Email = blankToNil(trimmed(in.Email))
	in.Phone = blankToNil(trimmed(in.Phone))

	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if err := validateEmail("email", in.Email); err != nil {
		return nil, err
	}
	hashed, err := util.HashPassword(in.Password)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternalError, "failed to hash password", err)
	}
	role := in.Role
	if role == "" {
		role = domain.RoleSales
	}
	u := &domain.User{
		Username:       in.Username,
		Name:           in.Name,
		Email:          in.Email,
		Phone:          in.Phone,
		HashedPassword: hashed,
		Role:           role,
		IsActive:       true,
	}
	if err := s.users.Create(ctx, u); err != nil {
		log.WithError(err).WithField("username", u.Username).Warn("CreateUser failed")
		return nil, err
	}
	log.WithFields(map[string]any{"id": u.ID, "username": u.Username, "role": u.Role}).Info("CreateUser successful")
	return u, nil
}
