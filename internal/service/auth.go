package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/kvitkoaleksandr/TaskPro/internal/models"
)

// UserRepository defines the user persistence operations required by the
// services.
type UserRepository interface {
	// Create persists a new user. A duplicate email yields
	// models.ErrEmailTaken.
	Create(ctx context.Context, user *models.User) error
	// GetByID fetches a user by id, or models.ErrUserNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	// GetByEmail fetches a user by email, or models.ErrUserNotFound.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// ExistsByID reports whether a user with the given id exists.
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
}

// TokenIssuer signs bearer tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID uuid.UUID, email string) (string, error)
}

// AuthService implements registration and login.
type AuthService struct {
	users  UserRepository
	tokens TokenIssuer
	log    *zap.Logger
}

// NewAuthService constructs an AuthService from its collaborators.
func NewAuthService(users UserRepository, tokens TokenIssuer, log *zap.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, log: log}
}

// Register creates a new user with a bcrypt-hashed password and returns
// a signed token for it. The role token is validated against the role
// enumeration; a duplicate email yields models.ErrEmailTaken.
func (s *AuthService) Register(ctx context.Context, email, password, roleToken string) (string, error) {
	role, err := models.ParseRole(roleToken)
	if err != nil {
		s.log.Warn("registration with invalid role", zap.String("role", roleToken))
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, models.ErrEmailTaken) {
			s.log.Warn("registration with taken email", zap.String("email", email))
		}
		return "", err
	}

	return s.tokens.Issue(user.ID, user.Email)
}

// Login verifies the email/password pair and returns a signed token.
// Unknown email and wrong password both yield
// models.ErrInvalidCredentials, so the caller cannot tell them apart.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, models.ErrUserNotFound) {
		s.log.Warn("login with unknown email", zap.String("email", email))
		return "", models.ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		s.log.Warn("login with wrong password", zap.String("email", email))
		return "", models.ErrInvalidCredentials
	}

	return s.tokens.Issue(user.ID, user.Email)
}
