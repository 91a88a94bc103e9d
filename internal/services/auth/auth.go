// Package auth contains the business logic for registration, login and
// the access/refresh token lifecycle. Tokens are stateless: no issued
// token is recorded anywhere, verification is a pure signature and
// expiry check.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/lib/jwt"
	"github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/lib/password"
	"github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/models"
	"github.com/PRAKAVI-K/Subscription-Management-Dashboard/internal/storage/repository"
)

var (
	// ErrInvalidCredentials is returned for both an unknown email and a
	// wrong password, so a caller cannot probe which emails exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken is returned for a malformed, expired or
	// wrongly-signed token.
	ErrInvalidToken = errors.New("invalid token")
	// ErrUserNotFound is returned when a structurally valid refresh
	// token references a user that no longer exists.
	ErrUserNotFound = errors.New("user not found")
)

// UserRepository is the slice of storage the auth service needs.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (string, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// Service implements registration, login and token refresh.
type Service struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// New creates an auth Service.
func New(users UserRepository, jwtMaker jwt.Maker) *Service {
	return &Service{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// LoginResult is what a successful login hands back to the boundary.
type LoginResult struct {
	User         models.UserSummary
	AccessToken  string
	RefreshToken string
}

// Register hashes the password and stores a new user with the default
// "user" role. Duplicate emails surface as repository.ErrDuplicateEmail.
func (s *Service) Register(ctx context.Context, name, email, rawPassword string) (string, error) {
	const op = "auth.Register"

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		Role:         models.RoleUser,
	}
	id, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// Login verifies the credentials and issues a fresh access/refresh
// token pair. Unknown email and wrong password are indistinguishable.
func (s *Service) Login(ctx context.Context, email, rawPassword string) (*LoginResult, error) {
	const op = "auth.Login"

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	accessToken, err := s.jwtMaker.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	refreshToken, err := s.jwtMaker.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &LoginResult{
		User:         user.Summary(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh exchanges a valid refresh token for a new access token. The
// user is re-read from storage so a deleted account cannot keep
// refreshing, and the new token carries the current email and role.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	const op = "auth.Refresh"

	claims, err := s.jwtMaker.ParseRefreshToken(refreshToken)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	user, err := s.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	accessToken, err := s.jwtMaker.GenerateAccessToken(user)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return accessToken, nil
}

// ValidateAccessToken checks an access token and returns its claims.
func (s *Service) ValidateAccessToken(_ context.Context, token string) (*jwt.AccessClaims, error) {
	const op = "auth.ValidateAccessToken"

	claims, err := s.jwtMaker.ParseAccessToken(token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}
	return claims, nil
}

// EnsureAdminUser creates the administrator account when it is absent.
// Called once at startup with the seed credentials from config.
func (s *Service) EnsureAdminUser(ctx context.Context, name, email, rawPassword string) error {
	const op = "auth.EnsureAdminUser"

	_, err := s.users.GetUserByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, err)
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	admin := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		Role:         models.RoleAdmin,
	}
	if _, err := s.users.CreateUser(ctx, admin); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
