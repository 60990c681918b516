// Package auth contains the business logic for registration, login and
// token validation.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/garilangu/gari-langu/internal/lib/jwt"
	"github.com/garilangu/gari-langu/internal/lib/password"
	"github.com/garilangu/gari-langu/internal/models"
)

// ErrInvalidCredentials is returned when the username or password is wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository describes the user persistence the service depends on.
type UserRepository interface {
	RegisterUser(ctx context.Context, user models.User) (string, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// AuthService handles registration, login and JWT validation.
type AuthService struct {
	users     UserRepository
	jwtMaker  jwt.Maker
	trialDays int
}

// NewAuthService creates a new AuthService. trialDays is the free-trial
// window granted at registration.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker, trialDays int) *AuthService {
	return &AuthService{
		users:     users,
		jwtMaker:  jwtMaker,
		trialDays: trialDays,
	}
}

// Register creates a new user with a hashed password, the default "user"
// role and a trial window starting now.
func (s *AuthService) Register(ctx context.Context, req models.DummyRegisterUser) (string, error) {
	hashed, err := password.GetHash(req.Password)
	if err != nil {
		return "", err
	}
	language := req.Language
	if language == "" {
		language = "sw"
	}
	trialEndDate := time.Now().UTC().AddDate(0, 0, s.trialDays)
	user := models.User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: hashed,
		Phone:        req.Phone,
		Role:         models.RoleUser,
		Language:     language,
		TrialEndDate: &trialEndDate,
	}
	return s.users.RegisterUser(ctx, user)
}

// Login verifies the password and generates a JWT for the user.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (token, role string, err error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return "", "", ErrInvalidCredentials
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", "", ErrInvalidCredentials
	}
	token, err = s.jwtMaker.GenerateToken(user.Username, user.Role, user.UID)
	if err != nil {
		return "", "", err
	}
	return token, user.Role, nil
}

// ValidateToken parses a JWT and returns the identity it carries.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*jwt.CustomClaims, error) {
	return s.jwtMaker.ParseToken(token)
}
