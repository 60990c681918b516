package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/garilangu/gari-langu/internal/lib/jwt"
	"github.com/garilangu/gari-langu/internal/lib/password"
	"github.com/garilangu/gari-langu/internal/models"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) RegisterUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *MockUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func TestService_Register(t *testing.T) {
	repo := new(MockUserRepository)
	maker := jwt.NewJWTMaker("test-secret", time.Hour)
	svc := NewAuthService(repo, maker, 14)

	req := models.DummyRegisterUser{
		Username: "juma",
		Email:    "juma@example.com",
		Password: "password123",
		Phone:    "+255700000001",
	}

	repo.On("RegisterUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		return u.Username == "juma" &&
			u.Role == models.RoleUser &&
			u.Language == "sw" &&
			u.PasswordHash != "password123" &&
			u.TrialEndDate != nil &&
			u.TrialEndDate.After(time.Now().UTC().AddDate(0, 0, 13))
	})).Return("uid-123", nil).Once()

	uid, err := svc.Register(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "uid-123", uid)
	repo.AssertExpectations(t)
}

func TestService_Register_KeepsChosenLanguage(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewAuthService(repo, jwt.NewJWTMaker("test-secret", time.Hour), 14)

	req := models.DummyRegisterUser{
		Username: "asha",
		Email:    "asha@example.com",
		Password: "password123",
		Language: "en",
	}

	repo.On("RegisterUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		return u.Language == "en"
	})).Return("uid-124", nil).Once()

	_, err := svc.Register(context.Background(), req)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestService_Login(t *testing.T) {
	repo := new(MockUserRepository)
	maker := jwt.NewJWTMaker("test-secret", time.Hour)
	svc := NewAuthService(repo, maker, 14)

	hash, err := password.GetHash("password123")
	require.NoError(t, err)

	user := &models.User{
		UID:          "uid-123",
		Username:     "juma",
		PasswordHash: hash,
		Role:         models.RoleUser,
	}

	t.Run("valid credentials", func(t *testing.T) {
		repo.ExpectedCalls = nil
		repo.On("GetUserByUsername", mock.Anything, "juma").Return(user, nil).Once()

		token, role, err := svc.Login(context.Background(), "juma", "password123")

		require.NoError(t, err)
		assert.Equal(t, models.RoleUser, role)

		claims, err := maker.ParseToken(token)
		require.NoError(t, err)
		assert.Equal(t, "juma", claims.Username)
		assert.Equal(t, "uid-123", claims.UserUID)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo.ExpectedCalls = nil
		repo.On("GetUserByUsername", mock.Anything, "juma").Return(user, nil).Once()

		_, _, err := svc.Login(context.Background(), "juma", "wrongpass")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		repo.ExpectedCalls = nil
		repo.On("GetUserByUsername", mock.Anything, "ghost").
			Return(nil, errors.New("not found")).Once()

		_, _, err := svc.Login(context.Background(), "ghost", "password123")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
