package middlewarectx_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/garilangu/gari-langu/internal/http/middlewarectx"
	"github.com/garilangu/gari-langu/internal/models"
)

type UserProviderMock struct {
	mock.Mock
}

func (m *UserProviderMock) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

type SnapshotCacheMock struct {
	mock.Mock
}

func (m *SnapshotCacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}

func (m *SnapshotCacheMock) Set(key string, value any, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func TestEntitlementMiddleware(t *testing.T) {
	trialEnd := time.Now().UTC().Add(72 * time.Hour)
	expiredTrial := time.Now().UTC().Add(-72 * time.Hour)

	tests := []struct {
		name           string
		userUID        any
		user           *models.User
		wantStatusCode int
		wantCalled     bool
		wantBody       string
	}{
		{
			name:           "missing user uid",
			userUID:        nil,
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:    "entitled trial user passes",
			userUID: "uid-1",
			user: &models.User{
				UID:          "uid-1",
				Role:         models.RoleUser,
				IsActive:     true,
				TrialEndDate: &trialEnd,
			},
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
		{
			name:    "expired trial rejected with reason",
			userUID: "uid-2",
			user: &models.User{
				UID:          "uid-2",
				Role:         models.RoleUser,
				IsActive:     true,
				TrialEndDate: &expiredTrial,
			},
			wantStatusCode: http.StatusForbidden,
			wantCalled:     false,
			wantBody:       "access denied: trial_expired",
		},
		{
			name:    "disabled account rejected",
			userUID: "uid-3",
			user: &models.User{
				UID:      "uid-3",
				Role:     models.RoleUser,
				IsActive: false,
			},
			wantStatusCode: http.StatusForbidden,
			wantCalled:     false,
			wantBody:       "access denied: account_disabled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(UserProviderMock)
			cache := new(SnapshotCacheMock)
			handlerCalled := false

			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				handlerCalled = true
				w.WriteHeader(http.StatusOK)
			})

			if tt.user != nil {
				cacheKey := "user:" + tt.user.UID
				cache.On("Get", cacheKey, mock.Anything).Return(false, nil).Once()
				users.On("GetUser", mock.Anything, tt.user.UID).Return(tt.user, nil).Once()
				cache.On("Set", cacheKey, tt.user, 5*time.Minute).Return(nil).Once()
			}

			middleware := middlewarectx.EntitlementMiddleware(users, cache, newNoopLogger())(nextHandler)

			req := httptest.NewRequest(http.MethodGet, "/cars", nil)
			if tt.userUID != nil {
				ctx := context.WithValue(req.Context(), middlewarectx.UserUID, tt.userUID)
				req = req.WithContext(ctx)
			}

			rec := httptest.NewRecorder()
			middleware.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Equal(t, tt.wantCalled, handlerCalled)
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
			users.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestEntitlementMiddleware_CacheHitSkipsStorage(t *testing.T) {
	users := new(UserProviderMock)
	cache := new(SnapshotCacheMock)

	trialEnd := time.Now().UTC().Add(72 * time.Hour)
	cached := &models.User{
		UID:          "uid-1",
		Role:         models.RoleUser,
		IsActive:     true,
		TrialEndDate: &trialEnd,
	}

	cache.On("Get", "user:uid-1", mock.Anything).Run(func(args mock.Arguments) {
		ptr := args.Get(1).(**models.User)
		*ptr = cached
	}).Return(true, nil).Once()

	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	middleware := middlewarectx.EntitlementMiddleware(users, cache, newNoopLogger())(nextHandler)

	req := httptest.NewRequest(http.MethodGet, "/cars", nil)
	req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserUID, "uid-1"))

	rec := httptest.NewRecorder()
	middleware.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	users.AssertNotCalled(t, "GetUser", mock.Anything, mock.Anything)
	cache.AssertExpectations(t)
}

func TestAdminOnlyMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		role           any
		wantStatusCode int
	}{
		{name: "admin passes", role: models.RoleAdmin, wantStatusCode: http.StatusOK},
		{name: "user rejected", role: models.RoleUser, wantStatusCode: http.StatusForbidden},
		{name: "missing role rejected", role: nil, wantStatusCode: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
			middleware := middlewarectx.AdminOnlyMiddleware(newNoopLogger())(nextHandler)

			req := httptest.NewRequest(http.MethodGet, "/admin/payments", nil)
			if tt.role != nil {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.Role, tt.role))
			}

			rec := httptest.NewRecorder()
			middleware.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
		})
	}
}
