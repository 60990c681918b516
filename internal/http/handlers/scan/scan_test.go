package scan

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/garilangu/gari-langu/internal/http/response"
)

type DispatchServiceMock struct {
	mock.Mock
}

func (m *DispatchServiceMock) DispatchDue(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestScanHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		configuredKey  string
		providedKey    string
		mockSent       int
		mockErr        error
		expectDispatch bool
		wantStatusCode int
	}{
		{
			name:           "valid secret runs the scan",
			configuredKey:  "topsecret",
			providedKey:    "topsecret",
			mockSent:       3,
			expectDispatch: true,
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "wrong secret rejected",
			configuredKey:  "topsecret",
			providedKey:    "guess",
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "missing secret rejected",
			configuredKey:  "topsecret",
			providedKey:    "",
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "unconfigured secret rejects everything",
			configuredKey:  "",
			providedKey:    "",
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "scan failure returns 500",
			configuredKey:  "topsecret",
			providedKey:    "topsecret",
			mockErr:        errors.New("db down"),
			expectDispatch: true,
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(DispatchServiceMock)
			handler := New(newNoopLogger(), serviceMock, tt.configuredKey)

			if tt.expectDispatch {
				serviceMock.On("DispatchDue", mock.Anything).
					Return(tt.mockSent, tt.mockErr).Once()
			}

			req := httptest.NewRequest(http.MethodPost, "/internal/reminders/scan", nil)
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))
			if tt.providedKey != "" {
				req.Header.Set(SecretHeader, tt.providedKey)
			}

			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			if tt.wantStatusCode == http.StatusOK {
				var resp response.Response
				err := json.Unmarshal(rec.Body.Bytes(), &resp)
				assert.NoError(t, err)
				data, ok := resp.Data.(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, float64(tt.mockSent), data["sent"])
			}
			if !tt.expectDispatch {
				serviceMock.AssertNotCalled(t, "DispatchDue", mock.Anything)
			}
			serviceMock.AssertExpectations(t)
		})
	}
}

func TestScanHandler_ServeInfo(t *testing.T) {
	serviceMock := new(DispatchServiceMock)
	handler := New(newNoopLogger(), serviceMock, "topsecret")

	req := httptest.NewRequest(http.MethodGet, "/internal/reminders/scan", nil)
	rec := httptest.NewRecorder()

	handler.ServeInfo(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp response.Response
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	data, ok := resp.Data.(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, "alive", data["status"])
	assert.Contains(t, data["usage"], SecretHeader)

	// liveness needs no secret and must never trigger a dispatch
	serviceMock.AssertNotCalled(t, "DispatchDue", mock.Anything)
}
