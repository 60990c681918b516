package carcreate

import (
	"bytes"
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

	"github.com/garilangu/gari-langu/internal/http/middlewarectx"
	"github.com/garilangu/gari-langu/internal/http/response"
	"github.com/garilangu/gari-langu/internal/models"
)

type CarServiceMock struct {
	mock.Mock
}

func (m *CarServiceMock) Create(ctx context.Context, userUID string, req models.DummyCar) (int, error) {
	args := m.Called(ctx, userUID, req)
	return args.Int(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestCreateHandler_ServeHTTP(t *testing.T) {
	validCar := models.DummyCar{
		Make:         "Toyota",
		Model:        "Hilux",
		Year:         2019,
		Registration: "T123ABC",
	}

	tests := []struct {
		name           string
		requestBody    interface{}
		userUID        any
		mockID         int
		mockErr        error
		expectCreate   bool
		wantStatusCode int
	}{
		{
			name:           "valid car",
			requestBody:    validCar,
			userUID:        "uid-1",
			mockID:         5,
			expectCreate:   true,
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			userUID:        "uid-1",
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "validation error - year out of range",
			requestBody:    models.DummyCar{Make: "Toyota", Model: "Hilux", Year: 1900, Registration: "T123ABC"},
			userUID:        "uid-1",
			wantStatusCode: http.StatusUnprocessableEntity,
		},
		{
			name:           "missing user uid",
			requestBody:    validCar,
			userUID:        nil,
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "service failure",
			requestBody:    validCar,
			userUID:        "uid-1",
			mockErr:        errors.New("db error"),
			expectCreate:   true,
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(CarServiceMock)
			handler := New(newNoopLogger(), serviceMock)

			if tt.expectCreate {
				serviceMock.On("Create", mock.Anything, "uid-1", mock.Anything).
					Return(tt.mockID, tt.mockErr).Once()
			}

			var bodyBytes []byte
			var err error
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				bodyBytes, err = json.Marshal(tt.requestBody)
				if err != nil {
					t.Fatal(err)
				}
			}

			req := httptest.NewRequest(http.MethodPost, "/cars", bytes.NewReader(bodyBytes))
			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123")
			if tt.userUID != nil {
				ctx = context.WithValue(ctx, middlewarectx.UserUID, tt.userUID)
			}
			req = req.WithContext(ctx)

			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			if tt.wantStatusCode == http.StatusOK {
				var resp response.Response
				err := json.Unmarshal(rec.Body.Bytes(), &resp)
				assert.NoError(t, err)
				data, ok := resp.Data.(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, float64(tt.mockID), data["last_added_id"])
			}
			serviceMock.AssertExpectations(t)
		})
	}
}
