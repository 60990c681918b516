// Package useractivate implements the admin HTTP handler flipping a
// user's access switch. A deactivated user fails every entitlement check
// regardless of subscription state.
package useractivate

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/garilangu/gari-langu/internal/http/response"
	"github.com/garilangu/gari-langu/internal/lib/sl"
	"github.com/garilangu/gari-langu/internal/storage/repository"
)

// Request carries the desired access state.
type Request struct {
	Active bool `json:"active"`
}

// Handler handles HTTP requests for user activation.
type Handler struct {
	log     *slog.Logger
	service Service
	cache   Cache
}

// Service describes the activation business logic.
type Service interface {
	SetUserActive(ctx context.Context, userUID string, active bool) error
}

// Cache invalidates the user's cached entitlement snapshot.
type Cache interface {
	Invalidate(key string) error
}

// New creates a new Handler.
func New(log *slog.Logger, service Service, cache Cache) *Handler {
	return &Handler{
		log:     log,
		service: service,
		cache:   cache,
	}
}

// ServeHTTP godoc
// @Summary Activate or deactivate a user
// @Description Flips the admin-controlled access switch of a user account.
// @Tags Admin
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param uid path string true "User UID"
// @Param request body Request true "Desired state"
// @Success 200 {object} map[string]any "User updated"
// @Failure 400 {object} response.ErrorResponse "Invalid JSON"
// @Failure 403 {object} response.ErrorResponse "Admin access required"
// @Failure 404 {object} response.ErrorResponse "User not found"
// @Failure 500 {object} response.ErrorResponse "Update failed"
// @Router /admin/users/{uid}/active [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.useractivate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID := chi.URLParam(r, "uid")

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.service.SetUserActive(r.Context(), userUID, req.Active); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Info("user not found", slog.String("uid", userUID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
			return
		}
		log.Error("failed to update user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update user"))
		return
	}

	if err := h.cache.Invalidate("user:" + userUID); err != nil {
		log.Warn("failed to invalidate user cache", sl.Err(err))
	}

	log.Info("user access updated", slog.String("uid", userUID), slog.Bool("active", req.Active))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"uid":    userUID,
		"active": req.Active,
	}))
}
