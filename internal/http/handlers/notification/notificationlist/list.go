// Package notificationlist implements the HTTP handler for listing the
// caller's notifications.
package notificationlist

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/garilangu/gari-langu/internal/http/middlewarectx"
	"github.com/garilangu/gari-langu/internal/http/response"
	"github.com/garilangu/gari-langu/internal/lib/sl"
	"github.com/garilangu/gari-langu/internal/models"
)

// Handler handles HTTP requests for notification listing.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service describes the notification listing business logic.
type Service interface {
	List(ctx context.Context, userUID, role string) ([]*models.Notification, error)
}

// New creates a new Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary List notifications
// @Description Returns the notifications visible to the caller, newest first. Admins see the admin feed.
// @Tags Notifications
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} map[string]any "Notifications"
// @Failure 401 {object} response.ErrorResponse "Unauthorized"
// @Failure 500 {object} response.ErrorResponse "Listing failed"
// @Router /notifications [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.notification.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}
	role, _ := r.Context().Value(middlewarectx.Role).(string)

	notifications, err := h.service.List(r.Context(), userUID, role)
	if err != nil {
		log.Error("failed to list notifications", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list notifications"))
		return
	}

	log.Info("notifications listed", slog.Int("count", len(notifications)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"notifications": notifications,
		"count":         len(notifications),
	}))
}
