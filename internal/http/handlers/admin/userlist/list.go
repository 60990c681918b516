// Package userlist implements the admin HTTP handler for browsing
// registered users.
package userlist

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/garilangu/gari-langu/internal/http/response"
	"github.com/garilangu/gari-langu/internal/lib/sl"
	"github.com/garilangu/gari-langu/internal/models"
)

// Handler handles HTTP requests for user listing.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service describes the user listing business logic.
type Service interface {
	ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error)
}

// New creates a new Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary List users
// @Description Returns registered users with pagination, newest first.
// @Tags Admin
// @Security BearerAuth
// @Produce  json
// @Param limit query int false "Page size (default 50)"
// @Param offset query int false "Offset (default 0)"
// @Success 200 {object} map[string]any "Users"
// @Failure 403 {object} response.ErrorResponse "Admin access required"
// @Failure 500 {object} response.ErrorResponse "Listing failed"
// @Router /admin/users [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.userlist"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 || limit > 200 {
		limit = 50
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	users, err := h.service.ListUsers(r.Context(), limit, offset)
	if err != nil {
		log.Error("failed to list users", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list users"))
		return
	}

	// Strip password hashes from the listing.
	type userView struct {
		UID                string  `json:"uid"`
		Email              string  `json:"email"`
		Username           string  `json:"username"`
		Phone              string  `json:"phone"`
		Role               string  `json:"role"`
		Language           string  `json:"language"`
		IsSubscribed       bool    `json:"is_subscribed"`
		SubscriptionExpire *string `json:"subscription_expiry,omitempty"`
		PendingPayment     bool    `json:"pending_payment"`
		IsActive           bool    `json:"is_active"`
	}
	views := make([]userView, 0, len(users))
	for _, u := range users {
		v := userView{
			UID:            u.UID,
			Email:          u.Email,
			Username:       u.Username,
			Phone:          u.Phone,
			Role:           u.Role,
			Language:       u.Language,
			IsSubscribed:   u.IsSubscribed,
			PendingPayment: u.PendingPayment,
			IsActive:       u.IsActive,
		}
		if u.SubscriptionExpire != nil {
			expiry := u.SubscriptionExpire.Format("02-01-2006")
			v.SubscriptionExpire = &expiry
		}
		views = append(views, v)
	}

	log.Info("users listed", slog.Int("count", len(views)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"users": views,
		"count": len(views),
	}))
}
