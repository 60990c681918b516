// Package status implements the HTTP handler reporting the caller's
// entitlement state: whether paid features are accessible and why.
package status

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/garilangu/gari-langu/internal/http/middlewarectx"
	"github.com/garilangu/gari-langu/internal/http/response"
	"github.com/garilangu/gari-langu/internal/lib/sl"
	"github.com/garilangu/gari-langu/internal/models"
	"github.com/garilangu/gari-langu/internal/services/entitlement"
)

// Handler handles HTTP requests for the subscription status.
type Handler struct {
	log   *slog.Logger
	users Service
}

// Service loads the user record the decision is evaluated against.
type Service interface {
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}

// New creates a new Handler.
func New(log *slog.Logger, users Service) *Handler {
	return &Handler{
		log:   log,
		users: users,
	}
}

// ServeHTTP godoc
// @Summary Subscription status
// @Description Returns the caller's entitlement decision, trial and subscription windows.
// @Tags Subscription
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} map[string]any "Status"
// @Failure 401 {object} response.ErrorResponse "Unauthorized"
// @Failure 500 {object} response.ErrorResponse "Lookup failed"
// @Router /subscription/status [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.status"

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

	user, err := h.users.GetUser(r.Context(), userUID)
	if err != nil {
		log.Error("failed to load user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not load user"))
		return
	}

	result := entitlement.Evaluate(user, time.Now().UTC())
	render.JSON(w, r, response.OKWithData(map[string]any{
		"entitled":            result.Entitled,
		"reason":              result.Reason,
		"is_subscribed":       user.IsSubscribed,
		"subscription_expiry": user.SubscriptionExpire,
		"trial_end_date":      user.TrialEndDate,
		"pending_payment":     user.PendingPayment,
	}))
}
