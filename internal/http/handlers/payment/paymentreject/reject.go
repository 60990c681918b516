// Package paymentreject implements the admin HTTP handler that rejects a
// pending payment. No subscription time is granted.
package paymentreject

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/garilangu/gari-langu/internal/http/response"
	"github.com/garilangu/gari-langu/internal/lib/sl"
	"github.com/garilangu/gari-langu/internal/models"
	"github.com/garilangu/gari-langu/internal/storage/repository"
)

// Request carries the admin notes explaining the rejection.
type Request struct {
	AdminNotes string `json:"admin_notes,omitempty"`
}

// Handler handles HTTP requests for payment rejection.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service describes the rejection business logic.
type Service interface {
	Reject(ctx context.Context, id int, adminNotes string) (*models.Payment, error)
}

// New creates a new Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Reject a payment
// @Description Transitions a pending payment to rejected and clears the user's pending flag.
// @Tags Payments
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param id path int true "Payment ID"
// @Param request body Request false "Admin notes"
// @Success 200 {object} map[string]any "Payment rejected"
// @Failure 400 {object} response.ErrorResponse "Invalid id"
// @Failure 403 {object} response.ErrorResponse "Admin access required"
// @Failure 404 {object} response.ErrorResponse "Payment not found"
// @Failure 409 {object} response.ErrorResponse "Payment already resolved"
// @Failure 500 {object} response.ErrorResponse "Rejection failed"
// @Router /admin/payments/{id}/reject [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.reject"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid id format", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	payment, err := h.service.Reject(r.Context(), id, req.AdminNotes)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			log.Info("payment not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("payment not found"))
		case errors.Is(err, repository.ErrInvalidStateTransition):
			log.Info("payment already resolved", slog.Int("id", id))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("payment already resolved"))
		default:
			log.Error("failed to reject payment", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not reject payment"))
		}
		return
	}

	log.Info("payment rejected", slog.Int("id", id), slog.String("user_uid", payment.UserUID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"payment": payment,
	}))
}
