// Package remindercomplete implements the HTTP handler that marks a
// reminder done and logs a service record from it.
package remindercomplete

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/garilangu/gari-langu/internal/http/middlewarectx"
	"github.com/garilangu/gari-langu/internal/http/response"
	"github.com/garilangu/gari-langu/internal/lib/sl"
	"github.com/garilangu/gari-langu/internal/models"
	"github.com/garilangu/gari-langu/internal/storage/repository"
)

// Handler handles HTTP requests for reminder completion.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service describes the completion business logic.
type Service interface {
	Complete(ctx context.Context, id int, userUID string) (*models.Reminder, error)
}

// New creates a new Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Complete a reminder
// @Description Marks a reminder completed and logs a service record from it.
// @Tags Reminders
// @Security BearerAuth
// @Produce  json
// @Param id path int true "Reminder ID"
// @Success 200 {object} map[string]any "Reminder completed"
// @Failure 400 {object} response.ErrorResponse "Invalid id"
// @Failure 401 {object} response.ErrorResponse "Unauthorized"
// @Failure 404 {object} response.ErrorResponse "Reminder not found or already completed"
// @Failure 500 {object} response.ErrorResponse "Completion failed"
// @Router /reminders/{id}/complete [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.reminder.complete"

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

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	rem, err := h.service.Complete(r.Context(), id, userUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Info("reminder not found or already completed", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("reminder not found or already completed"))
			return
		}
		log.Error("failed to complete reminder", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not complete reminder"))
		return
	}

	log.Info("reminder completed", slog.Int("id", id))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"reminder": rem,
	}))
}
