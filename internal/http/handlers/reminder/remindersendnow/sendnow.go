// Package remindersendnow implements the HTTP handler that dispatches a
// single reminder notification immediately, outside the due window.
package remindersendnow

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
	"github.com/garilangu/gari-langu/internal/storage/repository"
)

// Handler handles HTTP requests for immediate reminder dispatch.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service describes the dispatch business logic.
type Service interface {
	DispatchByID(ctx context.Context, id int, userUID string) (bool, error)
}

// New creates a new Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Send a reminder now
// @Description Dispatches the reminder's notifications immediately over the enabled channels.
// @Tags Reminders
// @Security BearerAuth
// @Produce  json
// @Param id path int true "Reminder ID"
// @Success 200 {object} map[string]any "Dispatch result"
// @Failure 400 {object} response.ErrorResponse "Invalid id"
// @Failure 401 {object} response.ErrorResponse "Unauthorized"
// @Failure 404 {object} response.ErrorResponse "Reminder not found"
// @Failure 500 {object} response.ErrorResponse "Dispatch failed"
// @Router /reminders/{id}/send [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.reminder.sendnow"

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

	delivered, err := h.service.DispatchByID(r.Context(), id, userUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Info("reminder not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("reminder not found"))
			return
		}
		log.Error("failed to dispatch reminder", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not dispatch reminder"))
		return
	}

	log.Info("reminder dispatched", slog.Int("id", id), slog.Bool("delivered", delivered))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"delivered": delivered,
	}))
}
