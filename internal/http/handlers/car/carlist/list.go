package carlist

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

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	List(ctx context.Context, userUID string) ([]*models.Car, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary List cars
// @Description Returns all cars owned by the current user.
// @Tags Cars
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} map[string]any "Cars"
// @Failure 401 {object} response.ErrorResponse "Unauthorized"
// @Failure 500 {object} response.ErrorResponse "Listing failed"
// @Router /cars [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.car.list"

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

	cars, err := h.service.List(r.Context(), userUID)
	if err != nil {
		log.Error("failed to list cars", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list cars"))
		return
	}

	log.Info("cars listed", slog.Int("count", len(cars)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"cars":  cars,
		"count": len(cars),
	}))
}
