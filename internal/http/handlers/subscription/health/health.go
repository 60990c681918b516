package health

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/garilangu/gari-langu/internal/http/response"
)

type Handler struct {
	log *slog.Logger
}

func New(log *slog.Logger) *Handler {
	return &Handler{
		log: log,
	}
}

// ServeHTTP godoc
// @Summary Health check
// @Tags Service
// @Produce  json
// @Success 200 {object} map[string]any "Service is up"
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	render.JSON(w, r, response.OKWithData(map[string]any{
		"status": "ok",
	}))
}
