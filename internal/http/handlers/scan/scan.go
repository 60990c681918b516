// Package scan implements the internal HTTP endpoint that runs one
// synchronous notification scan. It is called by cron or an operator and
// guarded by a shared secret rather than a user token.
package scan

import (
	"context"
	"crypto/hmac"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/garilangu/gari-langu/internal/http/response"
	"github.com/garilangu/gari-langu/internal/lib/sl"
)

// SecretHeader carries the shared scheduler secret.
const SecretHeader = "X-Scheduler-Secret"

// Handler handles HTTP requests for the batch scan.
type Handler struct {
	log     *slog.Logger
	service Service
	secret  string
}

// Service describes the batch dispatch business logic.
type Service interface {
	DispatchDue(ctx context.Context) (int, error)
}

// New creates a new Handler guarding the scan with the given secret.
func New(log *slog.Logger, service Service, secret string) *Handler {
	return &Handler{
		log:     log,
		service: service,
		secret:  secret,
	}
}

// ServeHTTP godoc
// @Summary Run a notification scan
// @Description Scans for reminders due within the lookahead window and dispatches their notifications synchronously. Guarded by the X-Scheduler-Secret header.
// @Tags Internal
// @Produce  json
// @Param X-Scheduler-Secret header string true "Shared scheduler secret"
// @Success 200 {object} map[string]any "Scan result"
// @Failure 401 {object} response.ErrorResponse "Bad or missing secret"
// @Failure 500 {object} response.ErrorResponse "Scan failed"
// @Router /internal/reminders/scan [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.scan"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	provided := r.Header.Get(SecretHeader)
	if h.secret == "" || !hmac.Equal([]byte(provided), []byte(h.secret)) {
		log.Error("scan rejected: bad or missing scheduler secret")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	sent, err := h.service.DispatchDue(r.Context())
	if err != nil {
		log.Error("scan failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("scan failed"))
		return
	}

	log.Info("scan finished", slog.Int("sent", sent))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"sent": sent,
	}))
}

// ServeInfo godoc
// @Summary Scan endpoint liveness
// @Description Reports that the scan trigger is alive and documents how to invoke it. Requires no secret.
// @Tags Internal
// @Produce  json
// @Success 200 {object} map[string]any "Liveness info"
// @Router /internal/reminders/scan [get]
func (h *Handler) ServeInfo(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, response.OKWithData(map[string]any{
		"status": "alive",
		"usage":  "POST to this path with the " + SecretHeader + " header to run a scan",
	}))
}
