package middlewarectx

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/garilangu/gari-langu/internal/http/response"
	"github.com/garilangu/gari-langu/internal/lib/sl"
	"github.com/garilangu/gari-langu/internal/models"
	"github.com/garilangu/gari-langu/internal/services/entitlement"
)

// UserProvider loads a user record by UID.
type UserProvider interface {
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}

// SnapshotCache caches user records between entitlement checks. Writes on
// the payment path invalidate the "user:<uid>" key, so a stale snapshot
// lives at most until its TTL.
type SnapshotCache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
}

// EntitlementMiddleware gates the paid feature set. The user snapshot is
// served from cache when possible, then evaluated; a negative decision
// rejects the request with 403 and the dominant reason.
func EntitlementMiddleware(users UserProvider, cache SnapshotCache, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.EntitlementMiddleware"

			userUID, ok := r.Context().Value(UserUID).(string)
			if !ok || userUID == "" {
				log.Error("user identification missing")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("user identification missing"))
				return
			}

			cacheKey := fmt.Sprintf("user:%s", userUID)
			var user *models.User
			found, err := cache.Get(cacheKey, &user)
			if err != nil {
				log.Warn("failed to read user cache", slog.String("key", cacheKey), sl.Err(err))
			}
			if !found || user == nil {
				user, err = users.GetUser(r.Context(), userUID)
				if err != nil {
					log.Error("failed to load user", slog.String("op", op), sl.Err(err))
					w.WriteHeader(http.StatusInternalServerError)
					render.JSON(w, r, response.Error("internal service error"))
					return
				}
				if err := cache.Set(cacheKey, user, 5*time.Minute); err != nil {
					log.Warn("failed to cache user", slog.String("key", cacheKey), sl.Err(err))
				}
			}

			result := entitlement.Evaluate(user, time.Now().UTC())
			if !result.Entitled {
				log.Info("access denied",
					slog.String("user_uid", userUID),
					slog.String("reason", result.Reason))
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error("access denied: "+result.Reason))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
