package garilangu

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/garilangu/gari-langu/internal/cache"
	"github.com/garilangu/gari-langu/internal/http/handlers/admin/useractivate"
	"github.com/garilangu/gari-langu/internal/http/handlers/admin/userlist"
	"github.com/garilangu/gari-langu/internal/http/handlers/auth/login"
	"github.com/garilangu/gari-langu/internal/http/handlers/auth/register"
	"github.com/garilangu/gari-langu/internal/http/handlers/car/carcreate"
	"github.com/garilangu/gari-langu/internal/http/handlers/car/carlist"
	"github.com/garilangu/gari-langu/internal/http/handlers/car/carread"
	"github.com/garilangu/gari-langu/internal/http/handlers/car/carremove"
	"github.com/garilangu/gari-langu/internal/http/handlers/car/carupdate"
	"github.com/garilangu/gari-langu/internal/http/handlers/notification/notificationlist"
	"github.com/garilangu/gari-langu/internal/http/handlers/notification/notificationread"
	"github.com/garilangu/gari-langu/internal/http/handlers/notification/notificationreadall"
	"github.com/garilangu/gari-langu/internal/http/handlers/notification/notificationremove"
	"github.com/garilangu/gari-langu/internal/http/handlers/notification/notificationunread"
	"github.com/garilangu/gari-langu/internal/http/handlers/payment/paymentlist"
	"github.com/garilangu/gari-langu/internal/http/handlers/payment/paymentread"
	"github.com/garilangu/gari-langu/internal/http/handlers/payment/paymentreject"
	"github.com/garilangu/gari-langu/internal/http/handlers/payment/paymentsubmit"
	"github.com/garilangu/gari-langu/internal/http/handlers/payment/paymentverify"
	"github.com/garilangu/gari-langu/internal/http/handlers/reminder/remindercomplete"
	"github.com/garilangu/gari-langu/internal/http/handlers/reminder/remindercreate"
	"github.com/garilangu/gari-langu/internal/http/handlers/reminder/reminderlist"
	"github.com/garilangu/gari-langu/internal/http/handlers/reminder/reminderremove"
	"github.com/garilangu/gari-langu/internal/http/handlers/reminder/remindersendnow"
	"github.com/garilangu/gari-langu/internal/http/handlers/scan"
	"github.com/garilangu/gari-langu/internal/http/handlers/servicelog/servicecreate"
	"github.com/garilangu/gari-langu/internal/http/handlers/servicelog/servicelist"
	"github.com/garilangu/gari-langu/internal/http/handlers/servicelog/serviceremove"
	"github.com/garilangu/gari-langu/internal/http/handlers/subscription/health"
	"github.com/garilangu/gari-langu/internal/http/handlers/subscription/status"
	"github.com/garilangu/gari-langu/internal/http/middlewarectx"
	authservice "github.com/garilangu/gari-langu/internal/services/auth"
	carservice "github.com/garilangu/gari-langu/internal/services/car"
	dispatchservice "github.com/garilangu/gari-langu/internal/services/dispatch"
	notificationservice "github.com/garilangu/gari-langu/internal/services/notification"
	paymentservice "github.com/garilangu/gari-langu/internal/services/payment"
	reminderservice "github.com/garilangu/gari-langu/internal/services/reminder"
	servicelogservice "github.com/garilangu/gari-langu/internal/services/servicelog"
	"github.com/garilangu/gari-langu/internal/storage/repository"
)

// Services bundles the wired business services handed to the router.
type Services struct {
	Auth          *authservice.AuthService
	Cars          *carservice.CarService
	ServiceLog    *servicelogservice.ServiceLogService
	Reminders     *reminderservice.ReminderService
	Payments      *paymentservice.PaymentService
	Notifications *notificationservice.NotificationService
	Dispatcher    *dispatchservice.Dispatcher
	Users         *repository.Storage
	Cache         *cache.Cache
}

// RegisterRoutes registers all routes of the API server.
func RegisterRoutes(r chi.Router, logger *slog.Logger, s *Services, schedulerSecret string) {
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		middlewarectx.MetricsMiddleware,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Open endpoints
		r.Post("/register", register.New(logger, s.Auth).ServeHTTP)
		r.Post("/login", login.New(logger, s.Auth).ServeHTTP)

		// Internal scan trigger, guarded by the shared scheduler secret.
		// The GET on the same path serves liveness and usage info.
		scanHandler := scan.New(logger, s.Dispatcher, schedulerSecret)
		r.Post("/internal/reminders/scan", scanHandler.ServeHTTP)
		r.Get("/internal/reminders/scan", scanHandler.ServeInfo)

		// Authenticated endpoints
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(s.Auth, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Get("/subscription/status", status.New(logger, s.Users).ServeHTTP)
			r.Post("/payments", paymentsubmit.New(logger, s.Payments).ServeHTTP)
			r.Get("/payments", paymentlist.New(logger, s.Payments).ServeHTTP)

			r.Get("/notifications", notificationlist.New(logger, s.Notifications).ServeHTTP)
			r.Get("/notifications/unread", notificationunread.New(logger, s.Notifications).ServeHTTP)
			r.Post("/notifications/read-all", notificationreadall.New(logger, s.Notifications).ServeHTTP)
			r.Post("/notifications/{id}/read", notificationread.New(logger, s.Notifications).ServeHTTP)
			r.Delete("/notifications/{id}", notificationremove.New(logger, s.Notifications).ServeHTTP)

			// Paid feature set, gated by the entitlement check
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.EntitlementMiddleware(s.Users, s.Cache, logger))

				r.Post("/cars", carcreate.New(logger, s.Cars).ServeHTTP)
				r.Get("/cars", carlist.New(logger, s.Cars).ServeHTTP)
				r.Get("/cars/{id}", carread.New(logger, s.Cars).ServeHTTP)
				r.Put("/cars/{id}", carupdate.New(logger, s.Cars).ServeHTTP)
				r.Delete("/cars/{id}", carremove.New(logger, s.Cars).ServeHTTP)
				r.Get("/cars/{id}/services", servicelist.New(logger, s.ServiceLog).ServeHTTP)

				r.Post("/services", servicecreate.New(logger, s.ServiceLog).ServeHTTP)
				r.Delete("/services/{id}", serviceremove.New(logger, s.ServiceLog).ServeHTTP)

				r.Post("/reminders", remindercreate.New(logger, s.Reminders).ServeHTTP)
				r.Get("/reminders", reminderlist.New(logger, s.Reminders).ServeHTTP)
				r.Post("/reminders/{id}/complete", remindercomplete.New(logger, s.Reminders).ServeHTTP)
				r.Post("/reminders/{id}/send", remindersendnow.New(logger, s.Dispatcher).ServeHTTP)
				r.Delete("/reminders/{id}", reminderremove.New(logger, s.Reminders).ServeHTTP)
			})

			// Admin endpoints
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.AdminOnlyMiddleware(logger))

				r.Get("/admin/payments", paymentlist.New(logger, s.Payments).ServeHTTPAll)
				r.Get("/admin/payments/{id}", paymentread.New(logger, s.Payments).ServeHTTP)
				r.Post("/admin/payments/{id}/verify", paymentverify.New(logger, s.Payments).ServeHTTP)
				r.Post("/admin/payments/{id}/reject", paymentreject.New(logger, s.Payments).ServeHTTP)
				r.Get("/admin/users", userlist.New(logger, s.Users).ServeHTTP)
				r.Post("/admin/users/{uid}/active", useractivate.New(logger, s.Users, s.Cache).ServeHTTP)
			})
		})
	})

	r.Get("/health", health.New(logger).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
