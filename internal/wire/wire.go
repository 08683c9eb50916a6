// internal/wire/wire.go
package wire

import (
	"net/http"

	"rental-booking/internal/adaptor"
	"rental-booking/internal/data/repository"
	"rental-booking/internal/usecase"
	"rental-booking/pkg/cache"
	"rental-booking/pkg/middleware"
	"rental-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App menyimpan semua dependencies
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring menginisialisasi semua dependencies. publisher dan sessions boleh
// nil; event dan cache session lalu dimatikan.
func Wiring(
	repo *repository.Repository,
	config *utils.Config,
	publisher usecase.EventPublisher,
	sessions cache.SessionCache,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, config, publisher, sessions, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, service, config, logger)

	return &App{
		Router:  router,
		Service: service,
	}
}

// setupRouter konfigurasi Chi router
func setupRouter(
	handler *adaptor.Handler,
	service *usecase.Service,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.AllowedOrigins...))

	auth := middleware.AuthSession(service.Auth, logger)
	operator := middleware.RequireOperator(logger)

	wireAuth(r, handler.Auth, auth)
	wireUser(r, handler.User, auth, operator)
	wirePayment(r, handler.Payment, handler.Webhook, service.Auth, logger)
	wireBooking(r, handler.Booking, handler.Assignment, auth, operator)
	wireDriver(r, handler.Assignment, handler.Driver, handler.Fleet, auth, operator)
	wireStaff(r, handler.Staff, auth, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
