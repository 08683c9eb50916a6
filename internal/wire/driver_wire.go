package wire

import (
	"rental-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireDriver(
	r chi.Router,
	assignmentHandler *adaptor.AssignmentHandler,
	driverHandler *adaptor.DriverHandler,
	fleetHandler *adaptor.FleetHandler,
	auth, operator middlewareFunc,
) {
	// ==================== ADMIN ROUTES ====================
	r.Group(func(r chi.Router) {
		r.Use(auth)
		r.Use(operator)

		r.Post("/api/admin/transfers/{id}/assign-driver", assignmentHandler.AssignDriver)

		r.Get("/api/admin/drivers", fleetHandler.ListDrivers)
		r.Get("/api/admin/vehicles", fleetHandler.ListVehicles)
		r.Get("/api/admin/drivers/{id}/transfers", fleetHandler.DriverTransfers)
		r.Get("/api/admin/drivers/{id}/notifications", fleetHandler.DriverNotifications)

		r.Put("/api/admin/drivers/{id}/release", driverHandler.Release)
		r.Get("/api/admin/drivers/{id}/balance", driverHandler.BalanceHistory)
		r.Post("/api/admin/drivers/{id}/balance", driverHandler.AdjustBalance)
	})
}
