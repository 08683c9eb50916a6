package wire

import (
	"rental-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	assignmentHandler *adaptor.AssignmentHandler,
	auth, operator middlewareFunc,
) {
	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/bookings", func(r chi.Router) {
		// AuthSession -> admin/staff
		r.Use(auth)
		r.Use(operator)

		r.Get("/", bookingHandler.ListBookings)
		r.Get("/code/{code}", bookingHandler.GetBookingByCode)
		r.Get("/{id}", bookingHandler.GetBookingDetail)
		r.Get("/{id}/receipt", bookingHandler.Receipt)

		// lifecycle
		r.Put("/{id}/approve", bookingHandler.Approve)
		r.Put("/{id}/pickup", bookingHandler.Pickup)
		r.Put("/{id}/return", bookingHandler.Return)
		r.Put("/{id}/cancel", bookingHandler.Cancel)

		r.Post("/{id}/recompute", bookingHandler.RecomputePaymentStatus)
		r.Put("/{id}/vehicle", assignmentHandler.AssignVehicle)
	})
}
