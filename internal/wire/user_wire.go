package wire

import (
	"rental-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireUser(r chi.Router, userHandler *adaptor.UserHandler, auth, operator middlewareFunc) {
	// ==================== PROTECTED ROUTES ====================
	r.With(auth).Get("/api/users/profile", userHandler.GetProfile)

	// ==================== ADMIN ROUTES ====================
	r.With(auth, operator).Get("/api/admin/users", userHandler.GetAllUsers)
}
