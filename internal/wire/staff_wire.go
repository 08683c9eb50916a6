package wire

import (
	"rental-booking/internal/adaptor"
	"rental-booking/internal/data/entity"
	"rental-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireStaff(r chi.Router, staffHandler *adaptor.StaffHandler, auth middlewareFunc, log *zap.Logger) {
	// ==================== ADMIN ONLY ====================
	// staff tidak boleh membuat akun staff lain
	r.With(auth, middleware.RequireRole(log, entity.RoleAdmin)).Post("/api/admin/staff", staffHandler.Provision)
}
