package adaptor

import (
	"net/http"

	"rental-booking/internal/data/entity"
	"rental-booking/internal/usecase"
	"rental-booking/pkg/utils"

	"go.uber.org/zap"
)

type FleetHandler struct {
	service usecase.FleetService
	log     *zap.Logger
}

func NewFleetHandler(service usecase.FleetService, log *zap.Logger) *FleetHandler {
	return &FleetHandler{
		service: service,
		log:     log.With(zap.String("handler", "fleet")),
	}
}

// ListDrivers handles GET /api/admin/drivers?status=
func (h *FleetHandler) ListDrivers(w http.ResponseWriter, r *http.Request) {
	drivers, err := h.service.ListDrivers(r.Context(), entity.DriverStatus(r.URL.Query().Get("status")))
	if err != nil {
		handleServiceError(w, h.log, err, "list drivers")
		return
	}

	utils.ResponseSuccess(w, "success", drivers)
}

// ListVehicles handles GET /api/admin/vehicles?status=
func (h *FleetHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.service.ListVehicles(r.Context(), entity.VehicleStatus(r.URL.Query().Get("status")))
	if err != nil {
		handleServiceError(w, h.log, err, "list vehicles")
		return
	}

	utils.ResponseSuccess(w, "success", vehicles)
}

// DriverTransfers handles GET /api/admin/drivers/{id}/transfers
func (h *FleetHandler) DriverTransfers(w http.ResponseWriter, r *http.Request) {
	driverID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	transfers, err := h.service.DriverTransfers(r.Context(), driverID)
	if err != nil {
		handleServiceError(w, h.log, err, "list driver transfers")
		return
	}

	utils.ResponseSuccess(w, "success", transfers)
}

// DriverNotifications handles GET /api/admin/drivers/{id}/notifications
func (h *FleetHandler) DriverNotifications(w http.ResponseWriter, r *http.Request) {
	driverID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	notifications, err := h.service.DriverNotifications(r.Context(), driverID)
	if err != nil {
		handleServiceError(w, h.log, err, "list driver notifications")
		return
	}

	utils.ResponseSuccess(w, "success", notifications)
}
