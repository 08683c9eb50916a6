package adaptor

import (
	"encoding/json"
	"net/http"

	"rental-booking/internal/dto/request"
	"rental-booking/internal/usecase"
	"rental-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type DriverHandler struct {
	balance    usecase.DriverBalanceService
	assignment usecase.AssignmentService
	log        *zap.Logger
}

func NewDriverHandler(balance usecase.DriverBalanceService, assignment usecase.AssignmentService, log *zap.Logger) *DriverHandler {
	return &DriverHandler{
		balance:    balance,
		assignment: assignment,
		log:        log.With(zap.String("handler", "driver")),
	}
}

// Release handles PUT /api/admin/drivers/{id}/release
func (h *DriverHandler) Release(w http.ResponseWriter, r *http.Request) {
	driverID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	if err := h.assignment.ReleaseDriver(r.Context(), driverID); err != nil {
		handleServiceError(w, h.log, err, "release driver")
		return
	}

	utils.ResponseSuccess(w, "Driver released", nil)
}

// AdjustBalance handles POST /api/admin/drivers/{id}/balance
func (h *DriverHandler) AdjustBalance(w http.ResponseWriter, r *http.Request) {
	driverID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	var req request.AdjustBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	var actorID *uuid.UUID
	if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
		actorID = &userID
	}

	history, err := h.balance.Adjust(r.Context(), driverID, actorID, &req)
	if err != nil {
		handleServiceError(w, h.log, err, "adjust driver balance")
		return
	}

	utils.ResponseCreated(w, "Driver balance adjusted", history)
}

// BalanceHistory handles GET /api/admin/drivers/{id}/balance
func (h *DriverHandler) BalanceHistory(w http.ResponseWriter, r *http.Request) {
	driverID, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	req := &request.PaginatedRequest{}
	req.Page, req.PerPage = paginationFromQuery(r)

	history, err := h.balance.History(r.Context(), driverID, req)
	if err != nil {
		handleServiceError(w, h.log, err, "get balance history")
		return
	}

	utils.ResponseSuccess(w, "success", history)
}
