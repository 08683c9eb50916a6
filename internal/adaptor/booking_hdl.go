package adaptor

import (
	"context"
	"net/http"
	"strconv"

	"rental-booking/internal/dto/request"
	"rental-booking/internal/dto/response"
	"rental-booking/internal/usecase"
	"rental-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service    usecase.BookingService
	reconciler usecase.StatusReconciler
	log        *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, reconciler usecase.StatusReconciler, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service:    service,
		reconciler: reconciler,
		log:        log.With(zap.String("handler", "booking")),
	}
}

// ListBookings handles GET /api/admin/bookings?status=&from=&to=&search=
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &request.ListBookingsRequest{
		Status: query.Get("status"),
		From:   query.Get("from"),
		To:     query.Get("to"),
		Search: query.Get("search"),
	}
	req.Page, req.PerPage = paginationFromQuery(r)

	bookings, err := h.service.ListBookings(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err, "list bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// GetBookingDetail handles GET /api/admin/bookings/{id}
func (h *BookingHandler) GetBookingDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	detail, err := h.service.GetBookingDetail(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "get booking detail")
		return
	}

	utils.ResponseSuccess(w, "success", detail)
}

// GetBookingByCode handles GET /api/admin/bookings/code/{code}
func (h *BookingHandler) GetBookingByCode(w http.ResponseWriter, r *http.Request) {
	detail, err := h.service.GetBookingByCode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		handleServiceError(w, h.log, err, "get booking by code")
		return
	}

	utils.ResponseSuccess(w, "success", detail)
}

// Receipt handles GET /api/admin/bookings/{id}/receipt
func (h *BookingHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	pdf, filename, err := h.service.Receipt(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "render receipt")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}

// RecomputePaymentStatus handles POST /api/admin/bookings/{id}/recompute
func (h *BookingHandler) RecomputePaymentStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	state, err := h.reconciler.RecomputePaymentStatus(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, "recompute payment status")
		return
	}

	utils.ResponseSuccess(w, "Payment status recomputed", map[string]any{
		"booking_id":     id.String(),
		"payment_status": state,
	})
}

// Approve handles PUT /api/admin/bookings/{id}/approve
func (h *BookingHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "approve booking", h.reconciler.Approve)
}

// Pickup handles PUT /api/admin/bookings/{id}/pickup
func (h *BookingHandler) Pickup(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "process pickup", h.reconciler.ProcessPickup)
}

// Return handles PUT /api/admin/bookings/{id}/return
func (h *BookingHandler) Return(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "process return", h.reconciler.ProcessReturn)
}

// Cancel handles PUT /api/admin/bookings/{id}/cancel
func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, "cancel booking", h.reconciler.Cancel)
}

func (h *BookingHandler) transition(
	w http.ResponseWriter,
	r *http.Request,
	operation string,
	apply func(ctx context.Context, bookingID uuid.UUID) (*response.BookingResponse, error),
) {
	id, ok := uuidParam(w, r, "id")
	if !ok {
		return
	}

	booking, err := apply(r.Context(), id)
	if err != nil {
		handleServiceError(w, h.log, err, operation)
		return
	}

	utils.ResponseSuccess(w, "Booking status updated", booking)
}
