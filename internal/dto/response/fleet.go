package response

import (
	"time"

	"rental-booking/internal/data/entity"

	"github.com/shopspring/decimal"
)

type DriverResponse struct {
	ID     string              `json:"id"`
	Name   string              `json:"name"`
	Phone  *string             `json:"phone,omitempty"`
	Status entity.DriverStatus `json:"status"`
	Saldo  decimal.Decimal     `json:"saldo"`
}

type VehicleResponse struct {
	ID           string               `json:"id"`
	Make         string               `json:"make"`
	Model        string               `json:"model"`
	LicensePlate string               `json:"license_plate"`
	Status       entity.VehicleStatus `json:"status"`
}

type TransferResponse struct {
	ID              string                `json:"id"`
	CodeBooking     string                `json:"code_booking"`
	CustomerName    string                `json:"customer_name"`
	PickupLocation  string                `json:"pickup_location"`
	DropoffLocation string                `json:"dropoff_location"`
	PickupTime      time.Time             `json:"pickup_time"`
	Price           decimal.Decimal       `json:"price"`
	PaymentStatus   entity.PaymentState   `json:"payment_status"`
	Status          entity.TransferStatus `json:"status"`
	DriverID        *string               `json:"driver_id,omitempty"`
	VehicleID       *string               `json:"vehicle_id,omitempty"`
}

type NotificationResponse struct {
	ID         string                    `json:"id"`
	TransferID string                    `json:"transfer_id"`
	Message    string                    `json:"message"`
	Status     entity.NotificationStatus `json:"status"`
	CreatedAt  time.Time                 `json:"created_at"`
}

func DriverToResponse(d *entity.Driver) DriverResponse {
	return DriverResponse{
		ID:     d.ID.String(),
		Name:   d.Name,
		Phone:  d.Phone,
		Status: d.Status,
		Saldo:  d.Saldo,
	}
}

func VehicleToResponse(v *entity.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:           v.ID.String(),
		Make:         v.Make,
		Model:        v.Model,
		LicensePlate: v.LicensePlate,
		Status:       v.Status,
	}
}

func TransferToResponse(t *entity.Transfer) TransferResponse {
	return TransferResponse{
		ID:              t.ID.String(),
		CodeBooking:     t.CodeBooking,
		CustomerName:    t.CustomerName,
		PickupLocation:  t.PickupLocation,
		DropoffLocation: t.DropoffLocation,
		PickupTime:      t.PickupTime,
		Price:           t.Price,
		PaymentStatus:   t.PaymentStatus,
		Status:          t.Status,
		DriverID:        uuidPtrString(t.DriverID),
		VehicleID:       uuidPtrString(t.VehicleID),
	}
}

func NotificationToResponse(n *entity.DriverNotification) NotificationResponse {
	return NotificationResponse{
		ID:         n.ID.String(),
		TransferID: n.TransferID.String(),
		Message:    n.Message,
		Status:     n.Status,
		CreatedAt:  n.CreatedAt,
	}
}
