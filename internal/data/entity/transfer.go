package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransferStatus string

const (
	TransferStatusPending   TransferStatus = "pending"
	TransferStatusAssigned  TransferStatus = "assigned"
	TransferStatusOnRide    TransferStatus = "onride"
	TransferStatusCompleted TransferStatus = "completed"
	TransferStatusCancelled TransferStatus = "cancelled"
)

// Transfer is an airport transfer order, stored in airport_transfer.
type Transfer struct {
	BaseNoDelete
	CodeBooking     string          `db:"code_booking"`
	CustomerName    string          `db:"customer_name"`
	PickupLocation  string          `db:"pickup_location"`
	DropoffLocation string          `db:"dropoff_location"`
	PickupTime      time.Time       `db:"pickup_time"`
	Price           decimal.Decimal `db:"price"`
	PaymentStatus   PaymentState    `db:"payment_status"`
	Status          TransferStatus  `db:"status"`
	DriverID        *uuid.UUID      `db:"driver_id"`
	VehicleID       *uuid.UUID      `db:"vehicle_id"`
}
