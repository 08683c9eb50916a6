package entity

import "github.com/shopspring/decimal"

type DriverStatus string

const (
	DriverStatusStandby DriverStatus = "standby"
	DriverStatusBusy    DriverStatus = "busy"
	DriverStatusOnRide  DriverStatus = "on ride"
	DriverStatusOffline DriverStatus = "offline"
)

type Driver struct {
	BaseNoDelete
	Name   string          `db:"name"`
	Phone  *string         `db:"phone"`
	Status DriverStatus    `db:"status"`
	Saldo  decimal.Decimal `db:"saldo"` // may be negative
}
