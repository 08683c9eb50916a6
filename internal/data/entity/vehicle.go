package entity

type VehicleStatus string

const (
	VehicleStatusAvailable   VehicleStatus = "available"
	VehicleStatusBooked      VehicleStatus = "booked"
	VehicleStatusOnRide      VehicleStatus = "onride"
	VehicleStatusMaintenance VehicleStatus = "maintenance"
)

type Vehicle struct {
	BaseNoDelete
	Make         string        `db:"make"`
	Model        string        `db:"model"`
	LicensePlate string        `db:"license_plate"`
	Status       VehicleStatus `db:"status"`
}
