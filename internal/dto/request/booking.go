package request

type ListBookingsRequest struct {
	PaginatedRequest
	Status string `json:"status" validate:"omitempty,oneof=pending booked confirmed onride completed cancelled"`
	From   string `json:"from" validate:"omitempty,datetime=2006-01-02"`
	To     string `json:"to" validate:"omitempty,datetime=2006-01-02"`
	Search string `json:"search" validate:"omitempty,max=50"`
}

type AssignVehicleRequest struct {
	VehicleID string `json:"vehicle_id" validate:"required,uuid"`
}

type AssignDriverRequest struct {
	DriverID string `json:"driver_id" validate:"required,uuid"`
}
