package response

import "rental-booking/internal/data/entity"

type StaffResponse struct {
	UserResponse
	Department     *string `json:"department,omitempty"`
	Position       *string `json:"position,omitempty"`
	EmployeeNumber *string `json:"employee_number,omitempty"`
	Created        bool    `json:"created"`
}

func StaffToResponse(user *entity.User, staff *entity.Staff, created bool) StaffResponse {
	return StaffResponse{
		UserResponse:   UserToResponse(user),
		Department:     staff.Department,
		Position:       staff.Position,
		EmployeeNumber: staff.EmployeeNumber,
		Created:        created,
	}
}
