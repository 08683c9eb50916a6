package request

type StaffRequest struct {
	ID             *string `json:"id,omitempty" validate:"omitempty,uuid"`
	FullName       string  `json:"fullName" validate:"required,min=2,max=150"`
	Email          string  `json:"email" validate:"required,email"`
	Password       string  `json:"password,omitempty" validate:"omitempty,min=8"`
	Phone          *string `json:"phone,omitempty" validate:"omitempty,min=10,max=15"`
	Role           string  `json:"role" validate:"omitempty,oneof=admin staff"`
	Department     *string `json:"department,omitempty" validate:"omitempty,max=100"`
	Position       *string `json:"position,omitempty" validate:"omitempty,max=100"`
	EmployeeNumber *string `json:"employeeNumber,omitempty" validate:"omitempty,max=50"`
	KTPNumber      *string `json:"ktpNumber,omitempty" validate:"omitempty,numeric,len=16"`
	Address        *string `json:"address,omitempty"`
	IsUpdate       bool    `json:"isUpdate"`
}
