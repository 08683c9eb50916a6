package entity

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleStaff    Role = "staff"
	RoleCustomer Role = "customer"
	RoleDriver   Role = "driver"
	RoleAgent    Role = "agent"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleCustomer, RoleDriver, RoleAgent:
		return true
	}
	return false
}

// IsOperator is true for roles allowed into the back office.
func (r Role) IsOperator() bool {
	return r == RoleAdmin || r == RoleStaff
}

type User struct {
	Base
	FullName     string  `db:"full_name"`
	Email        string  `db:"email"`
	PasswordHash string  `db:"password"`
	Phone        *string `db:"phone"`
	Role         Role    `db:"role"`
	IsActive     bool    `db:"is_active"`
}
