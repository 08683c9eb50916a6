package entity

// Staff holds back-office profile data. ID equals the owning user's ID.
type Staff struct {
	BaseNoDelete
	Department     *string `db:"department"`
	Position       *string `db:"position"`
	EmployeeNumber *string `db:"employee_number"`
	KTPNumber      *string `db:"ktp_number"`
	Address        *string `db:"address"`
}
