package user

import "time"

type User struct {
	ID           string
	Username     string
	PasswordHash string
	// Optional link to the employee record this account belongs to.
	EmployeeID *string
	Role       Role
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)
