package entity

import "time"

// Roles de usuario (deben coincidir con el CHECK de la tabla users).
const (
	RoleAdmin = "admin"
	RoleSales = "sales"
	RoleStaff = "staff"
)

// User representa un usuario del sistema con acceso por rol.
type User struct {
	ID           string
	CompanyID    string
	Role         string // ver constantes Role*
	FullName     string
	Username     string
	Email        string // único
	PasswordHash string // bcrypt
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
