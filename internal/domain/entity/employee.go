package entity

import "time"

// Employee representa un empleado (vendedor asignable a facturas y cotizaciones).
// A diferencia de clientes y proveedores, los empleados no están ligados a una
// empresa: el esquema original los comparte entre todas.
type Employee struct {
	ID        string
	Name      string
	Email     string // único
	Phone     string
	Address   string
	HireDate  string // fecha como texto libre, igual que el esquema original
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
