package repository

import "github.com/tu-usuario/factura-pyme/internal/domain/entity"

// EmployeeRepository define el puerto de persistencia para Employee.
// Los empleados son globales (no están ligados a una empresa).
type EmployeeRepository interface {
	Create(employee *entity.Employee) error
	GetByID(id string) (*entity.Employee, error)
	List(limit, offset int) ([]*entity.Employee, error)
	Update(employee *entity.Employee) error
	Delete(id string) error
}
