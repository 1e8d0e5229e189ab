package repository

import "github.com/tu-usuario/factura-pyme/internal/domain/entity"

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	GetByRegistrationNumber(regNumber string) (*entity.Company, error)
	Update(company *entity.Company) error
	List(limit, offset int) ([]*entity.Company, error)
	// Delete elimina la empresa y sus tasas de impuesto (cascada).
	Delete(id string) error
}

// TaxRateRepository define el puerto de persistencia para tasas de impuesto.
type TaxRateRepository interface {
	Create(rate *entity.TaxRate) error
	ListByCompany(companyID string) ([]*entity.TaxRate, error)
	// GetDefault devuelve la tasa marcada is_default, o nil si no hay.
	GetDefault(companyID string) (*entity.TaxRate, error)
	Update(rate *entity.TaxRate) error
	Delete(id string) error
	DeleteByCompany(companyID string) error
}
