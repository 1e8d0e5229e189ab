package repository

import "github.com/tu-usuario/factura-pyme/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByCompanyAndSKU(companyID, sku string) (*entity.Product, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Product, error)
	Update(product *entity.Product) error
	Delete(id string) error
}

// ProductCategoryRepository define el puerto de persistencia para categorías.
type ProductCategoryRepository interface {
	Create(category *entity.ProductCategory) error
	GetByID(id string) (*entity.ProductCategory, error)
	ListByCompany(companyID string) ([]*entity.ProductCategory, error)
	Delete(id string) error
}
