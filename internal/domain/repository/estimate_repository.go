package repository

import "github.com/tu-usuario/factura-pyme/internal/domain/entity"

// EstimateRepository define el puerto de persistencia para Estimate y sus líneas.
type EstimateRepository interface {
	Create(estimate *entity.Estimate) error
	CreateItem(item *entity.EstimateItem) error
	Update(estimate *entity.Estimate) error
	GetByID(id string) (*entity.Estimate, error)
	GetByNumber(companyID, number string) (*entity.Estimate, error)
	GetItemsByEstimateID(estimateID string) ([]*entity.EstimateItem, error)
	ListByCompany(companyID string, limit, offset int) ([]*entity.Estimate, error)
	DeleteItemsByEstimateID(estimateID string) error
	Delete(id string) error
}
