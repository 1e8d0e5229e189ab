package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/factura-pyme/internal/application/dto"
	"github.com/tu-usuario/factura-pyme/internal/domain"
	"github.com/tu-usuario/factura-pyme/internal/domain/entity"
	"github.com/tu-usuario/factura-pyme/internal/domain/repository"
)

// VendorUseCase casos de uso CRUD para proveedores (por empresa).
type VendorUseCase struct {
	repo repository.VendorRepository
}

// NewVendorUseCase construye el caso de uso.
func NewVendorUseCase(repo repository.VendorRepository) *VendorUseCase {
	return &VendorUseCase{repo: repo}
}

// Create crea un proveedor.
func (uc *VendorUseCase) Create(companyID string, in dto.CreateVendorRequest) (*dto.VendorResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	vendor := &entity.Vendor{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		Name:          in.Name,
		VendorCompany: in.VendorCompany,
		Email:         in.Email,
		Phone:         in.Phone,
		Address:       in.Address,
		City:          in.City,
		State:         in.State,
		ZipCode:       in.ZipCode,
		Country:       in.Country,
		TaxNumber:     in.TaxNumber,
		Website:       in.Website,
		Terms:         in.Terms,
		AccountNumber: in.AccountNumber,
		Balance:       in.Balance,
		BillingRate:   in.BillingRate,
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(vendor); err != nil {
		return nil, err
	}
	return toVendorResponse(vendor), nil
}

// GetByID obtiene un proveedor verificando pertenencia a la empresa.
func (uc *VendorUseCase) GetByID(companyID, id string) (*dto.VendorResponse, error) {
	vendor, err := uc.getOwned(companyID, id)
	if err != nil {
		return nil, err
	}
	return toVendorResponse(vendor), nil
}

// Update reemplaza los datos del proveedor.
func (uc *VendorUseCase) Update(companyID, id string, in dto.UpdateVendorRequest) (*dto.VendorResponse, error) {
	vendor, err := uc.getOwned(companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	vendor.Name = in.Name
	vendor.VendorCompany = in.VendorCompany
	vendor.Email = in.Email
	vendor.Phone = in.Phone
	vendor.Address = in.Address
	vendor.City = in.City
	vendor.State = in.State
	vendor.ZipCode = in.ZipCode
	vendor.Country = in.Country
	vendor.TaxNumber = in.TaxNumber
	vendor.Website = in.Website
	vendor.Terms = in.Terms
	vendor.AccountNumber = in.AccountNumber
	vendor.Balance = in.Balance
	vendor.BillingRate = in.BillingRate
	vendor.UpdatedAt = time.Now()
	if err := uc.repo.Update(vendor); err != nil {
		return nil, err
	}
	return toVendorResponse(vendor), nil
}

// List lista proveedores de la empresa con paginación.
func (uc *VendorUseCase) List(companyID string, limit, offset int) ([]*dto.VendorResponse, error) {
	list, err := uc.repo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]*dto.VendorResponse, 0, len(list))
	for _, v := range list {
		items = append(items, toVendorResponse(v))
	}
	return items, nil
}

// Delete elimina un proveedor de la empresa.
func (uc *VendorUseCase) Delete(companyID, id string) error {
	if _, err := uc.getOwned(companyID, id); err != nil {
		return err
	}
	return uc.repo.Delete(id)
}

func (uc *VendorUseCase) getOwned(companyID, id string) (*entity.Vendor, error) {
	vendor, err := uc.repo.GetByID(id)
	if err != nil || vendor == nil {
		return nil, domain.ErrNotFound
	}
	if vendor.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return vendor, nil
}

func toVendorResponse(v *entity.Vendor) *dto.VendorResponse {
	if v == nil {
		return nil
	}
	return &dto.VendorResponse{
		ID:            v.ID,
		CompanyID:     v.CompanyID,
		Name:          v.Name,
		VendorCompany: v.VendorCompany,
		Email:         v.Email,
		Phone:         v.Phone,
		Address:       v.Address,
		City:          v.City,
		State:         v.State,
		ZipCode:       v.ZipCode,
		Country:       v.Country,
		TaxNumber:     v.TaxNumber,
		Website:       v.Website,
		Terms:         v.Terms,
		AccountNumber: v.AccountNumber,
		Balance:       v.Balance,
		BillingRate:   v.BillingRate,
		IsActive:      v.IsActive,
	}
}
