package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/factura-pyme/internal/application/dto"
	"github.com/tu-usuario/factura-pyme/internal/domain"
	"github.com/tu-usuario/factura-pyme/internal/domain/entity"
	"github.com/tu-usuario/factura-pyme/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos y categorías.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.ProductCategoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categoryRepo repository.ProductCategoryRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo}
}

// Create crea un producto. El SKU es único por empresa; devuelve
// domain.ErrDuplicate si ya existe.
func (uc *ProductUseCase) Create(companyID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitPrice.IsNegative() || in.CostPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.SKU != "" {
		existing, _ := uc.repo.GetByCompanyAndSKU(companyID, in.SKU)
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	if in.CategoryID != "" {
		category, err := uc.categoryRepo.GetByID(in.CategoryID)
		if err != nil || category == nil || category.CompanyID != companyID {
			return nil, domain.ErrNotFound
		}
	}
	now := time.Now()
	product := &entity.Product{
		ID:                uuid.New().String(),
		CompanyID:         companyID,
		SKU:               in.SKU,
		Name:              in.Name,
		Description:       in.Description,
		CategoryID:        in.CategoryID,
		PreferredVendorID: in.PreferredVendorID,
		AddedEmployeeID:   in.AddedEmployeeID,
		UnitPrice:         in.UnitPrice,
		CostPrice:         in.CostPrice,
		QuantityOnHand:    in.QuantityOnHand,
		ReorderLevel:      in.ReorderLevel,
		IsActive:          true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto verificando pertenencia a la empresa.
func (uc *ProductUseCase) GetByID(companyID, id string) (*dto.ProductResponse, error) {
	product, err := uc.getOwned(companyID, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update reemplaza los datos del producto. Si cambia el SKU se revalida la
// unicidad por empresa.
func (uc *ProductUseCase) Update(companyID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.getOwned(companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitPrice.IsNegative() || in.CostPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.SKU != "" && in.SKU != product.SKU {
		existing, _ := uc.repo.GetByCompanyAndSKU(companyID, in.SKU)
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	product.SKU = in.SKU
	product.Name = in.Name
	product.Description = in.Description
	product.CategoryID = in.CategoryID
	product.PreferredVendorID = in.PreferredVendorID
	product.UnitPrice = in.UnitPrice
	product.CostPrice = in.CostPrice
	product.QuantityOnHand = in.QuantityOnHand
	product.ReorderLevel = in.ReorderLevel
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos de la empresa con paginación.
func (uc *ProductUseCase) List(companyID string, limit, offset int) ([]*dto.ProductResponse, error) {
	list, err := uc.repo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]*dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, toProductResponse(p))
	}
	return items, nil
}

// Delete elimina un producto de la empresa.
func (uc *ProductUseCase) Delete(companyID, id string) error {
	if _, err := uc.getOwned(companyID, id); err != nil {
		return err
	}
	return uc.repo.Delete(id)
}

// CreateCategory crea una categoría de productos.
func (uc *ProductUseCase) CreateCategory(companyID string, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	category := &entity.ProductCategory{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      in.Name,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	if err := uc.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// ListCategories lista las categorías de la empresa.
func (uc *ProductUseCase) ListCategories(companyID string) ([]*dto.CategoryResponse, error) {
	list, err := uc.categoryRepo.ListByCompany(companyID)
	if err != nil {
		return nil, err
	}
	items := make([]*dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, toCategoryResponse(c))
	}
	return items, nil
}

// DeleteCategory elimina una categoría de la empresa.
func (uc *ProductUseCase) DeleteCategory(companyID, id string) error {
	category, err := uc.categoryRepo.GetByID(id)
	if err != nil || category == nil || category.CompanyID != companyID {
		return domain.ErrNotFound
	}
	return uc.categoryRepo.Delete(id)
}

func (uc *ProductUseCase) getOwned(companyID, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil || product == nil {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return product, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:                p.ID,
		CompanyID:         p.CompanyID,
		SKU:               p.SKU,
		Name:              p.Name,
		Description:       p.Description,
		CategoryID:        p.CategoryID,
		PreferredVendorID: p.PreferredVendorID,
		UnitPrice:         p.UnitPrice,
		CostPrice:         p.CostPrice,
		QuantityOnHand:    p.QuantityOnHand,
		ReorderLevel:      p.ReorderLevel,
		IsActive:          p.IsActive,
	}
}

func toCategoryResponse(c *entity.ProductCategory) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	return &dto.CategoryResponse{
		ID:        c.ID,
		CompanyID: c.CompanyID,
		Name:      c.Name,
		IsActive:  c.IsActive,
	}
}
