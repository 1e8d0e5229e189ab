package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/factura-pyme/internal/application/dto"
	"github.com/tu-usuario/factura-pyme/internal/domain"
	"github.com/tu-usuario/factura-pyme/internal/domain/entity"
	"github.com/tu-usuario/factura-pyme/internal/domain/repository"
)

// CompanyUseCase aplica reglas de negocio para empresas (casos de uso).
// Las tasas de impuesto viven bajo la empresa y se gestionan juntas.
type CompanyUseCase struct {
	repo     repository.CompanyRepository
	rateRepo repository.TaxRateRepository
}

// NewCompanyUseCase construye el caso de uso con los puertos de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository, rateRepo repository.TaxRateRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo, rateRepo: rateRepo}
}

// Create crea una nueva empresa con sus tasas de impuesto.
// Devuelve domain.ErrDuplicate si el número de registro ya existe.
// Las tasas solo se guardan si la empresa es gravable.
func (uc *CompanyUseCase) Create(in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if in.Name == "" || in.RegistrationNumber == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetByRegistrationNumber(in.RegistrationNumber)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.IsTaxable && in.TaxNumber == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	company := &entity.Company{
		ID:                 uuid.New().String(),
		Name:               in.Name,
		IsTaxable:          in.IsTaxable,
		RegistrationNumber: in.RegistrationNumber,
		Address:            in.Address,
		ContactNumber:      in.ContactNumber,
		Email:              in.Email,
		TermsAndConditions: in.TermsAndConditions,
		Notes:              in.Notes,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if in.IsTaxable {
		company.TaxNumber = in.TaxNumber
	}
	if err := uc.repo.Create(company); err != nil {
		return nil, err
	}

	var rates []*entity.TaxRate
	if in.IsTaxable {
		for _, r := range in.TaxRates {
			if r.Rate.IsNegative() {
				return nil, domain.ErrInvalidInput
			}
			rate := &entity.TaxRate{
				ID:        uuid.New().String(),
				CompanyID: company.ID,
				Name:      r.Name,
				Rate:      r.Rate,
				IsDefault: r.IsDefault,
				CreatedAt: now,
			}
			if err := uc.rateRepo.Create(rate); err != nil {
				return nil, err
			}
			rates = append(rates, rate)
		}
	}
	return toCompanyResponse(company, rates), nil
}

// GetByID obtiene una empresa con sus tasas de impuesto.
func (uc *CompanyUseCase) GetByID(id string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(id)
	if err != nil || company == nil {
		return nil, domain.ErrNotFound
	}
	rates, err := uc.rateRepo.ListByCompany(id)
	if err != nil {
		return nil, err
	}
	return toCompanyResponse(company, rates), nil
}

// Update actualiza los campos enviados. Apagar is_taxable limpia el tax_number.
func (uc *CompanyUseCase) Update(id string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(id)
	if err != nil || company == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" {
		company.Name = in.Name
	}
	if in.IsTaxable != nil {
		company.IsTaxable = *in.IsTaxable
		if !company.IsTaxable {
			company.TaxNumber = ""
		}
	}
	if in.TaxNumber != "" && company.IsTaxable {
		company.TaxNumber = in.TaxNumber
	}
	if in.Address != "" {
		company.Address = in.Address
	}
	if in.ContactNumber != "" {
		company.ContactNumber = in.ContactNumber
	}
	if in.Email != "" {
		company.Email = in.Email
	}
	if in.TermsAndConditions != "" {
		company.TermsAndConditions = in.TermsAndConditions
	}
	if in.Notes != "" {
		company.Notes = in.Notes
	}
	company.UpdatedAt = time.Now()
	if err := uc.repo.Update(company); err != nil {
		return nil, err
	}
	rates, err := uc.rateRepo.ListByCompany(id)
	if err != nil {
		return nil, err
	}
	return toCompanyResponse(company, rates), nil
}

// List lista empresas con paginación (cabeceras, sin tasas).
func (uc *CompanyUseCase) List(limit, offset int) ([]*dto.CompanyResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]*dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, toCompanyResponse(c, nil))
	}
	return items, nil
}

// Delete elimina la empresa y sus tasas de impuesto.
func (uc *CompanyUseCase) Delete(id string) error {
	company, err := uc.repo.GetByID(id)
	if err != nil || company == nil {
		return domain.ErrNotFound
	}
	if err := uc.rateRepo.DeleteByCompany(id); err != nil {
		return err
	}
	return uc.repo.Delete(id)
}

// AddTaxRate agrega una tasa a una empresa gravable.
func (uc *CompanyUseCase) AddTaxRate(companyID string, in dto.TaxRateRequest) (*dto.TaxRateResponse, error) {
	company, err := uc.repo.GetByID(companyID)
	if err != nil || company == nil {
		return nil, domain.ErrNotFound
	}
	if !company.IsTaxable {
		return nil, domain.ErrConflict
	}
	if in.Rate.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	rate := &entity.TaxRate{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      in.Name,
		Rate:      in.Rate,
		IsDefault: in.IsDefault,
		CreatedAt: time.Now(),
	}
	if err := uc.rateRepo.Create(rate); err != nil {
		return nil, err
	}
	resp := toTaxRateResponse(rate)
	return &resp, nil
}

// DeleteTaxRate elimina una tasa de la empresa.
func (uc *CompanyUseCase) DeleteTaxRate(companyID, rateID string) error {
	rates, err := uc.rateRepo.ListByCompany(companyID)
	if err != nil {
		return err
	}
	for _, r := range rates {
		if r.ID == rateID {
			return uc.rateRepo.Delete(rateID)
		}
	}
	return domain.ErrNotFound
}

func toTaxRateResponse(r *entity.TaxRate) dto.TaxRateResponse {
	return dto.TaxRateResponse{
		ID:        r.ID,
		CompanyID: r.CompanyID,
		Name:      r.Name,
		Rate:      r.Rate,
		IsDefault: r.IsDefault,
	}
}

func toCompanyResponse(c *entity.Company, rates []*entity.TaxRate) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	resp := &dto.CompanyResponse{
		ID:                 c.ID,
		Name:               c.Name,
		IsTaxable:          c.IsTaxable,
		TaxNumber:          c.TaxNumber,
		RegistrationNumber: c.RegistrationNumber,
		Address:            c.Address,
		ContactNumber:      c.ContactNumber,
		Email:              c.Email,
		TermsAndConditions: c.TermsAndConditions,
		Notes:              c.Notes,
	}
	for _, r := range rates {
		resp.TaxRates = append(resp.TaxRates, toTaxRateResponse(r))
	}
	return resp
}
