package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/factura-pyme/internal/application/dto"
	"github.com/tu-usuario/factura-pyme/internal/domain"
	"github.com/tu-usuario/factura-pyme/internal/domain/entity"
	"github.com/tu-usuario/factura-pyme/internal/domain/repository"
)

// CustomerUseCase casos de uso CRUD para clientes (por empresa).
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create crea un cliente. El saldo inicial arranca igual al opening_balance.
func (uc *CustomerUseCase) Create(companyID string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:                    uuid.New().String(),
		CompanyID:             companyID,
		Name:                  in.Name,
		Email:                 in.Email,
		Phone:                 in.Phone,
		IsTaxable:             in.IsTaxable,
		TaxNumber:             in.TaxNumber,
		CreditLimit:           in.CreditLimit,
		CurrentBalance:        in.OpeningBalance,
		OpeningBalance:        in.OpeningBalance,
		Billing:               toAddress(in.Billing),
		ShippingSameAsBilling: in.ShippingSameAsBilling,
		Shipping:              toAddress(in.Shipping),
		PaymentMethod:         in.PaymentMethod,
		Terms:                 in.Terms,
		DeliveryOption:        in.DeliveryOption,
		IsActive:              true,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if in.ShippingSameAsBilling {
		customer.Shipping = customer.Billing
	}
	if err := uc.repo.Create(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetByID obtiene un cliente verificando pertenencia a la empresa.
func (uc *CustomerUseCase) GetByID(companyID, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.getOwned(companyID, id)
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// Update reemplaza los datos del cliente. OpeningBalance y CurrentBalance
// no se tocan desde aquí.
func (uc *CustomerUseCase) Update(companyID, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.getOwned(companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	customer.Name = in.Name
	customer.Email = in.Email
	customer.Phone = in.Phone
	customer.IsTaxable = in.IsTaxable
	customer.TaxNumber = in.TaxNumber
	customer.CreditLimit = in.CreditLimit
	customer.Billing = toAddress(in.Billing)
	customer.ShippingSameAsBilling = in.ShippingSameAsBilling
	if in.ShippingSameAsBilling {
		customer.Shipping = customer.Billing
	} else {
		customer.Shipping = toAddress(in.Shipping)
	}
	customer.PaymentMethod = in.PaymentMethod
	customer.Terms = in.Terms
	customer.DeliveryOption = in.DeliveryOption
	customer.UpdatedAt = time.Now()
	if err := uc.repo.Update(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// List lista clientes de la empresa con paginación.
func (uc *CustomerUseCase) List(companyID string, limit, offset int) ([]*dto.CustomerResponse, error) {
	list, err := uc.repo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]*dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, toCustomerResponse(c))
	}
	return items, nil
}

// Delete elimina un cliente de la empresa.
func (uc *CustomerUseCase) Delete(companyID, id string) error {
	if _, err := uc.getOwned(companyID, id); err != nil {
		return err
	}
	return uc.repo.Delete(id)
}

func (uc *CustomerUseCase) getOwned(companyID, id string) (*entity.Customer, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil || customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return customer, nil
}

func toAddress(a dto.AddressDTO) entity.Address {
	return entity.Address{
		Line:       a.Line,
		City:       a.City,
		Province:   a.Province,
		PostalCode: a.PostalCode,
		Country:    a.Country,
	}
}

func toAddressDTO(a entity.Address) dto.AddressDTO {
	return dto.AddressDTO{
		Line:       a.Line,
		City:       a.City,
		Province:   a.Province,
		PostalCode: a.PostalCode,
		Country:    a.Country,
	}
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	if c == nil {
		return nil
	}
	return &dto.CustomerResponse{
		ID:                    c.ID,
		CompanyID:             c.CompanyID,
		Name:                  c.Name,
		Email:                 c.Email,
		Phone:                 c.Phone,
		IsTaxable:             c.IsTaxable,
		TaxNumber:             c.TaxNumber,
		CreditLimit:           c.CreditLimit,
		CurrentBalance:        c.CurrentBalance,
		OpeningBalance:        c.OpeningBalance,
		Billing:               toAddressDTO(c.Billing),
		ShippingSameAsBilling: c.ShippingSameAsBilling,
		Shipping:              toAddressDTO(c.Shipping),
		PaymentMethod:         c.PaymentMethod,
		Terms:                 c.Terms,
		DeliveryOption:        c.DeliveryOption,
		IsActive:              c.IsActive,
	}
}
