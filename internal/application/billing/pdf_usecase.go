package billing

import (
	"context"
	"fmt"

	"github.com/tu-usuario/factura-pyme/internal/domain"
	"github.com/tu-usuario/factura-pyme/internal/domain/pricing"
	"github.com/tu-usuario/factura-pyme/internal/domain/repository"
)

// InvoicePDFLine línea ya formateada para el render del PDF.
type InvoicePDFLine struct {
	ProductName string
	Description string
	Quantity    string
	UnitPrice   string
	TaxRate     string
	TaxAmount   string
	TotalPrice  string
}

// InvoicePDFData todo lo que el generador necesita, ya resuelto y formateado.
// El generador no toca repositorios ni el motor de precios.
type InvoicePDFData struct {
	CompanyName    string
	CompanyAddress string
	CompanyContact string
	CompanyEmail   string
	TaxNumber      string

	CustomerName    string
	BillingAddress  string
	ShippingAddress string

	InvoiceNumber string
	InvoiceDate   string
	DueDate       string
	Status        string

	Lines []InvoicePDFLine

	Subtotal       string
	DiscountAmount string
	TaxAmount      string
	TotalAmount    string
	PaidAmount     string
	BalanceDue     string

	Notes string
	Terms string
}

// InvoicePDFGenerator puerto de generación de PDF; la implementación con
// maroto vive en infrastructure/pdf.
type InvoicePDFGenerator interface {
	Generate(data InvoicePDFData) ([]byte, error)
}

// InvoicePDFUseCase arma los datos de una factura y delega el render.
type InvoicePDFUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
	companyRepo  repository.CompanyRepository
	generator    InvoicePDFGenerator
}

// NewInvoicePDFUseCase construye el caso de uso.
func NewInvoicePDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	companyRepo repository.CompanyRepository,
	generator InvoicePDFGenerator,
) *InvoicePDFUseCase {
	return &InvoicePDFUseCase{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		companyRepo:  companyRepo,
		generator:    generator,
	}
}

// Generate devuelve el PDF de la factura. Los montos van formateados con el
// prefijo de moneda del sistema (Rs.) y dos decimales.
func (uc *InvoicePDFUseCase) Generate(ctx context.Context, companyID, invoiceID string) ([]byte, error) {
	inv, err := uc.invoiceRepo.GetByID(invoiceID)
	if err != nil || inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	items, err := uc.invoiceRepo.GetItemsByInvoiceID(invoiceID)
	if err != nil {
		return nil, err
	}
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil || company == nil {
		return nil, domain.ErrNotFound
	}

	data := InvoicePDFData{
		CompanyName:    company.Name,
		CompanyAddress: company.Address,
		CompanyContact: company.ContactNumber,
		CompanyEmail:   company.Email,

		BillingAddress:  inv.BillingAddress,
		ShippingAddress: inv.ShippingAddress,

		InvoiceNumber: inv.InvoiceNumber,
		InvoiceDate:   formatDate(inv.InvoiceDate),
		DueDate:       formatDate(inv.DueDate),
		Status:        inv.Status,

		Subtotal:       pricing.FormatAmount(inv.Subtotal),
		DiscountAmount: pricing.FormatAmount(inv.DiscountAmount),
		TaxAmount:      pricing.FormatAmount(inv.TaxAmount),
		TotalAmount:    pricing.FormatAmount(inv.TotalAmount),
		PaidAmount:     pricing.FormatAmount(inv.PaidAmount),
		BalanceDue:     pricing.FormatAmount(inv.BalanceDue),

		Notes: inv.Notes,
		Terms: inv.Terms,
	}
	if company.IsTaxable {
		data.TaxNumber = company.TaxNumber
	}
	if customer, _ := uc.customerRepo.GetByID(inv.CustomerID); customer != nil {
		data.CustomerName = customer.Name
	}

	data.Lines = make([]InvoicePDFLine, 0, len(items))
	for _, it := range items {
		data.Lines = append(data.Lines, InvoicePDFLine{
			ProductName: it.ProductName,
			Description: it.Description,
			Quantity:    it.Quantity.String(),
			UnitPrice:   pricing.FormatAmount(it.UnitPrice),
			TaxRate:     fmt.Sprintf("%s%%", it.TaxRate.String()),
			TaxAmount:   pricing.FormatAmount(it.TaxAmount),
			TotalPrice:  pricing.FormatAmount(it.TotalPrice),
		})
	}

	return uc.generator.Generate(data)
}
