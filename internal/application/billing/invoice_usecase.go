package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/factura-pyme/internal/application/dto"
	"github.com/tu-usuario/factura-pyme/internal/domain"
	"github.com/tu-usuario/factura-pyme/internal/domain/entity"
	"github.com/tu-usuario/factura-pyme/internal/domain/pricing"
	"github.com/tu-usuario/factura-pyme/internal/domain/repository"
)

// InvoiceUseCase casos de uso de facturas. Todos los campos derivados
// (por línea y agregados) se recalculan con el motor de precios en cada
// creación o edición; los valores que lleguen del cliente se descartan.
type InvoiceUseCase struct {
	txRunner     BillingTxRunner
	customerRepo repository.CustomerRepository
	employeeRepo repository.EmployeeRepository
	productRepo  repository.ProductRepository
	invoiceRepo  repository.InvoiceRepository
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	txRunner BillingTxRunner,
	customerRepo repository.CustomerRepository,
	employeeRepo repository.EmployeeRepository,
	productRepo repository.ProductRepository,
	invoiceRepo repository.InvoiceRepository,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		txRunner:     txRunner,
		customerRepo: customerRepo,
		employeeRepo: employeeRepo,
		productRepo:  productRepo,
		invoiceRepo:  invoiceRepo,
	}
}

// validateHeader valida cliente, empleado y fechas de la petición.
func (uc *InvoiceUseCase) validateHeader(companyID string, in *dto.CreateInvoiceRequest) (invoiceDate, dueDate time.Time, err error) {
	if in.CustomerID == "" {
		return invoiceDate, dueDate, domain.ErrInvalidInput
	}
	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil || customer == nil {
		return invoiceDate, dueDate, domain.ErrNotFound
	}
	if customer.CompanyID != companyID {
		return invoiceDate, dueDate, domain.ErrForbidden
	}
	if in.EmployeeID != "" {
		employee, err := uc.employeeRepo.GetByID(in.EmployeeID)
		if err != nil || employee == nil {
			return invoiceDate, dueDate, domain.ErrNotFound
		}
	}
	invoiceDate, err = parseDate(in.InvoiceDate)
	if err != nil || invoiceDate.IsZero() {
		return invoiceDate, dueDate, domain.ErrInvalidInput
	}
	dueDate, err = parseDate(in.DueDate)
	if err != nil || dueDate.IsZero() {
		return invoiceDate, dueDate, domain.ErrInvalidInput
	}
	return invoiceDate, dueDate, nil
}

// Create crea una factura con sus líneas en una transacción.
// Si invoice_number va vacío se genera INV-<unix-ms>.
func (uc *InvoiceUseCase) Create(ctx context.Context, companyID string, in dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	invoiceDate, dueDate, err := uc.validateHeader(companyID, &in)
	if err != nil {
		return nil, err
	}
	if err := validateItems(companyID, in.Items, uc.productRepo); err != nil {
		return nil, err
	}
	discount, err := normalizeDiscount(in.DiscountType, in.DiscountValue)
	if err != nil {
		return nil, err
	}

	number := in.InvoiceNumber
	if number == "" {
		number = fmt.Sprintf("INV-%d", time.Now().UnixMilli())
	}
	if existing, _ := uc.invoiceRepo.GetByNumber(companyID, number); existing != nil {
		return nil, domain.ErrDuplicate
	}

	totals := pricing.PriceDocument(lineInputs(in.Items), discount)

	now := time.Now()
	inv := &entity.Invoice{
		ID:              uuid.New().String(),
		CompanyID:       companyID,
		CustomerID:      in.CustomerID,
		EmployeeID:      in.EmployeeID,
		EstimateID:      in.EstimateID,
		InvoiceNumber:   number,
		InvoiceDate:     invoiceDate,
		DueDate:         dueDate,
		DiscountType:    discount.Type,
		DiscountValue:   discount.Value,
		Subtotal:        totals.Subtotal,
		TaxAmount:       totals.TaxAmount,
		DiscountAmount:  totals.DiscountAmount,
		TotalAmount:     totals.GrandTotal,
		PaidAmount:      decimal.Zero,
		BalanceDue:      totals.GrandTotal,
		Status:          entity.InvoiceStatusDraft,
		Notes:           in.Notes,
		Terms:           in.Terms,
		ShippingAddress: in.ShippingAddress,
		BillingAddress:  in.BillingAddress,
		ShipVia:         in.ShipVia,
		ShippingDate:    in.ShippingDate,
		TrackingNumber:  in.TrackingNumber,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	items := uc.buildItems(inv.ID, in.Items, now)

	err = uc.txRunner.RunBilling(ctx, func(invoiceRepo repository.InvoiceRepository, _ repository.EstimateRepository) error {
		if err := invoiceRepo.Create(inv); err != nil {
			return err
		}
		for _, item := range items {
			if err := invoiceRepo.CreateItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponse(inv, items), nil
}

// Update reemplaza cabecera y líneas de una factura existente.
// paid_amount y status se preservan; balance_due se recalcula contra el
// nuevo total.
func (uc *InvoiceUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	existing, err := uc.getOwned(companyID, id)
	if err != nil {
		return nil, err
	}
	invoiceDate, dueDate, err := uc.validateHeader(companyID, &in)
	if err != nil {
		return nil, err
	}
	if err := validateItems(companyID, in.Items, uc.productRepo); err != nil {
		return nil, err
	}
	discount, err := normalizeDiscount(in.DiscountType, in.DiscountValue)
	if err != nil {
		return nil, err
	}

	totals := pricing.PriceDocument(lineInputs(in.Items), discount)

	now := time.Now()
	inv := *existing
	inv.CustomerID = in.CustomerID
	inv.EmployeeID = in.EmployeeID
	inv.InvoiceDate = invoiceDate
	inv.DueDate = dueDate
	inv.DiscountType = discount.Type
	inv.DiscountValue = discount.Value
	inv.Subtotal = totals.Subtotal
	inv.TaxAmount = totals.TaxAmount
	inv.DiscountAmount = totals.DiscountAmount
	inv.TotalAmount = totals.GrandTotal
	inv.BalanceDue = totals.GrandTotal.Sub(inv.PaidAmount)
	inv.Notes = in.Notes
	inv.Terms = in.Terms
	inv.ShippingAddress = in.ShippingAddress
	inv.BillingAddress = in.BillingAddress
	inv.ShipVia = in.ShipVia
	inv.ShippingDate = in.ShippingDate
	inv.TrackingNumber = in.TrackingNumber
	inv.UpdatedAt = now

	items := uc.buildItems(inv.ID, in.Items, now)

	err = uc.txRunner.RunBilling(ctx, func(invoiceRepo repository.InvoiceRepository, _ repository.EstimateRepository) error {
		if err := invoiceRepo.Update(&inv); err != nil {
			return err
		}
		if err := invoiceRepo.DeleteItemsByInvoiceID(inv.ID); err != nil {
			return err
		}
		for _, item := range items {
			if err := invoiceRepo.CreateItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponse(&inv, items), nil
}

// Get obtiene una factura con sus líneas.
func (uc *InvoiceUseCase) Get(ctx context.Context, companyID, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.getOwned(companyID, id)
	if err != nil {
		return nil, err
	}
	items, err := uc.invoiceRepo.GetItemsByInvoiceID(id)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(inv, items), nil
}

// List lista las facturas de la empresa (solo cabeceras).
func (uc *InvoiceUseCase) List(ctx context.Context, companyID string, limit, offset int) ([]*dto.InvoiceResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	invoices, err := uc.invoiceRepo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, uc.toResponse(inv, nil))
	}
	return out, nil
}

// Delete borra la factura y sus líneas.
func (uc *InvoiceUseCase) Delete(ctx context.Context, companyID, id string) error {
	if _, err := uc.getOwned(companyID, id); err != nil {
		return err
	}
	return uc.txRunner.RunBilling(ctx, func(invoiceRepo repository.InvoiceRepository, _ repository.EstimateRepository) error {
		if err := invoiceRepo.DeleteItemsByInvoiceID(id); err != nil {
			return err
		}
		return invoiceRepo.Delete(id)
	})
}

// RecordPayment registra un pago: acumula paid_amount, recalcula balance_due
// y mueve el estado a paid o partially_paid según el saldo.
func (uc *InvoiceUseCase) RecordPayment(ctx context.Context, companyID, id string, in dto.RecordPaymentRequest) (*dto.InvoiceResponse, error) {
	inv, err := uc.getOwned(companyID, id)
	if err != nil {
		return nil, err
	}
	if !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	if inv.Status == entity.InvoiceStatusCancelled || inv.Status == entity.InvoiceStatusDraft {
		return nil, domain.ErrConflict
	}

	inv.PaidAmount = inv.PaidAmount.Add(in.Amount)
	inv.BalanceDue = inv.TotalAmount.Sub(inv.PaidAmount)
	if inv.PaidAmount.GreaterThanOrEqual(inv.TotalAmount) {
		inv.Status = entity.InvoiceStatusPaid
	} else {
		inv.Status = entity.InvoiceStatusPartiallyPaid
	}
	inv.UpdatedAt = time.Now()

	if err := uc.invoiceRepo.Update(inv); err != nil {
		return nil, err
	}
	return uc.toResponse(inv, nil), nil
}

// UpdateStatus cambia el estado respetando las transiciones legales.
func (uc *InvoiceUseCase) UpdateStatus(ctx context.Context, companyID, id, status string) (*dto.InvoiceResponse, error) {
	inv, err := uc.getOwned(companyID, id)
	if err != nil {
		return nil, err
	}
	if !entity.CanTransitionInvoice(inv.Status, status) {
		return nil, domain.ErrInvalidTransition
	}
	inv.Status = status
	inv.UpdatedAt = time.Now()
	if err := uc.invoiceRepo.Update(inv); err != nil {
		return nil, err
	}
	return uc.toResponse(inv, nil), nil
}

// getOwned obtiene la factura y verifica pertenencia a la empresa.
func (uc *InvoiceUseCase) getOwned(companyID, id string) (*entity.Invoice, error) {
	inv, err := uc.invoiceRepo.GetByID(id)
	if err != nil || inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return inv, nil
}

// buildItems materializa las líneas con sus campos derivados vía PriceLine.
func (uc *InvoiceUseCase) buildItems(invoiceID string, items []dto.DocumentItemRequest, now time.Time) []*entity.InvoiceItem {
	out := make([]*entity.InvoiceItem, 0, len(items))
	for _, item := range items {
		lp := pricing.PriceLine(item.Quantity, item.UnitPrice, item.TaxRate)
		out = append(out, &entity.InvoiceItem{
			ID:              uuid.New().String(),
			InvoiceID:       invoiceID,
			ProductID:       item.ProductID,
			ProductName:     item.ProductName,
			Description:     item.Description,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
			ActualUnitPrice: lp.ActualUnitPrice,
			TaxRate:         item.TaxRate,
			TaxAmount:       lp.TaxAmount,
			TotalPrice:      lp.TotalPrice,
			CreatedAt:       now,
			UpdatedAt:       now,
		})
	}
	return out
}

func (uc *InvoiceUseCase) toResponse(inv *entity.Invoice, items []*entity.InvoiceItem) *dto.InvoiceResponse {
	customerName := ""
	if customer, _ := uc.customerRepo.GetByID(inv.CustomerID); customer != nil {
		customerName = customer.Name
	}
	// Documentos antiguos pueden tener discount_amount persistido sin
	// discount_value: se reconstruye el valor editable (una sola vía,
	// pérdida por redondeo aceptada).
	discountValue := inv.DiscountValue
	if discountValue.IsZero() && !inv.DiscountAmount.IsZero() {
		discountValue = pricing.DiscountValueFromAmount(inv.DiscountAmount, inv.Subtotal, inv.DiscountType)
	}
	resp := &dto.InvoiceResponse{
		ID:              inv.ID,
		CompanyID:       inv.CompanyID,
		CustomerID:      inv.CustomerID,
		CustomerName:    customerName,
		EmployeeID:      inv.EmployeeID,
		EstimateID:      inv.EstimateID,
		InvoiceNumber:   inv.InvoiceNumber,
		InvoiceDate:     formatDate(inv.InvoiceDate),
		DueDate:         formatDate(inv.DueDate),
		Subtotal:        inv.Subtotal,
		TaxAmount:       inv.TaxAmount,
		DiscountType:    inv.DiscountType,
		DiscountValue:   discountValue,
		DiscountAmount:  inv.DiscountAmount,
		TotalAmount:     inv.TotalAmount,
		PaidAmount:      inv.PaidAmount,
		BalanceDue:      inv.BalanceDue,
		Status:          inv.Status,
		Notes:           inv.Notes,
		Terms:           inv.Terms,
		ShippingAddress: inv.ShippingAddress,
		BillingAddress:  inv.BillingAddress,
		ShipVia:         inv.ShipVia,
		ShippingDate:    inv.ShippingDate,
		TrackingNumber:  inv.TrackingNumber,
		Items:           make([]dto.DocumentItemResponse, 0, len(items)),
	}
	for _, it := range items {
		resp.Items = append(resp.Items, invoiceItemResponse(it))
	}
	return resp
}
