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

// EstimateUseCase casos de uso de cotizaciones. Comparte el motor de precios
// con las facturas: mismos centavos para las mismas líneas.
type EstimateUseCase struct {
	txRunner     BillingTxRunner
	customerRepo repository.CustomerRepository
	employeeRepo repository.EmployeeRepository
	productRepo  repository.ProductRepository
	estimateRepo repository.EstimateRepository
	invoiceRepo  repository.InvoiceRepository
}

// NewEstimateUseCase construye el caso de uso.
func NewEstimateUseCase(
	txRunner BillingTxRunner,
	customerRepo repository.CustomerRepository,
	employeeRepo repository.EmployeeRepository,
	productRepo repository.ProductRepository,
	estimateRepo repository.EstimateRepository,
	invoiceRepo repository.InvoiceRepository,
) *EstimateUseCase {
	return &EstimateUseCase{
		txRunner:     txRunner,
		customerRepo: customerRepo,
		employeeRepo: employeeRepo,
		productRepo:  productRepo,
		estimateRepo: estimateRepo,
		invoiceRepo:  invoiceRepo,
	}
}

// Create crea una cotización con sus líneas en una transacción.
// Si estimate_number va vacío se genera EST-<unix-ms>.
func (uc *EstimateUseCase) Create(ctx context.Context, companyID string, in dto.CreateEstimateRequest) (*dto.EstimateResponse, error) {
	estimateDate, expiryDate, err := uc.validateHeader(companyID, &in)
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

	number := in.EstimateNumber
	if number == "" {
		number = fmt.Sprintf("EST-%d", time.Now().UnixMilli())
	}
	if existing, _ := uc.estimateRepo.GetByNumber(companyID, number); existing != nil {
		return nil, domain.ErrDuplicate
	}

	totals := pricing.PriceDocument(lineInputs(in.Items), discount)

	now := time.Now()
	est := &entity.Estimate{
		ID:              uuid.New().String(),
		CompanyID:       companyID,
		CustomerID:      in.CustomerID,
		EmployeeID:      in.EmployeeID,
		EstimateNumber:  number,
		EstimateDate:    estimateDate,
		ExpiryDate:      expiryDate,
		DiscountType:    discount.Type,
		DiscountValue:   discount.Value,
		Subtotal:        totals.Subtotal,
		TaxAmount:       totals.TaxAmount,
		DiscountAmount:  totals.DiscountAmount,
		TotalAmount:     totals.GrandTotal,
		Status:          entity.EstimateStatusPending,
		IsActive:        true,
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
	items := buildEstimateItems(est.ID, in.Items)

	err = uc.txRunner.RunBilling(ctx, func(_ repository.InvoiceRepository, estimateRepo repository.EstimateRepository) error {
		if err := estimateRepo.Create(est); err != nil {
			return err
		}
		for _, item := range items {
			if err := estimateRepo.CreateItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponse(est, items), nil
}

// Update reemplaza cabecera y líneas de una cotización en estado editable
// (pending o declined). Una cotización cerrada o aceptada no se edita.
func (uc *EstimateUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateEstimateRequest) (*dto.EstimateResponse, error) {
	existing, err := uc.getOwned(companyID, id)
	if err != nil {
		return nil, err
	}
	if existing.Status == entity.EstimateStatusClosed || existing.Status == entity.EstimateStatusAccepted {
		return nil, domain.ErrConflict
	}
	estimateDate, expiryDate, err := uc.validateHeader(companyID, &in)
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

	est := *existing
	est.CustomerID = in.CustomerID
	est.EmployeeID = in.EmployeeID
	est.EstimateDate = estimateDate
	est.ExpiryDate = expiryDate
	est.DiscountType = discount.Type
	est.DiscountValue = discount.Value
	est.Subtotal = totals.Subtotal
	est.TaxAmount = totals.TaxAmount
	est.DiscountAmount = totals.DiscountAmount
	est.TotalAmount = totals.GrandTotal
	est.Notes = in.Notes
	est.Terms = in.Terms
	est.ShippingAddress = in.ShippingAddress
	est.BillingAddress = in.BillingAddress
	est.ShipVia = in.ShipVia
	est.ShippingDate = in.ShippingDate
	est.TrackingNumber = in.TrackingNumber
	est.UpdatedAt = time.Now()

	items := buildEstimateItems(est.ID, in.Items)

	err = uc.txRunner.RunBilling(ctx, func(_ repository.InvoiceRepository, estimateRepo repository.EstimateRepository) error {
		if err := estimateRepo.Update(&est); err != nil {
			return err
		}
		if err := estimateRepo.DeleteItemsByEstimateID(est.ID); err != nil {
			return err
		}
		for _, item := range items {
			if err := estimateRepo.CreateItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponse(&est, items), nil
}

// Get obtiene una cotización con sus líneas.
func (uc *EstimateUseCase) Get(ctx context.Context, companyID, id string) (*dto.EstimateResponse, error) {
	est, err := uc.getOwned(companyID, id)
	if err != nil {
		return nil, err
	}
	items, err := uc.estimateRepo.GetItemsByEstimateID(id)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(est, items), nil
}

// List lista las cotizaciones de la empresa (solo cabeceras).
func (uc *EstimateUseCase) List(ctx context.Context, companyID string, limit, offset int) ([]*dto.EstimateResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	estimates, err := uc.estimateRepo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.EstimateResponse, 0, len(estimates))
	for _, est := range estimates {
		out = append(out, uc.toResponse(est, nil))
	}
	return out, nil
}

// Delete elimina una cotización y sus líneas. Una cotización ya convertida
// (closed con invoice_id) no se elimina para no romper el enlace con la factura.
func (uc *EstimateUseCase) Delete(ctx context.Context, companyID, id string) error {
	est, err := uc.getOwned(companyID, id)
	if err != nil {
		return err
	}
	if est.InvoiceID != "" {
		return domain.ErrConflict
	}
	return uc.txRunner.RunBilling(ctx, func(_ repository.InvoiceRepository, estimateRepo repository.EstimateRepository) error {
		if err := estimateRepo.DeleteItemsByEstimateID(id); err != nil {
			return err
		}
		return estimateRepo.Delete(id)
	})
}

// UpdateStatus cambia el estado respetando las transiciones legales.
func (uc *EstimateUseCase) UpdateStatus(ctx context.Context, companyID, id, status string) (*dto.EstimateResponse, error) {
	est, err := uc.getOwned(companyID, id)
	if err != nil {
		return nil, err
	}
	if !entity.CanTransitionEstimate(est.Status, status) {
		return nil, domain.ErrInvalidTransition
	}
	est.Status = status
	est.UpdatedAt = time.Now()
	if err := uc.estimateRepo.Update(est); err != nil {
		return nil, err
	}
	return uc.toResponse(est, nil), nil
}

// ConvertToInvoice genera una factura desde una cotización aceptada, en una
// sola transacción: crea la factura con las líneas re-tarificadas, cierra la
// cotización y deja el enlace invoice_id. Las líneas pasan otra vez por el
// motor de precios en lugar de copiar los derivados persistidos.
func (uc *EstimateUseCase) ConvertToInvoice(ctx context.Context, companyID, id string) (*dto.InvoiceResponse, error) {
	est, err := uc.getOwned(companyID, id)
	if err != nil {
		return nil, err
	}
	if est.Status != entity.EstimateStatusAccepted {
		return nil, domain.ErrConflict
	}
	estItems, err := uc.estimateRepo.GetItemsByEstimateID(id)
	if err != nil {
		return nil, err
	}
	if len(estItems) == 0 {
		return nil, domain.ErrInvalidInput
	}

	lines := make([]pricing.LineInput, len(estItems))
	for i, it := range estItems {
		lines[i] = pricing.LineInput{Quantity: it.Quantity, UnitPrice: it.UnitPrice, TaxRate: it.TaxRate}
	}
	totals := pricing.PriceDocument(lines, pricing.Discount{Type: est.DiscountType, Value: est.DiscountValue})

	now := time.Now()
	inv := &entity.Invoice{
		ID:              uuid.New().String(),
		CompanyID:       companyID,
		CustomerID:      est.CustomerID,
		EmployeeID:      est.EmployeeID,
		EstimateID:      est.ID,
		InvoiceNumber:   fmt.Sprintf("INV-%d", now.UnixMilli()),
		InvoiceDate:     now,
		DueDate:         now.AddDate(0, 0, 30), // vencimiento por defecto a 30 días
		DiscountType:    est.DiscountType,
		DiscountValue:   est.DiscountValue,
		Subtotal:        totals.Subtotal,
		TaxAmount:       totals.TaxAmount,
		DiscountAmount:  totals.DiscountAmount,
		TotalAmount:     totals.GrandTotal,
		PaidAmount:      decimal.Zero,
		BalanceDue:      totals.GrandTotal,
		Status:          entity.InvoiceStatusDraft,
		Notes:           est.Notes,
		Terms:           est.Terms,
		ShippingAddress: est.ShippingAddress,
		BillingAddress:  est.BillingAddress,
		ShipVia:         est.ShipVia,
		ShippingDate:    est.ShippingDate,
		TrackingNumber:  est.TrackingNumber,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	invItems := make([]*entity.InvoiceItem, 0, len(estItems))
	for _, it := range estItems {
		lp := pricing.PriceLine(it.Quantity, it.UnitPrice, it.TaxRate)
		invItems = append(invItems, &entity.InvoiceItem{
			ID:              uuid.New().String(),
			InvoiceID:       inv.ID,
			ProductID:       it.ProductID,
			ProductName:     it.ProductName,
			Description:     it.Description,
			Quantity:        it.Quantity,
			UnitPrice:       it.UnitPrice,
			ActualUnitPrice: lp.ActualUnitPrice,
			TaxRate:         it.TaxRate,
			TaxAmount:       lp.TaxAmount,
			TotalPrice:      lp.TotalPrice,
			CreatedAt:       now,
			UpdatedAt:       now,
		})
	}

	err = uc.txRunner.RunBilling(ctx, func(invoiceRepo repository.InvoiceRepository, estimateRepo repository.EstimateRepository) error {
		if err := invoiceRepo.Create(inv); err != nil {
			return err
		}
		for _, item := range invItems {
			if err := invoiceRepo.CreateItem(item); err != nil {
				return err
			}
		}
		est.Status = entity.EstimateStatusClosed
		est.InvoiceID = inv.ID
		est.UpdatedAt = now
		return estimateRepo.Update(est)
	})
	if err != nil {
		return nil, err
	}

	customerName := ""
	if customer, _ := uc.customerRepo.GetByID(inv.CustomerID); customer != nil {
		customerName = customer.Name
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
		DiscountValue:   inv.DiscountValue,
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
		Items:           make([]dto.DocumentItemResponse, 0, len(invItems)),
	}
	for _, it := range invItems {
		resp.Items = append(resp.Items, invoiceItemResponse(it))
	}
	return resp, nil
}

func (uc *EstimateUseCase) validateHeader(companyID string, in *dto.CreateEstimateRequest) (estimateDate, expiryDate time.Time, err error) {
	if in.CustomerID == "" {
		return estimateDate, expiryDate, domain.ErrInvalidInput
	}
	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil || customer == nil {
		return estimateDate, expiryDate, domain.ErrNotFound
	}
	if customer.CompanyID != companyID {
		return estimateDate, expiryDate, domain.ErrForbidden
	}
	if in.EmployeeID != "" {
		employee, err := uc.employeeRepo.GetByID(in.EmployeeID)
		if err != nil || employee == nil {
			return estimateDate, expiryDate, domain.ErrNotFound
		}
	}
	estimateDate, err = parseDate(in.EstimateDate)
	if err != nil || estimateDate.IsZero() {
		return estimateDate, expiryDate, domain.ErrInvalidInput
	}
	expiryDate, err = parseDate(in.ExpiryDate) // opcional
	if err != nil {
		return estimateDate, expiryDate, domain.ErrInvalidInput
	}
	return estimateDate, expiryDate, nil
}

func (uc *EstimateUseCase) getOwned(companyID, id string) (*entity.Estimate, error) {
	est, err := uc.estimateRepo.GetByID(id)
	if err != nil || est == nil {
		return nil, domain.ErrNotFound
	}
	if est.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return est, nil
}

func buildEstimateItems(estimateID string, items []dto.DocumentItemRequest) []*entity.EstimateItem {
	out := make([]*entity.EstimateItem, 0, len(items))
	for _, item := range items {
		lp := pricing.PriceLine(item.Quantity, item.UnitPrice, item.TaxRate)
		out = append(out, &entity.EstimateItem{
			ID:              uuid.New().String(),
			EstimateID:      estimateID,
			ProductID:       item.ProductID,
			ProductName:     item.ProductName,
			Description:     item.Description,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
			ActualUnitPrice: lp.ActualUnitPrice,
			TaxRate:         item.TaxRate,
			TaxAmount:       lp.TaxAmount,
			TotalPrice:      lp.TotalPrice,
		})
	}
	return out
}

func (uc *EstimateUseCase) toResponse(est *entity.Estimate, items []*entity.EstimateItem) *dto.EstimateResponse {
	customerName := ""
	if customer, _ := uc.customerRepo.GetByID(est.CustomerID); customer != nil {
		customerName = customer.Name
	}
	discountValue := est.DiscountValue
	if discountValue.IsZero() && !est.DiscountAmount.IsZero() {
		discountValue = pricing.DiscountValueFromAmount(est.DiscountAmount, est.Subtotal, est.DiscountType)
	}
	resp := &dto.EstimateResponse{
		ID:              est.ID,
		CompanyID:       est.CompanyID,
		CustomerID:      est.CustomerID,
		CustomerName:    customerName,
		EmployeeID:      est.EmployeeID,
		EstimateNumber:  est.EstimateNumber,
		EstimateDate:    formatDate(est.EstimateDate),
		ExpiryDate:      formatDate(est.ExpiryDate),
		Subtotal:        est.Subtotal,
		TaxAmount:       est.TaxAmount,
		DiscountType:    est.DiscountType,
		DiscountValue:   discountValue,
		DiscountAmount:  est.DiscountAmount,
		TotalAmount:     est.TotalAmount,
		Status:          est.Status,
		InvoiceID:       est.InvoiceID,
		Notes:           est.Notes,
		Terms:           est.Terms,
		ShippingAddress: est.ShippingAddress,
		BillingAddress:  est.BillingAddress,
		ShipVia:         est.ShipVia,
		ShippingDate:    est.ShippingDate,
		TrackingNumber:  est.TrackingNumber,
		Items:           make([]dto.DocumentItemResponse, 0, len(items)),
	}
	for _, it := range items {
		resp.Items = append(resp.Items, estimateItemResponse(it))
	}
	return resp
}
