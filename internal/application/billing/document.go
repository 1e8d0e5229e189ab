package billing

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/factura-pyme/internal/application/dto"
	"github.com/tu-usuario/factura-pyme/internal/domain"
	"github.com/tu-usuario/factura-pyme/internal/domain/entity"
	"github.com/tu-usuario/factura-pyme/internal/domain/pricing"
	"github.com/tu-usuario/factura-pyme/internal/domain/repository"
)

// Formato de fechas en los DTOs (entrada y salida).
const dateLayout = "2006-01-02"

// parseDate interpreta YYYY-MM-DD. Vacío devuelve el cero de time.Time.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, s)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// normalizeDiscount valida el tipo de descuento (fixed por defecto, como el
// formulario original) y rechaza valores negativos.
func normalizeDiscount(t pricing.DiscountType, value decimal.Decimal) (pricing.Discount, error) {
	if t == "" {
		t = pricing.DiscountFixed
	}
	if t != pricing.DiscountPercentage && t != pricing.DiscountFixed {
		return pricing.Discount{}, domain.ErrInvalidInput
	}
	if value.IsNegative() {
		return pricing.Discount{}, domain.ErrInvalidInput
	}
	return pricing.Discount{Type: t, Value: value}, nil
}

// validateItems comprueba el contrato de entrada del motor de precios:
// cantidades, precios y tasas no negativos (el motor es total sobre ese
// dominio y no valida por sí mismo), y al menos una línea con producto.
// Para líneas con producto verifica pertenencia a la empresa y precarga el
// precio de lista cuando unit_price llega en cero.
func validateItems(companyID string, items []dto.DocumentItemRequest, productRepo repository.ProductRepository) error {
	if len(items) == 0 {
		return domain.ErrInvalidInput
	}
	hasValid := false
	for i := range items {
		item := &items[i]
		if item.Quantity.IsNegative() || item.UnitPrice.IsNegative() || item.TaxRate.IsNegative() {
			return domain.ErrInvalidInput
		}
		if item.ProductID == "" {
			continue
		}
		product, err := productRepo.GetByID(item.ProductID)
		if err != nil || product == nil {
			return domain.ErrNotFound
		}
		if product.CompanyID != companyID {
			return domain.ErrForbidden
		}
		if item.ProductName == "" {
			item.ProductName = product.Name
		}
		if item.Description == "" {
			item.Description = product.Description
		}
		if item.UnitPrice.IsZero() {
			item.UnitPrice = product.UnitPrice
		}
		hasValid = true
	}
	if !hasValid {
		return domain.ErrInvalidInput
	}
	return nil
}

// lineInputs proyecta las líneas del DTO a la entrada del motor de precios.
// Los campos derivados que vengan del cliente se descartan aquí.
func lineInputs(items []dto.DocumentItemRequest) []pricing.LineInput {
	lines := make([]pricing.LineInput, len(items))
	for i, item := range items {
		lines[i] = pricing.LineInput{
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			TaxRate:   item.TaxRate,
		}
	}
	return lines
}

// itemResponse proyecta una línea persistida de factura a DTO.
func invoiceItemResponse(it *entity.InvoiceItem) dto.DocumentItemResponse {
	return dto.DocumentItemResponse{
		ID:              it.ID,
		ProductID:       it.ProductID,
		ProductName:     it.ProductName,
		Description:     it.Description,
		Quantity:        it.Quantity,
		UnitPrice:       it.UnitPrice,
		ActualUnitPrice: it.ActualUnitPrice,
		TaxRate:         it.TaxRate,
		TaxAmount:       it.TaxAmount,
		TotalPrice:      it.TotalPrice,
	}
}

func estimateItemResponse(it *entity.EstimateItem) dto.DocumentItemResponse {
	return dto.DocumentItemResponse{
		ID:              it.ID,
		ProductID:       it.ProductID,
		ProductName:     it.ProductName,
		Description:     it.Description,
		Quantity:        it.Quantity,
		UnitPrice:       it.UnitPrice,
		ActualUnitPrice: it.ActualUnitPrice,
		TaxRate:         it.TaxRate,
		TaxAmount:       it.TaxAmount,
		TotalPrice:      it.TotalPrice,
	}
}
