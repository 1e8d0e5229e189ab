// Package pricing implementa el motor de precios de facturas y cotizaciones
// (servicio de dominio, puro y sin estado).
//
// Todas las cifras monetarias se redondean a 2 decimales con redondeo
// "half away from zero" (decimal.Round), una sola vez por campo en el punto
// de cálculo. El orden de las operaciones importa y debe preservarse:
//
//	taxAmount       = round2(cantidad * precioUnitario * tasa / 100)
//	actualUnitPrice = round2(precioUnitario * (100 - tasa) / 100)
//	totalPrice      = round2(cantidad * precioUnitario)
//
// A nivel de documento el subtotal se redondea UNA vez sobre la suma de los
// productos crudos, mientras que el impuesto total es la suma de los
// impuestos ya redondeados por línea. Esa asimetría es intencional: ambos
// lados (formulario y persistencia) deben producir exactamente los mismos
// centavos.
package pricing

import "github.com/shopspring/decimal"

// Tipos de descuento a nivel de documento.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage" // porcentaje del subtotal
	DiscountFixed      DiscountType = "fixed"      // monto fijo en moneda
)

var cien = decimal.NewFromInt(100)

// LineInput es una línea facturable: cantidad, precio unitario (sin impuesto)
// y tasa de impuesto en porcentaje (15 = 15%).
// El motor asume entradas no negativas; el caller valida antes de invocar.
type LineInput struct {
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	TaxRate   decimal.Decimal
}

// LinePricing son los campos derivados de una línea.
// ActualUnitPrice es el precio unitario escalado por el complemento de la
// tasa (precio "deducido de impuesto", solo para mostrar); NO participa en
// el cálculo de totales.
type LinePricing struct {
	TaxAmount       decimal.Decimal
	ActualUnitPrice decimal.Decimal
	TotalPrice      decimal.Decimal
}

// Discount es la configuración de descuento del documento.
type Discount struct {
	Type  DiscountType
	Value decimal.Decimal // porcentaje del subtotal o monto fijo según Type
}

// DocumentTotals son los agregados del documento.
// GrandTotal puede ser negativo si el descuento excede subtotal + impuestos;
// se preserva sin recortar (comportamiento heredado del formulario original).
type DocumentTotals struct {
	Subtotal       decimal.Decimal
	TaxAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	GrandTotal     decimal.Decimal
}

// Round2 redondea a 2 decimales (half away from zero).
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// PriceLine calcula los campos derivados de una línea.
// El producto cantidad*precio se mantiene a precisión completa hasta el
// redondeo final de cada campo.
func PriceLine(quantity, unitPrice, taxRate decimal.Decimal) LinePricing {
	raw := quantity.Mul(unitPrice)
	return LinePricing{
		TaxAmount:       Round2(raw.Mul(taxRate).Div(cien)),
		ActualUnitPrice: Round2(unitPrice.Mul(cien.Sub(taxRate)).Div(cien)),
		TotalPrice:      Round2(raw),
	}
}

// PriceDocument calcula los agregados de un documento completo.
// Subtotal: round2 de la suma de productos crudos (NO de los totales de
// línea ya redondeados). TaxAmount: round2 de la suma de impuestos por
// línea ya redondeados. Secuencia vacía produce ceros.
func PriceDocument(items []LineInput, discount Discount) DocumentTotals {
	var rawSum, taxSum decimal.Decimal
	for _, item := range items {
		rawSum = rawSum.Add(item.Quantity.Mul(item.UnitPrice))
		taxSum = taxSum.Add(PriceLine(item.Quantity, item.UnitPrice, item.TaxRate).TaxAmount)
	}
	subtotal := Round2(rawSum)
	taxTotal := Round2(taxSum)

	var discountAmount decimal.Decimal
	if discount.Type == DiscountPercentage {
		discountAmount = Round2(subtotal.Mul(discount.Value).Div(cien))
	} else {
		discountAmount = Round2(discount.Value)
	}

	return DocumentTotals{
		Subtotal:       subtotal,
		TaxAmount:      taxTotal,
		DiscountAmount: discountAmount,
		GrandTotal:     Round2(subtotal.Sub(discountAmount).Add(taxTotal)),
	}
}

// DiscountValueFromAmount reconstruye el valor editable de descuento a partir
// del monto absoluto persistido. Se usa al cargar un documento guardado cuyo
// formulario edita discount_value pero cuya fila almacena discount_amount.
// Reconstrucción de una sola vía: no garantiza reproducir exactamente el
// valor que el usuario digitó (la pérdida por redondeo se acepta).
func DiscountValueFromAmount(amount, subtotal decimal.Decimal, t DiscountType) decimal.Decimal {
	if amount.IsZero() {
		return decimal.Zero
	}
	if t == DiscountPercentage {
		if subtotal.IsPositive() {
			return Round2(amount.Div(subtotal).Mul(cien))
		}
		return decimal.Zero
	}
	return amount
}
