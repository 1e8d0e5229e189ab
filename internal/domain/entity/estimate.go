package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/factura-pyme/internal/domain/pricing"
)

// Estados de una cotización.
// pending → accepted | declined → closed (closed al convertirse en factura)
const (
	EstimateStatusPending  = "pending"
	EstimateStatusAccepted = "accepted"
	EstimateStatusDeclined = "declined"
	EstimateStatusClosed   = "closed"
)

var estimateTransitions = map[string][]string{
	EstimateStatusPending:  {EstimateStatusAccepted, EstimateStatusDeclined, EstimateStatusClosed},
	EstimateStatusAccepted: {EstimateStatusClosed, EstimateStatusDeclined},
	EstimateStatusDeclined: {EstimateStatusPending},
}

// CanTransitionEstimate indica si el cambio de estado from → to es legal.
func CanTransitionEstimate(from, to string) bool {
	for _, s := range estimateTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Estimate representa una cotización. Comparte el motor de precios con la
// factura; al aceptarse puede convertirse en una (ver InvoiceID).
type Estimate struct {
	ID              string
	CompanyID       string
	CustomerID      string
	EmployeeID      string // opcional
	EstimateNumber  string // único
	EstimateDate    time.Time
	ExpiryDate      time.Time
	DiscountType    pricing.DiscountType
	DiscountValue   decimal.Decimal
	Subtotal        decimal.Decimal
	TaxAmount       decimal.Decimal
	DiscountAmount  decimal.Decimal
	TotalAmount     decimal.Decimal
	Status          string
	InvoiceID       string // factura generada a partir de esta cotización
	IsActive        bool
	Notes           string
	Terms           string
	ShippingAddress string
	BillingAddress  string
	ShipVia         string
	ShippingDate    string
	TrackingNumber  string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// EstimateItem es una línea de cotización (mismos campos derivados que la factura).
type EstimateItem struct {
	ID              string
	EstimateID      string
	ProductID       string
	ProductName     string
	Description     string
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	ActualUnitPrice decimal.Decimal
	TaxRate         decimal.Decimal
	TaxAmount       decimal.Decimal
	TotalPrice      decimal.Decimal
}
