package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/factura-pyme/internal/domain/pricing"
)

// Estados del ciclo de vida de una factura.
// draft → sent → paid | partially_paid | overdue → cancelled
const (
	InvoiceStatusDraft         = "draft"
	InvoiceStatusSent          = "sent"
	InvoiceStatusPaid          = "paid"
	InvoiceStatusPartiallyPaid = "partially_paid"
	InvoiceStatusOverdue       = "overdue"
	InvoiceStatusCancelled     = "cancelled"
)

// invoiceTransitions define las transiciones de estado permitidas.
// cancelled y paid son terminales; overdue y partially_paid pueden
// seguir recibiendo pagos o cancelarse.
var invoiceTransitions = map[string][]string{
	InvoiceStatusDraft:         {InvoiceStatusSent, InvoiceStatusCancelled},
	InvoiceStatusSent:          {InvoiceStatusPaid, InvoiceStatusPartiallyPaid, InvoiceStatusOverdue, InvoiceStatusCancelled},
	InvoiceStatusPartiallyPaid: {InvoiceStatusPaid, InvoiceStatusOverdue, InvoiceStatusCancelled},
	InvoiceStatusOverdue:       {InvoiceStatusPaid, InvoiceStatusPartiallyPaid, InvoiceStatusCancelled},
}

// CanTransitionInvoice indica si el cambio de estado from → to es legal.
func CanTransitionInvoice(from, to string) bool {
	for _, s := range invoiceTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Invoice representa la cabecera de una factura.
// Los campos derivados (Subtotal, TaxAmount, DiscountAmount, TotalAmount) se
// recalculan SIEMPRE con el motor de precios al crear o editar; nunca se
// confía en valores derivados que lleguen del cliente.
type Invoice struct {
	ID              string
	CompanyID       string
	CustomerID      string
	EmployeeID      string // opcional
	EstimateID      string // opcional: cotización de origen
	InvoiceNumber   string // único
	InvoiceDate     time.Time
	DueDate         time.Time
	DiscountType    pricing.DiscountType
	DiscountValue   decimal.Decimal // porcentaje o monto fijo según DiscountType
	Subtotal        decimal.Decimal
	TaxAmount       decimal.Decimal
	DiscountAmount  decimal.Decimal
	TotalAmount     decimal.Decimal
	PaidAmount      decimal.Decimal
	BalanceDue      decimal.Decimal // TotalAmount - PaidAmount
	Status          string
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

// InvoiceItem es una línea de factura con sus campos derivados.
// ActualUnitPrice y TaxAmount salen de pricing.PriceLine; TotalPrice es
// round2(cantidad * precio unitario).
type InvoiceItem struct {
	ID              string
	InvoiceID       string
	ProductID       string // opcional (líneas libres permitidas)
	ProductName     string
	Description     string
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	ActualUnitPrice decimal.Decimal
	TaxRate         decimal.Decimal // porcentaje (15 = 15%)
	TaxAmount       decimal.Decimal
	TotalPrice      decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
