package dto

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/factura-pyme/internal/domain/pricing"
)

// DocumentItemRequest línea de factura o cotización tal como la envía el
// formulario. Los campos derivados (tax_amount, actual_unit_price,
// total_price) se aceptan por compatibilidad con el cliente pero se IGNORAN:
// el servidor los recalcula siempre con el motor de precios.
type DocumentItemRequest struct {
	ProductID   string          `json:"product_id,omitempty"`
	ProductName string          `json:"product_name,omitempty"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"` // porcentaje (15 = 15%)

	// Derivados enviados por el cliente; no se confía en ellos.
	TaxAmount       decimal.Decimal `json:"tax_amount,omitempty"`
	ActualUnitPrice decimal.Decimal `json:"actual_unit_price,omitempty"`
	TotalPrice      decimal.Decimal `json:"total_price,omitempty"`
}

// DocumentItemResponse línea con los campos derivados recalculados.
type DocumentItemResponse struct {
	ID              string          `json:"id"`
	ProductID       string          `json:"product_id,omitempty"`
	ProductName     string          `json:"product_name,omitempty"`
	Description     string          `json:"description"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	ActualUnitPrice decimal.Decimal `json:"actual_unit_price"`
	TaxRate         decimal.Decimal `json:"tax_rate"`
	TaxAmount       decimal.Decimal `json:"tax_amount"`
	TotalPrice      decimal.Decimal `json:"total_price"`
}

// CreateInvoiceRequest body para POST /api/invoices.
// Si InvoiceNumber va vacío, el servidor genera uno (INV-<unix-ms>).
type CreateInvoiceRequest struct {
	InvoiceNumber   string                `json:"invoice_number,omitempty"`
	CustomerID      string                `json:"customer_id"`
	EmployeeID      string                `json:"employee_id,omitempty"`
	EstimateID      string                `json:"estimate_id,omitempty"`
	InvoiceDate     string                `json:"invoice_date"` // YYYY-MM-DD
	DueDate         string                `json:"due_date"`     // YYYY-MM-DD
	DiscountType    pricing.DiscountType  `json:"discount_type"`
	DiscountValue   decimal.Decimal       `json:"discount_value"`
	Notes           string                `json:"notes,omitempty"`
	Terms           string                `json:"terms,omitempty"`
	ShippingAddress string                `json:"shipping_address,omitempty"`
	BillingAddress  string                `json:"billing_address,omitempty"`
	ShipVia         string                `json:"ship_via,omitempty"`
	ShippingDate    string                `json:"shipping_date,omitempty"`
	TrackingNumber  string                `json:"tracking_number,omitempty"`
	Items           []DocumentItemRequest `json:"items"`
}

// UpdateInvoiceRequest body para PUT /api/invoices/:id (mismos campos;
// paid_amount y status se preservan del registro existente).
type UpdateInvoiceRequest = CreateInvoiceRequest

// InvoiceResponse factura completa con totales recalculados.
type InvoiceResponse struct {
	ID              string                 `json:"id"`
	CompanyID       string                 `json:"company_id"`
	CustomerID      string                 `json:"customer_id"`
	CustomerName    string                 `json:"customer_name,omitempty"`
	EmployeeID      string                 `json:"employee_id,omitempty"`
	EstimateID      string                 `json:"estimate_id,omitempty"`
	InvoiceNumber   string                 `json:"invoice_number"`
	InvoiceDate     string                 `json:"invoice_date"`
	DueDate         string                 `json:"due_date"`
	Subtotal        decimal.Decimal        `json:"subtotal"`
	TaxAmount       decimal.Decimal        `json:"tax_amount"`
	DiscountType    pricing.DiscountType   `json:"discount_type"`
	DiscountValue   decimal.Decimal        `json:"discount_value"`
	DiscountAmount  decimal.Decimal        `json:"discount_amount"`
	TotalAmount     decimal.Decimal        `json:"total_amount"`
	PaidAmount      decimal.Decimal        `json:"paid_amount"`
	BalanceDue      decimal.Decimal        `json:"balance_due"`
	Status          string                 `json:"status"`
	Notes           string                 `json:"notes,omitempty"`
	Terms           string                 `json:"terms,omitempty"`
	ShippingAddress string                 `json:"shipping_address,omitempty"`
	BillingAddress  string                 `json:"billing_address,omitempty"`
	ShipVia         string                 `json:"ship_via,omitempty"`
	ShippingDate    string                 `json:"shipping_date,omitempty"`
	TrackingNumber  string                 `json:"tracking_number,omitempty"`
	Items           []DocumentItemResponse `json:"items"`
}

// RecordPaymentRequest body para POST /api/invoices/:id/payments.
type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// UpdateStatusRequest body para PATCH /api/invoices/:id/status (y cotizaciones).
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// CreateEstimateRequest body para POST /api/estimates.
type CreateEstimateRequest struct {
	EstimateNumber  string                `json:"estimate_number,omitempty"`
	CustomerID      string                `json:"customer_id"`
	EmployeeID      string                `json:"employee_id,omitempty"`
	EstimateDate    string                `json:"estimate_date"`
	ExpiryDate      string                `json:"expiry_date,omitempty"`
	DiscountType    pricing.DiscountType  `json:"discount_type"`
	DiscountValue   decimal.Decimal       `json:"discount_value"`
	Notes           string                `json:"notes,omitempty"`
	Terms           string                `json:"terms,omitempty"`
	ShippingAddress string                `json:"shipping_address,omitempty"`
	BillingAddress  string                `json:"billing_address,omitempty"`
	ShipVia         string                `json:"ship_via,omitempty"`
	ShippingDate    string                `json:"shipping_date,omitempty"`
	TrackingNumber  string                `json:"tracking_number,omitempty"`
	Items           []DocumentItemRequest `json:"items"`
}

// UpdateEstimateRequest body para PUT /api/estimates/:id.
type UpdateEstimateRequest = CreateEstimateRequest

// EstimateResponse cotización completa con totales recalculados.
type EstimateResponse struct {
	ID              string                 `json:"id"`
	CompanyID       string                 `json:"company_id"`
	CustomerID      string                 `json:"customer_id"`
	CustomerName    string                 `json:"customer_name,omitempty"`
	EmployeeID      string                 `json:"employee_id,omitempty"`
	EstimateNumber  string                 `json:"estimate_number"`
	EstimateDate    string                 `json:"estimate_date"`
	ExpiryDate      string                 `json:"expiry_date,omitempty"`
	Subtotal        decimal.Decimal        `json:"subtotal"`
	TaxAmount       decimal.Decimal        `json:"tax_amount"`
	DiscountType    pricing.DiscountType   `json:"discount_type"`
	DiscountValue   decimal.Decimal        `json:"discount_value"`
	DiscountAmount  decimal.Decimal        `json:"discount_amount"`
	TotalAmount     decimal.Decimal        `json:"total_amount"`
	Status          string                 `json:"status"`
	InvoiceID       string                 `json:"invoice_id,omitempty"`
	Notes           string                 `json:"notes,omitempty"`
	Terms           string                 `json:"terms,omitempty"`
	ShippingAddress string                 `json:"shipping_address,omitempty"`
	BillingAddress  string                 `json:"billing_address,omitempty"`
	ShipVia         string                 `json:"ship_via,omitempty"`
	ShippingDate    string                 `json:"shipping_date,omitempty"`
	TrackingNumber  string                 `json:"tracking_number,omitempty"`
	Items           []DocumentItemResponse `json:"items"`
}
