package dto

import "github.com/shopspring/decimal"

// AddressDTO campos postales de facturación/envío.
type AddressDTO struct {
	Line       string `json:"address,omitempty"`
	City       string `json:"city,omitempty"`
	Province   string `json:"province,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Name                  string          `json:"name"`
	Email                 string          `json:"email,omitempty"`
	Phone                 string          `json:"phone,omitempty"`
	IsTaxable             bool            `json:"is_taxable"`
	TaxNumber             string          `json:"tax_number,omitempty"`
	CreditLimit           decimal.Decimal `json:"credit_limit"`
	OpeningBalance        decimal.Decimal `json:"opening_balance"`
	Billing               AddressDTO      `json:"billing"`
	ShippingSameAsBilling bool            `json:"shipping_same_as_billing"`
	Shipping              AddressDTO      `json:"shipping"`
	PaymentMethod         string          `json:"primary_payment_method,omitempty"`
	Terms                 string          `json:"terms,omitempty"`
	DeliveryOption        string          `json:"delivery_option,omitempty"`
}

// UpdateCustomerRequest body para PUT /api/customers/:id (mismos campos).
type UpdateCustomerRequest = CreateCustomerRequest

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID                    string          `json:"id"`
	CompanyID             string          `json:"company_id"`
	Name                  string          `json:"name"`
	Email                 string          `json:"email,omitempty"`
	Phone                 string          `json:"phone,omitempty"`
	IsTaxable             bool            `json:"is_taxable"`
	TaxNumber             string          `json:"tax_number,omitempty"`
	CreditLimit           decimal.Decimal `json:"credit_limit"`
	CurrentBalance        decimal.Decimal `json:"current_balance"`
	OpeningBalance        decimal.Decimal `json:"opening_balance"`
	Billing               AddressDTO      `json:"billing"`
	ShippingSameAsBilling bool            `json:"shipping_same_as_billing"`
	Shipping              AddressDTO      `json:"shipping"`
	PaymentMethod         string          `json:"primary_payment_method,omitempty"`
	Terms                 string          `json:"terms,omitempty"`
	DeliveryOption        string          `json:"delivery_option,omitempty"`
	IsActive              bool            `json:"is_active"`
}
