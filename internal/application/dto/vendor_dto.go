package dto

import "github.com/shopspring/decimal"

// CreateVendorRequest body para POST /api/vendors.
type CreateVendorRequest struct {
	Name          string          `json:"name"`
	VendorCompany string          `json:"vendor_company_name,omitempty"`
	Email         string          `json:"email,omitempty"`
	Phone         string          `json:"phone,omitempty"`
	Address       string          `json:"address,omitempty"`
	City          string          `json:"city,omitempty"`
	State         string          `json:"state,omitempty"`
	ZipCode       string          `json:"zip_code,omitempty"`
	Country       string          `json:"country,omitempty"`
	TaxNumber     string          `json:"tax_number,omitempty"`
	Website       string          `json:"website,omitempty"`
	Terms         string          `json:"terms,omitempty"`
	AccountNumber string          `json:"account_number,omitempty"`
	Balance       decimal.Decimal `json:"balance"`
	BillingRate   decimal.Decimal `json:"billing_rate"`
}

// UpdateVendorRequest body para PUT /api/vendors/:id.
type UpdateVendorRequest = CreateVendorRequest

// VendorResponse proveedor en respuestas.
type VendorResponse struct {
	ID            string          `json:"vendor_id"`
	CompanyID     string          `json:"company_id"`
	Name          string          `json:"name"`
	VendorCompany string          `json:"vendor_company_name,omitempty"`
	Email         string          `json:"email,omitempty"`
	Phone         string          `json:"phone,omitempty"`
	Address       string          `json:"address,omitempty"`
	City          string          `json:"city,omitempty"`
	State         string          `json:"state,omitempty"`
	ZipCode       string          `json:"zip_code,omitempty"`
	Country       string          `json:"country,omitempty"`
	TaxNumber     string          `json:"tax_number,omitempty"`
	Website       string          `json:"website,omitempty"`
	Terms         string          `json:"terms,omitempty"`
	AccountNumber string          `json:"account_number,omitempty"`
	Balance       decimal.Decimal `json:"balance"`
	BillingRate   decimal.Decimal `json:"billing_rate"`
	IsActive      bool            `json:"is_active"`
}
