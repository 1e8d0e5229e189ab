package dto

import "github.com/shopspring/decimal"

// TaxRateRequest tasa de impuesto al crear/actualizar una empresa.
type TaxRateRequest struct {
	Name      string          `json:"name"`
	Rate      decimal.Decimal `json:"rate"` // porcentaje (15 = 15%)
	IsDefault bool            `json:"is_default"`
}

// CreateCompanyRequest body para POST /api/companies.
// TaxRates solo se procesa si IsTaxable es true.
type CreateCompanyRequest struct {
	Name               string           `json:"name"`
	IsTaxable          bool             `json:"is_taxable"`
	TaxNumber          string           `json:"tax_number,omitempty"`
	RegistrationNumber string           `json:"registration_number"`
	Address            string           `json:"address,omitempty"`
	ContactNumber      string           `json:"contact_number,omitempty"`
	Email              string           `json:"email_address,omitempty"`
	TermsAndConditions string           `json:"terms_and_conditions,omitempty"`
	Notes              string           `json:"notes,omitempty"`
	TaxRates           []TaxRateRequest `json:"tax_rates,omitempty"`
}

// UpdateCompanyRequest body para PUT /api/companies/:id.
type UpdateCompanyRequest struct {
	Name               string `json:"name,omitempty"`
	IsTaxable          *bool  `json:"is_taxable,omitempty"`
	TaxNumber          string `json:"tax_number,omitempty"`
	Address            string `json:"address,omitempty"`
	ContactNumber      string `json:"contact_number,omitempty"`
	Email              string `json:"email_address,omitempty"`
	TermsAndConditions string `json:"terms_and_conditions,omitempty"`
	Notes              string `json:"notes,omitempty"`
}

// TaxRateResponse tasa de impuesto en respuestas.
type TaxRateResponse struct {
	ID        string          `json:"tax_rate_id"`
	CompanyID string          `json:"company_id"`
	Name      string          `json:"name"`
	Rate      decimal.Decimal `json:"rate"`
	IsDefault bool            `json:"is_default"`
}

// CompanyResponse empresa en respuestas.
type CompanyResponse struct {
	ID                 string            `json:"company_id"`
	Name               string            `json:"name"`
	IsTaxable          bool              `json:"is_taxable"`
	TaxNumber          string            `json:"tax_number,omitempty"`
	RegistrationNumber string            `json:"registration_number"`
	Address            string            `json:"address,omitempty"`
	ContactNumber      string            `json:"contact_number,omitempty"`
	Email              string            `json:"email_address,omitempty"`
	TermsAndConditions string            `json:"terms_and_conditions,omitempty"`
	Notes              string            `json:"notes,omitempty"`
	TaxRates           []TaxRateResponse `json:"tax_rates,omitempty"`
}
