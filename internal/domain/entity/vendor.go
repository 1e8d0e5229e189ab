package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Vendor representa un proveedor de la empresa.
type Vendor struct {
	ID            string
	CompanyID     string
	Name          string
	VendorCompany string // razón social del proveedor, opcional
	Email         string
	Phone         string
	Address       string
	City          string
	State         string
	ZipCode       string
	Country       string
	TaxNumber     string
	Website       string
	Terms         string
	AccountNumber string
	Balance       decimal.Decimal
	BillingRate   decimal.Decimal
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
