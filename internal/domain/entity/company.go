package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Company representa una organización/tenant del sistema (multi-tenant).
type Company struct {
	ID                 string
	Name               string
	IsTaxable          bool
	TaxNumber          string // solo si IsTaxable
	RegistrationNumber string // único
	Address            string
	ContactNumber      string
	Email              string
	TermsAndConditions string // texto por defecto para facturas nuevas
	Notes              string // mensaje por defecto para facturas nuevas
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TaxRate es una tasa de impuesto configurada por empresa.
// Rate se expresa en porcentaje (15 = 15%), igual que en el motor de precios.
type TaxRate struct {
	ID        string
	CompanyID string
	Name      string
	Rate      decimal.Decimal
	IsDefault bool // tasa precargada en líneas nuevas
	CreatedAt time.Time
}
