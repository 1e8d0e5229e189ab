package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Address agrupa los campos postales de facturación/envío de un cliente.
type Address struct {
	Line       string
	City       string
	Province   string
	PostalCode string
	Country    string
}

// Customer representa un cliente de la empresa (facturación).
type Customer struct {
	ID                    string
	CompanyID             string
	Name                  string
	Email                 string
	Phone                 string
	IsTaxable             bool
	TaxNumber             string
	CreditLimit           decimal.Decimal
	CurrentBalance        decimal.Decimal
	OpeningBalance        decimal.Decimal
	Billing               Address
	ShippingSameAsBilling bool
	Shipping              Address
	PaymentMethod         string
	Terms                 string
	DeliveryOption        string
	IsActive              bool
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
