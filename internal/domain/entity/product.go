package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductCategory agrupa productos dentro de una empresa.
type ProductCategory struct {
	ID        string
	CompanyID string
	Name      string
	IsActive  bool
	CreatedAt time.Time
}

// Product representa un producto del catálogo (multi-tenant).
// UnitPrice es el precio de lista sin impuesto que precarga las líneas de
// factura/cotización cuando se selecciona el producto.
type Product struct {
	ID                string
	CompanyID         string
	SKU               string // único por empresa
	Name              string
	Description       string
	CategoryID        string // opcional
	PreferredVendorID string // opcional
	AddedEmployeeID   string // opcional
	UnitPrice         decimal.Decimal
	CostPrice         decimal.Decimal
	QuantityOnHand    int
	ReorderLevel      int
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
