package dto

import "github.com/shopspring/decimal"

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	SKU               string          `json:"sku,omitempty"`
	Name              string          `json:"name"`
	Description       string          `json:"description,omitempty"`
	CategoryID        string          `json:"category_id,omitempty"`
	PreferredVendorID string          `json:"preferred_vendor_id,omitempty"`
	AddedEmployeeID   string          `json:"added_employee_id,omitempty"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	CostPrice         decimal.Decimal `json:"cost_price"`
	QuantityOnHand    int             `json:"quantity_on_hand"`
	ReorderLevel      int             `json:"reorder_level"`
}

// UpdateProductRequest body para PUT /api/products/:id.
type UpdateProductRequest = CreateProductRequest

// ProductResponse producto en respuestas. UnitPrice precarga las líneas
// de factura/cotización cuando se selecciona el producto.
type ProductResponse struct {
	ID                string          `json:"id"`
	CompanyID         string          `json:"company_id"`
	SKU               string          `json:"sku,omitempty"`
	Name              string          `json:"name"`
	Description       string          `json:"description,omitempty"`
	CategoryID        string          `json:"category_id,omitempty"`
	PreferredVendorID string          `json:"preferred_vendor_id,omitempty"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	CostPrice         decimal.Decimal `json:"cost_price"`
	QuantityOnHand    int             `json:"quantity_on_hand"`
	ReorderLevel      int             `json:"reorder_level"`
	IsActive          bool            `json:"is_active"`
}

// CreateCategoryRequest body para POST /api/product-categories.
type CreateCategoryRequest struct {
	Name string `json:"name"`
}

// CategoryResponse categoría en respuestas.
type CategoryResponse struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	Name      string `json:"name"`
	IsActive  bool   `json:"is_active"`
}
